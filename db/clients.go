// ABOUTME: Client database operations
// ABOUTME: Handles inserts, lookups, and updates of insured client records
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/inscrm/models"
)

const clientColumns = `id, first_name, last_name, email, phone, address, status, active_policies, total_premium, joined_at, last_contact_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func CreateClient(db *sql.DB, client *models.Client) error {
	_, err := db.Exec(`
		INSERT INTO clients (`+clientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, client.ID, client.FirstName, client.LastName, client.Email, client.Phone, client.Address,
		client.Status, client.ActivePolicies, client.TotalPremium, client.JoinedAt, client.LastContactAt)
	if err != nil {
		return fmt.Errorf("failed to insert client %s: %w", client.ID, err)
	}
	return nil
}

func scanClient(row rowScanner) (*models.Client, error) {
	c := &models.Client{}
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Status,
		&c.ActivePolicies,
		&c.TotalPremium,
		&c.JoinedAt,
		&c.LastContactAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func GetClient(db *sql.DB, id string) (*models.Client, error) {
	c, err := scanClient(db.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func ListClients(db *sql.DB) ([]models.Client, error) {
	rows, err := db.Query(`SELECT ` + clientColumns + ` FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func UpdateClient(db *sql.DB, client *models.Client) error {
	result, err := db.Exec(`
		UPDATE clients
		SET first_name = ?, last_name = ?, email = ?, phone = ?, address = ?, status = ?,
			active_policies = ?, total_premium = ?, last_contact_at = ?
		WHERE id = ?
	`, client.FirstName, client.LastName, client.Email, client.Phone, client.Address, client.Status,
		client.ActivePolicies, client.TotalPremium, client.LastContactAt, client.ID)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ID, err)
	}
	return requireOneRow(result)
}

// requireOneRow maps an UPDATE that touched nothing to errNoRow.
func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNoRow
	}
	return nil
}
