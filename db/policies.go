// ABOUTME: Policy database operations
// ABOUTME: Policies are read by id, by owning client, or as the full book
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/inscrm/models"
)

const policyColumns = `id, policy_number, client_id, type, status, carrier, start_date, end_date, premium, coverage_amount, deductible`

func CreatePolicy(db *sql.DB, p *models.Policy) error {
	_, err := db.Exec(`
		INSERT INTO policies (`+policyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.PolicyNumber, p.ClientID, p.Type, p.Status, p.Carrier, p.StartDate, p.EndDate,
		p.Premium, p.CoverageAmount, p.Deductible)
	if err != nil {
		return fmt.Errorf("failed to insert policy %s: %w", p.ID, err)
	}
	return nil
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	p := &models.Policy{}
	if err := row.Scan(&p.ID, &p.PolicyNumber, &p.ClientID, &p.Type, &p.Status, &p.Carrier,
		&p.StartDate, &p.EndDate, &p.Premium, &p.CoverageAmount, &p.Deductible); err != nil {
		return nil, err
	}
	return p, nil
}

func GetPolicy(db *sql.DB, id string) (*models.Policy, error) {
	p, err := scanPolicy(db.QueryRow(`SELECT `+policyColumns+` FROM policies WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolicies returns every policy, or only the client's when clientID is set.
func ListPolicies(db *sql.DB, clientID string) ([]models.Policy, error) {
	var rows *sql.Rows
	var err error

	if clientID != "" {
		rows, err = db.Query(`SELECT `+policyColumns+` FROM policies WHERE client_id = ? ORDER BY rowid`, clientID)
	} else {
		rows, err = db.Query(`SELECT ` + policyColumns + ` FROM policies ORDER BY rowid`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, *p)
	}
	return policies, rows.Err()
}
