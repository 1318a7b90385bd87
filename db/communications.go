// ABOUTME: Communication and report database operations
// ABOUTME: Attachment lists and report metrics are stored as JSON text columns
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harperreed/inscrm/models"
)

const communicationColumns = `id, client_id, type, status, subject, body, sent_at, attachments`

func CreateCommunication(db *sql.DB, c *models.Communication) error {
	var attachments *string
	if len(c.Attachments) > 0 {
		data, err := json.Marshal(c.Attachments)
		if err != nil {
			return fmt.Errorf("failed to marshal attachments: %w", err)
		}
		s := string(data)
		attachments = &s
	}

	_, err := db.Exec(`
		INSERT INTO communications (`+communicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.ClientID, c.Type, c.Status, c.Subject, c.Body, c.SentAt, attachments)
	if err != nil {
		return fmt.Errorf("failed to insert communication %s: %w", c.ID, err)
	}
	return nil
}

func scanCommunication(row rowScanner) (*models.Communication, error) {
	c := &models.Communication{}
	var attachments sql.NullString
	if err := row.Scan(&c.ID, &c.ClientID, &c.Type, &c.Status, &c.Subject, &c.Body, &c.SentAt, &attachments); err != nil {
		return nil, err
	}
	if attachments.Valid && attachments.String != "" {
		if err := json.Unmarshal([]byte(attachments.String), &c.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	return c, nil
}

func GetCommunication(db *sql.DB, id string) (*models.Communication, error) {
	c, err := scanCommunication(db.QueryRow(`SELECT `+communicationColumns+` FROM communications WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCommunications returns every communication, or only the client's when clientID is set.
func ListCommunications(db *sql.DB, clientID string) ([]models.Communication, error) {
	var rows *sql.Rows
	var err error

	if clientID != "" {
		rows, err = db.Query(`SELECT `+communicationColumns+` FROM communications WHERE client_id = ? ORDER BY rowid`, clientID)
	} else {
		rows, err = db.Query(`SELECT ` + communicationColumns + ` FROM communications ORDER BY rowid`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comms []models.Communication
	for rows.Next() {
		c, err := scanCommunication(rows)
		if err != nil {
			return nil, err
		}
		comms = append(comms, *c)
	}
	return comms, rows.Err()
}

const reportColumns = `id, name, category, description, generated_at, metrics`

func CreateReport(db *sql.DB, r *models.Report) error {
	data, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.Category, r.Description, r.GeneratedAt, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert report %s: %w", r.ID, err)
	}
	return nil
}

func scanReport(row rowScanner) (*models.Report, error) {
	r := &models.Report{}
	var metrics sql.NullString
	if err := row.Scan(&r.ID, &r.Name, &r.Category, &r.Description, &r.GeneratedAt, &metrics); err != nil {
		return nil, err
	}
	if metrics.Valid && metrics.String != "" && metrics.String != "null" {
		if err := json.Unmarshal([]byte(metrics.String), &r.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
	}
	return r, nil
}

func GetReport(db *sql.DB, id string) (*models.Report, error) {
	r, err := scanReport(db.QueryRow(`SELECT `+reportColumns+` FROM reports WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func ListReports(db *sql.DB) ([]models.Report, error) {
	rows, err := db.Query(`SELECT ` + reportColumns + ` FROM reports ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}
