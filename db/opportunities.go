// ABOUTME: Opportunity database operations
// ABOUTME: Handles cross-sell, renewal, and review opportunities per client
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/inscrm/models"
)

const opportunityColumns = `id, client_id, related_policy_id, type, status, priority, title, description, potential_revenue, potential_savings, created_at`

func CreateOpportunity(db *sql.DB, o *models.Opportunity) error {
	_, err := db.Exec(`
		INSERT INTO opportunities (`+opportunityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.ClientID, o.RelatedPolicyID, o.Type, o.Status, o.Priority, o.Title, o.Description,
		o.PotentialRevenue, o.PotentialSavings, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert opportunity %s: %w", o.ID, err)
	}
	return nil
}

func scanOpportunity(row rowScanner) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	var related sql.NullString
	if err := row.Scan(&o.ID, &o.ClientID, &related, &o.Type, &o.Status, &o.Priority, &o.Title,
		&o.Description, &o.PotentialRevenue, &o.PotentialSavings, &o.CreatedAt); err != nil {
		return nil, err
	}
	if related.Valid {
		o.RelatedPolicyID = &related.String
	}
	return o, nil
}

func GetOpportunity(db *sql.DB, id string) (*models.Opportunity, error) {
	o, err := scanOpportunity(db.QueryRow(`SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOpportunities returns every opportunity, or only the client's when clientID is set.
func ListOpportunities(db *sql.DB, clientID string) ([]models.Opportunity, error) {
	var rows *sql.Rows
	var err error

	if clientID != "" {
		rows, err = db.Query(`SELECT `+opportunityColumns+` FROM opportunities WHERE client_id = ? ORDER BY rowid`, clientID)
	} else {
		rows, err = db.Query(`SELECT ` + opportunityColumns + ` FROM opportunities ORDER BY rowid`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, *o)
	}
	return opportunities, rows.Err()
}

func UpdateOpportunityStatus(db *sql.DB, id, status string) error {
	result, err := db.Exec(`UPDATE opportunities SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update opportunity %s: %w", id, err)
	}
	return requireOneRow(result)
}
