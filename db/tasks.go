// ABOUTME: Task database operations
// ABOUTME: Tasks may be unassigned, so client_id is nullable
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/inscrm/models"
)

const taskColumns = `id, title, description, client_id, due_date, priority, status, type, completed_at`

func CreateTask(db *sql.DB, t *models.Task) error {
	_, err := db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, t.ClientID, t.DueDate, t.Priority, t.Status, t.Type, t.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
	}
	return nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var clientID sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &clientID, &t.DueDate, &t.Priority,
		&t.Status, &t.Type, &t.CompletedAt); err != nil {
		return nil, err
	}
	if clientID.Valid {
		t.ClientID = &clientID.String
	}
	return t, nil
}

func GetTask(db *sql.DB, id string) (*models.Task, error) {
	t, err := scanTask(db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns every task, or only the client's when clientID is set.
func ListTasks(db *sql.DB, clientID string) ([]models.Task, error) {
	var rows *sql.Rows
	var err error

	if clientID != "" {
		rows, err = db.Query(`SELECT `+taskColumns+` FROM tasks WHERE client_id = ? ORDER BY rowid`, clientID)
	} else {
		rows, err = db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func UpdateTask(db *sql.DB, t *models.Task) error {
	result, err := db.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, client_id = ?, due_date = ?, priority = ?, status = ?, type = ?, completed_at = ?
		WHERE id = ?
	`, t.Title, t.Description, t.ClientID, t.DueDate, t.Priority, t.Status, t.Type, t.CompletedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}
	return requireOneRow(result)
}
