// ABOUTME: Database schema definitions
// ABOUTME: One table per CRM collection; rowid order is insertion order
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	address TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive', 'pending')),
	active_policies INTEGER NOT NULL DEFAULT 0,
	total_premium REAL NOT NULL DEFAULT 0,
	joined_at DATETIME NOT NULL,
	last_contact_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(last_name, first_name);

CREATE TABLE IF NOT EXISTS policies (
	id TEXT PRIMARY KEY,
	policy_number TEXT NOT NULL,
	client_id TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('active', 'pending', 'expired', 'cancelled')),
	carrier TEXT,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	premium REAL NOT NULL DEFAULT 0,
	coverage_amount REAL NOT NULL DEFAULT 0,
	deductible REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_policies_client_id ON policies(client_id);
CREATE INDEX IF NOT EXISTS idx_policies_end_date ON policies(end_date);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	related_policy_id TEXT,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL CHECK(priority IN ('high', 'medium', 'low')),
	title TEXT NOT NULL,
	description TEXT,
	potential_revenue REAL NOT NULL DEFAULT 0,
	potential_savings REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_opportunities_client_id ON opportunities(client_id);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	client_id TEXT,
	due_date DATETIME NOT NULL,
	priority TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'in_progress', 'completed', 'cancelled')),
	type TEXT NOT NULL,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_tasks_client_id ON tasks(client_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

CREATE TABLE IF NOT EXISTS communications (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('sent', 'draft', 'scheduled')),
	subject TEXT,
	body TEXT,
	sent_at DATETIME NOT NULL,
	attachments TEXT
);

CREATE INDEX IF NOT EXISTS idx_communications_client_id ON communications(client_id);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT,
	generated_at DATETIME NOT NULL,
	metrics TEXT
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
