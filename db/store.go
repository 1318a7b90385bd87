// ABOUTME: SQLite-backed implementation of the CRM store interfaces
// ABOUTME: Load copies a dataset into the tables; writes stay in this database
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

var errNoRow = errors.New("no row updated")

// Store adapts the SQL helpers to store.ReadWriter.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.ReadWriter = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open opens the database at path and, when ds is non-nil, loads it.
func Open(path string, ds *store.Dataset) (*Store, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if ds != nil {
		if err := Load(db, ds); err != nil {
			db.Close()
			return nil, err
		}
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load inserts every record of ds in collection order.
func Load(db *sql.DB, ds *store.Dataset) error {
	for i := range ds.Clients {
		if err := CreateClient(db, &ds.Clients[i]); err != nil {
			return err
		}
	}
	for i := range ds.Policies {
		if err := CreatePolicy(db, &ds.Policies[i]); err != nil {
			return err
		}
	}
	for i := range ds.Opportunities {
		if err := CreateOpportunity(db, &ds.Opportunities[i]); err != nil {
			return err
		}
	}
	for i := range ds.Tasks {
		if err := CreateTask(db, &ds.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range ds.Communications {
		if err := CreateCommunication(db, &ds.Communications[i]); err != nil {
			return err
		}
	}
	for i := range ds.Reports {
		if err := CreateReport(db, &ds.Reports[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Clients() ([]models.Client, error) { return ListClients(s.db) }
func (s *Store) Client(id string) (*models.Client, error) { return GetClient(s.db, id) }
func (s *Store) Policies() ([]models.Policy, error) { return ListPolicies(s.db, "") }
func (s *Store) Policy(id string) (*models.Policy, error) { return GetPolicy(s.db, id) }
func (s *Store) Tasks() ([]models.Task, error) { return ListTasks(s.db, "") }
func (s *Store) Task(id string) (*models.Task, error) { return GetTask(s.db, id) }
func (s *Store) Reports() ([]models.Report, error) { return ListReports(s.db) }
func (s *Store) Report(id string) (*models.Report, error) { return GetReport(s.db, id) }
func (s *Store) Opportunities() ([]models.Opportunity, error) {
	return ListOpportunities(s.db, "")
}

func (s *Store) Opportunity(id string) (*models.Opportunity, error) {
	return GetOpportunity(s.db, id)
}

func (s *Store) Communications() ([]models.Communication, error) {
	return ListCommunications(s.db, "")
}

func (s *Store) Communication(id string) (*models.Communication, error) {
	return GetCommunication(s.db, id)
}

func (s *Store) PoliciesByClient(clientID string) ([]models.Policy, error) {
	if clientID == "" {
		return nil, nil
	}
	return ListPolicies(s.db, clientID)
}

func (s *Store) OpportunitiesByClient(clientID string) ([]models.Opportunity, error) {
	if clientID == "" {
		return nil, nil
	}
	return ListOpportunities(s.db, clientID)
}

func (s *Store) TasksByClient(clientID string) ([]models.Task, error) {
	if clientID == "" {
		return nil, nil
	}
	return ListTasks(s.db, clientID)
}

func (s *Store) CommunicationsByClient(clientID string) ([]models.Communication, error) {
	if clientID == "" {
		return nil, nil
	}
	return ListCommunications(s.db, clientID)
}

func (s *Store) AddClient(c *models.Client) error {
	if c.ID == "" {
		c.ID = store.NewID("CL")
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = s.now()
	}
	return CreateClient(s.db, c)
}

func (s *Store) UpdateClient(c *models.Client) error {
	if err := UpdateClient(s.db, c); err != nil {
		if errors.Is(err, errNoRow) {
			return fmt.Errorf("client %s: %w", c.ID, store.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *Store) AddTask(t *models.Task) error {
	if t.ID == "" {
		t.ID = store.NewID("TK")
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	return CreateTask(s.db, t)
}

func (s *Store) UpdateTaskStatus(id, status string) (*models.Task, error) {
	t, err := GetTask(s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, store.ErrNotFound)
	}
	if err := t.TransitionStatus(status, s.now()); err != nil {
		return nil, err
	}
	if err := UpdateTask(s.db, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) AddCommunication(c *models.Communication) error {
	if c.ID == "" {
		c.ID = store.NewID("CM")
	}
	if c.SentAt.IsZero() {
		c.SentAt = s.now()
	}
	return CreateCommunication(s.db, c)
}

func (s *Store) UpdateOpportunityStatus(id, status string) (*models.Opportunity, error) {
	if !store.ValidOpportunityStatus(status) {
		return nil, fmt.Errorf("invalid opportunity status: %s", status)
	}
	if err := UpdateOpportunityStatus(s.db, id, status); err != nil {
		if errors.Is(err, errNoRow) {
			return nil, fmt.Errorf("opportunity %s: %w", id, store.ErrNotFound)
		}
		return nil, err
	}
	return GetOpportunity(s.db, id)
}

// SeedIfEmpty loads ds only when the clients table has no rows, so an
// on-disk database keeps its edits across runs.
func (s *Store) SeedIfEmpty(ds *store.Dataset) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count clients: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := Load(s.db, ds); err != nil {
		return false, err
	}
	return true, nil
}
