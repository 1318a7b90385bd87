// ABOUTME: Repository interfaces over the CRM data stores
// ABOUTME: Every store exposes get-all, get-by-id, and get-by-owning-client lookups
package store

import (
	"errors"

	"github.com/harperreed/inscrm/models"
)

// ErrNotFound is returned by writers when the record being changed does not exist.
// Readers return nil, nil for a missing record instead.
var ErrNotFound = errors.New("record not found")

// Store is the read side of the CRM dataset. Collections are returned in
// insertion order; relations are reconstructed by scanning the foreign key.
type Store interface {
	Clients() ([]models.Client, error)
	Client(id string) (*models.Client, error)

	Policies() ([]models.Policy, error)
	Policy(id string) (*models.Policy, error)
	PoliciesByClient(clientID string) ([]models.Policy, error)

	Opportunities() ([]models.Opportunity, error)
	Opportunity(id string) (*models.Opportunity, error)
	OpportunitiesByClient(clientID string) ([]models.Opportunity, error)

	Tasks() ([]models.Task, error)
	Task(id string) (*models.Task, error)
	TasksByClient(clientID string) ([]models.Task, error)

	Communications() ([]models.Communication, error)
	Communication(id string) (*models.Communication, error)
	CommunicationsByClient(clientID string) ([]models.Communication, error)

	Reports() ([]models.Report, error)
	Report(id string) (*models.Report, error)
}

// Writer mutates a view-local copy of the dataset. Nothing is written back to
// the seed; a new process starts from the hardcoded literals again.
type Writer interface {
	AddClient(c *models.Client) error
	UpdateClient(c *models.Client) error
	AddTask(t *models.Task) error
	UpdateTaskStatus(id, status string) (*models.Task, error)
	AddCommunication(c *models.Communication) error
	UpdateOpportunityStatus(id, status string) (*models.Opportunity, error)
}

// ReadWriter is a store that also accepts local mutations.
type ReadWriter interface {
	Store
	Writer
}

// Dataset is a full snapshot of every collection.
type Dataset struct {
	Clients        []models.Client
	Policies       []models.Policy
	Opportunities  []models.Opportunity
	Tasks          []models.Task
	Communications []models.Communication
	Reports        []models.Report
}

// Snapshot reads every collection from s.
func Snapshot(s Store) (*Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	if ds.Clients, err = s.Clients(); err != nil {
		return nil, err
	}
	if ds.Policies, err = s.Policies(); err != nil {
		return nil, err
	}
	if ds.Opportunities, err = s.Opportunities(); err != nil {
		return nil, err
	}
	if ds.Tasks, err = s.Tasks(); err != nil {
		return nil, err
	}
	if ds.Communications, err = s.Communications(); err != nil {
		return nil, err
	}
	if ds.Reports, err = s.Reports(); err != nil {
		return nil, err
	}
	return &ds, nil
}
