// ABOUTME: In-memory store backed by ordered slices
// ABOUTME: Linear scans for lookups; each store owns a private copy of its dataset
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/inscrm/models"
)

// Memory holds the dataset in insertion-ordered slices.
type Memory struct {
	mu   sync.RWMutex
	data Dataset
	now  func() time.Time
}

// NewMemory builds a store over a private copy of ds.
func NewMemory(ds *Dataset) *Memory {
	m := &Memory{now: time.Now}
	if ds != nil {
		m.data = copyDataset(ds)
	}
	return m
}

// NewSeeded builds a store from the hardcoded mock dataset anchored at now.
func NewSeeded(now time.Time) *Memory {
	return NewMemory(Seed(now))
}

func (m *Memory) Clients() ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Client(nil), m.data.Clients...), nil
}

func (m *Memory) Client(id string) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Clients {
		if m.data.Clients[i].ID == id {
			c := m.data.Clients[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Memory) Policies() ([]models.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Policy(nil), m.data.Policies...), nil
}

func (m *Memory) Policy(id string) (*models.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Policies {
		if m.data.Policies[i].ID == id {
			p := m.data.Policies[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *Memory) PoliciesByClient(clientID string) ([]models.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Policy
	for _, p := range m.data.Policies {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) Opportunities() ([]models.Opportunity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Opportunity(nil), m.data.Opportunities...), nil
}

func (m *Memory) Opportunity(id string) (*models.Opportunity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Opportunities {
		if m.data.Opportunities[i].ID == id {
			o := m.data.Opportunities[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (m *Memory) OpportunitiesByClient(clientID string) ([]models.Opportunity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Opportunity
	for _, o := range m.data.Opportunities {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) Tasks() ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Task(nil), m.data.Tasks...), nil
}

func (m *Memory) Task(id string) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Tasks {
		if m.data.Tasks[i].ID == id {
			t := m.data.Tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (m *Memory) TasksByClient(clientID string) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Task
	for _, t := range m.data.Tasks {
		if t.BelongsTo(clientID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) Communications() ([]models.Communication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Communication(nil), m.data.Communications...), nil
}

func (m *Memory) Communication(id string) (*models.Communication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Communications {
		if m.data.Communications[i].ID == id {
			c := m.data.Communications[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Memory) CommunicationsByClient(clientID string) ([]models.Communication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Communication
	for _, c := range m.data.Communications {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) Reports() ([]models.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Report(nil), m.data.Reports...), nil
}

func (m *Memory) Report(id string) (*models.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.data.Reports {
		if m.data.Reports[i].ID == id {
			r := m.data.Reports[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) AddClient(c *models.Client) error {
	if c.ID == "" {
		c.ID = NewID("CL")
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.data.Clients {
		if existing.ID == c.ID {
			return fmt.Errorf("client %s already exists", c.ID)
		}
	}
	m.data.Clients = append(m.data.Clients, *c)
	return nil
}

func (m *Memory) UpdateClient(c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data.Clients {
		if m.data.Clients[i].ID == c.ID {
			m.data.Clients[i] = *c
			return nil
		}
	}
	return fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
}

func (m *Memory) AddTask(t *models.Task) error {
	if t.ID == "" {
		t.ID = NewID("TK")
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Tasks = append(m.data.Tasks, *t)
	return nil
}

func (m *Memory) UpdateTaskStatus(id, status string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data.Tasks {
		if m.data.Tasks[i].ID != id {
			continue
		}
		if err := m.data.Tasks[i].TransitionStatus(status, m.now()); err != nil {
			return nil, err
		}
		t := m.data.Tasks[i]
		return &t, nil
	}
	return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (m *Memory) AddCommunication(c *models.Communication) error {
	if c.ID == "" {
		c.ID = NewID("CM")
	}
	if c.SentAt.IsZero() {
		c.SentAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Communications = append(m.data.Communications, *c)
	return nil
}

func (m *Memory) UpdateOpportunityStatus(id, status string) (*models.Opportunity, error) {
	if !ValidOpportunityStatus(status) {
		return nil, fmt.Errorf("invalid opportunity status: %s", status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.data.Opportunities {
		if m.data.Opportunities[i].ID == id {
			m.data.Opportunities[i].Status = status
			o := m.data.Opportunities[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("opportunity %s: %w", id, ErrNotFound)
}

// ValidOpportunityStatus reports whether status is a known opportunity status.
func ValidOpportunityStatus(status string) bool {
	switch status {
	case models.OpportunityStatusEligible,
		models.OpportunityStatusPendingReview,
		models.OpportunityStatusInProgress,
		models.OpportunityStatusRecommended,
		models.OpportunityStatusRejected,
		models.OpportunityStatusCompleted:
		return true
	}
	return false
}

func copyDataset(ds *Dataset) Dataset {
	out := Dataset{
		Clients:        append([]models.Client(nil), ds.Clients...),
		Policies:       append([]models.Policy(nil), ds.Policies...),
		Opportunities:  append([]models.Opportunity(nil), ds.Opportunities...),
		Tasks:          append([]models.Task(nil), ds.Tasks...),
		Communications: append([]models.Communication(nil), ds.Communications...),
		Reports:        make([]models.Report, len(ds.Reports)),
	}
	for i, r := range ds.Reports {
		metrics := make(map[string]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			metrics[k] = v
		}
		r.Metrics = metrics
		out.Reports[i] = r
	}
	return out
}
