// ABOUTME: Universal query tool handler
// ABOUTME: Implements flexible filtering across all CRM entity types
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type QueryHandlers struct {
	store store.Store
}

func NewQueryHandlers(s store.Store) *QueryHandlers {
	return &QueryHandlers{store: s}
}

type QueryCRMInput struct {
	EntityType string            `json:"entity_type" jsonschema:"Type of entity to query (client, policy, opportunity, task, communication, report)"`
	ClientID   string            `json:"client_id,omitempty" jsonschema:"Only records owned by this client"`
	Filters    map[string]string `json:"filters,omitempty" jsonschema:"Exact-match filters: status, type, priority"`
	Limit      int               `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type QueryCRMOutput struct {
	EntityType string        `json:"entity_type"`
	Results    []interface{} `json:"results"`
	Count      int           `json:"count"`
}

// record exposes the fields filters can match on.
type record struct {
	status, kind, priority string
	out                    interface{}
}

func (h *QueryHandlers) QueryCRM(ctx context.Context, req *mcp.CallToolRequest, input QueryCRMInput) (*mcp.CallToolResult, QueryCRMOutput, error) {
	if input.Limit == 0 {
		input.Limit = 10
	}

	var (
		records []record
		err     error
	)
	switch input.EntityType {
	case "client":
		records, err = h.clients(input.ClientID)
	case "policy":
		records, err = h.policies(input.ClientID)
	case "opportunity":
		records, err = h.opportunities(input.ClientID)
	case "task":
		records, err = h.tasks(input.ClientID)
	case "communication":
		records, err = h.communications(input.ClientID)
	case "report":
		records, err = h.reports()
	default:
		return nil, QueryCRMOutput{}, fmt.Errorf("invalid entity_type: %s (valid: client, policy, opportunity, task, communication, report)", input.EntityType)
	}
	if err != nil {
		return nil, QueryCRMOutput{}, fmt.Errorf("failed to query %s: %w", input.EntityType, err)
	}

	results := []interface{}{}
	for _, r := range records {
		if !r.matches(input.Filters) {
			continue
		}
		if len(results) >= input.Limit {
			break
		}
		results = append(results, r.out)
	}

	return &mcp.CallToolResult{}, QueryCRMOutput{
		EntityType: input.EntityType,
		Results:    results,
		Count:      len(results),
	}, nil
}

func (r record) matches(filters map[string]string) bool {
	if v, ok := filters["status"]; ok && v != r.status {
		return false
	}
	if v, ok := filters["type"]; ok && v != r.kind {
		return false
	}
	if v, ok := filters["priority"]; ok && v != r.priority {
		return false
	}
	return true
}

func (h *QueryHandlers) clients(clientID string) ([]record, error) {
	clients, err := h.store.Clients()
	if err != nil {
		return nil, err
	}
	var out []record
	for _, c := range clients {
		if clientID != "" && c.ID != clientID {
			continue
		}
		out = append(out, record{status: c.Status, out: clientToOutput(c)})
	}
	return out, nil
}

func (h *QueryHandlers) policies(clientID string) ([]record, error) {
	var (
		policies []models.Policy
		err      error
	)
	if clientID != "" {
		policies, err = h.store.PoliciesByClient(clientID)
	} else {
		policies, err = h.store.Policies()
	}
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(policies))
	for _, p := range policies {
		out = append(out, record{status: p.Status, kind: p.Type, out: policyToOutput(p)})
	}
	return out, nil
}

func (h *QueryHandlers) opportunities(clientID string) ([]record, error) {
	var (
		opps []models.Opportunity
		err  error
	)
	if clientID != "" {
		opps, err = h.store.OpportunitiesByClient(clientID)
	} else {
		opps, err = h.store.Opportunities()
	}
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(opps))
	for _, o := range opps {
		out = append(out, record{status: o.Status, kind: o.Type, priority: o.Priority, out: opportunityToOutput(o)})
	}
	return out, nil
}

func (h *QueryHandlers) tasks(clientID string) ([]record, error) {
	var (
		tasks []models.Task
		err   error
	)
	if clientID != "" {
		tasks, err = h.store.TasksByClient(clientID)
	} else {
		tasks, err = h.store.Tasks()
	}
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, record{status: t.Status, kind: t.Type, priority: t.Priority, out: taskToOutput(t)})
	}
	return out, nil
}

func (h *QueryHandlers) communications(clientID string) ([]record, error) {
	var (
		comms []models.Communication
		err   error
	)
	if clientID != "" {
		comms, err = h.store.CommunicationsByClient(clientID)
	} else {
		comms, err = h.store.Communications()
	}
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(comms))
	for _, c := range comms {
		out = append(out, record{status: c.Status, kind: c.Type, out: communicationToOutput(c)})
	}
	return out, nil
}

func (h *QueryHandlers) reports() ([]record, error) {
	reports, err := h.store.Reports()
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(reports))
	for _, r := range reports {
		out = append(out, record{kind: r.Category, out: reportToOutput(r)})
	}
	return out, nil
}
