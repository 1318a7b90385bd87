// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only access to clients, policies, and the dashboard via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "crm://"

type ResourceHandlers struct {
	store store.Store
	now   func() time.Time
}

func NewResourceHandlers(s store.Store, now func() time.Time) *ResourceHandlers {
	if now == nil {
		now = time.Now
	}
	return &ResourceHandlers{store: s, now: now}
}

// Register adds every CRM resource to server.
func (h *ResourceHandlers) Register(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         uriScheme + "clients",
		Name:        "clients",
		Description: "All clients with recomputed policy aggregates",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "clients/{id}",
		Name:        "client",
		Description: "One client with policies, tasks, opportunities, and communications",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         uriScheme + "policies",
		Name:        "policies",
		Description: "All policies",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "policies/{id}",
		Name:        "policy",
		Description: "One policy",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         uriScheme + "dashboard",
		Name:        "dashboard",
		Description: "Headline numbers: clients, premium, expiring policies, tasks due today",
		MIMEType:    "application/json",
	}, h.ReadResource)
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", uriScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")

	var (
		v   interface{}
		err error
	)
	switch parts[0] {
	case "clients":
		if len(parts) == 1 {
			v, err = h.allClients()
		} else {
			v, err = h.client(parts[1])
		}
	case "policies":
		if len(parts) == 1 {
			v, err = h.store.Policies()
		} else {
			v, err = h.policy(parts[1])
		}
	case "dashboard":
		v, err = assistant.Summarize(h.store, h.now())
	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", parts[0], err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) allClients() ([]models.Client, error) {
	clients, err := h.store.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	policies, err := h.store.Policies()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}
	for i := range clients {
		clients[i] = models.RecomputeClient(clients[i], policies)
	}
	return clients, nil
}

type clientRecord struct {
	Client         models.Client          `json:"client"`
	Policies       []models.Policy        `json:"policies"`
	Tasks          []models.Task          `json:"tasks"`
	Opportunities  []models.Opportunity   `json:"opportunities"`
	Communications []models.Communication `json:"communications"`
}

// client returns nil when id is unknown.
func (h *ResourceHandlers) client(id string) (interface{}, error) {
	c, err := h.store.Client(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	if c == nil {
		return nil, nil
	}

	rec := clientRecord{}
	if rec.Policies, err = h.store.PoliciesByClient(id); err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}
	if rec.Tasks, err = h.store.TasksByClient(id); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	if rec.Opportunities, err = h.store.OpportunitiesByClient(id); err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	if rec.Communications, err = h.store.CommunicationsByClient(id); err != nil {
		return nil, fmt.Errorf("failed to fetch communications: %w", err)
	}
	rec.Client = models.RecomputeClient(*c, rec.Policies)
	return rec, nil
}

func (h *ResourceHandlers) policy(id string) (interface{}, error) {
	p, err := h.store.Policy(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policy: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	return p, nil
}
