// ABOUTME: Client MCP tool handlers
// ABOUTME: Implements find_clients and add_client over the process-local store
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ClientHandlers struct {
	store store.ReadWriter
	now   func() time.Time
}

func NewClientHandlers(s store.ReadWriter, now func() time.Time) *ClientHandlers {
	if now == nil {
		now = time.Now
	}
	return &ClientHandlers{store: s, now: now}
}

type FindClientsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Client name or email fragment; empty lists everyone"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status (active, inactive, pending)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type FindClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
	Count   int            `json:"count"`
}

func (h *ClientHandlers) FindClients(_ context.Context, request *mcp.CallToolRequest, input FindClientsInput) (*mcp.CallToolResult, FindClientsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	clients, err := h.store.Clients()
	if err != nil {
		return nil, FindClientsOutput{}, fmt.Errorf("failed to list clients: %w", err)
	}
	policies, err := h.store.Policies()
	if err != nil {
		return nil, FindClientsOutput{}, fmt.Errorf("failed to list policies: %w", err)
	}

	query := strings.TrimSpace(input.Query)
	if query != "" {
		matched := assistant.MatchClients(clients, []string{query})
		if len(matched) == 0 {
			// Email fragments never match a name.
			needle := strings.ToLower(query)
			for _, c := range clients {
				if strings.Contains(strings.ToLower(c.Email), needle) {
					matched = append(matched, c)
				}
			}
		}
		clients = matched
	}

	out := FindClientsOutput{Clients: []ClientOutput{}}
	for _, c := range clients {
		if input.Status != "" && c.Status != input.Status {
			continue
		}
		if len(out.Clients) >= input.Limit {
			break
		}
		out.Clients = append(out.Clients, clientToOutput(models.RecomputeClient(c, policies)))
	}
	out.Count = len(out.Clients)

	return &mcp.CallToolResult{}, out, nil
}

type AddClientInput struct {
	FirstName string `json:"first_name" jsonschema:"Client first name (required)"`
	LastName  string `json:"last_name" jsonschema:"Client last name (required)"`
	Email     string `json:"email" jsonschema:"Client email address (required)"`
	Phone     string `json:"phone,omitempty" jsonschema:"Client phone number"`
	Address   string `json:"address,omitempty" jsonschema:"Mailing address"`
	Status    string `json:"status,omitempty" jsonschema:"Client status (default pending)"`
}

func (h *ClientHandlers) AddClient(_ context.Context, request *mcp.CallToolRequest, input AddClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	form := models.ClientForm{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Status:    input.Status,
	}
	if err := form.Validate(); err != nil {
		return nil, ClientOutput{}, err
	}

	client := form.ToClient(store.NewID("CL"), h.now())
	if err := h.store.AddClient(&client); err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to add client: %w", err)
	}

	return &mcp.CallToolResult{}, clientToOutput(client), nil
}
