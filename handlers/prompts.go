// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Provides client summary and renewal review prompts built from live data
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

type PromptHandlers struct {
	store store.Store
	now   func() time.Time
}

func NewPromptHandlers(s store.Store, now func() time.Time) *PromptHandlers {
	if now == nil {
		now = time.Now
	}
	return &PromptHandlers{store: s, now: now}
}

// Register adds every prompt to server.
func (h *PromptHandlers) Register(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "client-summary",
		Description: "Summarize a client's coverage, open work, and opportunities",
		Arguments: []*mcp.PromptArgument{
			{Name: "client_id", Description: "Client ID, e.g. CL-1001", Required: true},
		},
	}, h.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "renewal-review",
		Description: "Plan outreach for active policies expiring within the next month",
	}, h.GetPrompt)
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "client-summary":
		return h.getClientSummaryPrompt(request.Params.Arguments)
	case "renewal-review":
		return h.getRenewalReviewPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getClientSummaryPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	clientID, ok := args["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("client_id is required")
	}

	client, err := h.store.Client(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found: %s", clientID)
	}
	policies, err := h.store.PoliciesByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}
	tasks, err := h.store.TasksByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	opps, err := h.store.OpportunitiesByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	agg := models.ComputeClientAggregates(clientID, policies)

	var promptText strings.Builder
	promptText.WriteString("Please provide a concise account summary for this insurance client:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", client.FullName()))
	promptText.WriteString(fmt.Sprintf("Status: %s\n", client.Status))
	if client.Email != "" {
		promptText.WriteString(fmt.Sprintf("Email: %s\n", client.Email))
	}
	promptText.WriteString(fmt.Sprintf("Active policies: %d (%s annual premium)\n", agg.ActivePolicies, assistant.Money(agg.TotalPremium)))

	if len(policies) > 0 {
		promptText.WriteString("\nPolicies:\n")
		for _, p := range policies {
			promptText.WriteString(fmt.Sprintf("- %s %s (%s), %s, ends %s\n",
				p.PolicyNumber, models.HumanizeType(p.Type), p.Status, assistant.Money(p.Premium), assistant.ShortDate(p.EndDate)))
		}
	}

	var open []models.Task
	for _, t := range tasks {
		if t.Status != models.TaskStatusCompleted && t.Status != models.TaskStatusCancelled {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		promptText.WriteString("\nOpen tasks:\n")
		for _, t := range open {
			promptText.WriteString(fmt.Sprintf("- %s (due %s, %s priority)\n", t.Title, assistant.ShortDate(t.DueDate), t.Priority))
		}
	}

	if len(opps) > 0 {
		promptText.WriteString("\nOpportunities:\n")
		for _, o := range opps {
			promptText.WriteString(fmt.Sprintf("- %s (%s, %s)\n", o.Title, o.Priority, o.Status))
		}
	}

	promptText.WriteString("\nHighlight coverage gaps, upcoming renewals, and the next best action.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary for client: %s", client.FullName()),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getRenewalReviewPrompt() (*mcp.GetPromptResult, error) {
	policies, err := h.store.Policies()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}
	clients, err := h.store.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}

	expiring := assistant.ExpiringSoon(policies, h.now())

	var promptText strings.Builder
	promptText.WriteString("Please plan renewal outreach for these policies:\n\n")
	if len(expiring) == 0 {
		promptText.WriteString("No active policies expire within the next month.\n")
	}
	for _, p := range expiring {
		promptText.WriteString(fmt.Sprintf("- %s: %s %s, %s, ends %s\n",
			names[p.ClientID], p.PolicyNumber, models.HumanizeType(p.Type), assistant.Money(p.Premium), assistant.ShortDate(p.EndDate)))
	}
	promptText.WriteString("\nOrder them by urgency and suggest one talking point per client.")

	return &mcp.GetPromptResult{
		Description: "Renewal review",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
