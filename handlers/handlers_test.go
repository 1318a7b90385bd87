// ABOUTME: Tests for the MCP tool, resource, and prompt handlers
// ABOUTME: Calls handlers directly against the seeded in-memory store
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return refTime }

func TestFindClients(t *testing.T) {
	h := NewClientHandlers(store.NewSeeded(refTime), clock)
	ctx := context.Background()

	_, out, err := h.FindClients(ctx, nil, FindClientsInput{Query: "Sarah"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, out, err = h.FindClients(ctx, nil, FindClientsInput{Query: "chenlogistics"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Michael Chen", out.Clients[0].Name)

	_, out, err = h.FindClients(ctx, nil, FindClientsInput{Status: models.ClientStatusInactive, Limit: 50})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "CL-1008", out.Clients[0].ID)
	// Stored aggregates are stale; output is recomputed.
	assert.Equal(t, 0, out.Clients[0].ActivePolicies)

	_, out, err = h.FindClients(ctx, nil, FindClientsInput{})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Count)
}

func TestAddClient(t *testing.T) {
	s := store.NewSeeded(refTime)
	h := NewClientHandlers(s, clock)
	ctx := context.Background()

	_, out, err := h.AddClient(ctx, nil, AddClientInput{FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.ClientStatusPending, out.Status)
	assert.True(t, strings.HasPrefix(out.ID, "CL-"))

	c, err := s.Client(out.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ana Ruiz", c.FullName())

	_, _, err = h.AddClient(ctx, nil, AddClientInput{FirstName: "Ana"})
	var verrs models.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestExpiringPolicies(t *testing.T) {
	h := NewPolicyHandlers(store.NewSeeded(refTime), clock)

	_, out, err := h.ExpiringPolicies(context.Background(), nil, ExpiringPoliciesInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Count)
	assert.Equal(t, "2025-03-07", out.From)
	assert.Equal(t, "2025-04-07", out.Until)

	_, out, err = h.ExpiringPolicies(context.Background(), nil, ExpiringPoliciesInput{ClientID: "CL-1006"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "PL-2010", out.Policies[0].ID)
}

func TestTasksDueToday(t *testing.T) {
	h := NewTaskHandlers(store.NewSeeded(refTime), clock)

	_, out, err := h.TasksDueToday(context.Background(), nil, TasksDueTodayInput{})
	require.NoError(t, err)
	assert.Len(t, out.DueToday, 3)
	assert.Empty(t, out.Overdue)

	_, out, err = h.TasksDueToday(context.Background(), nil, TasksDueTodayInput{IncludeOverdue: true})
	require.NoError(t, err)
	assert.Len(t, out.Overdue, 2)
}

func TestUpdateTaskStatus(t *testing.T) {
	s := store.NewSeeded(refTime)
	h := NewTaskHandlers(s, clock)
	ctx := context.Background()

	_, out, err := h.UpdateTaskStatus(ctx, nil, UpdateTaskStatusInput{ID: "TK-4001", Status: models.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, out.Status)
	assert.NotNil(t, out.CompletedAt)

	_, due, err := h.TasksDueToday(ctx, nil, TasksDueTodayInput{})
	require.NoError(t, err)
	assert.Len(t, due.DueToday, 2)

	_, _, err = h.UpdateTaskStatus(ctx, nil, UpdateTaskStatusInput{ID: "TK-0000", Status: models.TaskStatusCompleted})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	_, _, err = h.UpdateTaskStatus(ctx, nil, UpdateTaskStatusInput{Status: models.TaskStatusCompleted})
	assert.Error(t, err)
}

func TestQueryCRM(t *testing.T) {
	h := NewQueryHandlers(store.NewSeeded(refTime))
	ctx := context.Background()

	tests := []struct {
		name  string
		input QueryCRMInput
		count int
	}{
		{"all clients capped", QueryCRMInput{EntityType: "client"}, 10},
		{"home policies", QueryCRMInput{EntityType: "policy", Filters: map[string]string{"type": models.PolicyTypeHome}}, 3},
		{"client policies", QueryCRMInput{EntityType: "policy", ClientID: "CL-1001"}, 2},
		{"cyber", QueryCRMInput{EntityType: "policy", Filters: map[string]string{"type": models.PolicyTypeCyber}}, 1},
		{"reports", QueryCRMInput{EntityType: "report"}, 4},
		{"limit", QueryCRMInput{EntityType: "task", Limit: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := h.QueryCRM(ctx, nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.count, out.Count)
			assert.Len(t, out.Results, tt.count)
		})
	}

	_, _, err := h.QueryCRM(ctx, nil, QueryCRMInput{EntityType: "deal"})
	assert.Error(t, err)
}

func TestAskAssistant(t *testing.T) {
	s := store.NewSeeded(refTime)
	local := &chat.LocalStrategy{Router: assistant.NewRouter(s, assistant.WithClock(clock))}
	d := chat.NewDispatcher(chat.NewSession(chat.ModeLocal), local, nil, nil)
	h := NewAssistantHandlers(d)
	ctx := context.Background()

	_, out, err := h.AskAssistant(ctx, nil, AskAssistantInput{Message: "How many clients do we have?"})
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "You have 11 clients")
	assert.Equal(t, "local", out.Mode)

	_, _, err = h.AskAssistant(ctx, nil, AskAssistantInput{Message: ""})
	assert.True(t, errors.Is(err, chat.ErrEmpty))

	_, _, err = h.AskAssistant(ctx, nil, AskAssistantInput{Message: "hi", Mode: "psychic"})
	assert.Error(t, err)

	// Remote without a completer falls back to the apology.
	_, out, err = h.AskAssistant(ctx, nil, AskAssistantInput{Message: "hi", Mode: "remote"})
	require.NoError(t, err)
	assert.Equal(t, chat.ApologyText, out.Reply)
}

func readResource(t *testing.T, h *ResourceHandlers, uri string) string {
	t.Helper()
	res, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	return res.Contents[0].Text
}

func TestReadResource(t *testing.T) {
	h := NewResourceHandlers(store.NewSeeded(refTime), clock)

	var clients []models.Client
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://clients")), &clients))
	assert.Len(t, clients, 11)

	var rec clientRecord
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://clients/CL-1001")), &rec))
	assert.Equal(t, "Jamal", rec.Client.FirstName)
	assert.Len(t, rec.Policies, 2)

	var stats assistant.Stats
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://dashboard")), &stats))
	assert.Equal(t, 5, stats.ExpiringSoon)

	assert.Contains(t, readResource(t, h, "crm://policies/PL-2007"), `"cyber"`)

	for _, uri := range []string{"crm://clients/CL-0000", "crm://widgets", "crm://policies/PL-0000"} {
		_, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
		assert.Error(t, err, uri)
	}

	_, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "http://clients"}})
	assert.Error(t, err)
}

func getPrompt(h *PromptHandlers, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	return h.GetPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: name, Arguments: args},
	})
}

func TestClientSummaryPrompt(t *testing.T) {
	h := NewPromptHandlers(store.NewSeeded(refTime), clock)

	res, err := getPrompt(h, "client-summary", map[string]string{"client_id": "CL-1001"})
	require.NoError(t, err)
	assert.Equal(t, "Summary for client: Jamal Haija", res.Description)
	require.Len(t, res.Messages, 1)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Name: Jamal Haija")
	assert.Contains(t, text, "Active policies: 2 ($2,430 annual premium)")

	_, err = getPrompt(h, "client-summary", nil)
	assert.Error(t, err)
	_, err = getPrompt(h, "client-summary", map[string]string{"client_id": "CL-0000"})
	assert.Error(t, err)
	_, err = getPrompt(h, "nope", nil)
	assert.Error(t, err)
}

func TestRenewalReviewPrompt(t *testing.T) {
	h := NewPromptHandlers(store.NewSeeded(refTime), clock)

	res, err := getPrompt(h, "renewal-review", nil)
	require.NoError(t, err)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Equal(t, 5, strings.Count(text, "\n- "))
}

func TestDashboardTool(t *testing.T) {
	h := NewVizHandlers(store.NewSeeded(refTime), clock)

	_, out, err := h.Dashboard(context.Background(), nil, DashboardInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "INSURANCE CRM DASHBOARD")

	_, _, err = h.GenerateGraph(context.Background(), nil, GenerateGraphInput{Type: "client"})
	assert.Error(t, err)
	_, _, err = h.GenerateGraph(context.Background(), nil, GenerateGraphInput{Type: "sankey"})
	assert.Error(t, err)
}
