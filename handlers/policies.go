// ABOUTME: Policy MCP tool handlers
// ABOUTME: Implements expiring_policies using the same window as the assistant
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PolicyHandlers struct {
	store store.Store
	now   func() time.Time
}

func NewPolicyHandlers(s store.Store, now func() time.Time) *PolicyHandlers {
	if now == nil {
		now = time.Now
	}
	return &PolicyHandlers{store: s, now: now}
}

type ExpiringPoliciesInput struct {
	ClientID string `json:"client_id,omitempty" jsonschema:"Only policies owned by this client"`
}

type ExpiringPoliciesOutput struct {
	From     string         `json:"from"`
	Until    string         `json:"until"`
	Policies []PolicyOutput `json:"policies"`
	Count    int            `json:"count"`
}

func (h *PolicyHandlers) ExpiringPolicies(_ context.Context, request *mcp.CallToolRequest, input ExpiringPoliciesInput) (*mcp.CallToolResult, ExpiringPoliciesOutput, error) {
	var (
		policies []models.Policy
		err      error
	)
	if input.ClientID != "" {
		policies, err = h.store.PoliciesByClient(input.ClientID)
	} else {
		policies, err = h.store.Policies()
	}
	if err != nil {
		return nil, ExpiringPoliciesOutput{}, fmt.Errorf("failed to list policies: %w", err)
	}

	now := h.now()
	from, until := assistant.ExpiringWindow(now)
	out := ExpiringPoliciesOutput{
		From:     from.Format(models.DateLayout),
		Until:    until.Format(models.DateLayout),
		Policies: []PolicyOutput{},
	}
	for _, p := range assistant.ExpiringSoon(policies, now) {
		out.Policies = append(out.Policies, policyToOutput(p))
	}
	out.Count = len(out.Policies)

	return &mcp.CallToolResult{}, out, nil
}
