// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph and dashboard tools for agents
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/inscrm/store"
	"github.com/harperreed/inscrm/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	store store.Store
	now   func() time.Time
}

func NewVizHandlers(s store.Store, now func() time.Time) *VizHandlers {
	if now == nil {
		now = time.Now
	}
	return &VizHandlers{store: s, now: now}
}

type GenerateGraphInput struct {
	Type     string `json:"type" jsonschema:"Graph type: client or portfolio"`
	ClientID string `json:"client_id,omitempty" jsonschema:"Client ID (required for client graphs)"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(_ context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	generator := viz.NewGraphGenerator(h.store)
	var dot string
	var err error

	switch input.Type {
	case "client":
		if input.ClientID == "" {
			return nil, GenerateGraphOutput{}, fmt.Errorf("client_id required for client graph")
		}
		dot, err = generator.GenerateClientGraph(input.ClientID)
	case "portfolio":
		dot, err = generator.GeneratePortfolioGraph()
	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown graph type: %s (valid types: client, portfolio)", input.Type)
	}
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return &mcp.CallToolResult{}, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: strings.Count(dot, "[label="),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}

type DashboardInput struct{}

type DashboardOutput struct {
	Text string `json:"text"`
}

func (h *VizHandlers) Dashboard(_ context.Context, request *mcp.CallToolRequest, _ DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	stats, err := viz.GenerateDashboardStats(h.store, h.now())
	if err != nil {
		return nil, DashboardOutput{}, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return &mcp.CallToolResult{}, DashboardOutput{Text: viz.RenderDashboard(stats)}, nil
}
