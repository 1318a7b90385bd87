// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the assistant, CRM queries, resources, and prompts over stdio
package cli

import (
	"context"

	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/handlers"
	"github.com/harperreed/inscrm/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// NewMCPServer builds the MCP server with every tool, resource, and prompt registered.
func NewMCPServer(s store.ReadWriter, d *chat.Dispatcher, version string) *mcp.Server {
	assistantHandlers := handlers.NewAssistantHandlers(d)
	clientHandlers := handlers.NewClientHandlers(s, now)
	policyHandlers := handlers.NewPolicyHandlers(s, now)
	taskHandlers := handlers.NewTaskHandlers(s, now)
	queryHandlers := handlers.NewQueryHandlers(s)
	vizHandlers := handlers.NewVizHandlers(s, now)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "inscrm",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the insurance CRM assistant a question in plain language",
	}, assistantHandlers.AskAssistant)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_crm",
		Description: "Query clients, policies, opportunities, tasks, communications, or reports with optional filters",
	}, queryHandlers.QueryCRM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_clients",
		Description: "Search for clients by name or email",
	}, clientHandlers.FindClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a new client for this session",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "expiring_policies",
		Description: "List policies that expire before the end of next month",
	}, policyHandlers.ExpiringPolicies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tasks_due_today",
		Description: "List open tasks due today along with overdue tasks",
	}, taskHandlers.TasksDueToday)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task_status",
		Description: "Move a task to pending, in_progress, or completed",
	}, taskHandlers.UpdateTaskStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Render a GraphViz DOT graph of one client or the whole portfolio",
	}, vizHandlers.GenerateGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Return agency dashboard statistics",
	}, vizHandlers.Dashboard)

	handlers.NewResourceHandlers(s, now).Register(server)
	handlers.NewPromptHandlers(s, now).Register(server)

	return server
}

// MCPCommand starts the MCP server on stdio. Stdout carries the protocol, so
// logging must go to a file or stderr.
func MCPCommand(ctx context.Context, s store.ReadWriter, d *chat.Dispatcher, logger *zap.Logger, version string) error {
	logger.Info("starting MCP server", zap.String("version", version))
	server := NewMCPServer(s, d, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
