// ABOUTME: Chat assistant MCP tool handler
// ABOUTME: Implements ask_assistant through the shared dual-mode dispatcher
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/inscrm/chat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AssistantHandlers struct {
	dispatcher *chat.Dispatcher
}

func NewAssistantHandlers(d *chat.Dispatcher) *AssistantHandlers {
	return &AssistantHandlers{dispatcher: d}
}

type AskAssistantInput struct {
	Message string `json:"message" jsonschema:"Question for the insurance assistant (required)"`
	Mode    string `json:"mode,omitempty" jsonschema:"Answer mode: local (rule-based) or remote (LLM); default keeps the current mode"`
}

type AskAssistantOutput struct {
	Reply     string `json:"reply"`
	Mode      string `json:"mode"`
	MessageID string `json:"message_id"`
}

func (h *AssistantHandlers) AskAssistant(ctx context.Context, request *mcp.CallToolRequest, input AskAssistantInput) (*mcp.CallToolResult, AskAssistantOutput, error) {
	session := h.dispatcher.Session()
	if input.Mode != "" {
		mode, err := chat.ParseMode(input.Mode)
		if err != nil {
			return nil, AskAssistantOutput{}, err
		}
		session.SetMode(mode)
	}

	reply, err := h.dispatcher.Send(ctx, input.Message)
	if err != nil {
		return nil, AskAssistantOutput{}, fmt.Errorf("failed to ask assistant: %w", err)
	}

	return &mcp.CallToolResult{}, AskAssistantOutput{
		Reply:     reply.Content,
		Mode:      string(session.Mode()),
		MessageID: reply.ID,
	}, nil
}
