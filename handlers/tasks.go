// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements tasks_due_today and update_task_status
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

type TaskHandlers struct {
	store store.ReadWriter
	now   func() time.Time
}

func NewTaskHandlers(s store.ReadWriter, now func() time.Time) *TaskHandlers {
	if now == nil {
		now = time.Now
	}
	return &TaskHandlers{store: s, now: now}
}

type TasksDueTodayInput struct {
	IncludeOverdue bool `json:"include_overdue,omitempty" jsonschema:"Also return open tasks due before today"`
}

type TasksDueTodayOutput struct {
	Date     string       `json:"date"`
	DueToday []TaskOutput `json:"due_today"`
	Overdue  []TaskOutput `json:"overdue,omitempty"`
}

func (h *TaskHandlers) TasksDueToday(_ context.Context, request *mcp.CallToolRequest, input TasksDueTodayInput) (*mcp.CallToolResult, TasksDueTodayOutput, error) {
	tasks, err := h.store.Tasks()
	if err != nil {
		return nil, TasksDueTodayOutput{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := h.now()
	out := TasksDueTodayOutput{
		Date:     now.Format(models.DateLayout),
		DueToday: []TaskOutput{},
	}
	for _, t := range assistant.DueToday(tasks, now) {
		out.DueToday = append(out.DueToday, taskToOutput(t))
	}
	if input.IncludeOverdue {
		for _, t := range assistant.Overdue(tasks, now) {
			out.Overdue = append(out.Overdue, taskToOutput(t))
		}
	}

	return &mcp.CallToolResult{}, out, nil
}

type UpdateTaskStatusInput struct {
	ID     string `json:"id" jsonschema:"Task ID (required)"`
	Status string `json:"status" jsonschema:"New status (pending, in_progress, completed, cancelled)"`
}

func (h *TaskHandlers) UpdateTaskStatus(_ context.Context, request *mcp.CallToolRequest, input UpdateTaskStatusInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}

	task, err := h.store.UpdateTaskStatus(input.ID, input.Status)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}

	return &mcp.CallToolResult{}, taskToOutput(*task), nil
}
