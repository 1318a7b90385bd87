// ABOUTME: Task model with validated status transitions
// ABOUTME: Tracks due dates, priorities, and completion timestamps for agent work items
package models

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ClientID    *string    `json:"client_id,omitempty"`
	DueDate     time.Time  `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task types.
const (
	TaskTypeCall     = "call"
	TaskTypeEmail    = "email"
	TaskTypeMeeting  = "meeting"
	TaskTypeFollowUp = "follow_up"
	TaskTypeRenewal  = "renewal"
	TaskTypeReview   = "review"
	TaskTypeOther    = "other"
)

var validTaskStatuses = map[string]bool{
	TaskStatusPending:    true,
	TaskStatusInProgress: true,
	TaskStatusCompleted:  true,
	TaskStatusCancelled:  true,
}

// IsValidTaskStatus reports whether status is a known task status.
func IsValidTaskStatus(status string) bool {
	return validTaskStatuses[status]
}

// TransitionStatus validates and transitions the task status.
func (t *Task) TransitionStatus(newStatus string, now time.Time) error {
	if !validTaskStatuses[newStatus] {
		return fmt.Errorf("invalid task status: %s", newStatus)
	}

	oldStatus := t.Status
	t.Status = newStatus

	// Track completion
	if newStatus == TaskStatusCompleted && oldStatus != TaskStatusCompleted {
		completed := now
		t.CompletedAt = &completed
	} else if newStatus != TaskStatusCompleted {
		t.CompletedAt = nil
	}

	return nil
}

// IsOverdue returns true when the task is open and its due date is before now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// BelongsTo reports whether the task is linked to the given client.
func (t *Task) BelongsTo(clientID string) bool {
	return t.ClientID != nil && *t.ClientID == clientID
}
