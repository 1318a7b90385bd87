// ABOUTME: Tests for insurance CRM data models
// ABOUTME: Validates aggregates, task transitions, and form validation
package models

import (
	"errors"
	"testing"
	"time"
)

func TestClientFullName(t *testing.T) {
	c := Client{FirstName: "Jamal", LastName: "Haija"}
	if c.FullName() != "Jamal Haija" {
		t.Errorf("expected 'Jamal Haija', got %q", c.FullName())
	}

	c = Client{FirstName: "Cher"}
	if c.FullName() != "Cher" {
		t.Errorf("expected 'Cher', got %q", c.FullName())
	}
}

func TestComputeClientAggregates(t *testing.T) {
	policies := []Policy{
		{ID: "p1", ClientID: "c1", Status: PolicyStatusActive, Premium: 1200},
		{ID: "p2", ClientID: "c1", Status: PolicyStatusActive, Premium: 800},
		{ID: "p3", ClientID: "c1", Status: PolicyStatusExpired, Premium: 5000},
		{ID: "p4", ClientID: "c2", Status: PolicyStatusActive, Premium: 300},
	}

	agg := ComputeClientAggregates("c1", policies)
	if agg.ActivePolicies != 2 {
		t.Errorf("expected 2 active policies, got %d", agg.ActivePolicies)
	}
	if agg.TotalPremium != 2000 {
		t.Errorf("expected premium 2000, got %v", agg.TotalPremium)
	}

	stale := Client{ID: "c1", ActivePolicies: 3, TotalPremium: 7000}
	if !AggregatesStale(stale, policies) {
		t.Error("expected stale aggregates to be detected")
	}

	fresh := RecomputeClient(stale, policies)
	if AggregatesStale(fresh, policies) {
		t.Error("expected recomputed client to be fresh")
	}
}

func TestOpportunityIsOpen(t *testing.T) {
	tests := []struct {
		status string
		open   bool
	}{
		{OpportunityStatusEligible, true},
		{OpportunityStatusPendingReview, true},
		{OpportunityStatusInProgress, true},
		{OpportunityStatusRecommended, true},
		{OpportunityStatusRejected, false},
		{OpportunityStatusCompleted, false},
	}

	for _, tt := range tests {
		o := Opportunity{Status: tt.status}
		if o.IsOpen() != tt.open {
			t.Errorf("IsOpen(%s) = %v, want %v", tt.status, o.IsOpen(), tt.open)
		}
	}
}

func TestTaskTransitionStatus(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	task := &Task{ID: "t1", Status: TaskStatusPending}

	if err := task.TransitionStatus(TaskStatusCompleted, now); err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("expected CompletedAt to be stamped, got %v", task.CompletedAt)
	}

	if err := task.TransitionStatus(TaskStatusInProgress, now); err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("expected CompletedAt to be cleared when reopening")
	}

	if err := task.TransitionStatus("done", now); err == nil {
		t.Error("expected error for unknown status")
	}
	if task.Status != TaskStatusInProgress {
		t.Errorf("status changed on invalid transition: %s", task.Status)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	open := Task{DueDate: past, Status: TaskStatusPending}
	if !open.IsOverdue(now) {
		t.Error("expected pending past-due task to be overdue")
	}

	done := Task{DueDate: past, Status: TaskStatusCompleted}
	if done.IsOverdue(now) {
		t.Error("completed task should not be overdue")
	}
}

func TestClientFormValidate(t *testing.T) {
	err := ClientForm{}.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"first_name", "last_name", "email"} {
		if _, ok := verrs[field]; !ok {
			t.Errorf("expected error for %s", field)
		}
	}

	err = ClientForm{FirstName: "Ana", LastName: "Ruiz", Email: "not-an-email"}.Validate()
	if !errors.As(err, &verrs) || verrs["email"] == "" {
		t.Errorf("expected email error, got %v", err)
	}

	if err := (ClientForm{FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com"}).Validate(); err != nil {
		t.Errorf("expected valid form, got %v", err)
	}
}

func TestTaskFormToTask(t *testing.T) {
	form := TaskForm{Title: "Call Ana", DueDate: "2025-03-07", ClientID: "c1"}
	if err := form.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	task, err := form.ToTask("t9", time.UTC)
	if err != nil {
		t.Fatalf("ToTask failed: %v", err)
	}
	if task.Priority != PriorityMedium || task.Status != TaskStatusPending {
		t.Errorf("unexpected defaults: %+v", task)
	}
	if !task.BelongsTo("c1") {
		t.Error("expected task to belong to c1")
	}
	if task.DueDate.Day() != 7 {
		t.Errorf("expected due on the 7th, got %v", task.DueDate)
	}

	if err := (TaskForm{Title: "x", DueDate: "03/07/2025"}).Validate(); err == nil {
		t.Error("expected due date format error")
	}
}
