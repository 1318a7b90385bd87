// ABOUTME: Calendar windows shared by every view that reports on dates
// ABOUTME: Expiring-soon is a calendar month from today; due-today is the local calendar day
package assistant

import (
	"time"

	"github.com/harperreed/inscrm/models"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ExpiringWindow returns [today, today plus one calendar month).
func ExpiringWindow(now time.Time) (from, until time.Time) {
	from = StartOfDay(now)
	return from, from.AddDate(0, 1, 0)
}

// IsExpiringSoon reports whether p is active and ends within the expiring window.
func IsExpiringSoon(p models.Policy, now time.Time) bool {
	if p.Status != models.PolicyStatusActive {
		return false
	}
	from, until := ExpiringWindow(now)
	return !p.EndDate.Before(from) && p.EndDate.Before(until)
}

// ExpiringSoon filters policies with IsExpiringSoon, keeping order.
func ExpiringSoon(policies []models.Policy, now time.Time) []models.Policy {
	var out []models.Policy
	for _, p := range policies {
		if IsExpiringSoon(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// IsDueToday reports whether t is due on now's calendar day and not completed.
func IsDueToday(t models.Task, now time.Time) bool {
	if t.Status == models.TaskStatusCompleted {
		return false
	}
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return !t.DueDate.Before(start) && !t.DueDate.After(end)
}

// DueToday filters tasks with IsDueToday, keeping order.
func DueToday(tasks []models.Task, now time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if IsDueToday(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// Overdue returns open tasks due before today.
func Overdue(tasks []models.Task, now time.Time) []models.Task {
	start := StartOfDay(now)
	var out []models.Task
	for _, t := range tasks {
		if t.IsOverdue(start) {
			out = append(out, t)
		}
	}
	return out
}
