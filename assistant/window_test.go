// ABOUTME: Tests for the expiring-soon and due-today windows
// ABOUTME: Pins the calendar-month boundary and the whole-day due window
package assistant

import (
	"testing"
	"time"

	"github.com/harperreed/inscrm/models"
	"github.com/stretchr/testify/assert"
)

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC)
	date := func(y int, m time.Month, d, h, min int) time.Time { return time.Date(y, m, d, h, min, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		status string
		end    time.Time
		want   bool
	}{
		{"inside window", models.PolicyStatusActive, date(2025, 4, 1, 0, 0), true},
		{"beyond one calendar month", models.PolicyStatusActive, date(2025, 4, 8, 0, 0), false},
		{"not active", models.PolicyStatusExpired, date(2025, 3, 20, 0, 0), false},
		{"ends earlier today", models.PolicyStatusActive, date(2025, 3, 7, 1, 0), true},
		{"ended yesterday", models.PolicyStatusActive, date(2025, 3, 6, 23, 59), false},
		{"last minute of window", models.PolicyStatusActive, date(2025, 4, 6, 23, 59), true},
		{"window end is exclusive", models.PolicyStatusActive, date(2025, 4, 7, 0, 0), false},
		{"31 days out in a 31-day month", models.PolicyStatusActive, date(2025, 4, 7, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Policy{Status: tt.status, EndDate: tt.end}
			assert.Equal(t, tt.want, IsExpiringSoon(p, now))
		})
	}
}

func TestExpiringWindowIsCalendarMonth(t *testing.T) {
	// A calendar month from Feb 10 is 28 days.
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	from, until := ExpiringWindow(now)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), until)

	p := models.Policy{Status: models.PolicyStatusActive, EndDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)}
	assert.False(t, IsExpiringSoon(p, now), "29 days out is already past a February calendar month")
}

func TestIsDueToday(t *testing.T) {
	now := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		due    time.Time
		status string
		want   bool
	}{
		{"late in the day", time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC), models.TaskStatusPending, true},
		{"midnight start", time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), models.TaskStatusInProgress, true},
		{"already passed today", time.Date(2025, 3, 7, 7, 0, 0, 0, time.UTC), models.TaskStatusPending, true},
		{"completed", time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC), models.TaskStatusCompleted, false},
		{"cancelled still counts", time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC), models.TaskStatusCancelled, true},
		{"tomorrow", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), models.TaskStatusPending, false},
		{"yesterday", time.Date(2025, 3, 6, 23, 59, 0, 0, time.UTC), models.TaskStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{DueDate: tt.due, Status: tt.status}
			assert.Equal(t, tt.want, IsDueToday(task, now))
		})
	}
}

func TestDueTodayUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 3, 7, 20, 0, 0, 0, loc)

	// 03:00 UTC on the 8th is 22:00 on the 7th in loc.
	task := models.Task{DueDate: time.Date(2025, 3, 8, 3, 0, 0, 0, time.UTC), Status: models.TaskStatusPending}
	assert.True(t, IsDueToday(task, now))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "a", DueDate: now.AddDate(0, 0, -1), Status: models.TaskStatusPending},
		{ID: "b", DueDate: now.AddDate(0, 0, -1), Status: models.TaskStatusCancelled},
		{ID: "c", DueDate: now.Add(-time.Hour), Status: models.TaskStatusPending},
		{ID: "d", DueDate: now.AddDate(0, 0, -3), Status: models.TaskStatusInProgress},
	}

	got := Overdue(tasks, now)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}
