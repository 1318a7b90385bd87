// ABOUTME: Form validation for the client and task forms
// ABOUTME: Returns field-level errors synchronously so callers can block submission
package models

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
)

// ValidationErrors maps a form field to its error message.
// The empty key holds form-level errors.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			parts = append(parts, v[f])
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns nil when there are no errors so the map can be returned as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

type ClientForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Status    string
}

func (f ClientForm) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "email is not a valid address"
	}
	switch f.Status {
	case "", ClientStatusActive, ClientStatusInactive, ClientStatusPending:
	default:
		errs["status"] = fmt.Sprintf("unknown status %q", f.Status)
	}
	return errs.OrNil()
}

// ToClient builds a client record from a validated form.
func (f ClientForm) ToClient(id string, now time.Time) Client {
	status := f.Status
	if status == "" {
		status = ClientStatusPending
	}
	return Client{
		ID:        id,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Address:   strings.TrimSpace(f.Address),
		Status:    status,
		JoinedAt:  now,
	}
}

type TaskForm struct {
	Title    string
	ClientID string
	DueDate  string // YYYY-MM-DD
	Priority string
	Type     string
}

// DateLayout is the layout used by date fields on forms.
const DateLayout = "2006-01-02"

func (f TaskForm) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(f.DueDate) == "" {
		errs["due_date"] = "due date is required"
	} else if _, err := time.Parse(DateLayout, f.DueDate); err != nil {
		errs["due_date"] = "due date must be YYYY-MM-DD"
	}
	switch f.Priority {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
	default:
		errs["priority"] = fmt.Sprintf("unknown priority %q", f.Priority)
	}
	return errs.OrNil()
}

// ToTask builds a task from a validated form. The due date is placed at the
// end of the working day in loc.
func (f TaskForm) ToTask(id string, loc *time.Location) (Task, error) {
	due, err := time.ParseInLocation(DateLayout, f.DueDate, loc)
	if err != nil {
		return Task{}, fmt.Errorf("failed to parse due date: %w", err)
	}
	priority := f.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	taskType := f.Type
	if taskType == "" {
		taskType = TaskTypeOther
	}
	t := Task{
		ID:       id,
		Title:    strings.TrimSpace(f.Title),
		DueDate:  due.Add(17 * time.Hour),
		Priority: priority,
		Status:   TaskStatusPending,
		Type:     taskType,
	}
	if f.ClientID != "" {
		cid := f.ClientID
		t.ClientID = &cid
	}
	return t, nil
}
