package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// formField describes one input on a form. Key matches the ValidationErrors key.
type formField struct {
	key         string
	placeholder string
	limit       int
}

var clientFields = []formField{
	{"first_name", "First name", 50},
	{"last_name", "Last name", 50},
	{"email", "Email", 100},
	{"phone", "Phone", 30},
	{"address", "Address", 200},
	{"status", "Status (active/inactive/pending)", 10},
}

var taskFields = []formField{
	{"title", "Title", 120},
	{"client_id", "Client ID (optional)", 20},
	{"due_date", "Due date (YYYY-MM-DD)", 10},
	{"priority", "Priority (high/medium/low)", 6},
	{"type", "Type (call/email/meeting/follow_up/renewal/review/other)", 20},
}

func (m Model) renderEditView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render(m.formTitle()))
	s.WriteString("\n\n")

	// Form fields
	fields := m.fields()
	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
		if msg, ok := m.formErrors[fields[i].key]; ok {
			s.WriteString("    ")
			s.WriteString(errorStyle.Render(msg))
			s.WriteString("\n")
		}
	}

	if msg, ok := m.formErrors[""]; ok {
		s.WriteString(errorStyle.Render(msg))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString("\n")

	// Help
	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (m Model) formTitle() string {
	switch {
	case m.form == formTask:
		return "NEW TASK"
	case m.formClient != "":
		return "EDIT CLIENT"
	default:
		return "NEW CLIENT"
	}
}

func (m Model) fields() []formField {
	if m.form == formTask {
		return taskFields
	}
	return clientFields
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveForm()
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		m.err = nil
		m.formErrors = nil
		status, err := m.saveForm()
		if err != nil {
			var verrs models.ValidationErrors
			if errors.As(err, &verrs) {
				m.formErrors = verrs
			} else {
				m.err = err
			}
			return m, nil
		}
		m.leaveForm()
		m.status = status
		return m, nil
	}

	// Update current input
	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

// leaveForm returns to wherever the form was opened from.
func (m *Model) leaveForm() {
	m.formInputs = nil
	m.formErrors = nil
	m.err = nil
	fromDetail := m.formClient != "" || (m.form == formTask && m.entityType == EntityClients)
	if m.selectedID != "" && fromDetail {
		m.viewMode = ViewDetail
		return
	}
	m.viewMode = ViewList
}

func newInputs(fields []formField) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.placeholder
		inputs[i].CharLimit = f.limit
	}
	return inputs
}

// initClientForm opens the client form, prefilled when clientID is set.
func (m *Model) initClientForm(clientID string) {
	m.form = formClient
	m.formClient = clientID
	m.formErrors = nil
	m.formInputs = newInputs(clientFields)

	if clientID != "" {
		client, _ := m.store.Client(clientID)
		if client != nil {
			m.formInputs[0].SetValue(client.FirstName)
			m.formInputs[1].SetValue(client.LastName)
			m.formInputs[2].SetValue(client.Email)
			m.formInputs[3].SetValue(client.Phone)
			m.formInputs[4].SetValue(client.Address)
			m.formInputs[5].SetValue(client.Status)
		}
	}

	m.focusIndex = 0
	m.updateFormFocus()
}

// initTaskForm opens the new task form, linked to clientID when set.
func (m *Model) initTaskForm(clientID string) {
	m.form = formTask
	m.formClient = ""
	m.formErrors = nil
	m.formInputs = newInputs(taskFields)
	m.formInputs[1].SetValue(clientID)
	m.formInputs[2].SetValue(m.now().Format(models.DateLayout))

	m.focusIndex = 0
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) value(i int) string {
	return strings.TrimSpace(m.formInputs[i].Value())
}

// saveForm validates and stores the open form, returning a status line.
func (m Model) saveForm() (string, error) {
	if m.form == formTask {
		return m.saveTask()
	}
	return m.saveClient()
}

func (m Model) saveClient() (string, error) {
	form := models.ClientForm{
		FirstName: m.value(0),
		LastName:  m.value(1),
		Email:     m.value(2),
		Phone:     m.value(3),
		Address:   m.value(4),
		Status:    m.value(5),
	}
	if err := form.Validate(); err != nil {
		return "", err
	}

	if m.formClient == "" {
		client := form.ToClient(store.NewID("CL"), m.now())
		if err := m.store.AddClient(&client); err != nil {
			return "", fmt.Errorf("failed to add client: %w", err)
		}
		return fmt.Sprintf("✓ Client added: %s", client.FullName()), nil
	}

	existing, err := m.store.Client(m.formClient)
	if err != nil {
		return "", fmt.Errorf("failed to fetch client: %w", err)
	}
	if existing == nil {
		return "", fmt.Errorf("client not found: %s", m.formClient)
	}
	updated := form.ToClient(existing.ID, existing.JoinedAt)
	updated.ActivePolicies = existing.ActivePolicies
	updated.TotalPremium = existing.TotalPremium
	updated.LastContactAt = existing.LastContactAt
	if form.Status == "" {
		updated.Status = existing.Status
	}
	if err := m.store.UpdateClient(&updated); err != nil {
		return "", fmt.Errorf("failed to update client: %w", err)
	}
	return fmt.Sprintf("✓ Client updated: %s", updated.FullName()), nil
}

func (m Model) saveTask() (string, error) {
	form := models.TaskForm{
		Title:    m.value(0),
		ClientID: m.value(1),
		DueDate:  m.value(2),
		Priority: m.value(3),
		Type:     m.value(4),
	}
	if err := form.Validate(); err != nil {
		return "", err
	}
	if form.ClientID != "" {
		client, err := m.store.Client(form.ClientID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch client: %w", err)
		}
		if client == nil {
			return "", models.ValidationErrors{"client_id": "no client with that ID"}
		}
	}

	task, err := form.ToTask(store.NewID("TK"), m.now().Location())
	if err != nil {
		return "", err
	}
	if err := m.store.AddTask(&task); err != nil {
		return "", fmt.Errorf("failed to add task: %w", err)
	}
	return fmt.Sprintf("✓ Task added: %s", task.Title), nil
}
