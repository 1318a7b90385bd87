package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// taskCycle is the order the detail view steps a task through.
var taskCycle = map[string]string{
	models.TaskStatusPending:    models.TaskStatusInProgress,
	models.TaskStatusInProgress: models.TaskStatusCompleted,
	models.TaskStatusCompleted:  models.TaskStatusPending,
	models.TaskStatusCancelled:  models.TaskStatusPending,
}

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	// Entity details
	switch m.entityType {
	case EntityClients:
		s.WriteString(m.renderClientDetail())
	case EntityPolicies:
		s.WriteString(m.renderPolicyDetail())
	case EntityTasks:
		s.WriteString(m.renderTaskDetail())
	case EntityOpportunities:
		s.WriteString(m.renderOpportunityDetail())
	}

	s.WriteString("\n")
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderClientDetail() string {
	client, err := m.store.Client(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if client == nil {
		return fmt.Sprintf("Client %s not found", m.selectedID)
	}
	policies, _ := m.store.PoliciesByClient(client.ID)
	agg := models.ComputeClientAggregates(client.ID, policies)

	var s strings.Builder

	s.WriteString(m.renderField("Name", client.FullName()))
	s.WriteString(m.renderField("Status", client.Status))
	s.WriteString(m.renderField("Email", client.Email))
	s.WriteString(m.renderField("Phone", client.Phone))
	s.WriteString(m.renderField("Address", client.Address))
	s.WriteString(m.renderField("Premium", fmt.Sprintf("%s across %d active policies", assistant.Money(agg.TotalPremium), agg.ActivePolicies)))
	if client.LastContactAt != nil {
		s.WriteString(m.renderField("Last Contact", assistant.ShortDate(*client.LastContactAt)))
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("POLICIES"))
	s.WriteString("\n")
	for _, p := range policies {
		s.WriteString(fmt.Sprintf("  • %s %s (%s), %s, ends %s\n",
			p.PolicyNumber, models.HumanizeType(p.Type), p.Status, assistant.Money(p.Premium), assistant.ShortDate(p.EndDate)))
	}

	tasks, _ := m.store.TasksByClient(client.ID)
	if len(tasks) > 0 {
		s.WriteString("\n")
		s.WriteString(sectionStyle.Render("TASKS"))
		s.WriteString("\n")
		for _, t := range tasks {
			s.WriteString(fmt.Sprintf("  • %s (due %s, %s)\n", t.Title, assistant.ShortDate(t.DueDate), t.Status))
		}
	}

	opps, _ := m.store.OpportunitiesByClient(client.ID)
	if len(opps) > 0 {
		s.WriteString("\n")
		s.WriteString(sectionStyle.Render("OPPORTUNITIES"))
		s.WriteString("\n")
		for _, o := range opps {
			s.WriteString(fmt.Sprintf("  • %s (%s priority, %s)\n", o.Title, o.Priority, o.Status))
		}
	}

	return s.String()
}

func (m Model) renderPolicyDetail() string {
	policy, err := m.store.Policy(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if policy == nil {
		return fmt.Sprintf("Policy %s not found", m.selectedID)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Number", policy.PolicyNumber))
	if client, _ := m.store.Client(policy.ClientID); client != nil {
		s.WriteString(m.renderField("Client", client.FullName()))
	}
	s.WriteString(m.renderField("Type", models.HumanizeType(policy.Type)))
	s.WriteString(m.renderField("Status", policy.Status))
	s.WriteString(m.renderField("Carrier", policy.Carrier))
	s.WriteString(m.renderField("Term", fmt.Sprintf("%s to %s", assistant.ShortDate(policy.StartDate), assistant.ShortDate(policy.EndDate))))
	s.WriteString(m.renderField("Premium", assistant.Money(policy.Premium)))
	s.WriteString(m.renderField("Coverage", assistant.Money(policy.CoverageAmount)))
	if policy.Deductible > 0 {
		s.WriteString(m.renderField("Deductible", assistant.Money(policy.Deductible)))
	}
	if assistant.IsExpiringSoon(*policy, m.now()) {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render("Up for renewal soon"))
		s.WriteString("\n")
	}

	return s.String()
}

func (m Model) renderTaskDetail() string {
	task, err := m.store.Task(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if task == nil {
		return fmt.Sprintf("Task %s not found", m.selectedID)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Title", task.Title))
	if task.ClientID != nil {
		if client, _ := m.store.Client(*task.ClientID); client != nil {
			s.WriteString(m.renderField("Client", client.FullName()))
		}
	}
	due := task.DueDate.Format("Jan 2, 2006 15:04")
	if task.IsOverdue(m.now()) {
		due += " (overdue)"
	}
	s.WriteString(m.renderField("Due", due))
	s.WriteString(m.renderField("Priority", task.Priority))
	s.WriteString(m.renderField("Type", models.HumanizeType(task.Type)))
	s.WriteString(m.renderField("Status", task.Status))
	if task.CompletedAt != nil {
		s.WriteString(m.renderField("Completed", task.CompletedAt.Format("Jan 2, 2006 15:04")))
	}

	return s.String()
}

func (m Model) renderOpportunityDetail() string {
	opp, err := m.store.Opportunity(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if opp == nil {
		return fmt.Sprintf("Opportunity %s not found", m.selectedID)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Title", opp.Title))
	if client, _ := m.store.Client(opp.ClientID); client != nil {
		s.WriteString(m.renderField("Client", client.FullName()))
	}
	s.WriteString(m.renderField("Type", models.HumanizeType(opp.Type)))
	s.WriteString(m.renderField("Priority", opp.Priority))
	s.WriteString(m.renderField("Status", opp.Status))
	if opp.PotentialRevenue > 0 {
		s.WriteString(m.renderField("Revenue", assistant.Money(opp.PotentialRevenue)))
	}
	if opp.PotentialSavings > 0 {
		s.WriteString(m.renderField("Savings", assistant.Money(opp.PotentialSavings)))
	}
	s.WriteString(m.renderField("Description", opp.Description))

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back"}
	switch m.entityType {
	case EntityClients:
		help = append(help, "e: Edit", "t: New task", "g: View graph")
	case EntityTasks:
		help = append(help, "s: Next status")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.status = ""
	case "e":
		if m.entityType == EntityClients {
			m.initClientForm(m.selectedID)
			m.viewMode = ViewEdit
		}
	case "t":
		if m.entityType == EntityClients {
			m.initTaskForm(m.selectedID)
			m.viewMode = ViewEdit
		}
	case "g":
		if m.entityType == EntityClients {
			if err := m.openClientGraph(); err != nil {
				m.err = err
			}
		}
	case "s":
		if m.entityType == EntityTasks {
			m.advanceTask()
		}
	}

	return m, nil
}

func (m *Model) advanceTask() {
	task, err := m.store.Task(m.selectedID)
	if err != nil || task == nil {
		m.err = fmt.Errorf("task not found: %s", m.selectedID)
		return
	}
	next := taskCycle[task.Status]
	updated, err := m.store.UpdateTaskStatus(task.ID, next)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("✓ Task is now %s", updated.Status)
}
