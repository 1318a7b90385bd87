package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("INSURANCE CRM"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Clients", "Policies", "Tasks", "Opportunities"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	columns, rows, err := m.tableData()
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) tableData() ([]table.Column, []table.Row, error) {
	switch m.entityType {
	case EntityClients:
		return m.clientRows()
	case EntityPolicies:
		return m.policyRows()
	case EntityTasks:
		return m.taskRows()
	case EntityOpportunities:
		return m.opportunityRows()
	}
	return nil, nil, nil
}

func (m Model) clientRows() ([]table.Column, []table.Row, error) {
	clients, err := m.store.Clients()
	if err != nil {
		return nil, nil, err
	}
	policies, err := m.store.Policies()
	if err != nil {
		return nil, nil, err
	}

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Policies", Width: 8},
		{Title: "Premium", Width: 10},
		{Title: "Email", Width: 28},
	}

	var rows []table.Row
	for _, c := range clients {
		agg := models.ComputeClientAggregates(c.ID, policies)
		rows = append(rows, table.Row{
			c.FullName(),
			c.Status,
			fmt.Sprintf("%d", agg.ActivePolicies),
			assistant.Money(agg.TotalPremium),
			c.Email,
		})
	}
	return columns, rows, nil
}

func (m Model) policyRows() ([]table.Column, []table.Row, error) {
	policies, err := m.store.Policies()
	if err != nil {
		return nil, nil, err
	}
	names, err := m.clientNames()
	if err != nil {
		return nil, nil, err
	}

	columns := []table.Column{
		{Title: "Number", Width: 11},
		{Title: "Client", Width: 20},
		{Title: "Type", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Premium", Width: 9},
		{Title: "Ends", Width: 12},
	}

	var rows []table.Row
	for _, p := range policies {
		rows = append(rows, table.Row{
			p.PolicyNumber,
			names[p.ClientID],
			models.HumanizeType(p.Type),
			p.Status,
			assistant.Money(p.Premium),
			assistant.ShortDate(p.EndDate),
		})
	}
	return columns, rows, nil
}

func (m Model) taskRows() ([]table.Column, []table.Row, error) {
	tasks, err := m.store.Tasks()
	if err != nil {
		return nil, nil, err
	}
	names, err := m.clientNames()
	if err != nil {
		return nil, nil, err
	}

	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Client", Width: 18},
		{Title: "Due", Width: 12},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 11},
	}

	var rows []table.Row
	for _, t := range tasks {
		client := "-"
		if t.ClientID != nil {
			client = names[*t.ClientID]
		}
		due := assistant.ShortDate(t.DueDate)
		if t.IsOverdue(m.now()) {
			due += " !"
		}
		rows = append(rows, table.Row{t.Title, client, due, t.Priority, t.Status})
	}
	return columns, rows, nil
}

func (m Model) opportunityRows() ([]table.Column, []table.Row, error) {
	opps, err := m.store.Opportunities()
	if err != nil {
		return nil, nil, err
	}
	names, err := m.clientNames()
	if err != nil {
		return nil, nil, err
	}

	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Client", Width: 18},
		{Title: "Type", Width: 12},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 14},
	}

	var rows []table.Row
	for _, o := range opps {
		rows = append(rows, table.Row{o.Title, names[o.ClientID], models.HumanizeType(o.Type), o.Priority, o.Status})
	}
	return columns, rows, nil
}

func (m Model) clientNames() (map[string]string, error) {
	clients, err := m.store.Clients()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}
	return names, nil
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"n: New",
		"g: Portfolio graph",
		"c: Chat",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
	case "shift+tab":
		m.entityType = (m.entityType + entityCount - 1) % entityCount
		m.selectedRow = 0
	case "enter":
		if id := m.getSelectedID(); id != "" {
			m.viewMode = ViewDetail
			m.selectedID = id
			m.status = ""
		}
	case "n":
		switch m.entityType {
		case EntityClients:
			m.initClientForm("")
			m.viewMode = ViewEdit
		case EntityTasks:
			m.initTaskForm("")
			m.viewMode = ViewEdit
		}
	case "g":
		if err := m.openPortfolioGraph(); err != nil {
			m.err = err
		}
	case "c":
		m.chatReturn = ViewList
		m.openChat()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) rowCount() int {
	_, rows, err := m.tableData()
	if err != nil {
		return 0
	}
	return len(rows)
}

func (m Model) getSelectedID() string {
	switch m.entityType {
	case EntityClients:
		clients, _ := m.store.Clients()
		if m.selectedRow < len(clients) {
			return clients[m.selectedRow].ID
		}
	case EntityPolicies:
		policies, _ := m.store.Policies()
		if m.selectedRow < len(policies) {
			return policies[m.selectedRow].ID
		}
	case EntityTasks:
		tasks, _ := m.store.Tasks()
		if m.selectedRow < len(tasks) {
			return tasks[m.selectedRow].ID
		}
	case EntityOpportunities:
		opps, _ := m.store.Opportunities()
		if m.selectedRow < len(opps) {
			return opps[m.selectedRow].ID
		}
	}
	return ""
}
