package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/inscrm/viz"
)

var dotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.graphTitle))
	s.WriteString("\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		s.WriteString(m.graphView.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(fmt.Sprintf("%d lines of DOT, pipe `inscrm viz graph` into dot -Tsvg to draw it", strings.Count(m.graphDOT, "\n"))))
	}

	s.WriteString("\n")
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"↑/↓/PgUp/PgDn: Scroll",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = m.graphReturn
		m.graphDOT = ""
		return m, nil
	case "up", "down", "k", "j", "pgup", "pgdown":
		var cmd tea.Cmd
		m.graphView, cmd = m.graphView.Update(msg)
		return m, cmd
	}

	return m, nil
}

// openClientGraph shows the selected client's policies and opportunities.
func (m *Model) openClientGraph() error {
	dot, err := viz.NewGraphGenerator(m.store).GenerateClientGraph(m.selectedID)
	if err != nil {
		return err
	}
	m.showGraph("CLIENT GRAPH", dot)
	return nil
}

// openPortfolioGraph shows every client grouped by policy type.
func (m *Model) openPortfolioGraph() error {
	dot, err := viz.NewGraphGenerator(m.store).GeneratePortfolioGraph()
	if err != nil {
		return err
	}
	m.showGraph("PORTFOLIO GRAPH", dot)
	return nil
}

func (m *Model) showGraph(title, dot string) {
	m.graphReturn = m.viewMode
	m.graphTitle = title
	m.graphDOT = dot
	m.graphView.Width = m.width
	m.graphView.Height = max(m.height-6, 4)
	m.graphView.SetContent(dotStyle.Render(dot))
	m.graphView.GotoTop()
	m.viewMode = ViewGraph
}
