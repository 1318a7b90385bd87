// ABOUTME: Assistant chat panel for the TUI
// ABOUTME: Sends messages through the dispatcher off the update loop and renders replies as markdown
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/models"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	botLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("170")).
			Padding(0, 1)
)

func (m *Model) openChat() {
	m.viewMode = ViewChat
	m.dispatcher.Session().SetOpen(true)
	m.chatInput.Focus()
	m.refreshChat()
}

func (m *Model) closeChat() {
	m.dispatcher.Session().SetOpen(false)
	m.chatInput.Blur()
	m.viewMode = m.chatReturn
}

// sendMessage answers text on a goroutine managed by bubbletea.
func (m Model) sendMessage(text string) tea.Cmd {
	d, ctx := m.dispatcher, m.ctx
	return func() tea.Msg {
		reply, err := d.Send(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.pending = ""
	if msg.err != nil && !errors.Is(msg.err, chat.ErrEmpty) {
		m.err = msg.err
	}
	m.refreshChat()
	return m, nil
}

func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.dispatcher.Session()

	switch msg.String() {
	case "esc":
		if m.chatOnly {
			return m.quit()
		}
		m.closeChat()
		return m, nil
	case "ctrl+t":
		if session.Mode() == chat.ModeLocal {
			session.SetMode(chat.ModeRemote)
		} else {
			session.SetMode(chat.ModeLocal)
		}
		return m, nil
	case "ctrl+l":
		if m.pending != "" {
			return m, nil
		}
		session.Clear()
		m.refreshChat()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.pending != "" || session.Processing() {
			return m, nil
		}
		m.chatInput.Reset()
		m.pending = text
		m.err = nil
		return m, m.sendMessage(text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// refreshChat re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refreshChat() {
	if m.dispatcher == nil {
		return
	}
	var s strings.Builder
	for _, msg := range m.dispatcher.Session().Messages() {
		s.WriteString(m.renderMessage(msg))
		s.WriteString("\n")
	}
	m.chatView.SetContent(s.String())
	m.chatView.GotoBottom()
}

func (m Model) renderMessage(msg models.ChatMessage) string {
	stamp := msg.Timestamp.Format("15:04")
	if msg.Sender == models.SenderUser {
		return fmt.Sprintf("%s %s\n%s\n", userLabelStyle.Render("You"), helpStyle.Render(stamp), msg.Content)
	}

	body := msg.Content
	if m.renderer != nil {
		if out, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	return fmt.Sprintf("%s %s\n%s\n", botLabelStyle.Render("Assistant"), helpStyle.Render(stamp), body)
}

func (m Model) renderChatView() string {
	var s strings.Builder

	session := m.dispatcher.Session()
	s.WriteString(titleStyle.Render("ASSISTANT"))
	s.WriteString(" ")
	s.WriteString(modeStyle.Render(string(session.Mode())))
	s.WriteString("\n")

	s.WriteString(m.chatView.View())
	s.WriteString("\n")

	if m.pending != "" {
		s.WriteString(fmt.Sprintf("%s %s\n", userLabelStyle.Render("You"), m.pending))
		s.WriteString(helpStyle.Render("Thinking..."))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString(m.chatInput.View())
	s.WriteString("\n")
	s.WriteString(m.renderChatHelp())

	return s.String()
}

func (m Model) renderChatHelp() string {
	back := "Esc: Close chat"
	if m.chatOnly {
		back = "Esc: Quit"
	}
	help := []string{
		"Enter: Send",
		"Ctrl+T: Local/remote",
		"Ctrl+L: Clear",
		"PgUp/PgDn: Scroll",
		back,
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
