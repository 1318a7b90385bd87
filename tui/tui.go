// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen browser for the book of business with a docked assistant chat
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewGraph
	ViewChat
)

// EntityType represents the type of entity being viewed
type EntityType int

const (
	EntityClients EntityType = iota
	EntityPolicies
	EntityTasks
	EntityOpportunities
)

const entityCount = 4

// formKind selects which form the edit view shows.
type formKind int

const (
	formClient formKind = iota
	formTask
)

// replyMsg carries the dispatcher's answer back into the update loop.
type replyMsg struct {
	reply models.ChatMessage
	err   error
}

// Model is the main bubbletea model
type Model struct {
	store      store.ReadWriter
	dispatcher *chat.Dispatcher
	now        func() time.Time

	// ctx bounds in-flight assistant calls; quitting cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	viewMode   ViewMode
	entityType EntityType

	// List view state
	selectedRow int

	// Detail view state
	selectedID string

	// Edit view state
	form       formKind
	formInputs []textinput.Model
	focusIndex int
	formErrors models.ValidationErrors
	formClient string

	// Chat state
	chatOnly   bool
	chatReturn ViewMode
	chatInput  textinput.Model
	chatView   viewport.Model
	renderer   *glamour.TermRenderer
	pending    string

	// Graph view state
	graphDOT    string
	graphTitle  string
	graphReturn ViewMode
	graphView   viewport.Model

	// UI state
	width  int
	height int
	status string
	err    error
}

// NewModel creates a new TUI model
func NewModel(s store.ReadWriter, d *chat.Dispatcher) Model {
	input := textinput.New()
	input.Placeholder = "Ask about clients, policies, renewals..."
	input.Prompt = "│ "
	input.CharLimit = 1000
	input.Width = 76

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(76),
	)

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		store:      s,
		dispatcher: d,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
		viewMode:   ViewList,
		entityType: EntityClients,
		chatInput:  input,
		chatView:   viewport.New(80, 16),
		graphView:  viewport.New(80, 18),
		renderer:   renderer,
		width:      80,
		height:     24,
	}
}

// NewChatModel starts directly in the chat view; Esc quits instead of
// returning to the record browser.
func NewChatModel(s store.ReadWriter, d *chat.Dispatcher) Model {
	m := NewModel(s, d)
	m.chatOnly = true
	m.openChat()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.viewMode == ViewChat {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatView.Width = msg.Width
		m.chatView.Height = max(msg.Height-8, 4)
		m.chatInput.Width = max(msg.Width-4, 10)
		m.refreshChat()
		return m, nil
	case replyMsg:
		return m.handleReply(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewGraph:
		return m.renderGraphView()
	case ViewChat:
		return m.renderChatView()
	}
	return ""
}

// quit cancels any pending assistant call before leaving the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Views that take text input handle every other key themselves.
	switch m.viewMode {
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewChat:
		return m.handleChatKeys(msg)
	}

	if msg.String() == "q" {
		return m.quit()
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)
