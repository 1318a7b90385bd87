// ABOUTME: Builds the remote completion request from the stores and the conversation
// ABOUTME: System instruction, JSON data snapshot, recent history, then the new message

package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/llm"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// SystemInstruction keeps the remote model on insurance and CRM topics.
const SystemInstruction = `You are an assistant for an insurance agency CRM. Only answer questions about the agency's clients, policies, renewals, tasks, opportunities, and communications, or general insurance questions. Use the CRM data provided in the system messages; do not invent clients, policies, or numbers. If a question is outside insurance or CRM work, say so briefly. Keep answers short and use plain lists where helpful.`

// HistoryLimit is how many prior messages are sent as context.
const HistoryLimit = 3

// DataContext is the JSON snapshot sent to the remote model.
type DataContext struct {
	Today   string          `json:"today"`
	Summary assistant.Stats `json:"summary"`
	Client  *ClientDetail   `json:"client,omitempty"`
}

// ClientDetail is the full record for a client named in the message.
type ClientDetail struct {
	Client         models.Client          `json:"client"`
	Policies       []models.Policy        `json:"policies"`
	Tasks          []models.Task          `json:"tasks"`
	Opportunities  []models.Opportunity   `json:"opportunities"`
	Communications []models.Communication `json:"communications"`
}

// BuildDataContext summarizes the stores. When the message names exactly one
// client, that client's record and related entities are included.
func BuildDataContext(s store.Store, text string, now time.Time) (*DataContext, error) {
	stats, err := assistant.Summarize(s, now)
	if err != nil {
		return nil, err
	}
	dc := &DataContext{
		Today:   now.Format(models.DateLayout),
		Summary: stats,
	}

	names := assistant.Extract(text).ClientNames
	if len(names) == 0 {
		return dc, nil
	}
	clients, err := s.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	matches := assistant.MatchClients(clients, names)
	if len(matches) != 1 {
		return dc, nil
	}

	detail, err := clientDetail(s, matches[0])
	if err != nil {
		return nil, err
	}
	dc.Client = detail
	return dc, nil
}

func clientDetail(s store.Store, c models.Client) (*ClientDetail, error) {
	policies, err := s.PoliciesByClient(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	tasks, err := s.TasksByClient(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	opps, err := s.OpportunitiesByClient(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	comms, err := s.CommunicationsByClient(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list communications: %w", err)
	}
	return &ClientDetail{
		Client:         models.RecomputeClient(c, policies),
		Policies:       policies,
		Tasks:          tasks,
		Opportunities:  opps,
		Communications: comms,
	}, nil
}

// BuildRequest assembles the messages in the order the endpoint expects.
// history holds the messages before text.
func BuildRequest(model string, temperature float64, dc *DataContext, history []models.ChatMessage, text string) (llm.Request, error) {
	data, err := json.Marshal(dc)
	if err != nil {
		return llm.Request{}, fmt.Errorf("failed to marshal data context: %w", err)
	}

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: SystemInstruction},
		{Role: llm.RoleSystem, Content: "CRM data (JSON): " + string(data)},
	}

	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	for _, m := range history {
		role := llm.RoleAssistant
		if m.Sender == models.SenderUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	return llm.Request{Model: model, Temperature: temperature, Messages: msgs}, nil
}
