// ABOUTME: Chat session state shared by every chat front end
// ABOUTME: Append-only message log with open, processing, and mode flags

package chat

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/harperreed/inscrm/models"
	"github.com/oklog/ulid/v2"
)

const (
	// WelcomeText is the first message of a new session.
	WelcomeText = "Hi! I'm your insurance assistant. Ask me about clients, policies, renewals, tasks, or opportunities."

	// GreetingText replaces the conversation after Clear.
	GreetingText = "Chat cleared. What can I help you with?"
)

// Mode selects how the dispatcher answers.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ParseMode accepts "local" or "remote".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown chat mode %q", s)
}

// Session holds one conversation. All methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	messages   []models.ChatMessage
	open       bool
	processing bool
	mode       Mode
	now        func() time.Time
	entropy    io.Reader
}

// NewSession starts a conversation with a single welcome message.
func NewSession(mode Mode) *Session {
	return newSession(mode, time.Now)
}

func newSession(mode Mode, now func() time.Time) *Session {
	if mode == "" {
		mode = ModeLocal
	}
	s := &Session{
		mode:    mode,
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(now().UnixNano())), 0),
	}
	s.messages = []models.ChatMessage{s.newMessage(models.SenderBot, WelcomeText)}
	return s
}

// newMessage must be called with mu held.
func (s *Session) newMessage(sender, content string) models.ChatMessage {
	ts := s.now()
	return models.ChatMessage{
		ID:        ulid.MustNew(ulid.Timestamp(ts), s.entropy).String(),
		Content:   content,
		Sender:    sender,
		Timestamp: ts,
	}
}

// Append adds a message to the end of the conversation and returns it.
func (s *Session) Append(sender, content string) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.newMessage(sender, content)
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns a copy of the conversation in order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Len returns the number of messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Clear replaces the conversation with one fresh greeting.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []models.ChatMessage{s.newMessage(models.SenderBot, GreetingText)}
}

func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Session) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

// Toggle flips the open flag and returns the new value.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// Processing reports whether a send is in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// begin appends the user message and sets processing. It fails if a send is
// already in flight. The returned history excludes the new message.
func (s *Session) begin(text string) ([]models.ChatMessage, Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return nil, "", ErrBusy
	}
	history := append([]models.ChatMessage(nil), s.messages...)
	s.messages = append(s.messages, s.newMessage(models.SenderUser, text))
	s.processing = true
	return history, s.mode, nil
}

// finish appends the bot reply and clears processing in one step.
func (s *Session) finish(reply string) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.newMessage(models.SenderBot, reply)
	s.messages = append(s.messages, msg)
	s.processing = false
	return msg
}
