// ABOUTME: Provider-neutral contract for the external completion endpoint
// ABOUTME: Role-tagged messages in, one completion string out
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("LLM API key not configured")

	// ErrAuthFailed indicates the endpoint rejected the API key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the endpoint or the local limiter refused the call.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyResponse indicates the endpoint answered without any completion text.
	ErrEmptyResponse = errors.New("empty completion")
)

// Message is one role-tagged entry of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a full completion request.
type Request struct {
	Model       string
	Temperature float64
	Messages    []Message
}

// Completer sends a request to a completion endpoint.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider          string
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// DefaultRequestsPerSecond bounds how fast the chat can call the endpoint.
const DefaultRequestsPerSecond = 1.0

func (c Config) limiter() *rate.Limiter {
	rps := c.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return rate.NewLimiter(rate.Limit(rps), 2)
}

// New builds the Completer for cfg.Provider. An empty provider means OpenAI.
func New(ctx context.Context, cfg Config) (Completer, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// APIError is a non-2xx answer the client has no sentinel for.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LLM API error (HTTP %d): %s", e.Status, e.Message)
}

const defaultHTTPTimeout = 60 * time.Second
