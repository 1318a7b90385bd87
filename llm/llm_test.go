// ABOUTME: Tests for the completion clients
// ABOUTME: Exercises the OpenAI client against httptest servers and the Gemini message mapping
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(Config{BaseURL: srv.URL, APIKey: "test-key", RequestsPerSecond: 1000})
}

func TestOpenAICompleteSendsConversation(t *testing.T) {
	var got openAIRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Two policies expire soon."}}]}`))
	})

	req := Request{
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: "instructions"},
			{Role: RoleSystem, Content: "{}"},
			{Role: RoleUser, Content: "what is expiring?"},
		},
	}
	out, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Two policies expire soon.", out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	assert.Equal(t, req.Messages, got.Messages)
}

func TestOpenAICompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrAuthFailed))
		}},
		{"rate limited", http.StatusTooManyRequests, `{}`, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrRateLimited))
		}},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"overloaded","type":"server_error"}}`, func(t *testing.T, err error) {
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, 500, apiErr.Status)
			assert.Equal(t, "overloaded", apiErr.Message)
		}},
		{"no choices", http.StatusOK, `{"choices":[]}`, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrEmptyResponse))
		}},
		{"malformed body", http.StatusOK, `not json`, func(t *testing.T, err error) {
			assert.Error(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Complete(context.Background(), Request{Model: "m"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestOpenAINotConfigured(t *testing.T) {
	client := NewOpenAIClient(Config{})
	_, err := client.Complete(context.Background(), Request{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestOpenAIHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, Request{Model: "m"})
	assert.Error(t, err)
}

func TestToGenAI(t *testing.T) {
	system, contents := toGenAI([]Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleSystem, Content: `{"clients":11}`},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "expiring?"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "be brief\n\n{\"clients\":11}", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "expiring?", contents[2].Parts[0].Text)
}

func TestNew(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = New(context.Background(), Config{Provider: ProviderGemini})
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = New(context.Background(), Config{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}
