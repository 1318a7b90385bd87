// ABOUTME: Local and remote answer strategies for the dispatcher
// ABOUTME: Local wraps the rule router; remote wraps an LLM completer with timeout and retry

package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/llm"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Strategy produces the bot reply for one user message. history holds the
// messages before text, oldest first.
type Strategy interface {
	Answer(ctx context.Context, text string, history []models.ChatMessage) (string, error)
}

// DefaultLocalDelay simulates thinking time before a local answer.
const DefaultLocalDelay = 600 * time.Millisecond

// LocalStrategy answers with the rule-based router after a short delay.
type LocalStrategy struct {
	Router *assistant.Router
	Delay  time.Duration
}

func (l *LocalStrategy) Answer(ctx context.Context, text string, _ []models.ChatMessage) (string, error) {
	if l.Delay > 0 {
		timer := time.NewTimer(l.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return l.Router.Respond(ctx, text).String(), nil
}

const (
	// DefaultAttemptTimeout bounds one remote call.
	DefaultAttemptTimeout = 8 * time.Second

	// DefaultRetries is how many times a failed remote call is repeated.
	DefaultRetries = 1

	DefaultTemperature = 0.7
)

// RemoteStrategy answers through an external completion endpoint.
type RemoteStrategy struct {
	Completer   llm.Completer
	Store       store.Store
	Model       string
	Temperature float64
	Timeout     time.Duration
	Retries     int
	Now         func() time.Time
	Logger      *zap.Logger
}

func (r *RemoteStrategy) Answer(ctx context.Context, text string, history []models.ChatMessage) (string, error) {
	if r.Completer == nil {
		return "", llm.ErrNotConfigured
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	dataCtx, err := BuildDataContext(r.Store, text, now())
	if err != nil {
		return "", fmt.Errorf("failed to build data context: %w", err)
	}
	req, err := BuildRequest(r.Model, r.Temperature, dataCtx, history, text)
	if err != nil {
		return "", err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	retries := r.Retries
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		reply, err := r.attempt(ctx, req, timeout, attempt)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		logger.Warn("remote completion failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if ctx.Err() != nil || errors.Is(err, llm.ErrNotConfigured) || errors.Is(err, llm.ErrAuthFailed) {
			break
		}
	}
	return "", lastErr
}

func (r *RemoteStrategy) attempt(ctx context.Context, req llm.Request, timeout time.Duration, n int) (string, error) {
	ctx, span := tracer.Start(ctx, "RemoteStrategy.attempt", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.Int("attempt", n+1),
		attribute.String("model", req.Model),
		attribute.Int("messages", len(req.Messages)),
	)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := r.Completer.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if reply == "" {
		return "", llm.ErrEmptyResponse
	}
	return reply, nil
}
