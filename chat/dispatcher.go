// ABOUTME: Routes a user message to the local or remote strategy
// ABOUTME: Guarantees exactly one bot reply per accepted message

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/harperreed/inscrm/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("inscrm/chat")

var (
	// ErrEmpty is returned for blank input; nothing is appended.
	ErrEmpty = errors.New("message is empty")

	// ErrBusy is returned while a previous message is still being answered.
	ErrBusy = errors.New("still answering the previous message")
)

// ApologyText replaces the reply when the remote endpoint fails.
const ApologyText = "Sorry, I couldn't reach the AI service just now. Try switching to local mode or asking a simpler question."

// Dispatcher sends user messages through the strategy for the session's mode.
type Dispatcher struct {
	session    *Session
	strategies map[Mode]Strategy
	logger     *zap.Logger
}

// NewDispatcher wires a session to its strategies. A nil logger means no logging.
func NewDispatcher(session *Session, local, remote Strategy, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		session: session,
		strategies: map[Mode]Strategy{
			ModeLocal:  local,
			ModeRemote: remote,
		},
		logger: logger,
	}
}

func (d *Dispatcher) Session() *Session {
	return d.session
}

// Send appends text as a user message, answers it, and returns the bot reply.
// Only ErrEmpty and ErrBusy are returned; a failing strategy produces a
// fallback reply instead of an error.
func (d *Dispatcher) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmpty
	}

	history, mode, err := d.session.begin(text)
	if err != nil {
		return models.ChatMessage{}, err
	}

	ctx, span := tracer.Start(ctx, "Dispatcher.Send", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String("mode", string(mode)))

	reply := d.answer(ctx, mode, text, history)
	return d.session.finish(reply), nil
}

func (d *Dispatcher) answer(ctx context.Context, mode Mode, text string, history []models.ChatMessage) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("strategy panicked", zap.String("mode", string(mode)), zap.Any("panic", r))
			reply = failureText(mode)
		}
	}()

	strategy := d.strategies[mode]
	if strategy == nil {
		d.logger.Error("no strategy for mode", zap.String("mode", string(mode)))
		return failureText(mode)
	}

	reply, err := strategy.Answer(ctx, text, history)
	if err != nil {
		d.logger.Error("failed to answer message",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return failureText(mode)
	}
	if strings.TrimSpace(reply) == "" {
		return failureText(mode)
	}
	return reply
}

func failureText(mode Mode) string {
	if mode == ModeRemote {
		return ApologyText
	}
	return "Sorry, something went wrong answering that. Please try again."
}
