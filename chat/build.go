// ABOUTME: Assembles a dispatcher from configuration
// ABOUTME: Used by every front end so chat behaves the same everywhere

package chat

import (
	"context"
	"errors"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/config"
	"github.com/harperreed/inscrm/llm"
	"github.com/harperreed/inscrm/store"
	"go.uber.org/zap"
)

// FromConfig builds a session and dispatcher over s. A missing API key is not
// an error: remote mode then answers with the apology text.
func FromConfig(ctx context.Context, cfg *config.Config, s store.Store, logger *zap.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	local := &LocalStrategy{
		Router: assistant.NewRouter(s, assistant.WithLogger(logger.Named("router"))),
		Delay:  cfg.LocalDelay,
	}

	remote := &RemoteStrategy{
		Store:       s,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
		Retries:     DefaultRetries,
		Logger:      logger.Named("remote"),
	}
	completer, err := llm.New(ctx, llm.Config{
		Provider:          cfg.Provider,
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	switch {
	case err == nil:
		remote.Completer = completer
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Info("remote mode unavailable: no API key configured")
	default:
		return nil, err
	}

	return NewDispatcher(NewSession(mode), local, remote, logger), nil
}
