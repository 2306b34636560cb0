package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const pollIDKey ctxKey = "pollID"

// InitLogger installs the default slog logger writing to stdout.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the default slog logger writing to w.
// Base attributes (service, version, environment) are attached to every record.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(cfg.BaseAttributes())

	slog.SetDefault(slog.New(handler))
}

// GeneratePollID creates a new UUID for correlating the log lines of one poll.
func GeneratePollID() string {
	return uuid.NewString()
}

// WithPollID returns a new context containing the poll ID.
func WithPollID(ctx context.Context, pollID string) context.Context {
	return context.WithValue(ctx, pollIDKey, pollID)
}

// PollIDFromContext extracts the poll ID from the context, if present.
func PollIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(pollIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the poll_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := PollIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyPollID, id)
	}
	return slog.Default()
}
