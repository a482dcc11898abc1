package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ToContext returns ctx carrying log. A nil log leaves ctx unchanged so
// callers further down still fall back to slog.Default.
func ToContext(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// With scopes the context logger, e.g. to a chat session:
//
//	log, ctx := logger.With(ctx, "session_id", sessionID)
func With(ctx context.Context, args ...any) (*slog.Logger, context.Context) {
	log := FromContext(ctx).With(args...)
	return log, ToContext(ctx, log)
}

// IsDebugEnabled guards debug output that is costly to build, such as
// rendering a sheet row.
func IsDebugEnabled(ctx context.Context) bool {
	return FromContext(ctx).Enabled(ctx, slog.LevelDebug)
}
