package logger

import (
	"context"
	"log/slog"
)

// contextKey is unexported so only this package can attach the logger.
type contextKey struct{}

// With derives a context whose logger carries the extra fields; later
// From calls on that context see them.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, contextKey{}, From(ctx).With(fields...))
}

// From returns the request-scoped logger, falling back to the process
// logger when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
