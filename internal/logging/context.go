package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKey is the context key for the logger.
type loggerKey struct{}

// FromContext returns the logger stored in ctx, or Default when there is none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger returns a copy of ctx carrying logger. A nil ctx is treated as
// context.Background().
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFile returns a copy of ctx whose logger tags every entry with the
// markdown file being converted.
func WithFile(ctx context.Context, path string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(FieldPath, path))
}
