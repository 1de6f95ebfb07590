package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	"github.com/google/uuid"
)

// loggerKey is the key used to store the logger in the context.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromCtx retrieves the command-scoped logger from the context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// StructuredLogging injects a command-scoped logger into the context
// and logs completion of each command.
func StructuredLogging(baseLogger *slog.Logger) chat.Middleware {
	return func(next chat.HandlerFunc) chat.HandlerFunc {
		return func(ctx context.Context, msg *chat.Message) {
			start := time.Now()
			requestID := uuid.NewString()

			// Create a logger enriched with request-specific fields
			requestLogger := baseLogger.With(
				slog.String("request_id", requestID),
				slog.String("command", msg.Command),
				slog.String("channel_id", msg.ChannelID),
				slog.String("author_id", msg.AuthorID),
			)

			next(WithLogger(ctx, requestLogger), msg)

			requestLogger.Info("Command completed", slog.Duration("latency", time.Since(start)))
		}
	}
}
