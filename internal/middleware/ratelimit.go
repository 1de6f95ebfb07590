package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles commands per author using the provided limiter instance.
// A failing limiter store lets the command through.
func RateLimit(limiterInstance *limiter.Limiter, notifier portssvc.Notifier) chat.Middleware {
	return func(next chat.HandlerFunc) chat.HandlerFunc {
		return func(ctx context.Context, msg *chat.Message) {
			key := "author:" + msg.AuthorID

			lctx, err := limiterInstance.Get(ctx, key)
			if err != nil {
				GetLoggerFromCtx(ctx).Error("Failed to get rate limit context", slog.String("key", key), slog.String("error", err.Error()))
				next(ctx, msg)
				return
			}

			if lctx.Reached {
				GetLoggerFromCtx(ctx).Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", lctx.Limit))
				_ = notifier.SendToChannel(ctx, msg.ChannelID, "You're sending commands too quickly. Please try again later.")
				return
			}

			next(ctx, msg)
		}
	}
}
