package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
)

// Recovery keeps a panicking handler from taking the process down.
// The originating channel gets a generic failure message.
func Recovery(notifier portssvc.Notifier) chat.Middleware {
	return func(next chat.HandlerFunc) chat.HandlerFunc {
		return func(ctx context.Context, msg *chat.Message) {
			defer func() {
				if r := recover(); r != nil {
					GetLoggerFromCtx(ctx).Error("Recovered from panic in command handler",
						slog.String("panic", fmt.Sprint(r)),
						slog.String("stack", string(debug.Stack())))
					_ = notifier.SendToChannel(ctx, msg.ChannelID, "Something went wrong while handling that command.")
				}
			}()
			next(ctx, msg)
		}
	}
}
