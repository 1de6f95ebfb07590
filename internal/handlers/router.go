package handlers

import (
	"context"
	"log/slog"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
	"github.com/SscSPs/location_approval_bot/internal/middleware"
	"github.com/SscSPs/location_approval_bot/internal/platform/config"
)

type scope int

const (
	scopeAdmin  scope = iota // administrative channel only
	scopeIntake              // intake channel or a private channel
)

type route struct {
	scope   scope
	handler chat.HandlerFunc
}

// Router maps inbound commands to their handlers and enforces channel scoping.
// Messages outside a command's scope are ignored silently.
type Router struct {
	adminChannelID string
	addChannelID   string
	routes         map[string]route
	metrics        *metrics.Metrics
	middlewares    []chat.Middleware
}

// NewRouter sets up all command routes. Middlewares wrap every routed command,
// the first one outermost.
func NewRouter(
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	notifier portssvc.Notifier,
	m *metrics.Metrics,
	mws ...chat.Middleware,
) *Router {
	r := &Router{
		adminChannelID: cfg.AdminChannelID,
		addChannelID:   cfg.AddChannelID,
		routes:         make(map[string]route),
		metrics:        m,
		middlewares:    mws,
	}

	intake := newIntakeHandler(services.Intake, services.Review, notifier)
	review := newReviewHandler(services.Review, notifier)

	r.routes["!add"] = route{scope: scopeIntake, handler: intake.add}
	r.routes["!pending"] = route{scope: scopeAdmin, handler: review.pending}
	r.routes["!approve"] = route{scope: scopeAdmin, handler: withLocationID(notifier, review.approve)}
	r.routes["!deny"] = route{scope: scopeAdmin, handler: withLocationID(notifier, review.deny)}
	r.routes["!remove"] = route{scope: scopeAdmin, handler: withLocationID(notifier, review.remove)}
	r.routes["!listall"] = route{scope: scopeAdmin, handler: review.listAll}
	r.routes["!checkmarker"] = route{scope: scopeAdmin, handler: withLocationID(notifier, review.checkMarker)}
	r.routes["!testrcon"] = route{scope: scopeAdmin, handler: review.testRCON}

	return r
}

// Handle routes one inbound message.
func (r *Router) Handle(ctx context.Context, msg *chat.Message) {
	command, args, ok := chat.ParseCommand(msg.Content)
	if !ok {
		return
	}
	rt, ok := r.routes[command]
	if !ok || !r.allowed(rt.scope, msg) {
		return
	}

	msg.Command = command
	msg.Args = args
	r.metrics.IncCommand(command)

	chat.Chain(rt.handler, r.middlewares...)(ctx, msg)
}

func (r *Router) allowed(s scope, msg *chat.Message) bool {
	switch s {
	case scopeAdmin:
		return !msg.Direct && msg.ChannelID == r.adminChannelID
	case scopeIntake:
		return msg.Direct || msg.ChannelID == r.addChannelID
	}
	return false
}

// reply posts content in the originating channel.
func reply(ctx context.Context, notifier portssvc.Notifier, msg *chat.Message, content string) {
	if err := notifier.SendToChannel(ctx, msg.ChannelID, content); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to send reply",
			slog.String("channel_id", msg.ChannelID),
			slog.String("error", err.Error()))
	}
}
