// Package chat defines the inbound message shape shared by the router,
// its middleware and the chat adapters.
package chat

import (
	"context"
	"strings"
)

// Message is an inbound chat message.
type Message struct {
	ID         string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
	Direct     bool // sent in a private channel

	// Filled by the router before dispatch.
	Command string
	Args    []string
}

// HandlerFunc handles one routed message. Failures are reported to the channel by the handler.
type HandlerFunc func(ctx context.Context, msg *Message)

// Middleware wraps a HandlerFunc.
type Middleware func(HandlerFunc) HandlerFunc

// Chain applies middlewares so that the first one runs outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// ParseCommand splits content into a lower-cased command and its arguments.
// ok is false when the content is not a command.
func ParseCommand(content string) (command string, args []string, ok bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "!") {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
