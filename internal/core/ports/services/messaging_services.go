package services

import (
	"context"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// Notifier delivers text to channels and to users privately.
type Notifier interface {
	// SendToChannel posts a message in a channel.
	SendToChannel(ctx context.Context, channelID, content string) error

	// SendToUser sends a private message to a user.
	SendToUser(ctx context.Context, userID, content string) error
}

// Conversation waits for answers in a requester's private channel.
type Conversation interface {
	// Ask sends the question privately and waits up to timeout for the requester's next message.
	// It returns apperrors.ErrInputTimeout when nothing arrives in time.
	Ask(ctx context.Context, requester domain.Requester, question string, timeout time.Duration) (string, error)
}

// Messenger is the full messaging channel contract.
type Messenger interface {
	Notifier
	Conversation
}
