package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/bwmarrin/discordgo"
)

// RESTClient is the part of *discordgo.Session the messenger needs.
type RESTClient interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Messenger sends messages over the Discord REST API and waits for dialog answers
// delivered by the gateway.
type Messenger struct {
	api     RESTClient
	waiters *Waiters

	// user id -> private channel id
	dmChannels sync.Map
}

func NewMessenger(api RESTClient, waiters *Waiters) *Messenger {
	return &Messenger{api: api, waiters: waiters}
}

var _ portssvc.Messenger = (*Messenger)(nil)

func (m *Messenger) SendToChannel(ctx context.Context, channelID, content string) error {
	if _, err := m.api.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

func (m *Messenger) SendToUser(ctx context.Context, userID, content string) error {
	channelID, err := m.privateChannel(ctx, userID)
	if err != nil {
		return err
	}
	return m.SendToChannel(ctx, channelID, content)
}

// Ask registers the waiter before sending the question so a fast answer is not lost.
func (m *Messenger) Ask(ctx context.Context, requester domain.Requester, question string, timeout time.Duration) (string, error) {
	channelID, err := m.privateChannel(ctx, requester.UserID)
	if err != nil {
		return "", err
	}

	answers, cancel := m.waiters.Register(channelID, requester.UserID)
	defer cancel()

	if err := m.SendToChannel(ctx, channelID, question); err != nil {
		return "", err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case answer := <-answers:
		return answer, nil
	case <-timer.C:
		return "", apperrors.ErrInputTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Messenger) privateChannel(ctx context.Context, userID string) (string, error) {
	if id, ok := m.dmChannels.Load(userID); ok {
		return id.(string), nil
	}
	ch, err := m.api.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to open private channel with user %s: %w", userID, err)
	}
	m.dmChannels.Store(userID, ch.ID)
	return ch.ID, nil
}
