package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	"github.com/bwmarrin/discordgo"
)

// Intents requested on the gateway. Message content is a privileged intent.
const Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent

// Gateway receives message events and hands them to dialog waiters or the router.
type Gateway struct {
	session *discordgo.Session
	waiters *Waiters
	handler chat.HandlerFunc
	logger  *slog.Logger
}

func NewGateway(session *discordgo.Session, waiters *Waiters, handler chat.HandlerFunc, logger *slog.Logger) *Gateway {
	session.Identify.Intents = Intents
	g := &Gateway{session: session, waiters: waiters, handler: handler, logger: logger}
	session.AddHandler(g.onMessageCreate)
	return g
}

// Run opens the gateway connection and blocks until ctx is done.
func (g *Gateway) Run(ctx context.Context) error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	g.logger.Info("Discord gateway connected")

	<-ctx.Done()

	if err := g.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	g.logger.Info("Discord gateway closed")
	return nil
}

func (g *Gateway) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	dispatch(g.waiters, g.handler, toChatMessage(m.Message))
}

// dispatch offers the message to a waiting dialog first. Anything else is routed
// on its own goroutine since handlers may block on a dialog.
func dispatch(waiters *Waiters, handler chat.HandlerFunc, msg *chat.Message) {
	if waiters.Offer(msg.ChannelID, msg.AuthorID, msg.Content) {
		return
	}
	go handler(context.Background(), msg)
}

func toChatMessage(m *discordgo.Message) *chat.Message {
	return &chat.Message{
		ID:         m.ID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
		Direct:     m.GuildID == "",
	}
}
