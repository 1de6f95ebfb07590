package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/chat"
	"github.com/SscSPs/location_approval_bot/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type recordingNotifier struct {
	mu       sync.Mutex
	channels []string
	messages []string
}

func (r *recordingNotifier) SendToChannel(_ context.Context, channelID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, channelID)
	r.messages = append(r.messages, content)
	return nil
}

func (r *recordingNotifier) SendToUser(_ context.Context, userID, content string) error {
	return r.SendToChannel(context.Background(), "dm:"+userID, content)
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}

func TestStructuredLogging_InjectsLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var got *slog.Logger
	h := chat.Chain(func(ctx context.Context, msg *chat.Message) {
		got = middleware.GetLoggerFromCtx(ctx)
		got.Info("inside")
	}, middleware.StructuredLogging(base))

	h(context.Background(), &chat.Message{Command: "!pending", ChannelID: "admin", AuthorID: "7"})

	require.NotNil(t, got)
	assert.NotEqual(t, slog.Default(), got)
	assert.Contains(t, buf.String(), `"command":"!pending"`)
	assert.Contains(t, buf.String(), `"request_id"`)
	assert.Contains(t, buf.String(), "Command completed")
}

func TestRecovery(t *testing.T) {
	n := &recordingNotifier{}
	h := chat.Chain(func(ctx context.Context, msg *chat.Message) {
		panic("boom")
	}, middleware.Recovery(n))

	assert.NotPanics(t, func() { h(context.Background(), &chat.Message{ChannelID: "admin"}) })
	assert.Equal(t, []string{"admin"}, n.channels)
}

func TestRateLimit(t *testing.T) {
	n := &recordingNotifier{}
	l := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})
	calls := 0
	h := chat.Chain(func(ctx context.Context, msg *chat.Message) { calls++ }, middleware.RateLimit(l, n))

	msg := &chat.Message{ChannelID: "admin", AuthorID: "7"}
	for i := 0; i < 3; i++ {
		h(context.Background(), msg)
	}
	h(context.Background(), &chat.Message{ChannelID: "admin", AuthorID: "8"})

	assert.Equal(t, 3, calls)
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "too quickly")
}
