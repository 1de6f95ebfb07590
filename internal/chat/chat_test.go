package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		command string
		args    []string
		ok      bool
	}{
		{"!add", "!add", []string{}, true},
		{"!APPROVE 12", "!approve", []string{"12"}, true},
		{"  !deny   3  ", "!deny", []string{"3"}, true},
		{"hello there", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			command, args, ok := ParseCommand(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, msg *Message) {
				order = append(order, name)
				next(ctx, msg)
			}
		}
	}

	h := Chain(func(ctx context.Context, msg *Message) { order = append(order, "handler") }, mw("outer"), mw("inner"))
	h(context.Background(), &Message{})

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
