package discord

import "sync"

type waiterKey struct {
	channelID string
	userID    string
}

// Waiters hands inbound messages to dialogs blocked on an answer.
// At most one waiter is registered per (channel, user) pair.
type Waiters struct {
	mu      sync.Mutex
	pending map[waiterKey]chan string
}

func NewWaiters() *Waiters {
	return &Waiters{pending: make(map[waiterKey]chan string)}
}

// Register reserves the next message from userID in channelID. The returned
// cancel func must be called once the caller stops waiting.
func (w *Waiters) Register(channelID, userID string) (<-chan string, func()) {
	key := waiterKey{channelID: channelID, userID: userID}
	ch := make(chan string, 1)

	w.mu.Lock()
	w.pending[key] = ch
	w.mu.Unlock()

	return ch, func() {
		w.mu.Lock()
		if w.pending[key] == ch {
			delete(w.pending, key)
		}
		w.mu.Unlock()
	}
}

// Offer delivers content to a registered waiter. It reports whether the
// message was consumed.
func (w *Waiters) Offer(channelID, userID, content string) bool {
	key := waiterKey{channelID: channelID, userID: userID}

	w.mu.Lock()
	ch, ok := w.pending[key]
	if ok {
		delete(w.pending, key)
	}
	w.mu.Unlock()

	if !ok {
		return false
	}
	ch <- content
	return true
}
