package event

import (
	"context"
	"sync"

	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
)

// Listener receives one event. It runs on the emitting goroutine.
type Listener func(ctx context.Context, e Event)

// Broadcaster fans events out to its listeners synchronously.
type Broadcaster struct {
	mu        sync.Mutex
	listeners []Listener
	emitting  bool
}

// NewBroadcaster creates a broadcaster with no listeners.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe appends l to the listener list.
func (b *Broadcaster) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Emit calls every listener with e in subscription order. A call made from
// inside a listener is dropped.
func (b *Broadcaster) Emit(ctx context.Context, e Event) {
	b.mu.Lock()
	if b.emitting {
		b.mu.Unlock()
		ctxlog.FromContext(ctx).Warn("Dropped re-entrant event emission.", "event", e.Type())
		return
	}
	b.emitting = true
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.emitting = false
		b.mu.Unlock()
	}()

	for _, l := range listeners {
		l(ctx, e)
	}
}

// Len returns the number of subscribed listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
