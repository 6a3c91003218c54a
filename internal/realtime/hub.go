package realtime

import "sync"

// ===========================================================================
// Snapshot Hub
// In-process publish/subscribe over full collection snapshots. Every write
// republishes the ENTIRE collection (soft-deleted rows included); each
// subscriber applies its own filter predicate. Delivery is capacity-1
// latest-wins: a slow consumer only ever sees the freshest snapshot, there
// is no backlog and no replay after unsubscribe.
// ===========================================================================

// Hub fans full collection snapshots out to subscribers.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[int]*subscription[T]
	next int
	last []T
	has  bool
}

type subscription[T any] struct {
	ch     chan []T
	filter func(T) bool
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]*subscription[T])}
}

// Subscribe registers a subscriber. The returned channel receives the full
// filtered collection snapshot on every publish, starting with the current
// one when the hub has already seen a publish. The cancel func stops
// delivery and closes the channel.
func (h *Hub[T]) Subscribe(filter func(T) bool) (<-chan []T, func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	sub := &subscription[T]{
		ch:     make(chan []T, 1),
		filter: filter,
	}
	h.subs[id] = sub
	if h.has {
		sub.deliver(h.last)
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers the snapshot to every subscriber. The slice must not be
// mutated by the caller afterwards.
func (h *Hub[T]) Publish(snapshot []T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = snapshot
	h.has = true
	for _, s := range h.subs {
		s.deliver(snapshot)
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub[T]) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// deliver replaces any undelivered snapshot with the new one. Caller holds
// the hub lock.
func (s *subscription[T]) deliver(snapshot []T) {
	out := snapshot
	if s.filter != nil {
		out = make([]T, 0, len(snapshot))
		for _, v := range snapshot {
			if s.filter(v) {
				out = append(out, v)
			}
		}
	}

	// Drop the stale pending snapshot, if any, then enqueue the fresh one.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- out:
	default:
	}
}
