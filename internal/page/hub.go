package page

import (
	"sync"

	"vehicle_dashboard/internal/dom"
)

// Hub fans patches out to live page subscribers. A subscriber whose buffer
// is full misses the patch rather than stalling the event loop, and gets a
// full resync patch on its next delivery instead.
type Hub struct {
	resync func() dom.Patch

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription receives patches on C until Close.
type Subscription struct {
	C <-chan dom.Patch

	ch    chan dom.Patch
	hub   *Hub
	once  sync.Once
	stale bool // missed a patch; guarded by hub.mu
}

// NewHub returns a hub that rebuilds lagging subscribers from resync. A nil
// resync leaves them with whatever they missed.
func NewHub(resync func() dom.Patch) *Hub {
	return &Hub{resync: resync, subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a subscriber with the given buffer size.
func (h *Hub) Subscribe(buf int) *Subscription {
	ch := make(chan dom.Patch, buf)
	s := &Subscription{C: ch, ch: ch, hub: h}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Close unregisters the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

// Broadcast delivers p to every subscriber and returns how many got it.
// Subscribers that missed an earlier patch receive the resync patch, which
// already reflects p.
func (h *Hub) Broadcast(p dom.Patch) int {
	if p.Empty() {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	var full *dom.Patch
	sent := 0
	for s := range h.subs {
		out := p
		if s.stale && h.resync != nil {
			if full == nil {
				snap := h.resync()
				full = &snap
			}
			out = *full
		}
		select {
		case s.ch <- out:
			s.stale = false
			sent++
		default:
			s.stale = true
		}
	}
	return sent
}

func (h *Hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
