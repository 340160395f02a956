// Package live notifies subscribers that the package ledger changed.
//
// Notices carry no data. A subscriber that receives a signal recomputes its
// whole view and replaces what it had, so dropped or merged signals never
// leave it inconsistent.
package live

import (
	"sync"

	"github.com/erazemk/swiftship/internal/metrics"
)

// Change kinds.
const (
	KindPackage = "package"
	KindAccount = "account"
)

// Change describes what moved. OwnerID is the account whose view is
// affected.
type Change struct {
	Kind      string `json:"kind"`
	PackageID int64  `json:"package_id,omitempty"`
	OwnerID   int64  `json:"owner_id"`
	Origin    string `json:"origin,omitempty"`
}

// Publisher accepts change notices. Publish must not block.
type Publisher interface {
	Publish(Change)
}

// Filter selects the changes a subscriber cares about. A nil Filter
// matches everything.
type Filter func(Change) bool

// ForOwner matches changes affecting one account.
func ForOwner(accountID int64) Filter {
	return func(c Change) bool { return c.OwnerID == accountID }
}

// Hub fans change notices out to in-process subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscription is a registration on a Hub. C receives a signal whenever a
// matching change is published; signals arriving while one is pending are
// merged into it. C starts with one signal pending so the first snapshot
// is sent right away. C is closed by Close.
type Subscription struct {
	C <-chan struct{}

	c      chan struct{}
	hub    *Hub
	filter Filter
	closed bool
}

// Subscribe registers a new subscription. The caller must Close it.
func (h *Hub) Subscribe(filter Filter) *Subscription {
	c := make(chan struct{}, 1)
	c <- struct{}{}
	s := &Subscription{C: c, c: c, hub: h, filter: filter}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	metrics.LiveSubscribers.Inc()
	return s
}

// Publish signals every matching subscription without blocking.
func (h *Hub) Publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if s.filter != nil && !s.filter(change) {
			continue
		}
		select {
		case s.c <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close unregisters the subscription and closes C. Safe to call more than
// once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(s.hub.subs, s)
	close(s.c)
	metrics.LiveSubscribers.Dec()
}
