// Package broadcast fans cart snapshots out to in-process subscribers.
// Delivery is synchronous and in subscription order; there is no replay,
// so a subscriber only sees snapshots published after it subscribed.
package broadcast

import (
	"sync"

	"github.com/utafrali/storefront/internal/domain"
)

// SnapshotFunc receives each published cart snapshot.
type SnapshotFunc func(domain.Snapshot)

// Broadcaster delivers cart snapshots to registered subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs []*Subscription
}

// Subscription is a registered subscriber handle. Cancel detaches it.
type Subscription struct {
	id int
	b  *Broadcaster
	fn SnapshotFunc
}

func New() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers fn to receive future snapshots.
func (b *Broadcaster) Subscribe(fn SnapshotFunc) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{id: b.next, b: b, fn: fn}
	b.next++
	b.subs = append(b.subs, sub)
	return sub
}

// Publish delivers snapshot to every active subscriber, in the order they
// subscribed. Publish returns once every subscriber has run.
func (b *Broadcaster) Publish(snapshot domain.Snapshot) {
	b.mu.Lock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// Cancel detaches the subscription. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	for i, sub := range s.b.subs {
		if sub.id == s.id {
			s.b.subs = append(s.b.subs[:i], s.b.subs[i+1:]...)
			return
		}
	}
}
