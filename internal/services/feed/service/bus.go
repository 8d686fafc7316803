package service

import (
	"sync"

	"peloton/internal/core/domain"
)

// Bus is the replay-1 snapshot channel. New subscribers immediately
// receive the most recent snapshot when one exists, then subsequent
// publishes. Publish never blocks: a slow subscriber's pending value is
// replaced by the newer one (latest wins, snapshots are whole
// replacements so skipping an intermediate one is safe).
type Bus struct {
	mu     sync.Mutex
	latest *domain.Snapshot
	subs   map[uint64]chan *domain.Snapshot
	nextID uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]chan *domain.Snapshot)}
}

// Publish replaces the latest snapshot and fans it out
func (b *Bus) Publish(s *domain.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = s
	for _, ch := range b.subs {
		// drop a stale pending value, then hand over the new one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe returns a channel carrying snapshots and an unsubscribe
// func. The channel is closed on unsubscribe.
func (b *Bus) Subscribe() (<-chan *domain.Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan *domain.Snapshot, 1)
	if b.latest != nil {
		ch <- b.latest
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Latest returns the most recent snapshot for one-shot readers
func (b *Bus) Latest() (*domain.Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.latest != nil
}
