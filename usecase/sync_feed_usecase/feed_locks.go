package sync_feed_usecase

import (
	"sync"

	"github.com/google/uuid"
)

// feedLocks serializes sync runs per feed so a manual trigger and the
// scheduled sweep cannot run the same feed's pipeline concurrently in this
// process. The map grows with the number of distinct feeds synced, which is
// bounded by the subscription count.
type feedLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newFeedLocks() *feedLocks {
	return &feedLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the feed's mutex and returns its unlock function.
func (f *feedLocks) lock(feedID uuid.UUID) func() {
	f.mu.Lock()
	m, ok := f.locks[feedID]
	if !ok {
		m = &sync.Mutex{}
		f.locks[feedID] = m
	}
	f.mu.Unlock()

	m.Lock()
	return m.Unlock
}
