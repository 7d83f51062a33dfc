package progress

import (
	"fmt"
	"sync"
)

// keyedLocks serializes work per aggregate key (one lock per
// (user, course) pair for progress recompute, one per (user, quiz) pair
// for attempt numbering). Entries are reference counted and removed when
// the last holder releases them.
type keyedLocks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{held: make(map[string]*lockEntry)}
}

// lock blocks until the key is free and returns the release func.
func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.held[key]
	if !ok {
		entry = &lockEntry{}
		k.held[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.held, key)
		}
		k.mu.Unlock()
	}
}

func progressKey(userID, courseID uint) string {
	return fmt.Sprintf("progress:%d:%d", userID, courseID)
}

func quizKey(userID, quizID uint) string {
	return fmt.Sprintf("quiz:%d:%d", userID, quizID)
}
