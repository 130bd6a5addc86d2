package service

import "sync"

// itemLocker serializes all mutating operations on a single item,
// including across the external transfer boundary in cancel and claim.
// This is the non-reentrant guard: a nested call into the same item
// blocks instead of observing pre-transfer state.
type itemLocker struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// lock acquires the mutex for id and returns its release func.
// Release it on every exit path (defer).
func (l *itemLocker) lock(id uint64) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uint64]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
