package service

import (
	"sync"

	dom "entryledger/internal/domain"
)

// keyedLock serializes mutations per identity so a check-then-write
// sequence for one identity never interleaves with another call
// touching the same identity. Different identities proceed
// concurrently.
type keyedLock struct {
	mu    sync.Mutex
	locks map[dom.Identity]*identityLock
}

type identityLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[dom.Identity]*identityLock)}
}

// lock acquires the lock for id and returns the matching unlock func.
func (k *keyedLock) lock(id dom.Identity) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &identityLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
