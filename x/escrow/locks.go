package escrow

import (
	"sort"
	"sync"
)

// keyedLocks hands out one mutex per key. Entries are removed once nobody
// holds or waits for them.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*keyedLock)}
}

// Lock acquires the locks of all given keys and returns a function
// releasing them. Keys are always acquired in sorted order, so two callers
// sharing keys cannot deadlock.
func (k *keyedLocks) Lock(keys ...string) (unlock func()) {
	keys = uniqueSorted(keys)

	held := make([]*keyedLock, len(keys))
	for i, key := range keys {
		l := k.acquire(key)
		l.Lock()
		held[i] = l
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
			k.release(keys[i])
		}
	}
}

func (k *keyedLocks) acquire(key string) *keyedLock {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *keyedLocks) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// size returns the number of keys currently in use.
func (k *keyedLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func uniqueSorted(keys []string) []string {
	res := make([]string, len(keys))
	copy(res, keys)
	sort.Strings(res)
	out := res[:0]
	for i, key := range res {
		if i > 0 && key == res[i-1] {
			continue
		}
		out = append(out, key)
	}
	return out
}
