package store

import (
	"sync"
)

// Synchronized guards a KVStore with a read write lock so that it can be
// shared between goroutines. Cache wraps created from it flush all their
// operations under a single write lock, so other readers never observe a
// partially written cache.
type Synchronized struct {
	mu sync.RWMutex
	kv KVStore
}

var _ CacheableKVStore = (*Synchronized)(nil)

// NewSynchronized returns a store that serializes access to kv. The kv
// store must not be used directly afterwards.
func NewSynchronized(kv KVStore) *Synchronized {
	return &Synchronized{kv: kv}
}

// Get reads a value under a read lock.
func (s *Synchronized) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Get(key)
}

// Has checks a key under a read lock.
func (s *Synchronized) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Has(key)
}

// Set writes a value under a write lock.
func (s *Synchronized) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(key, value)
}

// Delete removes a key under a write lock.
func (s *Synchronized) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(key)
}

// CacheWrap returns a btree cache reading through this store. Writing the
// cache applies all of its operations under one write lock.
func (s *Synchronized) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, &syncBatch{parent: s}, nil)
}

// syncBatch collects operations and applies them to the parent store while
// holding its write lock.
type syncBatch struct {
	parent *Synchronized
	ops    []Op
}

func (b *syncBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{kind: setKind, key: key, value: value})
	return nil
}

func (b *syncBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{kind: delKind, key: key})
	return nil
}

func (b *syncBatch) Write() error {
	ops := b.ops
	b.ops = nil

	b.parent.mu.Lock()
	defer b.parent.mu.Unlock()
	for _, op := range ops {
		if err := op.Apply(b.parent.kv); err != nil {
			return err
		}
	}
	return nil
}

func (b *syncBatch) Discard() {
	b.ops = nil
}
