package store

import (
	"github.com/iov-one/trust/errors"
)

// EmptyKVStore never holds any data, but the interface is properly
// implemented. Use it as the backing store of a root cache wrap.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil.
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false.
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop.
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop.
func (EmptyKVStore) Delete(key []byte) error { return nil }

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either a set or a delete operation waiting to be applied.
type Op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

// Apply performs the stored operation on a writable store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown kind: %d", o.kind)
	}
}

// IsSetOp returns true if this operation sets the key.
func (o Op) IsSetOp() bool {
	return o.kind == setKind
}

// Key returns the key this operation applies to.
func (o Op) Key() []byte {
	return o.key
}

// Value returns the value of a set operation.
func (o Op) Value() []byte {
	return o.value
}

// NonAtomicBatch just piles up ops and executes them later on the
// underlying store. Can be used when there is no better option (for in-memory
// stores).
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to the
// KVStore.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{kind: setKind, key: key, value: value})
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{kind: delKind, key: key})
	return nil
}

// Write writes all the ops to the underlying store and resets the batch.
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops all pending operations.
func (b *NonAtomicBatch) Discard() {
	b.ops = nil
}

// ShowOps is intended for testing only.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}

// nopBatch is the batch of a root store that has nothing to write to.
type nopBatch struct{}

func (nopBatch) Set(key, value []byte) error { return nil }
func (nopBatch) Delete(key []byte) error     { return nil }
func (nopBatch) Write() error                { return nil }

type discarder interface {
	Discard()
}
