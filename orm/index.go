package orm

import (
	"bytes"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// Index is implemented by secondary indexes of a bucket.
type Index interface {
	// Name returns the name of this index.
	Name() string

	// Update changes the index entries for an object. prev is nil when the
	// object is created, save is nil when it is deleted.
	Update(db trust.KVStore, prev Object, save Object) error

	// GetAt returns the primary keys of all objects indexed under given
	// index value.
	GetAt(db trust.ReadOnlyKVStore, index []byte) ([][]byte, error)
}

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

// compactIndex stores all references for an index value under one key. A
// unique index stores the primary key directly, a non unique one stores an
// encoded MultiRef.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
}

var _ Index = compactIndex{}

// NewIndex creates an index that produces at most one key per object.
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return NewMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// NewMultiKeyIndex creates an index that may produce several keys per
// object.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

func (i compactIndex) Update(db trust.KVStore, prev Object, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	var prevKeys, saveKeys [][]byte
	if prev != nil {
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		prevKeys = keys
	}
	if save != nil {
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		saveKeys = keys
	}

	// Only the entries that changed are touched.
	for _, key := range prevKeys {
		if !containsKey(saveKeys, key) {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
	}
	for _, key := range saveKeys {
		if !containsKey(prevKeys, key) {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i compactIndex) GetAt(db trust.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.indexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

func (i compactIndex) remove(db trust.KVStore, index []byte, pk []byte) error {
	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrState, "cannot remove index %q: %X not indexed", i.name, index)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "cannot remove index %q: reference mismatch", i.name)
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %q", i.name)
	}
	if len(data.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i compactIndex) insert(db trust.KVStore, index []byte, pk []byte) error {
	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %q", i.name)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return errors.Wrapf(err, "index %q", i.name)
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
