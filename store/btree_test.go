package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeStore(t *testing.T) {
	suite := NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
	t.Run("get set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
}

func TestBTreeCacheableOverKVStore(t *testing.T) {
	base := MemStore()
	kv := BTreeCacheable{base}
	suite := NewTestSuite(func() (CacheableKVStore, func()) {
		return BTreeCacheable{MemStore()}, func() {}
	})
	t.Run("get set", suite.GetSet)

	c := kv.CacheWrap()
	require.NoError(t, c.Set([]byte("a"), []byte("b")))
	v, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, c.Write())
	v, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), v)
}

func TestBTreeCacheCopiesValues(t *testing.T) {
	kv := MemStore()
	val := []byte("mutable")
	require.NoError(t, kv.Set([]byte("k"), val))
	val[0] = 'X'

	got, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), got)
}

func TestBTreeCacheRejectsNilKey(t *testing.T) {
	kv := MemStore()
	assert.Error(t, kv.Set(nil, []byte("x")))
	assert.Error(t, kv.Delete(nil))
}

func TestBTreeCacheNilValueIsEmpty(t *testing.T) {
	kv := MemStore()
	require.NoError(t, kv.Set([]byte("k"), nil))

	got, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestNonAtomicBatch(t *testing.T) {
	kv := MemStore()
	b := NewNonAtomicBatch(kv)
	require.NoError(t, b.Set([]byte("one"), []byte("1")))
	require.NoError(t, b.Set([]byte("two"), []byte("2")))
	require.NoError(t, b.Delete([]byte("one")))
	assert.Len(t, b.ShowOps(), 3)

	ok, err := kv.Has([]byte("two"))
	require.NoError(t, err)
	assert.False(t, ok, "batch must not write before Write is called")

	require.NoError(t, b.Write())
	assert.Len(t, b.ShowOps(), 0)

	ok, err = kv.Has([]byte("one"))
	require.NoError(t, err)
	assert.False(t, ok)
	v, err := kv.Get([]byte("two"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}
