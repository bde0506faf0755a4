package orm

import (
	"testing"

	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest/assert"
)

func TestBucketNames(t *testing.T) {
	assert.Panics(t, func() { NewBucket("x", NewSimpleObj(nil, &Thing{})) })
	assert.Panics(t, func() { NewBucket("UPPER", NewSimpleObj(nil, &Thing{})) })

	b := NewBucket("deal", NewSimpleObj(nil, &Thing{}))
	assert.Equal(t, "deal", b.Name())
	assert.Equal(t, []byte("deal:key"), b.DBKey([]byte("key")))

	b = b.WithIndex("name", thingByName, true)
	assert.Panics(t, func() { b.WithIndex("name", thingByName, false) })
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("things", NewSimpleObj(nil, &Thing{})).
		WithMultiKeyIndex("tag", thingByTags, false)

	obj := NewSimpleObj([]byte("k"), &Thing{Name: "kite", Tags: []string{"sky"}})
	assert.Nil(t, b.Save(db, obj))

	got, err := b.Get(db, []byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, "kite", got.Value().(*Thing).Name)
	assert.Equal(t, []byte("k"), got.Key())

	objs, err := b.GetIndexed(db, "tag", []byte("sky"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))

	assert.Nil(t, b.Delete(db, []byte("k")))
	got, err = b.Get(db, []byte("k"))
	assert.Nil(t, err)
	if got != nil {
		t.Fatalf("object must be deleted, got %v", got)
	}
	objs, err = b.GetIndexed(db, "tag", []byte("sky"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	// Deleting a missing key does not touch the indexes.
	assert.Nil(t, b.Delete(db, []byte("missing")))
}

func TestBucketSaveInvalidObject(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("things", NewSimpleObj(nil, &Thing{}))

	assert.IsErr(t, errors.ErrEmpty, b.Save(db, NewSimpleObj(nil, &Thing{Name: "a"})))
	assert.IsErr(t, errors.ErrEmpty, b.Save(db, NewSimpleObj([]byte("a"), &Thing{})))
}

func TestSimpleObjClone(t *testing.T) {
	obj := NewSimpleObj([]byte("k"), &Thing{Name: "a", Tags: []string{"x"}})
	cpy := obj.Clone()
	cpy.Value().(*Thing).Tags[0] = "y"
	cpy.SetKey([]byte("other"))

	assert.Equal(t, "x", obj.Value().(*Thing).Tags[0])
	assert.Equal(t, []byte("k"), obj.Key())
}
