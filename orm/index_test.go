package orm

import (
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest/assert"
)

func TestCompactIndexUpdate(t *testing.T) {
	alice := NewSimpleObj([]byte("a"), &Thing{Name: "alice", Tags: []string{"red", "blue"}})
	aliceRecolored := NewSimpleObj([]byte("a"), &Thing{Name: "alice", Tags: []string{"blue", "green"}})
	bob := NewSimpleObj([]byte("b"), &Thing{Name: "bob", Tags: []string{"blue"}})

	type query struct {
		index string
		want  [][]byte
	}

	cases := map[string]struct {
		setup   func(db *storeWithIdx) error
		wantErr *errors.Error
		queries []query
	}{
		"insert two objects": {
			setup: func(db *storeWithIdx) error {
				if err := db.idx.Update(db.kv, nil, alice); err != nil {
					return err
				}
				return db.idx.Update(db.kv, nil, bob)
			},
			queries: []query{
				{"red", [][]byte{[]byte("a")}},
				{"blue", [][]byte{[]byte("a"), []byte("b")}},
				{"green", nil},
			},
		},
		"move only touches changed keys": {
			setup: func(db *storeWithIdx) error {
				if err := db.idx.Update(db.kv, nil, alice); err != nil {
					return err
				}
				return db.idx.Update(db.kv, alice, aliceRecolored)
			},
			queries: []query{
				{"red", nil},
				{"blue", [][]byte{[]byte("a")}},
				{"green", [][]byte{[]byte("a")}},
			},
		},
		"delete removes all references": {
			setup: func(db *storeWithIdx) error {
				if err := db.idx.Update(db.kv, nil, alice); err != nil {
					return err
				}
				return db.idx.Update(db.kv, alice, nil)
			},
			queries: []query{
				{"red", nil},
				{"blue", nil},
			},
		},
		"remove of an object that was never indexed": {
			setup: func(db *storeWithIdx) error {
				return db.idx.Update(db.kv, bob, nil)
			},
			wantErr: errors.ErrState,
		},
		"both objects nil": {
			setup: func(db *storeWithIdx) error {
				return db.idx.Update(db.kv, nil, nil)
			},
			wantErr: errors.ErrHuman,
		},
		"primary key cannot change": {
			setup: func(db *storeWithIdx) error {
				return db.idx.Update(db.kv, alice, bob)
			},
			wantErr: errors.ErrImmutable,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := &storeWithIdx{
				kv:  store.MemStore(),
				idx: NewMultiKeyIndex("things_tag", thingByTags, false),
			}
			assert.IsErr(t, tc.wantErr, tc.setup(db))
			for _, q := range tc.queries {
				refs, err := db.idx.GetAt(db.kv, []byte(q.index))
				assert.Nil(t, err)
				assert.Equal(t, q.want, refs)
			}
		})
	}
}

func TestUniqueIndex(t *testing.T) {
	db := store.MemStore()
	idx := NewIndex("things_name", thingByName, true)

	alice := NewSimpleObj([]byte("a"), &Thing{Name: "alice"})
	fakeAlice := NewSimpleObj([]byte("x"), &Thing{Name: "alice"})

	assert.Nil(t, idx.Update(db, nil, alice))
	assert.IsErr(t, errors.ErrDuplicate, idx.Update(db, nil, fakeAlice))

	refs, err := idx.GetAt(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a")}, refs)

	assert.IsErr(t, errors.ErrState, idx.Update(db, fakeAlice, nil))
	assert.Nil(t, idx.Update(db, alice, nil))

	refs, err = idx.GetAt(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(refs))
}

type storeWithIdx struct {
	kv  trust.KVStore
	idx Index
}
