package utils

import (
	"context"
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/trusttest/assert"
)

func TestSavepoint(t *testing.T) {
	written := &trusttest.KeyValue{Key: []byte("deal"), Value: []byte("settled")}

	cases := map[string]struct {
		savepoint Savepoint
		handler   *trusttest.Handler
		deliver   bool
		wantErr   *errors.Error
		wantKept  bool
	}{
		"disabled savepoint keeps the writes of a failed check": {
			savepoint: NewSavepoint(),
			handler:   &trusttest.Handler{Write: written, CheckErr: errors.ErrState},
			wantErr:   errors.ErrState,
			wantKept:  true,
		},
		"failed check is rolled back": {
			savepoint: NewSavepoint().OnCheck(),
			handler:   &trusttest.Handler{Write: written, CheckErr: errors.ErrState},
			wantErr:   errors.ErrState,
		},
		"failed deliver is rolled back": {
			savepoint: NewSavepoint().OnDeliver(),
			handler:   &trusttest.Handler{Write: written, DeliverErr: ErrTestTransfer},
			deliver:   true,
			wantErr:   ErrTestTransfer,
		},
		"both calls guarded": {
			savepoint: NewSavepoint().OnCheck().OnDeliver(),
			handler:   &trusttest.Handler{Write: written, DeliverErr: ErrTestTransfer},
			deliver:   true,
			wantErr:   ErrTestTransfer,
		},
		"check savepoint does not guard deliver": {
			savepoint: NewSavepoint().OnCheck(),
			handler:   &trusttest.Handler{Write: written, DeliverErr: ErrTestTransfer},
			deliver:   true,
			wantErr:   ErrTestTransfer,
			wantKept:  true,
		},
		"successful deliver is written": {
			savepoint: NewSavepoint().OnDeliver(),
			handler:   &trusttest.Handler{Write: written},
			deliver:   true,
			wantKept:  true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, db.Set([]byte("other"), []byte("value")))

			var err error
			if tc.deliver {
				_, err = tc.savepoint.Deliver(context.Background(), db, &trusttest.Tx{}, tc.handler)
			} else {
				_, err = tc.savepoint.Check(context.Background(), db, &trusttest.Tx{}, tc.handler)
			}
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, 1, tc.handler.CallCount())

			has, err := db.Has(written.Key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantKept, has)
			has, err = db.Has([]byte("other"))
			assert.Nil(t, err)
			assert.Equal(t, true, has)
		})
	}
}

// ErrTestTransfer stands for any failure of a wrapped handler.
var ErrTestTransfer = errors.Register(1001, "test transfer failure")

// plainStore hides the CacheWrap method of the wrapped store.
type plainStore struct {
	trust.KVStore
}

func TestSavepointWithoutCache(t *testing.T) {
	db := store.MemStore()
	h := &trusttest.Handler{
		Write:      &trusttest.KeyValue{Key: []byte("a"), Value: []byte("b")},
		DeliverErr: ErrTestTransfer,
	}
	_, err := NewSavepoint().OnDeliver().Deliver(context.Background(), plainStore{db}, &trusttest.Tx{}, h)
	assert.IsErr(t, ErrTestTransfer, err)

	has, err := db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)
}
