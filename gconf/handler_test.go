package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/coin"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/store"
	"github.com/iov-one/trust/trusttest"
	"github.com/iov-one/trust/trusttest/assert"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := trusttest.NewCondition()

	cases := map[string]struct {
		// Init represents the configuration's initial state. Use nil to
		// not provide initial state.
		Init          *myconfig
		Msg           trust.Msg
		MsgConditions []trust.Condition
		WantErr       *errors.Error
		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "XYZ")},
			},
			MsgConditions: []trust.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "XYZ")},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125},
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 1},
			},
			MsgConditions: []trust.Condition{trusttest.NewCondition()},
			WantErr:       errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg: &myconfigMsg{
				Patch: &myconfig{Str: "new"},
			},
			MsgConditions: []trust.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "new"},
		},
		"configuration without an owner cannot be updated": {
			Init:          &myconfig{Num: 1},
			Msg:           &myconfigMsg{Patch: &myconfig{Num: 2}},
			MsgConditions: []trust.Condition{cond},
			WantErr:       errors.ErrUnauthorized,
		},
		"missing configuration cannot be created": {
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: cond.Address()}},
			MsgConditions: []trust.Condition{cond},
			WantErr:       errors.ErrUnauthorized,
		},
		"patch is required": {
			Init:          &myconfig{Owner: cond.Address()},
			Msg:           &myconfigMsg{},
			MsgConditions: []trust.Condition{cond},
			WantErr:       errors.ErrState,
		},
		"invalid patch": {
			Init:          &myconfig{Owner: cond.Address()},
			Msg:           &myconfigMsg{Patch: &myconfig{Num: -4}},
			MsgConditions: []trust.Condition{cond},
			WantErr:       errors.ErrInput,
		},
		"message without a patch field": {
			Init:          &myconfig{Owner: cond.Address()},
			Msg:           &trusttest.Msg{RoutePath: "test/update_configuration"},
			MsgConditions: []trust.Condition{cond},
			WantErr:       errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Init != nil {
				assert.Nil(t, Save(db, "mypkg", tc.Init))
			}

			auth := &trusttest.Auth{Signers: tc.MsgConditions}
			h := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth)
			tx := &trusttest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.IsErr(t, tc.WantErr, err)
			cache.Discard()

			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.WantErr, err)

			if tc.WantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.EqualBytes(t, tc.WantConfig.Owner, got.Owner)
				assert.Equal(t, tc.WantConfig.Num, got.Num)
				assert.Equal(t, tc.WantConfig.Str, got.Str)
				assert.Equal(t, tc.WantConfig.Cn, got.Cn)
			}
		})
	}
}
