package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

type myconfigMsg struct {
	Patch *myconfig
}

var _ bazaar.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Path() string    { return "mypkg/update_configuration" }
func (msg *myconfigMsg) Validate() error { return nil }

func TestUpdateConfigurationHandler(t *testing.T) {
	admin := bazaartest.NewCondition()
	owner := bazaartest.NewCondition().Address()

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. Use nil to not provide initial state.
		Init *myconfig
		// Admin is returned by the admin function.
		Admin          bazaar.Address
		Msg            bazaar.Msg
		MsgConditions  []bazaar.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init:  &myconfig{Owner: owner, Num: 5125, Str: "foobar", Cn: coin.NewCoinp(10, 409, "BZR")},
			Admin: admin.Address(),
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 333, Str: "boing!", Cn: coin.NewCoinp(4, 4, "XYZ")},
			},
			MsgConditions: []bazaar.Condition{admin},
			WantConfig:    &myconfig{Owner: owner, Num: 333, Str: "boing!", Cn: coin.NewCoinp(4, 4, "XYZ")},
		},
		"configuration can be created": {
			Admin:         admin.Address(),
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: owner, Num: 1}},
			MsgConditions: []bazaar.Condition{admin},
			WantConfig:    &myconfig{Owner: owner, Num: 1},
		},
		"message must be signed by the admin": {
			Init:           &myconfig{Owner: owner, Num: 5125},
			Admin:          admin.Address(),
			Msg:            &myconfigMsg{Patch: &myconfig{Num: 1}},
			MsgConditions:  []bazaar.Condition{bazaartest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantConfig:     &myconfig{Owner: owner, Num: 5125},
		},
		"renounced admin cannot change anything": {
			Init:           &myconfig{Owner: owner, Num: 5125},
			Admin:          nil,
			Msg:            &myconfigMsg{Patch: &myconfig{Num: 1}},
			MsgConditions:  []bazaar.Condition{admin},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init:          &myconfig{Owner: owner, Num: 5125, Str: "foobar", Cn: coin.NewCoinp(10, 409, "BZR")},
			Admin:         admin.Address(),
			Msg:           &myconfigMsg{Patch: &myconfig{Cn: coin.NewCoinp(0, 4, "BZR")}},
			MsgConditions: []bazaar.Condition{admin},
			WantConfig:    &myconfig{Owner: owner, Num: 5125, Str: "foobar", Cn: coin.NewCoinp(0, 4, "BZR")},
		},
		"invalid configuration is not accepted": {
			Init:           &myconfig{Owner: owner, Num: 5125},
			Admin:          admin.Address(),
			Msg:            &myconfigMsg{Patch: &myconfig{Cn: coin.NewCoinp(4, 0, "")}},
			MsgConditions:  []bazaar.Condition{admin},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
		"patch is required": {
			Init:           &myconfig{Owner: owner, Num: 5125},
			Admin:          admin.Address(),
			Msg:            &myconfigMsg{},
			MsgConditions:  []bazaar.Condition{admin},
			WantCheckErr:   errors.ErrState,
			WantDeliverErr: errors.ErrState,
		},
		"message without a patch field": {
			Admin:          admin.Address(),
			Msg:            &bazaartest.Msg{RoutePath: "mypkg/update_configuration"},
			MsgConditions:  []bazaar.Condition{admin},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var c myconfig
			auth := &bazaartest.CtxAuth{Key: "auth"}
			adminFn := func(bazaar.ReadOnlyKVStore) (bazaar.Address, error) { return tc.Admin, nil }
			handler := NewUpdateConfigurationHandler("mypkg", &c, auth, adminFn)

			ctx := bazaar.WithHeight(context.Background(), 999)
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &bazaartest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
