package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestSendHandler(t *testing.T) {
	alice := bazaartest.NewCondition()
	bob := bazaartest.NewAddress()

	cases := map[string]struct {
		signer         bazaar.Condition
		msg            bazaar.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantBob        coin.Coin
	}{
		"send": {
			signer:  alice,
			msg:     &SendMsg{Destination: bob, Amount: coin.NewCoinp(4, 0, "BZR")},
			wantBob: coin.NewCoin(4, 0, "BZR"),
		},
		"not signed": {
			msg:            &SendMsg{Destination: bob, Amount: coin.NewCoinp(4, 0, "BZR")},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantBob:        coin.NewCoin(0, 0, "BZR"),
		},
		"insufficient funds are detected on deliver": {
			signer:         alice,
			msg:            &SendMsg{Destination: bob, Amount: coin.NewCoinp(11, 0, "BZR")},
			wantDeliverErr: ErrInsufficientFunds,
			wantBob:        coin.NewCoin(0, 0, "BZR"),
		},
		"missing amount": {
			signer:         alice,
			msg:            &SendMsg{Destination: bob},
			wantCheckErr:   ErrInvalidAmount,
			wantDeliverErr: ErrInvalidAmount,
			wantBob:        coin.NewCoin(0, 0, "BZR"),
		},
		"approve": {
			signer:  alice,
			msg:     &ApproveMsg{Spender: bob, Amount: coin.NewCoinp(1, 0, "BZR")},
			wantBob: coin.NewCoin(0, 0, "BZR"),
		},
		"negative approval": {
			signer:         alice,
			msg:            &ApproveMsg{Spender: bob, Amount: coin.NewCoinp(-1, 0, "BZR")},
			wantCheckErr:   ErrInvalidAmount,
			wantDeliverErr: ErrInvalidAmount,
			wantBob:        coin.NewCoin(0, 0, "BZR"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Issue(db, alice.Address(), coin.NewCoin(10, 0, "BZR")))

			auth := &bazaartest.Auth{Signer: tc.signer}
			var h bazaar.Handler = NewSendHandler(auth, ctrl)
			if _, ok := tc.msg.(*ApproveMsg); ok {
				h = NewApproveHandler(auth, ctrl)
			}
			tx := &bazaartest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := h.Check(context.Background(), cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := h.Deliver(context.Background(), db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			got, err := ctrl.Balance(db, bob, "BZR")
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestGenesis(t *testing.T) {
	owner := bazaartest.NewAddress()
	spender := bazaartest.NewAddress()

	raw, err := json.Marshal(map[string]interface{}{
		"wallets": []interface{}{
			map[string]interface{}{"address": owner, "coins": []string{"10 BZR", "0.5 ALT"}},
		},
		"allowances": []interface{}{
			map[string]interface{}{"owner": owner, "spender": spender, "amount": "3 BZR"},
		},
	})
	assert.Nil(t, err)

	db := store.MemStore()
	var init Initializer
	assert.Nil(t, init.FromGenesis(bazaar.Options{optKey: raw}, db))

	ctrl := NewController()
	got, err := ctrl.Balance(db, owner, "ALT")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(0, 500000000000000000, "ALT"), got)

	allowed, err := ctrl.Allowance(db, owner, spender, "BZR")
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(3, 0, "BZR"), allowed)
}

func TestGenesisRejectsEmptyCoins(t *testing.T) {
	raw := []byte(`{"wallets": [{"address": "` + bazaartest.NewAddress().String() + `", "coins": ["0 BZR"]}]}`)
	var init Initializer
	err := init.FromGenesis(bazaar.Options{optKey: raw}, store.MemStore())
	assert.IsErr(t, ErrInvalidAmount, err)
}
