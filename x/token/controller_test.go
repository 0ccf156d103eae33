package token

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()

	cases := map[string]struct {
		amount    coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coin
		wantBob   coin.Coin
	}{
		"whole balance": {
			amount:    coin.NewCoin(10, 0, "BZR"),
			wantAlice: coin.NewCoin(0, 0, "BZR"),
			wantBob:   coin.NewCoin(10, 0, "BZR"),
		},
		"fractional amount": {
			amount:    coin.NewCoin(2, 500000000000000000, "BZR"),
			wantAlice: coin.NewCoin(7, 500000000000000000, "BZR"),
			wantBob:   coin.NewCoin(2, 500000000000000000, "BZR"),
		},
		"more than the balance": {
			amount:    coin.NewCoin(10, 1, "BZR"),
			wantErr:   ErrInsufficientFunds,
			wantAlice: coin.NewCoin(10, 0, "BZR"),
			wantBob:   coin.NewCoin(0, 0, "BZR"),
		},
		"currency without a wallet": {
			amount:    coin.NewCoin(1, 0, "ALT"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.NewCoin(10, 0, "BZR"),
			wantBob:   coin.NewCoin(0, 0, "BZR"),
		},
		"zero amount": {
			amount:    coin.NewCoin(0, 0, "BZR"),
			wantErr:   ErrInvalidAmount,
			wantAlice: coin.NewCoin(10, 0, "BZR"),
			wantBob:   coin.NewCoin(0, 0, "BZR"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.Issue(db, alice, coin.NewCoin(10, 0, "BZR")))

			cache := db.CacheWrap()
			err := ctrl.Transfer(cache, alice, bob, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				require.NoError(t, cache.Write())
			} else {
				cache.Discard()
			}

			got, err := ctrl.Balance(db, alice, "BZR")
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob, "BZR")
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferFrom(t *testing.T) {
	owner := bazaartest.NewAddress()
	spender := bazaartest.NewAddress()
	dest := bazaartest.NewAddress()

	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.Issue(db, owner, coin.NewCoin(100, 0, "BZR")))

	// No allowance yet.
	err := ctrl.TransferFrom(db, spender, owner, dest, coin.NewCoin(1, 0, "BZR"))
	assert.True(t, ErrInsufficientAllowance.Is(err))

	require.NoError(t, ctrl.Approve(db, owner, spender, coin.NewCoin(30, 0, "BZR")))
	require.NoError(t, ctrl.TransferFrom(db, spender, owner, dest, coin.NewCoin(20, 0, "BZR")))

	left, err := ctrl.Allowance(db, owner, spender, "BZR")
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(10, 0, "BZR"), left)

	err = ctrl.TransferFrom(db, spender, owner, dest, coin.NewCoin(11, 0, "BZR"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// The rest of the allowance can be spent, after which it is gone.
	require.NoError(t, ctrl.TransferFrom(db, spender, owner, dest, coin.NewCoin(10, 0, "BZR")))
	left, err = ctrl.Allowance(db, owner, spender, "BZR")
	require.NoError(t, err)
	assert.True(t, left.IsZero())

	// Owner does not need an allowance.
	require.NoError(t, ctrl.TransferFrom(db, owner, owner, dest, coin.NewCoin(5, 0, "BZR")))

	got, err := ctrl.Balance(db, dest, "BZR")
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(35, 0, "BZR"), got)
	got, err = ctrl.Balance(db, owner, "BZR")
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(65, 0, "BZR"), got)
}

func TestAllowanceIsPerCurrency(t *testing.T) {
	owner := bazaartest.NewAddress()
	spender := bazaartest.NewAddress()

	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.Issue(db, owner, coin.NewCoin(5, 0, "ALT")))
	require.NoError(t, ctrl.Approve(db, owner, spender, coin.NewCoin(5, 0, "BZR")))

	err := ctrl.TransferFrom(db, spender, owner, spender, coin.NewCoin(1, 0, "ALT"))
	assert.True(t, ErrInsufficientAllowance.Is(err))
}

func TestWallets(t *testing.T) {
	owner := bazaartest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.Issue(db, owner, coin.NewCoin(1, 0, "ALT")))
	require.NoError(t, ctrl.Issue(db, owner, coin.NewCoin(2, 0, "BZR")))
	require.NoError(t, ctrl.Issue(db, bazaartest.NewAddress(), coin.NewCoin(3, 0, "BZR")))

	wallets, err := ctrl.Wallets(db, owner)
	require.NoError(t, err)
	var tickers []string
	for _, w := range wallets {
		assert.Equal(t, bazaar.Address(owner), w.Owner)
		tickers = append(tickers, w.Balance.Ticker)
	}
	assert.ElementsMatch(t, []string{"ALT", "BZR"}, tickers)
}
