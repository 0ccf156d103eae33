package sale

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

func TestHandler(t *testing.T) {
	buyer := bazaartest.NewCondition()

	cases := map[string]struct {
		signer     func(fixture) bazaar.Condition
		msg        bazaar.Msg
		blockTime  bazaar.UnixTime
		wantErr    *errors.Error
		wantEvents []string
	}{
		"seller lists a passport": {
			signer:     sellerSigner,
			msg:        &OpenForSaleMsg{PassportID: 2, PriceAlt: coin.NewCoinp(100, 0, "SPN")},
			wantEvents: []string{"sale-opened"},
		},
		"listing before the start date": {
			signer:    sellerSigner,
			msg:       &OpenForSaleMsg{PassportID: 2, PriceAlt: coin.NewCoinp(100, 0, "SPN")},
			blockTime: startDate - 10,
			wantErr:   ErrSaleNotStarted,
		},
		"listing without a price": {
			signer:  sellerSigner,
			msg:     &OpenForSaleMsg{PassportID: 2},
			wantErr: ErrPricesInvalid,
		},
		"zero passport id": {
			signer:  sellerSigner,
			msg:     &OpenForSaleMsg{PriceAlt: coin.NewCoinp(100, 0, "SPN")},
			wantErr: ErrCallerNotOwnerOrIDInvalid,
		},
		"seller changes the price": {
			signer:     sellerSigner,
			msg:        &SetPriceMsg{PassportID: 1, PriceNative: coin.NewCoinp(2, 0, "ETH")},
			wantEvents: []string{"sale-price-changed"},
		},
		"buyer purchases": {
			signer:     func(fixture) bazaar.Condition { return buyer },
			msg:        &PurchaseMsg{PassportID: 1, Currency: CurrencyNative},
			wantEvents: []string{"sale-purchased"},
		},
		"buyer picks a currency without price": {
			signer:  func(fixture) bazaar.Condition { return buyer },
			msg:     &PurchaseMsg{PassportID: 1, Currency: CurrencyAlt},
			wantErr: ErrPriceInvalid,
		},
		"governance moves the start date": {
			signer:     govSigner,
			msg:        &SetSaleStartDateMsg{StartDate: 1000},
			wantEvents: []string{"sale-start-date-changed"},
		},
		"seller cannot move the start date": {
			signer:  sellerSigner,
			msg:     &SetSaleStartDateMsg{StartDate: 1000},
			wantErr: errors.ErrUnauthorized,
		},
		"governance sweeps": {
			signer:     govSigner,
			msg:        &SweepMsg{Ticker: "ETH", To: bazaartest.NewAddress()},
			wantEvents: []string{"sale-swept"},
		},
		"sweep to nobody": {
			signer:  govSigner,
			msg:     &SweepMsg{Ticker: "ETH"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.fund(t, buyer.Address(), eth(10))
			_, err := f.ctrl.OpenForSale(f.db, now, f.seller, 1, eth(10), coin.Coin{})
			assert.Nil(t, err)

			rt := &router{handlers: make(map[string]bazaar.Handler)}
			RegisterRoutes(rt, &bazaartest.Auth{Signer: tc.signer(f)}, f.ctrl)
			h := rt.handlers[tc.msg.Path()]

			at := now
			if tc.blockTime != 0 {
				at = tc.blockTime
			}
			ctx := bazaar.WithBlockTime(context.Background(), at.Time())
			tx := &bazaartest.Tx{Msg: tc.msg}
			_, checkErr := h.Check(ctx, f.db, tx)
			res, err := h.Deliver(ctx, f.db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Nil(t, checkErr)
				assert.Equal(t, tc.wantEvents, bazaartest.EventTypes(res.Events))
			}
		})
	}
}

func TestPurchaseEvent(t *testing.T) {
	f := newFixture(t)
	buyer := bazaartest.NewCondition()
	f.fund(t, buyer.Address(), eth(10))
	_, err := f.ctrl.OpenForSale(f.db, now, f.seller, 1, eth(10), coin.Coin{})
	assert.Nil(t, err)

	h := Handler{auth: &bazaartest.Auth{Signer: buyer}, ctrl: f.ctrl}
	res, err := h.Deliver(context.Background(), f.db, &bazaartest.Tx{Msg: &PurchaseMsg{PassportID: 1}})
	assert.Nil(t, err)
	assert.Equal(t, f.seller.String(), bazaartest.EventAttr(t, res.Events, "sale-purchased", "seller"))
	assert.Equal(t, eth(1).String(), bazaartest.EventAttr(t, res.Events, "sale-purchased", "royalty"))
}

func TestUpdateRoyalty(t *testing.T) {
	f := newFixture(t)
	rt := &router{handlers: make(map[string]bazaar.Handler)}
	RegisterRoutes(rt, &bazaartest.Auth{Signer: f.govCond}, f.ctrl)

	tx := &bazaartest.Tx{Msg: &UpdateConfigurationMsg{Patch: &Configuration{RoyaltyPercent: 25}}}
	_, err := rt.handlers[pathUpdateConfigurationMsg].Deliver(context.Background(), f.db, tx)
	assert.Nil(t, err)

	var conf Configuration
	assert.Nil(t, gconf.Load(f.db, packageName, &conf))
	assert.Equal(t, uint32(25), conf.RoyaltyPercent)
	assert.Equal(t, "ETH", conf.NativeTicker)
	assert.Equal(t, startDate, conf.SaleStartDate)
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	f := newFixture(t)
	err := (&Initializer{}).FromGenesis(bazaar.Options{}, f.db)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func govSigner(f fixture) bazaar.Condition { return f.govCond }

func sellerSigner(f fixture) bazaar.Condition { return f.sellerCond }

// router is a minimal registry collecting handlers by path.
type router struct {
	handlers map[string]bazaar.Handler
}

func (r *router) Handle(path string, h bazaar.Handler) {
	r.handlers[path] = h
}
