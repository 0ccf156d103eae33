package auction

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x/roles"
)

func TestHandler(t *testing.T) {
	bidder := bazaartest.NewCondition()
	other := bazaartest.NewCondition()

	cases := map[string]struct {
		signer     func(fixture) bazaar.Condition
		msg        bazaar.Msg
		blockTime  bazaar.UnixTime
		wantErr    *errors.Error
		wantEvents []string
	}{
		"seller auctions a passport": {
			signer: sellerSigner,
			msg: &CreateAuctionMsg{
				PassportID: 2,
				FloorPrice: coin.NewCoinp(10, 0, "SPN"),
				StartTime:  start,
				EndTime:    end,
			},
			wantEvents: []string{"auction-created"},
		},
		"auction times are checked before delivery": {
			signer: sellerSigner,
			msg: &CreateAuctionMsg{
				PassportID: 2,
				FloorPrice: coin.NewCoinp(10, 0, "SPN"),
				StartTime:  end,
				EndTime:    end,
			},
			wantErr: ErrInvalidTimes,
		},
		"another bidder bids": {
			signer:     func(fixture) bazaar.Condition { return other },
			msg:        &PlaceBidMsg{PassportID: 1, Amount: coin.NewCoinp(1100, 0, "SPN")},
			wantEvents: []string{"bid-placed"},
		},
		"late bid": {
			signer:    func(fixture) bazaar.Condition { return other },
			msg:       &PlaceBidMsg{PassportID: 1, Amount: coin.NewCoinp(1100, 0, "SPN")},
			blockTime: end + 1,
			wantErr:   ErrAuctionEnded,
		},
		"second bid of the same bidder": {
			signer:  func(fixture) bazaar.Condition { return bidder },
			msg:     &PlaceBidMsg{PassportID: 1, Amount: coin.NewCoinp(1500, 0, "SPN")},
			wantErr: ErrCallerAlreadyBid,
		},
		"zero bid": {
			signer:  func(fixture) bazaar.Condition { return other },
			msg:     &PlaceBidMsg{PassportID: 1, Amount: coin.NewCoinp(0, 0, "SPN")},
			wantErr: ErrBidAmountInvalid,
		},
		"bidder cancels": {
			signer:     func(fixture) bazaar.Condition { return bidder },
			msg:        &CancelBidMsg{PassportID: 1},
			wantEvents: []string{"bid-cancelled"},
		},
		"cancel without a bid": {
			signer:  func(fixture) bazaar.Condition { return other },
			msg:     &CancelBidMsg{PassportID: 1},
			wantErr: ErrCallerNoBid,
		},
		"seller settles": {
			signer:     sellerSigner,
			msg:        &EndAuctionMsg{PassportID: 1, WinningIndex: 1},
			wantEvents: []string{"auction-settled"},
		},
		"bidder cannot settle": {
			signer:  func(fixture) bazaar.Condition { return bidder },
			msg:     &EndAuctionMsg{PassportID: 1, WinningIndex: 1},
			wantErr: ErrNotSeller,
		},
		"seller cannot withdraw an auction with bids": {
			signer:  sellerSigner,
			msg:     &CancelAuctionMsg{PassportID: 1},
			wantErr: ErrAuctionHasBids,
		},
		"sentinel slot cannot win": {
			signer:  sellerSigner,
			msg:     &EndAuctionMsg{PassportID: 1},
			wantErr: ErrBidIndexInvalid,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.open(t, 1, 1000)
			for _, c := range []bazaar.Condition{bidder, other} {
				f.fund(t, c.Address(), 2000)
			}
			_, err := f.ctrl.PlaceBid(f.db, now, bidder.Address(), 1, spn(1200))
			assert.Nil(t, err)

			rt := &router{handlers: make(map[string]bazaar.Handler)}
			RegisterRoutes(rt, &bazaartest.Auth{Signer: tc.signer(f)}, f.ctrl, roles.NewController())
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

func TestSettlementEvent(t *testing.T) {
	f := newFixture(t).withCollector(t)
	f.open(t, 1, 1000)
	winner := bazaartest.NewAddress()
	f.fund(t, winner, 1200)
	_, err := f.ctrl.PlaceBid(f.db, now, winner, 1, spn(1200))
	assert.Nil(t, err)

	h := NewHandler(&bazaartest.Auth{Signer: f.sellerCond}, f.ctrl)
	tx := &bazaartest.Tx{Msg: &EndAuctionMsg{PassportID: 1, WinningIndex: 1}}
	res, err := h.Deliver(context.Background(), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, winner.String(), bazaartest.EventAttr(t, res.Events, "auction-settled", "winner"))
	assert.Equal(t, spn(60).String(), bazaartest.EventAttr(t, res.Events, "auction-settled", "fee"))
	assert.Equal(t, "0", bazaartest.EventAttr(t, res.Events, "auction-settled", "refunded"))
}

func TestCancelAuctionEvent(t *testing.T) {
	f := newFixture(t)
	f.open(t, 2, 10)

	h := NewHandler(&bazaartest.Auth{Signer: f.sellerCond}, f.ctrl)
	tx := &bazaartest.Tx{Msg: &CancelAuctionMsg{PassportID: 2}}
	res, err := h.Deliver(context.Background(), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"auction-cancelled"}, bazaartest.EventTypes(res.Events))
	assert.Equal(t, f.seller.String(), bazaartest.EventAttr(t, res.Events, "auction-cancelled", "seller"))
	assert.Equal(t, f.seller, f.owner(t, 2))
}

func TestBidRequiresBlockTime(t *testing.T) {
	f := newFixture(t)
	f.open(t, 1, 10)
	bidder := bazaartest.NewCondition()
	f.fund(t, bidder.Address(), 10)

	h := NewHandler(&bazaartest.Auth{Signer: bidder}, f.ctrl)
	tx := &bazaartest.Tx{Msg: &PlaceBidMsg{PassportID: 1, Amount: coin.NewCoinp(10, 0, "SPN")}}
	_, err := h.Deliver(context.Background(), f.db, tx)
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestUpdateConfiguration(t *testing.T) {
	f := newFixture(t).withCollector(t)
	rt := &router{handlers: make(map[string]bazaar.Handler)}
	RegisterRoutes(rt, &bazaartest.Auth{Signer: f.govCond}, f.ctrl, roles.NewController())

	tx := &bazaartest.Tx{Msg: &UpdateConfigurationMsg{Patch: &Configuration{FeePercent: 10}}}
	_, err := rt.handlers[pathUpdateConfigurationMsg].Deliver(context.Background(), f.db, tx)
	assert.Nil(t, err)

	var conf Configuration
	assert.Nil(t, gconf.Load(f.db, packageName, &conf))
	assert.Equal(t, uint32(10), conf.FeePercent)
	assert.Equal(t, f.collector, conf.FeeCollector)
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, (&Initializer{}).FromGenesis(bazaar.Options{}, f.db))
	conf, err := loadConf(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint32(DefaultFeePercent), conf.FeePercent)
}

func sellerSigner(f fixture) bazaar.Condition { return f.sellerCond }

// router is a minimal registry collecting handlers by path.
type router struct {
	handlers map[string]bazaar.Handler
}

func (r *router) Handle(path string, h bazaar.Handler) {
	r.handlers[path] = h
}
