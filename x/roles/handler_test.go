package roles

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestHandlers(t *testing.T) {
	gov := bazaartest.NewCondition()
	guest := bazaartest.NewCondition()
	market := bazaartest.NewAddress()

	cases := map[string]struct {
		signer         bazaar.Condition
		msg            bazaar.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantEvent      string
		wantGov        bazaar.Address
		wantMarket     bool
	}{
		"governance hands over the role": {
			signer:    gov,
			msg:       &TransferGovernanceMsg{NewGovernance: guest.Address()},
			wantEvent: "governance-changed",
			wantGov:   guest.Address(),
		},
		"guest cannot take the role": {
			signer:         guest,
			msg:            &TransferGovernanceMsg{NewGovernance: guest.Address()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantGov:        gov.Address(),
		},
		"unsigned transaction is rejected": {
			msg:            &RenounceGovernanceMsg{},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantGov:        gov.Address(),
		},
		"governance renounces": {
			signer:    gov,
			msg:       &RenounceGovernanceMsg{},
			wantEvent: "governance-changed",
			wantGov:   nil,
		},
		"governance approves a marketplace": {
			signer:     gov,
			msg:        &AddMarketplaceMsg{Marketplace: market},
			wantEvent:  "marketplace-added",
			wantGov:    gov.Address(),
			wantMarket: true,
		},
		"invalid marketplace address": {
			signer:         gov,
			msg:            &AddMarketplaceMsg{Marketplace: bazaar.Address("short")},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
			wantGov:        gov.Address(),
		},
		"guest cannot remove a marketplace": {
			signer:         guest,
			msg:            &RemoveMarketplaceMsg{Marketplace: market},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantGov:        gov.Address(),
		},
		"governance removes a marketplace": {
			signer:    gov,
			msg:       &RemoveMarketplaceMsg{Marketplace: market},
			wantEvent: "marketplace-removed",
			wantGov:   gov.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.setGovernance(db, gov.Address()))

			auth := &bazaartest.Auth{Signer: tc.signer}
			rt := &router{handlers: make(map[string]bazaar.Handler)}
			RegisterRoutes(rt, auth, ctrl)
			h := rt.handlers[tc.msg.Path()]

			tx := &bazaartest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantEvent != "" {
				assert.Equal(t, []string{tc.wantEvent}, bazaartest.EventTypes(res.Events))
			}

			got, err := ctrl.Governance(db)
			assert.Nil(t, err)
			assert.Equal(t, true, got.Equals(tc.wantGov))

			ok, err := ctrl.IsMarketplace(db, market)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantMarket, ok)
		})
	}
}

// router is a minimal registry collecting handlers by path.
type router struct {
	handlers map[string]bazaar.Handler
}

func (r *router) Handle(path string, h bazaar.Handler) {
	r.handlers[path] = h
}
