package badge

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
)

func TestHandler(t *testing.T) {
	buyer := bazaartest.NewCondition()
	holder := bazaartest.NewCondition()
	next := crypto.GenPrivKeyEd25519()

	cases := map[string]struct {
		signer     func(fixture) bazaar.Condition
		msg        bazaar.Msg
		wantErr    *errors.Error
		wantEvents []string
	}{
		"governance creates a badge": {
			signer: govSigner,
			msg: &CreateBadgeMsg{
				Creator: holder.Address(),
				Price:   coin.NewCoinp(5, 0, "SPN"),
			},
			wantEvents: []string{"badge-created"},
		},
		"zero price is rejected before delivery": {
			signer: govSigner,
			msg: &CreateBadgeMsg{
				Creator: holder.Address(),
				Price:   coin.NewCoinp(0, 0, "SPN"),
			},
			wantErr: ErrInvalidPrice,
		},
		"batch purchase emits an event per badge": {
			signer:     func(fixture) bazaar.Condition { return buyer },
			msg:        &PurchaseBadgeBatchMsg{IDs: []uint64{1, 1}, Quantities: []uint64{1, 2}},
			wantEvents: []string{"badge-purchased", "badge-purchased"},
		},
		"batch purchase arity": {
			signer:  func(fixture) bazaar.Condition { return buyer },
			msg:     &PurchaseBadgeBatchMsg{IDs: []uint64{1, 1}, Quantities: []uint64{1}},
			wantErr: ErrArityMismatch,
		},
		"gated badge transfer": {
			signer:  func(fixture) bazaar.Condition { return holder },
			msg:     &TransferBadgeMsg{From: holder.Address(), To: buyer.Address(), ID: 2, Quantity: 1},
			wantErr: ErrTransferDisabled,
		},
		"governance changes the signer": {
			signer:     govSigner,
			msg:        &SetSignerMsg{Signer: next.PublicKey()},
			wantEvents: []string{"signer-changed"},
		},
		"empty signer": {
			signer:  govSigner,
			msg:     &SetSignerMsg{},
			wantErr: ErrZeroAddress,
		},
		"owner mints gated badges": {
			signer: ownerSigner,
			msg: &MintBatchMsg{
				Recipients: []bazaar.Address{buyer.Address()},
				IDs:        []uint64{2},
			},
			wantEvents: []string{"badge-minted"},
		},
		"empty uri": {
			signer:  ownerSigner,
			msg:     &SetURIMsg{},
			wantErr: ErrEmptyString,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.fund(t, buyer.Address(), 100)
			_, err := f.ctrl.CreateBadge(f.db, f.gov, holder.Address(), spn(5))
			assert.Nil(t, err)
			gated, err := f.ctrl.CreateGatedBadge(f.db, f.owner)
			assert.Nil(t, err)
			assert.Nil(t, f.ctrl.MintBatch(f.db, f.owner, []bazaar.Address{holder.Address()}, []uint64{gated}, nil))

			rt := &router{handlers: make(map[string]bazaar.Handler)}
			RegisterRoutes(rt, &bazaartest.Auth{Signer: tc.signer(f)}, f.ctrl)
			h := rt.handlers[tc.msg.Path()]

			tx := &bazaartest.Tx{Msg: tc.msg}
			ctx := context.Background()
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

func TestDigestBindsCaller(t *testing.T) {
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()
	recipients := []bazaar.Address{bazaartest.NewAddress()}

	if string(CreateBatchDigest(alice, recipients)) == string(CreateBatchDigest(bob, recipients)) {
		t.Fatal("create batch digest must depend on the caller")
	}
	if string(MintBatchDigest(alice, recipients, []uint64{1})) == string(MintBatchDigest(alice, recipients, []uint64{2})) {
		t.Fatal("mint batch digest must depend on the ids")
	}
	if string(CreateBatchDigest(alice, recipients)) == string(MintBatchDigest(alice, recipients, nil)) {
		t.Fatal("digests of different operations must differ")
	}
}

func govSigner(f fixture) bazaar.Condition { return f.govCond }

func ownerSigner(f fixture) bazaar.Condition { return f.ownerCond }

// router is a minimal registry collecting handlers by path.
type router struct {
	handlers map[string]bazaar.Handler
}

func (r *router) Handle(path string, h bazaar.Handler) {
	r.handlers[path] = h
}
