package passport

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticRoles is a role registry with fixed content.
type staticRoles struct {
	governance   bazaar.Address
	marketplaces []bazaar.Address
}

func (r staticRoles) Governance(bazaar.ReadOnlyKVStore) (bazaar.Address, error) {
	return r.governance, nil
}

func (r staticRoles) IsMarketplace(_ bazaar.ReadOnlyKVStore, a bazaar.Address) (bool, error) {
	for _, m := range r.marketplaces {
		if m.Equals(a) {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	db     bazaar.CacheableKVStore
	ctrl   Controller
	gov    bazaar.Address
	market bazaar.Address
}

func newFixture(t testing.TB, conf Configuration) fixture {
	t.Helper()
	f := fixture{
		db:     store.MemStore(),
		gov:    bazaartest.NewAddress(),
		market: bazaartest.NewAddress(),
	}
	f.ctrl = NewController(staticRoles{governance: f.gov, marketplaces: []bazaar.Address{f.market}})
	require.NoError(t, gconf.Save(f.db, packageName, &conf))
	return f
}

func (f fixture) mint(t testing.TB, to ...bazaar.Address) []uint64 {
	t.Helper()
	ids, err := f.ctrl.Mint(f.db, f.gov, to, nil)
	require.NoError(t, err)
	require.Len(t, ids, len(to))
	return ids
}

func TestMintSoftCap(t *testing.T) {
	f := newFixture(t, Configuration{MaxPerAccount: 5})
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()
	carol := bazaartest.NewAddress()

	ids, err := f.ctrl.Mint(f.db, f.gov, []bazaar.Address{alice, bob, carol, f.gov}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4}, ids)

	// Alice holds one, so only four of six recipients are eligible.
	batch := []bazaar.Address{alice, alice, alice, alice, alice, alice}
	ids, err = f.ctrl.Mint(f.db, f.gov, batch, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6, 7, 8}, ids)

	latest, err := f.ctrl.LatestID(f.db)
	require.NoError(t, err)
	assert.EqualValues(t, 8, latest)

	owned, err := f.ctrl.OwnedBy(f.db, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 5, 6, 7, 8}, owned)

	// Transferring away does not free capacity.
	require.NoError(t, f.ctrl.Transfer(f.db, f.gov, alice, bob, 8))
	ids, err = f.ctrl.Mint(f.db, f.gov, []bazaar.Address{alice}, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMint(t *testing.T) {
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()

	cases := map[string]struct {
		caller     func(fixture) bazaar.Address
		recipients []bazaar.Address
		refs       []string
		paused     bool
		wantErr    *errors.Error
		wantIDs    []uint64
	}{
		"governance mints with references": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{alice, bob},
			refs:       []string{"a.json", "b.json"},
			wantIDs:    []uint64{1, 2},
		},
		"references are optional": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{alice},
			wantIDs:    []uint64{1},
		},
		"marketplace cannot mint": {
			caller:     func(f fixture) bazaar.Address { return f.market },
			recipients: []bazaar.Address{alice},
			wantErr:    errors.ErrUnauthorized,
		},
		"unsigned caller cannot mint": {
			caller:     func(fixture) bazaar.Address { return nil },
			recipients: []bazaar.Address{alice},
			wantErr:    errors.ErrUnauthorized,
		},
		"reference count must match": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{alice, bob},
			refs:       []string{"a.json"},
			wantErr:    ErrArityMismatch,
		},
		"more references than recipients": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{alice},
			refs:       []string{"a.json", "b.json"},
			wantErr:    ErrArityMismatch,
		},
		"paused directory": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{alice},
			paused:     true,
			wantErr:    ErrPaused,
		},
		"invalid recipient": {
			caller:     func(f fixture) bazaar.Address { return f.gov },
			recipients: []bazaar.Address{bazaar.Address("short")},
			wantErr:    errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, Configuration{})
			if tc.paused {
				require.NoError(t, f.ctrl.Pause(f.db, f.gov))
			}
			ids, err := f.ctrl.Mint(f.db, tc.caller(f), tc.recipients, tc.refs)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantIDs, ids)

			for i, id := range tc.wantIDs {
				p, err := f.ctrl.Get(f.db, id)
				require.NoError(t, err)
				assert.Equal(t, tc.recipients[i], p.Owner)
				assert.Equal(t, tc.recipients[i], p.Creator)
				assert.False(t, p.Signed)
				if len(tc.refs) != 0 {
					assert.Equal(t, tc.refs[i], p.MetadataRef)
				}
			}
		})
	}
}

func TestSignedPassportStaysWithOwner(t *testing.T) {
	f := newFixture(t, Configuration{})
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()
	id := f.mint(t, alice)[0]

	require.NoError(t, f.ctrl.Sign(f.db, f.gov, id))
	signed, err := f.ctrl.IsSigned(f.db, id)
	require.NoError(t, err)
	assert.True(t, signed)

	for _, transferable := range []bool{false, true, false} {
		require.NoError(t, f.ctrl.SetNGTransferable(f.db, f.gov, transferable))

		err := f.ctrl.Transfer(f.db, alice, alice, bob, id)
		assert.True(t, ErrSignedNotTransferable.Is(err), "owner: %+v", err)
		err = f.ctrl.Transfer(f.db, f.market, alice, bob, id)
		assert.True(t, ErrSignedNotTransferable.Is(err), "marketplace: %+v", err)
	}

	require.NoError(t, f.ctrl.Transfer(f.db, f.gov, alice, bob, id))
	owner, err := f.ctrl.OwnerOf(f.db, id)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
}

func TestTransfer(t *testing.T) {
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()
	stranger := bazaartest.NewAddress()

	cases := map[string]struct {
		caller         func(fixture) bazaar.Address
		from           bazaar.Address
		ngTransferable bool
		signed         bool
		paused         bool
		wantErr        *errors.Error
	}{
		"owner when the policy allows it": {
			caller:         func(fixture) bazaar.Address { return alice },
			from:           alice,
			ngTransferable: true,
		},
		"owner when the policy forbids it": {
			caller:  func(fixture) bazaar.Address { return alice },
			from:    alice,
			wantErr: ErrNotTransferableByPolicy,
		},
		"marketplace is exempt from the policy": {
			caller: func(f fixture) bazaar.Address { return f.market },
			from:   alice,
		},
		"governance moves a signed passport": {
			caller: func(f fixture) bazaar.Address { return f.gov },
			from:   alice,
			signed: true,
		},
		"stranger when the policy allows it": {
			caller:         func(fixture) bazaar.Address { return stranger },
			from:           alice,
			ngTransferable: true,
			wantErr:        errors.ErrUnauthorized,
		},
		"policy is checked before authorization": {
			caller:  func(fixture) bazaar.Address { return stranger },
			from:    alice,
			wantErr: ErrNotTransferableByPolicy,
		},
		"from is not the owner": {
			caller:         func(fixture) bazaar.Address { return bob },
			from:           bob,
			ngTransferable: true,
			wantErr:        ErrNotOwner,
		},
		"paused directory blocks governance too": {
			caller:  func(f fixture) bazaar.Address { return f.gov },
			from:    alice,
			paused:  true,
			wantErr: ErrPaused,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, Configuration{})
			id := f.mint(t, alice)[0]
			if tc.signed {
				require.NoError(t, f.ctrl.Sign(f.db, f.gov, id))
			}
			if tc.ngTransferable {
				require.NoError(t, f.ctrl.SetNGTransferable(f.db, f.gov, true))
			}
			if tc.paused {
				require.NoError(t, f.ctrl.Pause(f.db, f.gov))
			}

			err := f.ctrl.Transfer(f.db, tc.caller(f), tc.from, bob, id)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			want := alice
			if tc.wantErr == nil {
				want = bob
			}
			owner, err := f.ctrl.OwnerOf(f.db, id)
			require.NoError(t, err)
			assert.Equal(t, want, owner)
		})
	}
}

func TestBurn(t *testing.T) {
	f := newFixture(t, Configuration{})
	alice := bazaartest.NewAddress()
	ids := f.mint(t, alice, alice)

	err := f.ctrl.Burn(f.db, f.gov, ids[0])
	assert.True(t, ErrNotOwner.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.Sign(f.db, f.gov, ids[1]))
	err = f.ctrl.Burn(f.db, alice, ids[1])
	assert.True(t, ErrSignedNotBurnable.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.Burn(f.db, alice, ids[0]))
	ok, err := f.ctrl.Exists(f.db, ids[0])
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.ctrl.OwnerOf(f.db, ids[0])
	assert.True(t, ErrInvalidID.Is(err), "%+v", err)
	err = f.ctrl.Burn(f.db, alice, ids[0])
	assert.True(t, ErrInvalidID.Is(err), "%+v", err)

	// Burned ids are never allocated again.
	assert.Equal(t, []uint64{3}, f.mint(t, alice))
}

func TestSingleSignedPerAccount(t *testing.T) {
	f := newFixture(t, Configuration{SingleSignedPerAccount: true})
	alice := bazaartest.NewAddress()
	bob := bazaartest.NewAddress()
	ids := f.mint(t, alice, alice, bob)

	require.NoError(t, f.ctrl.Sign(f.db, f.gov, ids[0]))
	// Signing again is a no-op.
	require.NoError(t, f.ctrl.Sign(f.db, f.gov, ids[0]))

	err := f.ctrl.Sign(f.db, f.gov, ids[1])
	assert.True(t, ErrAlreadySigned.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.Sign(f.db, f.gov, ids[2]))

	err = f.ctrl.Sign(f.db, alice, ids[1])
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}

func TestTokenURI(t *testing.T) {
	f := newFixture(t, Configuration{BaseURI: "https://passport.example/"})
	alice := bazaartest.NewAddress()

	ids, err := f.ctrl.Mint(f.db, f.gov, []bazaar.Address{alice, alice}, []string{"", "QmPassport"})
	require.NoError(t, err)

	uri, err := f.ctrl.TokenURI(f.db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "https://passport.example/1", uri)

	uri, err = f.ctrl.TokenURI(f.db, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "https://passport.example/QmPassport", uri)

	err = f.ctrl.SetTokenURI(f.db, alice, ids[0], "QmOther")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.SetTokenURI(f.db, f.gov, ids[0], "QmOther"))
	uri, err = f.ctrl.TokenURI(f.db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "https://passport.example/QmOther", uri)

	_, err = f.ctrl.TokenURI(f.db, 42)
	assert.True(t, ErrInvalidID.Is(err), "%+v", err)
}

func TestPause(t *testing.T) {
	f := newFixture(t, Configuration{})
	alice := bazaartest.NewAddress()
	id := f.mint(t, alice)[0]

	err := f.ctrl.Pause(f.db, alice)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	err = f.ctrl.Unpause(f.db, f.gov)
	assert.True(t, ErrNotPaused.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.Pause(f.db, f.gov))
	err = f.ctrl.Pause(f.db, f.gov)
	assert.True(t, ErrPaused.Is(err), "%+v", err)

	err = f.ctrl.Sign(f.db, f.gov, id)
	assert.True(t, ErrPaused.Is(err), "%+v", err)
	err = f.ctrl.Burn(f.db, alice, id)
	assert.True(t, ErrPaused.Is(err), "%+v", err)

	require.NoError(t, f.ctrl.Unpause(f.db, f.gov))
	require.NoError(t, f.ctrl.Burn(f.db, alice, id))
}

func TestRenouncedGovernance(t *testing.T) {
	f := newFixture(t, Configuration{})
	f.ctrl = NewController(staticRoles{})

	_, err := f.ctrl.Mint(f.db, f.gov, []bazaar.Address{f.gov}, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	err = f.ctrl.SetNGTransferable(f.db, nil, true)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}
