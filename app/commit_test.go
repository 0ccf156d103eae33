package app

import (
	"testing"

	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStore(t *testing.T) {
	backend := iavl.NewMemCommitStore()
	cs, err := NewCommitStore(backend)
	require.NoError(t, err)

	require.NoError(t, cs.DeliverStore().Set([]byte("delivered"), []byte("1")))
	require.NoError(t, cs.CheckStore().Set([]byte("checked"), []byte("1")))

	// Nothing is visible before the commit.
	v, err := backend.Get([]byte("delivered"))
	require.NoError(t, err)
	assert.Nil(t, v)

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)

	v, err = backend.Get([]byte("delivered"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	// Check state never reaches the store.
	v, err = backend.Get([]byte("checked"))
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = cs.CheckStore().Get([]byte("checked"))
	require.NoError(t, err)
	assert.Nil(t, v)

	info, err := cs.CommitInfo()
	require.NoError(t, err)
	assert.Equal(t, id.Version, info.Version)
	assert.Equal(t, id.Hash, info.Hash)
}

func TestChainID(t *testing.T) {
	cs, err := NewCommitStore(iavl.NewMemCommitStore())
	require.NoError(t, err)
	db := cs.DeliverStore()

	got, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	err = saveChainID(db, "x")
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, saveChainID(db, "bazaar-chain"))
	got, err = loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "bazaar-chain", got)

	err = saveChainID(db, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
