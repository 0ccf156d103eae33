package iavl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStore(t *testing.T) {
	s := NewMemCommitStore()

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("owner:1"), []byte("alice")))
	require.NoError(t, cache.Set([]byte("owner:2"), []byte("bob")))

	// nothing is visible before write
	got, err := s.Get([]byte("owner:1"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = s.Get([]byte("owner:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), got)

	latest, err := s.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreDiscard(t *testing.T) {
	s := NewMemCommitStore()

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()

	_, err := s.Commit()
	require.NoError(t, err)
	got, err := s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCommitStoreIteration(t *testing.T) {
	s := NewMemCommitStore()
	cache := s.CacheWrap()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, cache.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, cache.Write())

	reader := s.CacheWrap()
	it, err := reader.ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()

	var keys []string
	for {
		k, _, err := it.Next()
		if err != nil {
			break
		}
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}
