package iavl

import (
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of iavl nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state. It is the adapter between the
// ledger and an externally provided state engine.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with leveldb backing kept in dir.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return NewCommitStoreFromDB(db)
}

// NewMemCommitStore creates a store that lives only in memory.
func NewMemCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB wraps an existing database.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Written changes land in
// the working tree and become durable with the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	working := treeStore{tree: s.tree}
	return store.NewBTreeCacheWrap(working, store.NewNonAtomicBatch(working), nil)
}

// treeStore exposes the working tree as a KVStore.
type treeStore struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeStore{}

func (t treeStore) Get(key []byte) ([]byte, error) {
	_, val := t.tree.Get(key)
	// An empty value read back from disk can be decoded as nil, which
	// would read as a missing key.
	if val == nil && t.tree.Has(key) {
		return []byte{}, nil
	}
	return val, nil
}

func (t treeStore) Has(key []byte) (bool, error) {
	return t.tree.Has(key), nil
}

func (t treeStore) Set(key, value []byte) error {
	t.tree.Set(key, value)
	return nil
}

func (t treeStore) Delete(key []byte) error {
	t.tree.Remove(key)
	return nil
}

func (t treeStore) Iterator(start, end []byte) (store.Iterator, error) {
	return t.collect(start, end, true), nil
}

func (t treeStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return t.collect(start, end, false), nil
}

func (t treeStore) collect(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	t.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}
