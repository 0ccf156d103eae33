//nolint
package store

import "github.com/iov-one/bazaar"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = bazaar.ReadOnlyKVStore
type SetDeleter = bazaar.SetDeleter
type KVStore = bazaar.KVStore
type Iterator = bazaar.Iterator
type Batch = bazaar.Batch
type CacheableKVStore = bazaar.CacheableKVStore
type KVCacheWrap = bazaar.KVCacheWrap
type CommitKVStore = bazaar.CommitKVStore
type CommitID = bazaar.CommitID
