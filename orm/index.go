package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Indexer calculates the secondary index keys for a given model. Returning
// no keys means the model is not indexed.
type Indexer func(Model) ([][]byte, error)

// index keeps references from an index value to the primary keys of all
// models that produced this value. Each reference is a separate entry
//
//   _i.<bucket>_<name>:<len><value><primary key>
//
// so that adding or removing a reference never rewrites other references.
type index struct {
	prefix  []byte
	name    string
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) index {
	return index{
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		name:    name,
		indexer: indexer,
		unique:  unique,
	}
}

func (ix index) valuePrefix(value []byte) []byte {
	buf := make([]byte, len(ix.prefix)+2+len(value))
	n := copy(buf, ix.prefix)
	binary.BigEndian.PutUint16(buf[n:], uint16(len(value)))
	copy(buf[n+2:], value)
	return buf
}

func (ix index) refKey(value, pk []byte) []byte {
	return append(ix.valuePrefix(value), pk...)
}

// update removes references of the previous model state and adds
// references of the next one. Any of them can be nil.
func (ix index) update(db bazaar.KVStore, pk []byte, prev, next Model) error {
	var prevKeys, nextKeys [][]byte
	var err error
	if prev != nil {
		if prevKeys, err = ix.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %q", ix.name)
		}
	}
	if next != nil {
		if nextKeys, err = ix.indexer(next); err != nil {
			return errors.Wrapf(err, "index %q", ix.name)
		}
	}

	for _, k := range prevKeys {
		if containsKey(nextKeys, k) {
			continue
		}
		if err := db.Delete(ix.refKey(k, pk)); err != nil {
			return errors.Wrap(err, "remove index reference")
		}
	}
	for _, k := range nextKeys {
		if containsKey(prevKeys, k) {
			continue
		}
		if ix.unique {
			refs, err := ix.refs(db, k)
			if err != nil {
				return err
			}
			if len(refs) != 0 {
				return errors.Wrapf(errors.ErrDuplicate, "index %q", ix.name)
			}
		}
		if err := db.Set(ix.refKey(k, pk), []byte{}); err != nil {
			return errors.Wrap(err, "add index reference")
		}
	}
	return nil
}

// refs returns primary keys of all models indexed under given value, in
// primary key order.
func (ix index) refs(db bazaar.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := ix.valuePrefix(value)
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "index iterator")
	}
	defer it.Release()

	var pks [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return pks, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "index iterator")
		}
		pks = append(pks, key[len(prefix):])
	}
}

func containsKey(keys [][]byte, k []byte) bool {
	for _, x := range keys {
		if bytes.Equal(x, k) {
			return true
		}
	}
	return false
}

// prefixEnd returns the smallest key that is greater than all keys starting
// with given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
