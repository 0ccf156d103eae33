package store

import (
	"bytes"

	"github.com/iov-one/bazaar/errors"
)

// cacheIterator merges cached writes with the iterator of the backing
// store. A cached entry shadows a parent entry with the same key, and a
// cached delete hides it.
type cacheIterator struct {
	cached []keyer
	pos    int

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentHas  bool
	parentDone bool

	ascending bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(cached []keyer, parent Iterator, ascending bool) *cacheIterator {
	return &cacheIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
}

func (it *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := it.peekParent(); err != nil {
			return nil, nil, err
		}

		if it.pos >= len(it.cached) {
			if it.parentDone {
				return nil, nil, errors.ErrIteratorDone
			}
			return it.takeParent()
		}

		item := it.cached[it.pos]
		if !it.parentDone {
			cmp := bytes.Compare(item.Key(), it.parentKey)
			if !it.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return it.takeParent()
			}
			if cmp == 0 {
				// Cache shadows the parent value.
				it.parentHas = false
			}
		}

		it.pos++
		if s, ok := item.(setItem); ok {
			return s.key, s.value, nil
		}
	}
}

func (it *cacheIterator) peekParent() error {
	if it.parentHas || it.parentDone {
		return nil
	}
	k, v, err := it.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		it.parentDone = true
		return nil
	case err != nil:
		return err
	}
	it.parentKey, it.parentVal, it.parentHas = k, v, true
	return nil
}

func (it *cacheIterator) takeParent() ([]byte, []byte, error) {
	it.parentHas = false
	return it.parentKey, it.parentVal, nil
}

func (it *cacheIterator) Release() {
	it.parent.Release()
	it.cached = nil
}
