package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Guard is an in-progress flag of a single mutating entry point. The flag
// lives in the ledger state, next to the data it protects, so any nested
// call that reaches the same entry point while it is running is rejected.
type Guard struct {
	key []byte
}

// NewGuard returns a guard for the named entry point, for example
// "auction/end".
func NewGuard(name string) Guard {
	return Guard{key: []byte("_g:" + name)}
}

// Run executes fn with the guard entered. ErrReentrant is returned, and fn
// is not called, if the guard is already entered. The guard is always left
// once fn returns.
func (g Guard) Run(db bazaar.KVStore, fn func() error) error {
	busy, err := db.Has(g.key)
	if err != nil {
		return errors.Wrap(err, "guard")
	}
	if busy {
		return errors.Wrapf(errors.ErrReentrant, "%s", g.key[3:])
	}
	if err := db.Set(g.key, []byte{1}); err != nil {
		return errors.Wrap(err, "enter guard")
	}
	fnErr := fn()
	if err := db.Delete(g.key); err != nil && fnErr == nil {
		return errors.Wrap(err, "leave guard")
	}
	return fnErr
}

// Entered returns true while the guarded entry point runs.
func (g Guard) Entered(db bazaar.ReadOnlyKVStore) (bool, error) {
	return db.Has(g.key)
}
