package utils

import (
	"testing"

	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestGuard(t *testing.T) {
	db := store.MemStore()
	g := NewGuard("test/run")

	var calls int
	err := g.Run(db, func() error {
		calls++
		entered, err := g.Entered(db)
		assert.Nil(t, err)
		assert.Equal(t, true, entered)

		// Nested call of the same entry point is rejected.
		err = g.Run(db, func() error {
			calls++
			return nil
		})
		assert.IsErr(t, errors.ErrReentrant, err)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, calls)

	entered, err := g.Entered(db)
	assert.Nil(t, err)
	assert.Equal(t, false, entered)

	// Guard is left after a failure, too.
	err = g.Run(db, func() error { return errors.ErrInput })
	assert.IsErr(t, errors.ErrInput, err)
	err = g.Run(db, func() error { calls++; return nil })
	assert.Nil(t, err)
	assert.Equal(t, 2, calls)
}

func TestGuardsAreIndependent(t *testing.T) {
	db := store.MemStore()
	a, b := NewGuard("test/a"), NewGuard("test/b")
	err := a.Run(db, func() error {
		return b.Run(db, func() error { return nil })
	})
	assert.Nil(t, err)
}
