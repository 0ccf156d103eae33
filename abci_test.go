package bazaar

import (
	"fmt"
	"testing"

	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/assert"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{
		Data: []byte{1},
		Log:  "ok",
		Events: []Event{
			NewEvent("passport-minted").With("id", 1).With("owner", "AA"),
			NewEvent("bid-placed").With("slot", 2),
		},
	}
	abciRes := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), abciRes.Code)
	assert.Equal(t, []byte{1}, abciRes.Data)
	if assert.Len(t, abciRes.Tags, 3) {
		assert.Equal(t, "passport-minted.id", string(abciRes.Tags[0].Key))
		assert.Equal(t, "1", string(abciRes.Tags[0].Value))
		assert.Equal(t, "bid-placed.slot", string(abciRes.Tags[2].Key))
	}

	failed := DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "no"), false)
	assert.Equal(t, uint32(2), failed.Code)
	assert.Equal(t, "no: unauthorized", failed.Log)
}

func TestCheckOrError(t *testing.T) {
	res := CheckOrError(&CheckResult{Log: "fine"}, nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, "fine", res.Log)

	failed := CheckOrError(nil, fmt.Errorf("database down"), false)
	assert.Equal(t, uint32(1), failed.Code)
	assert.NotContains(t, failed.Log, "database")
}
