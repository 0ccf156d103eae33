package bazaar

import (
	"github.com/iov-one/bazaar/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverOrError returns an abci response for DeliverTx,
// converting the error message if present, or using the successful
// DeliverResult
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	return result.ToABCI()
}

// CheckOrError returns an abci response for CheckTx,
// converting the error message if present, or using the successful
// CheckResult
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	return abci.ResponseCheckTx{Data: result.Data, Log: result.Log}
}

// ToABCI converts our internal type into an abci response. Every event
// is flattened into tags, so the transport can index them.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	var tags []common.KVPair
	for _, e := range d.Events {
		tags = append(tags, e.Tags()...)
	}
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: tags,
	}
}
