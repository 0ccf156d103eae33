package app

import (
	"context"
	"fmt"
	"time"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes blocks of transactions over a commit store. It is driven
// by an external transport that orders transactions and verifies their
// signatures. Calls must be serialized by the caller.
type Ledger struct {
	logger  log.Logger
	store   *CommitStore
	handler bazaar.Handler
	init    bazaar.Initializer
	sink    EventSink
	debug   bool

	chainID string

	// baseContext contains context info that is valid for the lifetime
	// of the ledger.
	baseContext bazaar.Context
	// blockContext contains information about the block being executed.
	blockContext bazaar.Context
}

// NewLedger loads the latest state of given store. If the chain was
// initialized before, its chain id is restored.
func NewLedger(store bazaar.CommitKVStore, handler bazaar.Handler, init bazaar.Initializer) (*Ledger, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		store:       cs,
		handler:     handler,
		init:        init,
		sink:        Sinks(nil),
		baseContext: context.Background(),
	}
	l.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		l.chainID = chainID
		l.baseContext = bazaar.WithChainID(l.baseContext, chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	l.blockContext = bazaar.WithHeight(l.baseContext, info.Version)
	return l, nil
}

// WithLogger sets the logger on the ledger and all contexts derived from it.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	l.baseContext = bazaar.WithLogger(l.baseContext, logger)
	if l.blockContext != nil {
		l.blockContext = bazaar.WithLogger(l.blockContext, logger)
	}
	return l
}

// WithSink sets the destination of all emitted events.
func (l *Ledger) WithSink(sink EventSink) *Ledger {
	l.sink = sink
	return l
}

// WithDebug makes the ledger return full error messages of internal errors
// in the transaction results.
func (l *Ledger) WithDebug(debug bool) *Ledger {
	l.debug = debug
	return l
}

// ChainID returns the chain id or an empty string if the chain was not
// initialized yet.
func (l *Ledger) ChainID() string {
	return l.chainID
}

// DeliverStore gives access to the state that transactions are delivered
// to. It is meant for queries of the not yet committed state.
func (l *Ledger) DeliverStore() bazaar.ReadOnlyKVStore {
	return l.store.DeliverStore()
}

// InitChain stores the chain id and loads the genesis state of all
// extensions. It can be called only once for the lifetime of a chain.
func (l *Ledger) InitChain(chainID string, appState bazaar.Options) error {
	if l.chainID != "" {
		return errors.Wrapf(errors.ErrState, "initialized for chain %q", l.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app state")
	}
	db := l.store.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	if l.init != nil {
		if err := l.init.FromGenesis(appState, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}
	l.chainID = chainID
	l.baseContext = bazaar.WithChainID(l.baseContext, chainID)
	l.blockContext = bazaar.WithHeight(l.baseContext, 0)
	l.logger.Info("Chain initialized", "chain_id", chainID)
	return nil
}

// BeginBlock sets the height and time for all transactions of the block.
func (l *Ledger) BeginBlock(height int64, blockTime time.Time) error {
	if l.chainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := bazaar.WithHeight(l.baseContext, height)
	ctx = bazaar.WithBlockTime(ctx, blockTime)
	l.blockContext = ctx
	return nil
}

// Check runs the handler against the check cache. State changes are
// visible to following checks until the next commit.
func (l *Ledger) Check(tx bazaar.Tx) (*bazaar.CheckResult, error) {
	ctx := bazaar.WithLogInfo(l.blockContext,
		"call", "check_tx",
		"path", bazaar.GetPath(tx))
	return l.handler.Check(ctx, l.store.CheckStore(), tx)
}

// CheckTx is Check with the result converted to a transport response.
func (l *Ledger) CheckTx(tx bazaar.Tx) abci.ResponseCheckTx {
	res, err := l.Check(tx)
	return bazaar.CheckOrError(res, err, l.debug)
}

// Deliver runs the handler against the deliver cache and passes all emitted
// events to the sink.
func (l *Ledger) Deliver(tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	path := bazaar.GetPath(tx)
	ctx := bazaar.WithLogInfo(l.blockContext,
		"call", "deliver_tx",
		"path", path)
	res, err := l.handler.Deliver(ctx, l.store.DeliverStore(), tx)
	if err != nil {
		return nil, err
	}
	if len(res.Events) != 0 {
		l.sink.Emit(ctx, path, res.Events)
	}
	return res, nil
}

// DeliverTx is Deliver with the result converted to a transport response.
func (l *Ledger) DeliverTx(tx bazaar.Tx) abci.ResponseDeliverTx {
	res, err := l.Deliver(tx)
	return bazaar.DeliverOrError(res, err, l.debug)
}

// Commit persists all delivered transactions.
func (l *Ledger) Commit() (bazaar.CommitID, error) {
	id, err := l.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	l.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// BlockResult is the outcome of a single block execution.
type BlockResult struct {
	Results  []abci.ResponseDeliverTx
	CommitID bazaar.CommitID
}

// ExecuteBlock delivers all transactions in order and commits the state.
// A failing transaction does not abort the block, its result carries the
// error code.
func (l *Ledger) ExecuteBlock(height int64, blockTime time.Time, txs []bazaar.Tx) (*BlockResult, error) {
	if err := l.BeginBlock(height, blockTime); err != nil {
		return nil, err
	}
	results := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		results[i] = l.DeliverTx(tx)
	}
	id, err := l.Commit()
	if err != nil {
		return nil, err
	}
	return &BlockResult{Results: results, CommitID: id}, nil
}
