package store

import "github.com/iov-one/bazaar/errors"

// OpType is the kind of a single recorded write.
type OpType int32

const (
	SetOp OpType = iota + 1
	DelOp
)

// Op is one Set or Delete recorded by a batch, in order.
type Op struct {
	Kind  OpType
	Key   []byte
	Value []byte
}

// Apply performs the recorded operation on the given store.
func (o Op) Apply(out SetDeleter) error {
	switch o.Kind {
	case SetOp:
		return out.Set(o.Key, o.Value)
	case DelOp:
		return out.Delete(o.Key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown op %d", o.Kind)
	}
}

// NonAtomicBatch just piles up ops and executes them later
// on the underlying store. Can be used when there is no better
// option (for in-memory stores).
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written
// to the KVStore
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set adds a set operation to the batch
func (b *NonAtomicBatch) Set(key, value []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.ops = append(b.ops, Op{Kind: SetOp, Key: key, Value: value})
	return nil
}

// Delete adds a delete operation to the batch
func (b *NonAtomicBatch) Delete(key []byte) error {
	if key == nil {
		panic("nil key")
	}
	b.ops = append(b.ops, Op{Kind: DelOp, Key: key})
	return nil
}

// Write writes all the ops to the underlying store and resets
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps is intended for testing only
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
