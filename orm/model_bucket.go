package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db bazaar.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all models referenced by the index under given
	// key. Destination must be a pointer to a slice of models. Returned
	// are the primary keys, in the same order as loaded models.
	ByIndex(db bazaar.ReadOnlyKVStore, indexName string, key []byte, dest interface{}) ([][]byte, error)

	// Put saves given model in the database. If key is nil, the next value
	// of the bucket sequence is used. The primary key is returned.
	Put(db bazaar.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db bazaar.KVStore, key []byte) error

	// Sequence returns the primary key generator of this bucket.
	Sequence() Sequence
}

// ModelBucketOption is a function that modifies a bucket on creation.
type ModelBucketOption func(*modelBucket)

// WithIndex configures the bucket to build a secondary index.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("index " + name + " already registered")
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique)
	}
}

// WithIDSequence replaces the default primary key sequence.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.seq = s
	}
}

// NewModelBucket returns a ModelBucket instance that keeps models of the same
// type as given one. Stored keys use the "<name>:" prefix.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   reflect.TypeOf(m),
		indexes: make(map[string]index),
		seq:     NewSequence(name, "id"),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]index
	seq     Sequence
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %v", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return unmarshalModel(raw, dest)
}

func (mb *modelBucket) Has(db bazaar.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db bazaar.ReadOnlyKVStore, indexName string, key []byte, dest interface{}) ([][]byte, error) {
	ix, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no index %q in %s", indexName, mb.name)
	}

	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	elemType := slice.Elem().Type().Elem()
	if elemType != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "%v cannot be represented as %v", elemType, mb.model)
	}

	pks, err := ix.refs(db, key)
	if err != nil {
		return nil, err
	}
	result := reflect.MakeSlice(slice.Elem().Type(), 0, len(pks))
	for _, pk := range pks {
		m := reflect.New(mb.model.Elem())
		if err := mb.One(db, pk, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %q reference", indexName)
		}
		result = reflect.Append(result, m)
	}
	slice.Elem().Set(result)
	return pks, nil
}

func (mb *modelBucket) Put(db bazaar.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if key == nil {
		var err error
		if key, err = mb.seq.NextVal(db); err != nil {
			return nil, errors.Wrap(err, "next id")
		}
	}

	prev, err := mb.load(db, key)
	if err != nil {
		return nil, err
	}
	for _, ix := range mb.indexes {
		if err := ix.update(db, key, prev, m); err != nil {
			return nil, err
		}
	}

	raw, err := marshalModel(m)
	if err != nil {
		return nil, err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db bazaar.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	for _, ix := range mb.indexes {
		if err := ix.update(db, key, prev, nil); err != nil {
			return err
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Sequence() Sequence {
	return mb.seq
}

// load returns the stored model or nil if it does not exist.
func (mb *modelBucket) load(db bazaar.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.model.Elem()).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
