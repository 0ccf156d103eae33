package bazaar

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a single fact emitted by a handler, for example "passport-minted".
// Attributes are ordered, as they are handed over to indexers.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given type with no attributes.
func NewEvent(typ string) Event {
	return Event{Type: typ}
}

// With returns a copy of the event with one more attribute. Values are
// formatted with fmt, so addresses and coins use their String method.
func (e Event) With(key string, value interface{}) Event {
	attrs := make([]common.KVPair, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, common.KVPair{
		Key:   []byte(key),
		Value: []byte(fmt.Sprint(value)),
	})
	return e
}

// Attr returns the value of the first attribute with given key and
// true, or false if no such attribute exists.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// Tags flattens the event into "type.key" tags.
func (e Event) Tags() []common.KVPair {
	tags := make([]common.KVPair, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		tags = append(tags, common.KVPair{
			Key:   []byte(e.Type + "." + string(a.Key)),
			Value: a.Value,
		})
	}
	return tags
}
