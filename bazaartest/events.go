package bazaartest

import (
	"testing"

	"github.com/iov-one/bazaar"
)

// EventTypes returns the types of given events, in order.
func EventTypes(events []bazaar.Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// EventAttr returns the attribute value of the first event of given type.
// The test fails if there is no such event or attribute.
func EventAttr(t testing.TB, events []bazaar.Event, typ, key string) string {
	t.Helper()
	for _, e := range events {
		if e.Type != typ {
			continue
		}
		v, ok := e.Attr(key)
		if !ok {
			t.Fatalf("event %q has no %q attribute", typ, key)
		}
		return v
	}
	t.Fatalf("no %q event", typ)
	return ""
}
