package bazaartest

import (
	"io/ioutil"
	"reflect"
	"regexp"
	"strconv"
	"testing"

	"github.com/gogo/protobuf/proto"
)

var (
	protoMessage = regexp.MustCompile(`(?ms)^message (\w+) \{\n(.*?)^\}`)
	protoField   = regexp.MustCompile(`(?m)^\s*(?:repeated )?[\w.]+ (\w+) = (\d+)`)
)

// AssertSchema fails the test unless every given model is declared as a
// message in the protobuf schema file and the protobuf tags of its fields
// use exactly the names and numbers of that declaration.
func AssertSchema(t testing.TB, schemaPath string, models ...interface{}) {
	t.Helper()

	raw, err := ioutil.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("cannot read schema: %s", err)
	}
	schema := make(map[string]map[string]int)
	for _, m := range protoMessage.FindAllStringSubmatch(string(raw), -1) {
		fields := make(map[string]int)
		for _, f := range protoField.FindAllStringSubmatch(m[2], -1) {
			n, err := strconv.Atoi(f[2])
			if err != nil {
				t.Fatalf("message %s field %s: %s", m[1], f[1], err)
			}
			fields[f[1]] = n
		}
		schema[m[1]] = fields
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		declared, ok := schema[typ.Name()]
		if !ok {
			t.Errorf("%s is not declared in %s", typ.Name(), schemaPath)
			continue
		}
		var tagged int
		for _, p := range proto.GetProperties(typ).Prop {
			if p.Tag == 0 {
				continue
			}
			tagged++
			n, ok := declared[p.OrigName]
			switch {
			case !ok:
				t.Errorf("%s.%s is not declared", typ.Name(), p.OrigName)
			case n != p.Tag:
				t.Errorf("%s.%s is field %d, declared as %d", typ.Name(), p.OrigName, p.Tag, n)
			}
		}
		if tagged != len(declared) {
			t.Errorf("%s has %d protobuf fields, %d declared", typ.Name(), tagged, len(declared))
		}
	}
}
