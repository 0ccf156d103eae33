package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/bazaar/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":           {value: nil},
		"nil error":     {value: (*errors.Error)(nil)},
		"nil slice":     {value: []int(nil)},
		"non nil":       {value: fmt.Errorf("x"), wantFail: true},
		"not a nilable": {value: 4, wantFail: true},
		"empty non nil": {value: []int{}, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v", tc.wantFail)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []byte("a"), []byte("a"))
	if r.failed {
		t.Fatal("equal values")
	}
	Equal(&r, 1, int64(1))
	if !r.failed {
		t.Fatal("different types must not be equal")
	}
}

func TestPanics(t *testing.T) {
	var r recorder
	Panics(&r, func() { panic("x") })
	if r.failed {
		t.Fatal("panic was not detected")
	}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("missing panic was not detected")
	}
}
