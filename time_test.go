package bazaar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/bazaar/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2021-10-05T09:00:00Z"`,
			wantTime: 1633424400,
		},
		"a time as number": {
			raw:      "1633424400",
			wantTime: 1633424400,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := AsUnixTime(time.Unix(1000, 0))
	if got := base.Add(time.Hour); got != 1000+3600 {
		t.Fatalf("unexpected time: %d", got)
	}
	if got := base.Add(-time.Second); got != 999 {
		t.Fatalf("unexpected time: %d", got)
	}
	if !UnixTime(0).IsZero() {
		t.Fatal("zero time must be zero")
	}
	if err := UnixTime(-4).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
