package coin

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const half = FracUnit / 2

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, MaxFrac, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		fn      func() (Coin, error)
		want    Coin
		wantErr *errors.Error
	}{
		"add carries the fractional part": {
			fn:   func() (Coin, error) { return NewCoin(1, half, "BZR").Add(NewCoin(2, half+1, "BZR")) },
			want: NewCoin(4, 1, "BZR"),
		},
		"add different currencies": {
			fn:      func() (Coin, error) { return NewCoin(1, 0, "BZR").Add(NewCoin(1, 0, "ALT")) },
			wantErr: errors.ErrCurrency,
		},
		"add to a zero value without ticker": {
			fn:   func() (Coin, error) { return Coin{}.Add(NewCoin(3, 0, "BZR")) },
			want: NewCoin(3, 0, "BZR"),
		},
		"subtract borrows from whole": {
			fn:   func() (Coin, error) { return NewCoin(5, 0, "BZR").Subtract(NewCoin(0, half, "BZR")) },
			want: NewCoin(4, half, "BZR"),
		},
		"subtract below zero": {
			fn:   func() (Coin, error) { return NewCoin(1, 0, "BZR").Subtract(NewCoin(1, half, "BZR")) },
			want: NewCoin(0, -half, "BZR"),
		},
		"multiply price by quantity": {
			fn:   func() (Coin, error) { return NewCoin(5, 0, "BZR").Multiply(3) },
			want: NewCoin(15, 0, "BZR"),
		},
		"multiply fractional": {
			fn:   func() (Coin, error) { return NewCoin(0, half, "BZR").Multiply(3) },
			want: NewCoin(1, half, "BZR"),
		},
		"multiply overflow": {
			fn:      func() (Coin, error) { return NewCoin(MaxInt, 0, "BZR").Multiply(2) },
			wantErr: errors.ErrOverflow,
		},
		"five percent fee": {
			fn:   func() (Coin, error) { return NewCoin(1200, 0, "BZR").Percent(5) },
			want: NewCoin(60, 0, "BZR"),
		},
		"percent out of range": {
			fn:      func() (Coin, error) { return NewCoin(1, 0, "BZR").Percent(101) },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.fn()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSplitConservesValue(t *testing.T) {
	amounts := []Coin{
		NewCoin(1200, 0, "BZR"),
		NewCoin(0, 7, "BZR"),
		NewCoin(33, 333333333333333333, "BZR"),
	}
	for _, amount := range amounts {
		share, rest, err := amount.Split(7)
		require.NoError(t, err)
		sum, err := share.Add(rest)
		require.NoError(t, err)
		assert.True(t, amount.Equals(sum), "%s != %s + %s", amount, share, rest)
		assert.True(t, share.IsNonNegative())
		assert.True(t, rest.IsNonNegative())
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":              {coin: NewCoin(1, 5, "BZR")},
		"bad ticker":         {coin: NewCoin(1, 5, "bzr"), wantErr: errors.ErrCurrency},
		"whole overflow":     {coin: NewCoin(MaxInt+1, 0, "BZR"), wantErr: errors.ErrOverflow},
		"fractional too big": {coin: NewCoin(1, FracUnit, "BZR"), wantErr: errors.ErrOverflow},
		"mismatched sign":    {coin: NewCoin(1, -5, "BZR"), wantErr: errors.ErrState},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"whole":            {raw: "15 BZR", want: NewCoin(15, 0, "BZR")},
		"fractional":       {raw: "1.5 ALT", want: NewCoin(1, half, "ALT")},
		"smallest unit":    {raw: "0.000000000000000001 ALT", want: NewCoin(0, 1, "ALT")},
		"too precise":      {raw: "0.0000000000000000001 ALT", wantErr: errors.ErrInput},
		"missing ticker":   {raw: "15", wantErr: errors.ErrInput},
		"invalid ticker":   {raw: "15 bzr", wantErr: errors.ErrCurrency},
		"not a number":     {raw: "x BZR", wantErr: errors.ErrInput},
		"negative allowed": {raw: "-2.5 BZR", want: NewCoin(-2, -half, "BZR")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				again, err := ParseHumanFormat(got.String())
				require.NoError(t, err)
				assert.Equal(t, got, again)
			}
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`"2.25 BZR"`), &c))
	assert.Equal(t, NewCoin(2, FracUnit/4, "BZR"), c)

	require.NoError(t, json.Unmarshal([]byte(`{"whole": 3, "ticker": "ALT"}`), &c))
	assert.Equal(t, NewCoin(3, 0, "ALT"), c)
}

func TestCoinProtobuf(t *testing.T) {
	c := NewCoinp(7, half, "BZR")
	raw, err := proto.Marshal(c)
	require.NoError(t, err)

	var got Coin
	require.NoError(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, *c, got)
}
