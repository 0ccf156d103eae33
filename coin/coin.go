package coin

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar/errors"
	"github.com/shopspring/decimal"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// Decimals is the number of fractional digits of every amount.
	Decimals = 18

	// MaxInt is the largest whole value we accept
	MaxInt int64 = 999999999999999 // 10^15-1
	// MinInt is the lowest whole value we accept
	MinInt = -MaxInt

	// FracUnit is the smallest numbers we divide by
	FracUnit int64 = 1000000000000000000 // fractional units = 10^18
	// MaxFrac is the highest possible fractional value
	MaxFrac = FracUnit - 1
	// MinFrac is the lowest possible fractional value
	MinFrac = -MaxFrac
)

// Coin is an amount of a single currency. The value is
// Whole + Fractional/10^18 and both parts always carry the same sign.
type Coin struct {
	Whole      int64  `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	Fractional int64  `protobuf:"varint,2,opt,name=fractional,proto3" json:"fractional,omitempty"`
	Ticker     string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

var _ proto.Message = (*Coin)(nil)

// NewCoin creates a new coin object
func NewCoin(whole int64, fractional int64, ticker string) Coin {
	return Coin{
		Whole:      whole,
		Fractional: fractional,
		Ticker:     ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// Decimal returns the exact value of this coin.
func (c Coin) Decimal() decimal.Decimal {
	return decimal.New(c.Whole, 0).Add(decimal.New(c.Fractional, -Decimals))
}

// FromDecimal converts a decimal value into a coin. Digits beyond the 18th
// fractional place are truncated.
func FromDecimal(d decimal.Decimal, ticker string) (Coin, error) {
	whole := d.Truncate(0)
	if whole.GreaterThan(decimal.New(MaxInt, 0)) || whole.LessThan(decimal.New(MinInt, 0)) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s %s", d, ticker)
	}
	frac := d.Sub(whole).Shift(Decimals).Truncate(0)
	return Coin{
		Whole:      whole.IntPart(),
		Fractional: frac.IntPart(),
		Ticker:     ticker,
	}, nil
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Multiply returns the result of a coin value multiplication. This method can
// fail if the result would overflow maximum coin value.
func (c Coin) Multiply(times int64) (Coin, error) {
	return FromDecimal(c.Decimal().Mul(decimal.New(times, 0)), c.Ticker)
}

// Percent returns the given percentage of this coin, truncated to the
// smallest unit. The remainder, c - c.Percent(p), is exact, so splitting a
// payment into a percentage and the rest never creates or loses value.
func (c Coin) Percent(pct int64) (Coin, error) {
	if pct < 0 || pct > 100 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "percentage %d", pct)
	}
	return FromDecimal(c.Decimal().Mul(decimal.New(pct, -2)), c.Ticker)
}

// Split divides the coin into a percentage share and the rest.
//   share + rest == c
func (c Coin) Split(pct int64) (share, rest Coin, err error) {
	share, err = c.Percent(pct)
	if err != nil {
		return Coin{}, Coin{}, err
	}
	rest, err = c.Subtract(share)
	if err != nil {
		return Coin{}, Coin{}, err
	}
	return share, rest, nil
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
	}
	return FromDecimal(c.Decimal().Add(o.Decimal()), c.Ticker)
}

// Negative returns the opposite coins value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker:     c.Ticker,
		Whole:      -1 * c.Whole,
		Fractional: -1 * c.Fractional,
	}
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare will check values of two coins, without
// inspecting the currency code. It is up to the caller
// to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	return c.Decimal().Cmp(o.Decimal())
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker &&
		c.Whole == o.Whole &&
		c.Fractional == o.Fractional
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Whole > 0 ||
		(c.Whole == 0 && c.Fractional > 0)
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0 && c.Fractional >= 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate ensures that the coin is in the valid range
// and valid currency code. It accepts negative values,
// so you may want to make other checks in your business
// logic
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		return errors.ErrOverflow
	}
	if c.Fractional < MinFrac || c.Fractional > MaxFrac {
		return errors.Wrap(errors.ErrOverflow, "fractional")
	}
	// make sure signs match
	if c.Whole != 0 && c.Fractional != 0 &&
		((c.Whole > 0) != (c.Fractional > 0)) {
		return errors.Wrap(errors.ErrState, "mismatched sign")
	}
	return nil
}

// UnmarshalJSON accepts the human readable "<value> <ticker>" string as well
// as the structured form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, we can no longer use Coin
	// type for this.
	var coin struct {
		Whole      int64
		Fractional int64
		Ticker     string
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin(coin)
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	s := c.Decimal().String()
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<whole>[.<fractional>] <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	chunks := strings.Fields(h)
	if len(chunks) != 2 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	d, err := decimal.NewFromString(chunks[0])
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin value %q", chunks[0])
	}
	if d.Exponent() < -Decimals {
		return Coin{}, errors.Wrapf(errors.ErrInput, "more than %d decimals", Decimals)
	}
	if !IsCC(chunks[1]) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", chunks[1])
	}
	return FromDecimal(d, chunks[1])
}
