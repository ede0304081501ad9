// Package dec adapts github.com/shopspring/decimal for use as a sorted
// map key and order book price/size. It supplies the three things the
// rest of this repository needs from a decimal: total order and value
// equality (0.10 == 0.1), a canonical string form that preserves
// whatever representation the caller supplied, and a normalised token
// for the Kraken checksum.
//
// shopspring/decimal never renders a value in scientific notation —
// Decimal.String always produces the full fixed-point form — which is
// what makes it safe to feed straight into the Kraken normaliser even
// for very small sizes like 0.00000048.
package dec

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"lobkit/errs"
)

// Value is an exact decimal with an optional caller-supplied textual
// form. Two Values compare and hash equal whenever their underlying
// decimal values are equal, regardless of how each was spelled or
// scaled ("0.10" and "0.1" are the same Value for map purposes).
type Value struct {
	d    decimal.Decimal
	text string
	has  bool
}

// FromString parses s as a decimal, preserving s verbatim as the
// canonical string form. Returns an ErrInvalidType-wrapped error if s
// does not parse.
func FromString(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("dec: parse %q: %w: %w", s, errs.ErrInvalidType, err)
	}
	return Value{d: d, text: s, has: true}, nil
}

// FromDecimal wraps an already-parsed decimal.Decimal. Its String
// form falls back to the decimal's own fixed-point rendering.
func FromDecimal(d decimal.Decimal) Value {
	return Value{d: d}
}

// FromFloat64 converts f to the nearest exact decimal representation
// of its IEEE-754 value, the same way decimal.NewFromFloat does.
func FromFloat64(f float64) Value {
	return Value{d: decimal.NewFromFloat(f)}
}

// FromInt wraps an integer as a Value.
func FromInt(i int64) Value {
	return Value{d: decimal.NewFromInt(i)}
}

// Zero is the Value for the decimal 0.
var Zero = Value{d: decimal.Zero}

// Decimal returns the underlying exact decimal.
func (v Value) Decimal() decimal.Decimal {
	return v.d
}

// String returns the caller-supplied text when Value was built from a
// string, and the decimal's own fixed-point form otherwise. It never
// contains scientific notation.
func (v Value) String() string {
	if v.has {
		return v.text
	}
	return v.d.String()
}

// Cmp reports -1, 0, or 1 as v is numerically less than, equal to, or
// greater than o, independent of how either was spelled.
func (v Value) Cmp(o Value) int {
	return v.d.Cmp(o.d)
}

// Equal reports whether v and o are the same decimal value.
func (v Value) Equal(o Value) bool {
	return v.d.Equal(o.d)
}

// IsZero reports whether v is the decimal value 0.
func (v Value) IsZero() bool {
	return v.d.IsZero()
}

// Hash returns a canonical identity string for v suitable as a map
// key: two Values with the same numeric value always produce the same
// Hash, even if their display String differs. It is the reduced
// rational form of the underlying decimal, not its display text.
func (v Value) Hash() string {
	return v.d.Rat().RatString()
}

// KrakenToken renders v the way Kraken's checksum normaliser expects:
// the decimal point removed, leading zeros stripped, and the all-zero
// value rendered as the single character "0". It normalises the full
// fixed-point String, never a scientific-notation rendering.
func (v Value) KrakenToken() string {
	s := v.String()
	s = strings.Replace(s, ".", "", 1)
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
