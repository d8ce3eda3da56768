// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package decimal implements the fixed-point number used by every record of
// the exchange. A Decimal is an unsigned 128-bit integer paired with a
// base-10 scale. Arithmetic is checked and never wraps.
package decimal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	shopspring "github.com/shopspring/decimal"

	safemath "github.com/luxfi/synthvm/utils/math"
)

// Canonical scales.
const (
	USDScale      uint8 = 6
	PriceScale    uint8 = 8
	PercentScale  uint8 = 5
	InterestScale uint8 = 18
)

var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrNegativeResult     = errors.New("negative result")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrInvalidFormat      = errors.New("invalid decimal format")
)

// Decimal represents Value / 10^Scale.
type Decimal struct {
	Value uint256.Int
	Scale uint8
}

// New returns a Decimal with the given raw value.
func New(value uint64, scale uint8) Decimal {
	d := Decimal{Scale: scale}
	d.Value.SetUint64(value)
	return d
}

// FromUint256 returns a Decimal holding value. It fails if value is wider
// than 128 bits.
func FromUint256(value *uint256.Int, scale uint8) (Decimal, error) {
	if !safemath.FitsUint128(value) {
		return Decimal{}, ErrArithmeticOverflow
	}
	d := Decimal{Scale: scale}
	d.Value.Set(value)
	return d, nil
}

// FromInteger returns n whole units at the given scale.
func FromInteger(n uint64, scale uint8) (Decimal, error) {
	denominator, err := denominator(scale)
	if err != nil {
		return Decimal{}, err
	}
	value, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(n), denominator)
	if overflow {
		return Decimal{}, ErrArithmeticOverflow
	}
	return FromUint256(value, scale)
}

// MustFromInteger is FromInteger for constants known to fit.
func MustFromInteger(n uint64, scale uint8) Decimal {
	d, err := FromInteger(n, scale)
	if err != nil {
		panic(err)
	}
	return d
}

// One returns 1.0 at the given scale.
func One(scale uint8) Decimal {
	return MustFromInteger(1, scale)
}

// Zero returns 0 at the given scale.
func Zero(scale uint8) Decimal {
	return Decimal{Scale: scale}
}

func USD(value uint64) Decimal          { return New(value, USDScale) }
func Price(value uint64) Decimal        { return New(value, PriceScale) }
func Percent(value uint64) Decimal      { return New(value, PercentScale) }
func InterestRate(value uint64) Decimal { return New(value, InterestScale) }

// Parse reads a base-10 string such as "831.000110674" into a Decimal with
// the given scale. Digits beyond the scale are rejected.
func Parse(s string, scale uint8) (Decimal, error) {
	parsed, err := shopspring.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if parsed.IsNegative() {
		return Decimal{}, ErrNegativeResult
	}
	shifted := parsed.Shift(int32(scale))
	if !shifted.Equal(shifted.Truncate(0)) {
		return Decimal{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidFormat, s, scale)
	}
	value, overflow := uint256.FromBig(shifted.BigInt())
	if overflow {
		return Decimal{}, ErrArithmeticOverflow
	}
	return FromUint256(value, scale)
}

// Int returns a copy of the raw value.
func (d Decimal) Int() *uint256.Int {
	return new(uint256.Int).Set(&d.Value)
}

func (d Decimal) IsZero() bool {
	return d.Value.IsZero()
}

// ToScale rescales d, truncating any dropped digits.
func (d Decimal) ToScale(scale uint8) (Decimal, error) {
	return d.rescale(scale, false)
}

// ToScaleUp rescales d, rounding any dropped digits up.
func (d Decimal) ToScaleUp(scale uint8) (Decimal, error) {
	return d.rescale(scale, true)
}

func (d Decimal) rescale(scale uint8, up bool) (Decimal, error) {
	switch {
	case scale == d.Scale:
		return d, nil
	case scale > d.Scale:
		factor, err := denominator(scale - d.Scale)
		if err != nil {
			return Decimal{}, err
		}
		value, overflow := new(uint256.Int).MulOverflow(&d.Value, factor)
		if overflow {
			return Decimal{}, ErrArithmeticOverflow
		}
		return FromUint256(value, scale)
	default:
		factor, err := denominator(d.Scale - scale)
		if err != nil {
			return Decimal{}, err
		}
		quotient, remainder := new(uint256.Int), new(uint256.Int)
		quotient.DivMod(&d.Value, factor, remainder)
		if up && !remainder.IsZero() {
			quotient.AddUint64(quotient, 1)
		}
		return FromUint256(quotient, scale)
	}
}

// align returns both operands at the larger of the two scales.
func align(a, b Decimal) (Decimal, Decimal, error) {
	scale := max(a.Scale, b.Scale)
	x, err := a.ToScale(scale)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	y, err := b.ToScale(scale)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	return x, y, nil
}

// Add returns d + other at the larger of the two scales.
func (d Decimal) Add(other Decimal) (Decimal, error) {
	x, y, err := align(d, other)
	if err != nil {
		return Decimal{}, err
	}
	sum, overflow := new(uint256.Int).AddOverflow(&x.Value, &y.Value)
	if overflow {
		return Decimal{}, ErrArithmeticOverflow
	}
	return FromUint256(sum, x.Scale)
}

// Sub returns d - other at the larger of the two scales.
func (d Decimal) Sub(other Decimal) (Decimal, error) {
	x, y, err := align(d, other)
	if err != nil {
		return Decimal{}, err
	}
	if x.Value.Lt(&y.Value) {
		return Decimal{}, ErrNegativeResult
	}
	return Decimal{
		Value: *new(uint256.Int).Sub(&x.Value, &y.Value),
		Scale: x.Scale,
	}, nil
}

// Mul returns d * other truncated to d's scale.
func (d Decimal) Mul(other Decimal) (Decimal, error) {
	return d.mul(other, false)
}

// MulUp returns d * other rounded up to d's scale.
func (d Decimal) MulUp(other Decimal) (Decimal, error) {
	return d.mul(other, true)
}

func (d Decimal) mul(other Decimal, up bool) (Decimal, error) {
	denominator, err := denominator(other.Scale)
	if err != nil {
		return Decimal{}, err
	}
	value, err := mulDiv(&d.Value, &other.Value, denominator, up)
	if err != nil {
		return Decimal{}, err
	}
	return FromUint256(value, d.Scale)
}

// Div returns d / other truncated to d's scale.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	return d.divToScale(other, d.Scale, false)
}

// DivUp returns d / other rounded up to d's scale.
func (d Decimal) DivUp(other Decimal) (Decimal, error) {
	return d.divToScale(other, d.Scale, true)
}

// DivToScale returns d / other expressed at scale, truncated.
func (d Decimal) DivToScale(other Decimal, scale uint8) (Decimal, error) {
	return d.divToScale(other, scale, false)
}

// divToScale computes d.Value * 10^(other.Scale + scale - d.Scale) / other.Value.
func (d Decimal) divToScale(other Decimal, scale uint8, up bool) (Decimal, error) {
	if other.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	exp := int(other.Scale) + int(scale) - int(d.Scale)
	if exp > safemath.MaxPow10 {
		return Decimal{}, ErrArithmeticOverflow
	}
	if exp >= 0 {
		multiplier, err := denominator(uint8(exp))
		if err != nil {
			return Decimal{}, err
		}
		value, err := mulDiv(&d.Value, multiplier, &other.Value, up)
		if err != nil {
			return Decimal{}, err
		}
		return FromUint256(value, scale)
	}

	factor, err := denominator(uint8(-exp))
	if err != nil {
		return Decimal{}, err
	}
	divisor, overflow := new(uint256.Int).MulOverflow(&other.Value, factor)
	if overflow {
		// the divisor exceeds any 128-bit dividend
		if up && !d.IsZero() {
			return New(1, scale), nil
		}
		return Zero(scale), nil
	}
	value, err := mulDiv(&d.Value, uint256.NewInt(1), divisor, up)
	if err != nil {
		return Decimal{}, err
	}
	return FromUint256(value, scale)
}

// Pow raises d to exp using binary exponentiation. Every intermediate product
// is truncated to d's scale.
func (d Decimal) Pow(exp uint64) (Decimal, error) {
	result := One(d.Scale)
	base := d
	for exp > 0 {
		var err error
		if exp&1 == 1 {
			result, err = result.Mul(base)
			if err != nil {
				return Decimal{}, err
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		base, err = base.Mul(base)
		if err != nil {
			return Decimal{}, err
		}
	}
	return result, nil
}

// Cmp compares d and other after rescaling to the larger scale.
func (d Decimal) Cmp(other Decimal) int {
	x, y, err := align(d, other)
	if err != nil {
		// Only the upscaled side can overflow, and it is then larger than
		// any 128-bit value.
		if d.Scale < other.Scale {
			return 1
		}
		return -1
	}
	return x.Value.Cmp(&y.Value)
}

func (d Decimal) Eq(other Decimal) bool  { return d.Cmp(other) == 0 }
func (d Decimal) Lt(other Decimal) bool  { return d.Cmp(other) < 0 }
func (d Decimal) Lte(other Decimal) bool { return d.Cmp(other) <= 0 }
func (d Decimal) Gt(other Decimal) bool  { return d.Cmp(other) > 0 }
func (d Decimal) Gte(other Decimal) bool { return d.Cmp(other) >= 0 }

// Min returns the smaller of d and other, keeping the chosen operand's scale.
func Min(a, b Decimal) Decimal {
	if b.Lt(a) {
		return b
	}
	return a
}

// Human returns d as an arbitrary precision decimal for display.
func (d Decimal) Human() shopspring.Decimal {
	return shopspring.NewFromBigInt(d.Value.ToBig(), -int32(d.Scale))
}

// String formats d with exactly Scale fractional digits.
func (d Decimal) String() string {
	digits := d.Value.Dec()
	if d.Scale == 0 {
		return digits
	}
	scale := int(d.Scale)
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	split := len(digits) - scale
	return digits[:split] + "." + digits[split:]
}

func denominator(scale uint8) (*uint256.Int, error) {
	d, err := safemath.Pow10(scale)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	return d, nil
}

func mulDiv(a, b, c *uint256.Int, up bool) (*uint256.Int, error) {
	var (
		value *uint256.Int
		err   error
	)
	if up {
		value, err = safemath.MulDivUp(a, b, c)
	} else {
		value, err = safemath.MulDiv(a, b, c)
	}
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, safemath.ErrOverflow):
		return nil, ErrArithmeticOverflow
	case errors.Is(err, safemath.ErrDivisionByZero):
		return nil, ErrDivisionByZero
	default:
		return nil, err
	}
}
