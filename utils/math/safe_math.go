// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"

	"github.com/holiman/uint256"
)

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// MaxPow10 is the largest exponent supported by Pow10. 10^77 is the largest
// power of ten that fits in 256 bits.
const MaxPow10 = 77

var (
	ErrOverflow       = errors.New("overflow")
	ErrUnderflow      = errors.New("underflow")
	ErrDivisionByZero = errors.New("division by zero")

	// MaxUint128 is 2^128 - 1.
	MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

	pow10 = func() [MaxPow10 + 1]uint256.Int {
		var table [MaxPow10 + 1]uint256.Int
		table[0].SetOne()
		ten := uint256.NewInt(10)
		for i := 1; i <= MaxPow10; i++ {
			table[i].Mul(&table[i-1], ten)
		}
		return table
	}()
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns:
// 1) a - b
// 2) If there is underflow, an error
func Sub[T Unsigned](a, b T) (T, error) {
	if a < b {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns:
// 1) a * b
// 2) If there is overflow, an error
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Pow10 returns a fresh copy of 10^n.
func Pow10(n uint8) (*uint256.Int, error) {
	if n > MaxPow10 {
		return nil, ErrOverflow
	}
	return new(uint256.Int).Set(&pow10[n]), nil
}

// FitsUint128 reports whether x can be stored in 128 bits.
func FitsUint128(x *uint256.Int) bool {
	return x.BitLen() <= 128
}

// MulDiv returns floor(a * b / c) computed with a 256-bit intermediate.
func MulDiv(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivisionByZero
	}
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return product.Div(product, c), nil
}

// MulDivUp returns ceil(a * b / c) computed with a 256-bit intermediate.
func MulDivUp(a, b, c *uint256.Int) (*uint256.Int, error) {
	if c.IsZero() {
		return nil, ErrDivisionByZero
	}
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	quotient, remainder := new(uint256.Int), new(uint256.Int)
	quotient.DivMod(product, c, remainder)
	if !remainder.IsZero() {
		quotient.AddUint64(quotient, 1)
	}
	return quotient, nil
}
