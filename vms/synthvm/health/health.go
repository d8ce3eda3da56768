// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health values positions in USD and gates operations that would
// leave a position undercollateralized. Every function is pure.
package health

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

var (
	// ErrInsufficientCollateral indicates the risk-adjusted collateral
	// value does not cover the debt.
	ErrInsufficientCollateral = errors.New("insufficient collateral")

	// MaxRatio is reported for positions without debt.
	MaxRatio = decimal.Decimal{Value: *new(uint256.Int).SetUint64(^uint64(0)), Scale: decimal.PercentScale}
)

// Value prices amount in USD, truncating.
func Value(amount, price decimal.Decimal) (decimal.Decimal, error) {
	value, err := price.Mul(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value.ToScale(decimal.USDScale)
}

// ValueUp prices amount in USD, rounding up.
func ValueUp(amount, price decimal.Decimal) (decimal.Decimal, error) {
	value, err := price.MulUp(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value.ToScaleUp(decimal.USDScale)
}

// Amount converts a USD value into units of an asset with the given scale,
// truncating.
func Amount(value, price decimal.Decimal, scale uint8) (decimal.Decimal, error) {
	return value.DivToScale(price, scale)
}

// Valuation accumulates the collateral side of a position.
type Valuation struct {
	// CollateralValue is the plain USD value of every collateral.
	CollateralValue decimal.Decimal
	// MaxDebt is the collateral value weighted by each collateral ratio.
	MaxDebt decimal.Decimal
}

// NewValuation returns an empty valuation.
func NewValuation() Valuation {
	return Valuation{
		CollateralValue: decimal.Zero(decimal.USDScale),
		MaxDebt:         decimal.Zero(decimal.USDScale),
	}
}

// Add includes amount of a collateral priced at price with the given ratio.
func (v *Valuation) Add(amount, price, ratio decimal.Decimal) error {
	value, err := Value(amount, price)
	if err != nil {
		return err
	}
	weighted, err := value.Mul(ratio)
	if err != nil {
		return err
	}
	collateralValue, err := v.CollateralValue.Add(value)
	if err != nil {
		return err
	}
	maxDebt, err := v.MaxDebt.Add(weighted)
	if err != nil {
		return err
	}
	v.CollateralValue, v.MaxDebt = collateralValue, maxDebt
	return nil
}

// Ratio returns maxDebt / debt at decimal.PercentScale. A position without
// debt reports MaxRatio.
func Ratio(maxDebt, debt decimal.Decimal) (decimal.Decimal, error) {
	if debt.IsZero() {
		return MaxRatio, nil
	}
	ratio, err := maxDebt.DivToScale(debt, decimal.PercentScale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if ratio.Gt(MaxRatio) {
		return MaxRatio, nil
	}
	return ratio, nil
}

// Check fails with ErrInsufficientCollateral when maxDebt does not cover
// debt, i.e. when the health ratio is below 1.0.
func Check(maxDebt, debt decimal.Decimal) error {
	if maxDebt.Lt(debt) {
		return fmt.Errorf("%w: max debt %s, debt %s", ErrInsufficientCollateral, maxDebt, debt)
	}
	return nil
}

// Liquidatable reports whether collateralValue * threshold < debt.
func Liquidatable(collateralValue, threshold, debt decimal.Decimal) (bool, error) {
	limit, err := collateralValue.Mul(threshold)
	if err != nil {
		return false, err
	}
	return limit.Lt(debt), nil
}
