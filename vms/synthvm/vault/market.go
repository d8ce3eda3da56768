// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"fmt"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
)

// Prices are the feed prices of the vault's pair at decimal.PriceScale.
type Prices struct {
	Collateral decimal.Decimal
	Synthetic  decimal.Decimal
}

// Position is an entry valued in USD.
type Position struct {
	CollateralValue decimal.Decimal
	// MaxDebt is CollateralValue weighted by the vault's collateral ratio.
	MaxDebt decimal.Decimal
	Debt    decimal.Decimal
}

// LiquidationResult describes a vault liquidation.
type LiquidationResult struct {
	// Repaid is the synthetic debt burned by the liquidator.
	Repaid decimal.Decimal
	// CollateralToLiquidator is the repaid value plus the liquidator penalty.
	CollateralToLiquidator decimal.Decimal
	// CollateralToExchange is the exchange penalty routed to the
	// liquidation fund.
	CollateralToExchange decimal.Decimal
}

// Value prices e at the given prices. Debt rounds up, collateral rounds down.
func (v *Vault) Value(e *Entry, prices Prices) (Position, error) {
	collateralValue, err := health.Value(e.CollateralAmount, prices.Collateral)
	if err != nil {
		return Position{}, err
	}
	maxDebt, err := collateralValue.Mul(v.CollateralRatio)
	if err != nil {
		return Position{}, err
	}
	debt, err := health.ValueUp(e.SyntheticAmount, prices.Synthetic)
	if err != nil {
		return Position{}, err
	}
	return Position{
		CollateralValue: collateralValue,
		MaxDebt:         maxDebt,
		Debt:            debt,
	}, nil
}

func (v *Vault) check(e *Entry, prices Prices) error {
	position, err := v.Value(e, prices)
	if err != nil {
		return err
	}
	return health.Check(position.MaxDebt, position.Debt)
}

// Deposit adds collateral to e. A zero amount is valid and only refreshes.
func (v *Vault) Deposit(e *Entry, amount decimal.Decimal) error {
	collateral, err := e.CollateralAmount.Add(amount)
	if err != nil {
		return err
	}
	reserve, err := v.CollateralReserveBalance.Add(amount)
	if err != nil {
		return err
	}
	e.CollateralAmount = collateral
	v.CollateralReserveBalance = reserve
	return nil
}

// Withdraw removes collateral from e if the remaining collateral still
// covers the entry's debt.
func (v *Vault) Withdraw(e *Entry, amount decimal.Decimal, prices Prices) error {
	if e.CollateralAmount.Lt(amount) {
		return fmt.Errorf("%w: withdraw %s, deposited %s",
			health.ErrInsufficientCollateral, amount, e.CollateralAmount)
	}
	collateral, err := e.CollateralAmount.Sub(amount)
	if err != nil {
		return err
	}
	reserve, err := v.CollateralReserveBalance.Sub(amount)
	if err != nil {
		return err
	}

	next := *e
	next.CollateralAmount = collateral
	if err := v.check(&next, prices); err != nil {
		return err
	}
	e.CollateralAmount = collateral
	v.CollateralReserveBalance = reserve
	return nil
}

// Borrow mints amount of the synthetic against e's collateral.
func (v *Vault) Borrow(e *Entry, synthetic *assets.Synthetic, amount decimal.Decimal, prices Prices) error {
	mintAmount, err := v.MintAmount.Add(amount)
	if err != nil {
		return err
	}
	if mintAmount.Gt(v.MaxBorrow) {
		return fmt.Errorf("%w: mint amount %s, max borrow %s", ErrBorrowLimitExceeded, mintAmount, v.MaxBorrow)
	}
	debt, err := e.SyntheticAmount.Add(amount)
	if err != nil {
		return err
	}

	next := *e
	next.SyntheticAmount = debt
	if err := v.check(&next, prices); err != nil {
		return err
	}
	if err := synthetic.Borrow(amount); err != nil {
		return err
	}
	e.SyntheticAmount = debt
	v.MintAmount = mintAmount
	return nil
}

// Repay burns up to amount of e's debt and returns the amount burned.
func (v *Vault) Repay(e *Entry, synthetic *assets.Synthetic, amount decimal.Decimal) (decimal.Decimal, error) {
	repaid := decimal.Min(amount, e.SyntheticAmount)
	if err := v.reduceDebt(e, synthetic, repaid); err != nil {
		return decimal.Decimal{}, err
	}
	return repaid, nil
}

// Liquidate repays up to LiquidationRatio of e's debt on behalf of a
// liquidator once e's collateral, weighted by LiquidationThreshold, no
// longer covers its debt. The seized collateral is capped at e's collateral
// and the liquidator is paid before the exchange.
func (v *Vault) Liquidate(
	e *Entry,
	synthetic *assets.Synthetic,
	collateral *assets.Collateral,
	amount decimal.Decimal,
	prices Prices,
) (LiquidationResult, error) {
	position, err := v.Value(e, prices)
	if err != nil {
		return LiquidationResult{}, err
	}
	eligible, err := health.Liquidatable(position.CollateralValue, v.LiquidationThreshold, position.Debt)
	if err != nil {
		return LiquidationResult{}, err
	}
	if !eligible {
		return LiquidationResult{}, fmt.Errorf("%w: collateral %s, threshold %s, debt %s",
			ErrLiquidationNotEligible, position.CollateralValue, v.LiquidationThreshold, position.Debt)
	}

	maxRepay, err := e.SyntheticAmount.Mul(v.LiquidationRatio)
	if err != nil {
		return LiquidationResult{}, err
	}
	repaid := decimal.Min(amount, maxRepay)
	repaidValue, err := health.Value(repaid, prices.Synthetic)
	if err != nil {
		return LiquidationResult{}, err
	}

	liquidatorPenalty, err := repaidValue.Mul(v.LiquidationPenaltyLiquidator)
	if err != nil {
		return LiquidationResult{}, err
	}
	liquidatorValue, err := repaidValue.Add(liquidatorPenalty)
	if err != nil {
		return LiquidationResult{}, err
	}
	exchangeValue, err := repaidValue.Mul(v.LiquidationPenaltyExchange)
	if err != nil {
		return LiquidationResult{}, err
	}

	scale := e.CollateralAmount.Scale
	toLiquidator, err := health.Amount(liquidatorValue, prices.Collateral, scale)
	if err != nil {
		return LiquidationResult{}, err
	}
	toExchange, err := health.Amount(exchangeValue, prices.Collateral, scale)
	if err != nil {
		return LiquidationResult{}, err
	}
	toLiquidator = decimal.Min(toLiquidator, e.CollateralAmount)
	remaining, err := e.CollateralAmount.Sub(toLiquidator)
	if err != nil {
		return LiquidationResult{}, err
	}
	toExchange = decimal.Min(toExchange, remaining)
	seized, err := toLiquidator.Add(toExchange)
	if err != nil {
		return LiquidationResult{}, err
	}

	collateralAmount, err := e.CollateralAmount.Sub(seized)
	if err != nil {
		return LiquidationResult{}, err
	}
	reserve, err := v.CollateralReserveBalance.Sub(seized)
	if err != nil {
		return LiquidationResult{}, err
	}
	fund, err := collateral.LiquidationFund.Add(toExchange)
	if err != nil {
		return LiquidationResult{}, err
	}
	if err := v.reduceDebt(e, synthetic, repaid); err != nil {
		return LiquidationResult{}, err
	}
	e.CollateralAmount = collateralAmount
	v.CollateralReserveBalance = reserve
	collateral.LiquidationFund = fund
	return LiquidationResult{
		Repaid:                 repaid,
		CollateralToLiquidator: toLiquidator,
		CollateralToExchange:   toExchange,
	}, nil
}

// reduceDebt lowers e's debt, the vault's mint amount and the synthetic's
// supply by amount.
func (v *Vault) reduceDebt(e *Entry, synthetic *assets.Synthetic, amount decimal.Decimal) error {
	debt, err := e.SyntheticAmount.Sub(amount)
	if err != nil {
		return err
	}
	mintAmount, err := v.MintAmount.Sub(amount)
	if err != nil {
		return err
	}
	if err := synthetic.Repay(amount); err != nil {
		return err
	}
	e.SyntheticAmount = debt
	v.MintAmount = mintAmount
	return nil
}
