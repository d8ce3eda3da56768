// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package debt implements the global debt-share pool. Minting xUSD against an
// exchange account issues shares of the pool; the USD value of every
// synthetic not borrowed through a vault is owed pro rata by the share
// holders.
package debt

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/synthvm/utils/math"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
	"github.com/luxfi/synthvm/vms/synthvm/interest"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
)

var (
	ErrSharesOverflow = errors.New("debt shares overflow")
	ErrNoDebt         = errors.New("account has no debt")
)

// Pool is the debt-share singleton.
type Pool struct {
	// DebtShares equals the sum of the shares held by every account.
	DebtShares uint64
	// DebtInterestRate is the nominal annual rate charged on the total debt.
	DebtInterestRate decimal.Decimal
	// AccumulatedDebtInterest is the xUSD minted as interest since it was
	// last withdrawn.
	AccumulatedDebtInterest decimal.Decimal
	LastDebtAdjustment      int64
}

// New returns an empty pool.
func New(rate decimal.Decimal, now int64) Pool {
	return Pool{
		DebtInterestRate:        rate,
		AccumulatedDebtInterest: decimal.Zero(decimal.USDScale),
		LastDebtAdjustment:      now,
	}
}

// TotalDebt values the free supply of every synthetic in USD. Debt rounds up.
// Synthetics without free supply are skipped and need no fresh feed. When
// twap is set the feed's time-weighted price is used where one is published.
func TotalDebt(list *assets.List, snapshot *oracle.Snapshot, now int64, maxDelay uint32, twap bool) (decimal.Decimal, error) {
	total := decimal.Zero(decimal.USDScale)
	for i := uint8(0); i < list.HeadSynthetics; i++ {
		free := list.Synthetics[i].FreeSupply()
		if free.IsZero() {
			continue
		}
		feed, err := list.SyntheticFeed(i, snapshot, now, maxDelay)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("synthetic %d: %w", i, err)
		}
		price := feed.Price
		if twap && !feed.Twap.IsZero() {
			price = feed.Twap
		}
		value, err := health.ValueUp(free, price)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total, err = total.Add(value)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return total, nil
}

// UserDebt is the share of totalDebt owed by an account holding shares,
// rounded up.
func (p *Pool) UserDebt(totalDebt decimal.Decimal, shares uint64) (decimal.Decimal, error) {
	if p.DebtShares == 0 || shares == 0 {
		return decimal.Zero(decimal.USDScale), nil
	}
	totalDebt, err := totalDebt.ToScale(decimal.USDScale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	debt, err := math.MulDivUp(&totalDebt.Value, uint256.NewInt(shares), uint256.NewInt(p.DebtShares))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", decimal.ErrArithmeticOverflow, err)
	}
	return decimal.FromUint256(debt, decimal.USDScale)
}

// NewShares is the number of shares issued for minting amount of xUSD. The
// first mint, or any mint while the pool owes nothing, issues one share per
// raw unit.
func (p *Pool) NewShares(totalDebt, amount decimal.Decimal) (uint64, error) {
	amount, err := amount.ToScale(decimal.USDScale)
	if err != nil {
		return 0, err
	}
	if p.DebtShares == 0 || totalDebt.IsZero() {
		return toShares(&amount.Value)
	}
	totalDebt, err = totalDebt.ToScale(decimal.USDScale)
	if err != nil {
		return 0, err
	}
	shares, err := math.MulDivUp(uint256.NewInt(p.DebtShares), &amount.Value, &totalDebt.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSharesOverflow, err)
	}
	return toShares(shares)
}

// BurnedShares is the number of shares retired when an account owing
// userDebt repays amount. Repaying the whole debt retires every share.
func (*Pool) BurnedShares(userDebt decimal.Decimal, shares uint64, amount decimal.Decimal) (uint64, error) {
	if userDebt.IsZero() {
		return 0, ErrNoDebt
	}
	if amount.Gte(userDebt) {
		return shares, nil
	}
	amount, err := amount.ToScale(decimal.USDScale)
	if err != nil {
		return 0, err
	}
	userDebt, err = userDebt.ToScale(decimal.USDScale)
	if err != nil {
		return 0, err
	}
	burned, err := math.MulDiv(uint256.NewInt(shares), &amount.Value, &userDebt.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSharesOverflow, err)
	}
	return toShares(burned)
}

// Issue adds shares to the pool total.
func (p *Pool) Issue(shares uint64) error {
	total, err := math.Add(p.DebtShares, shares)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSharesOverflow, err)
	}
	p.DebtShares = total
	return nil
}

// Retire removes shares from the pool total.
func (p *Pool) Retire(shares uint64) error {
	total, err := math.Sub(p.DebtShares, shares)
	if err != nil {
		return fmt.Errorf("retire %d of %d shares: %w", shares, p.DebtShares, err)
	}
	p.DebtShares = total
	return nil
}

// Refresh charges interest on the total debt for every whole period since
// LastDebtAdjustment. The interest is minted into the xUSD supply, so every
// share holder owes it pro rata, and is recorded in AccumulatedDebtInterest.
func (p *Pool) Refresh(list *assets.List, snapshot *oracle.Snapshot, now int64, maxDelay uint32) (decimal.Decimal, error) {
	noInterest := decimal.Zero(decimal.USDScale)
	periods, lastAdjustment := interest.Periods(p.LastDebtAdjustment, now)
	if periods == 0 {
		return noInterest, nil
	}

	totalDebt, err := TotalDebt(list, snapshot, now, maxDelay, true)
	if err != nil {
		return noInterest, err
	}
	charged, err := interest.Compounded(totalDebt, p.DebtInterestRate, periods)
	if err != nil {
		return noInterest, err
	}
	accumulated, err := p.AccumulatedDebtInterest.Add(charged)
	if err != nil {
		return noInterest, err
	}
	xusd, err := list.Synthetic(assets.XUSDIndex)
	if err != nil {
		return noInterest, err
	}
	if err := xusd.Inflate(charged); err != nil {
		return noInterest, err
	}

	p.AccumulatedDebtInterest = accumulated
	p.LastDebtAdjustment = lastAdjustment
	return charged, nil
}

// CollectInterest returns the accumulated debt interest and resets it.
func (p *Pool) CollectInterest() decimal.Decimal {
	collected := p.AccumulatedDebtInterest
	p.AccumulatedDebtInterest = decimal.Zero(collected.Scale)
	return collected
}

func toShares(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s shares", ErrSharesOverflow, v.Dec())
	}
	return v.Uint64(), nil
}
