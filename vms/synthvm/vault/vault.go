// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault implements isolated lending markets for a single
// (collateral, synthetic) pair.
//
// Interest is accrued on the vault first, which grows the aggregate debt and
// the accumulated interest rate. Entries catch up lazily: on their next touch
// the borrowed amount is rescaled by the ratio between the vault's current
// rate and the rate the entry last saw.
//
// MintAmount always equals the sum of the entries' debts plus
// PendingInterest, the accrued interest no entry has claimed yet. Entries
// round their own interest up, so an entry may claim more than is pending;
// the excess is minted on the spot.
package vault

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/interest"
)

var (
	ErrVaultEntryNotFound     = errors.New("vault entry not found")
	ErrBorrowLimitExceeded    = errors.New("vault borrow limit exceeded")
	ErrLiquidationNotEligible = errors.New("vault entry is not eligible for liquidation")
	ErrInvalidParams          = errors.New("invalid vault parameters")
	ErrWrongVault             = errors.New("entry does not belong to vault")
)

// Key identifies a vault.
type Key struct {
	Collateral uint8
	Synthetic  uint8
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.Collateral, k.Synthetic)
}

// Params are the static risk parameters of a vault. Ratios and penalties
// are at decimal.PercentScale.
type Params struct {
	// DebtInterestRate is the nominal annual rate.
	DebtInterestRate             decimal.Decimal
	CollateralRatio              decimal.Decimal
	LiquidationThreshold         decimal.Decimal
	LiquidationRatio             decimal.Decimal
	LiquidationPenaltyExchange   decimal.Decimal
	LiquidationPenaltyLiquidator decimal.Decimal
	MaxBorrow                    decimal.Decimal
}

// Verify checks that every ratio is a fraction and that the liquidation
// threshold sits between the collateral ratio and 100%.
func (p Params) Verify() error {
	one := decimal.One(decimal.PercentScale)
	switch {
	case p.CollateralRatio.IsZero() || p.CollateralRatio.Gt(one):
		return fmt.Errorf("%w: collateral ratio %s", ErrInvalidParams, p.CollateralRatio)
	case p.LiquidationThreshold.Lt(p.CollateralRatio) || p.LiquidationThreshold.Gt(one):
		return fmt.Errorf("%w: liquidation threshold %s", ErrInvalidParams, p.LiquidationThreshold)
	case p.LiquidationRatio.IsZero() || p.LiquidationRatio.Gt(one):
		return fmt.Errorf("%w: liquidation ratio %s", ErrInvalidParams, p.LiquidationRatio)
	case p.LiquidationPenaltyExchange.Gt(one):
		return fmt.Errorf("%w: exchange penalty %s", ErrInvalidParams, p.LiquidationPenaltyExchange)
	case p.LiquidationPenaltyLiquidator.Gt(one):
		return fmt.Errorf("%w: liquidator penalty %s", ErrInvalidParams, p.LiquidationPenaltyLiquidator)
	default:
		return nil
	}
}

// Vault is a plain value so that callers can snapshot and restore it by
// assignment.
type Vault struct {
	CollateralIndex          uint8
	SyntheticIndex           uint8
	CollateralReserveBalance decimal.Decimal
	// MintAmount is the borrowed principal plus accrued interest of every
	// entry.
	MintAmount decimal.Decimal
	// AccumulatedInterestRate starts at 1.0 and never decreases.
	AccumulatedInterestRate decimal.Decimal
	// AccumulatedInterest is the interest accrued since it was last
	// collected.
	AccumulatedInterest decimal.Decimal
	// PendingInterest is the part of MintAmount not yet claimed by an entry.
	PendingInterest decimal.Decimal
	LastUpdate      int64
	Params
	Halted bool
}

// New returns a vault for the collateral and synthetic at the given indices.
func New(
	collateralIndex uint8,
	collateral *assets.Collateral,
	syntheticIndex uint8,
	synthetic *assets.Synthetic,
	params Params,
	now int64,
) (*Vault, error) {
	if err := params.Verify(); err != nil {
		return nil, err
	}
	maxBorrow, err := params.MaxBorrow.ToScale(synthetic.Scale())
	if err != nil {
		return nil, err
	}
	params.MaxBorrow = maxBorrow
	return &Vault{
		CollateralIndex:          collateralIndex,
		SyntheticIndex:           syntheticIndex,
		CollateralReserveBalance: decimal.Zero(collateral.Scale()),
		MintAmount:               decimal.Zero(synthetic.Scale()),
		AccumulatedInterestRate:  decimal.One(decimal.InterestScale),
		AccumulatedInterest:      decimal.Zero(synthetic.Scale()),
		PendingInterest:          decimal.Zero(synthetic.Scale()),
		LastUpdate:               now,
		Params:                   params,
	}, nil
}

// Key returns the vault's identity.
func (v *Vault) Key() Key {
	return Key{
		Collateral: v.CollateralIndex,
		Synthetic:  v.SyntheticIndex,
	}
}

// Refresh accrues interest for every whole period since LastUpdate and
// returns the debt it added. The synthetic's supply and borrowed supply grow
// by the same amount.
func (v *Vault) Refresh(now int64, synthetic *assets.Synthetic) (decimal.Decimal, error) {
	noInterest := decimal.Zero(v.MintAmount.Scale)
	periods, lastUpdate := interest.Periods(v.LastUpdate, now)
	if periods == 0 {
		return noInterest, nil
	}

	factor, err := interest.Factor(v.DebtInterestRate, periods)
	if err != nil {
		return noInterest, err
	}
	rate, err := v.AccumulatedInterestRate.Mul(factor)
	if err != nil {
		return noInterest, err
	}
	ratio, err := rate.Div(v.AccumulatedInterestRate)
	if err != nil {
		return noInterest, err
	}
	growth, err := ratio.Sub(decimal.One(decimal.InterestScale))
	if err != nil {
		return noInterest, err
	}
	delta, err := v.MintAmount.MulUp(growth)
	if err != nil {
		return noInterest, err
	}
	mintAmount, err := v.MintAmount.Add(delta)
	if err != nil {
		return noInterest, err
	}
	accumulated, err := v.AccumulatedInterest.Add(delta)
	if err != nil {
		return noInterest, err
	}
	pending, err := v.PendingInterest.Add(delta)
	if err != nil {
		return noInterest, err
	}
	if err := synthetic.Accrue(delta); err != nil {
		return noInterest, err
	}

	v.MintAmount = mintAmount
	v.AccumulatedInterest = accumulated
	v.PendingInterest = pending
	v.AccumulatedInterestRate = rate
	v.LastUpdate = lastUpdate
	return delta, nil
}

// CollectInterest returns the accumulated interest and resets it.
func (v *Vault) CollectInterest() decimal.Decimal {
	collected := v.AccumulatedInterest
	v.AccumulatedInterest = decimal.Zero(collected.Scale)
	return collected
}

// Entry is one owner's position in a vault.
type Entry struct {
	Owner            ids.ShortID
	CollateralIndex  uint8
	SyntheticIndex   uint8
	CollateralAmount decimal.Decimal
	// SyntheticAmount is the owner's debt in synthetic units.
	SyntheticAmount decimal.Decimal
	// LastAccumulatedInterestRate is the vault rate at the last touch.
	LastAccumulatedInterestRate decimal.Decimal
}

// NewEntry opens an empty position in v.
func NewEntry(v *Vault, owner ids.ShortID) *Entry {
	return &Entry{
		Owner:                       owner,
		CollateralIndex:             v.CollateralIndex,
		SyntheticIndex:              v.SyntheticIndex,
		CollateralAmount:            decimal.Zero(v.CollateralReserveBalance.Scale),
		SyntheticAmount:             decimal.Zero(v.MintAmount.Scale),
		LastAccumulatedInterestRate: v.AccumulatedInterestRate,
	}
}

// Key returns the identity of the entry's vault.
func (e *Entry) Key() Key {
	return Key{
		Collateral: e.CollateralIndex,
		Synthetic:  e.SyntheticIndex,
	}
}

// Refresh brings the entry's debt up to the vault's current rate and claims
// the added interest from the vault's pending interest. Interest beyond what
// is pending is minted into the synthetic's supply and borrowed supply and
// added to the vault's aggregates, so the supply always covers every
// entry's debt.
func (e *Entry) Refresh(v *Vault, synthetic *assets.Synthetic) error {
	if e.Key() != v.Key() {
		return fmt.Errorf("%w: entry %s, vault %s", ErrWrongVault, e.Key(), v.Key())
	}
	if e.LastAccumulatedInterestRate.Eq(v.AccumulatedInterestRate) {
		return nil
	}
	ratio, err := v.AccumulatedInterestRate.Div(e.LastAccumulatedInterestRate)
	if err != nil {
		return err
	}
	amount, err := e.SyntheticAmount.MulUp(ratio)
	if err != nil {
		return err
	}
	claimed, err := amount.Sub(e.SyntheticAmount)
	if err != nil {
		return err
	}

	pending := decimal.Zero(v.PendingInterest.Scale)
	excess := decimal.Zero(claimed.Scale)
	if claimed.Lte(v.PendingInterest) {
		pending, err = v.PendingInterest.Sub(claimed)
	} else {
		excess, err = claimed.Sub(v.PendingInterest)
	}
	if err != nil {
		return err
	}
	mintAmount, err := v.MintAmount.Add(excess)
	if err != nil {
		return err
	}
	accumulated, err := v.AccumulatedInterest.Add(excess)
	if err != nil {
		return err
	}
	if err := synthetic.Accrue(excess); err != nil {
		return err
	}

	v.MintAmount = mintAmount
	v.AccumulatedInterest = accumulated
	v.PendingInterest = pending
	e.SyntheticAmount = amount
	e.LastAccumulatedInterestRate = v.AccumulatedInterestRate
	return nil
}
