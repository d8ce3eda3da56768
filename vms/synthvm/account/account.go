// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package account implements the per-owner exchange account: collateral
// balances plus a claim on the global debt-share pool.
package account

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/utils/math"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
)

var (
	// ErrAccountFull indicates every collateral slot is in use.
	ErrAccountFull = errors.New("exchange account collateral slots exhausted")

	// ErrInsufficientShares indicates a burn larger than the held shares.
	ErrInsufficientShares = errors.New("insufficient debt shares")
)

// CollateralEntry is the balance of one registry collateral.
type CollateralEntry struct {
	AssetIndex uint8
	Amount     decimal.Decimal
}

// Account is a plain value so that callers can snapshot and restore it by
// assignment.
type Account struct {
	Owner   ids.ShortID
	Version uint8
	// DebtShares is this account's claim on the debt-share pool.
	DebtShares uint64
	// LiquidationDeadline is the time after which the account may be
	// liquidated. Zero when the account was last seen healthy.
	LiquidationDeadline int64
	// Head is the number of used Collaterals slots.
	Head        uint8
	Collaterals [assets.Capacity]CollateralEntry
	Staking     staking.Account
}

// New returns an empty account.
func New(owner ids.ShortID, version uint8) *Account {
	return &Account{
		Owner:   owner,
		Version: version,
		Staking: staking.NewAccount(),
	}
}

// Entry returns the slot holding assetIndex, if any.
func (a *Account) Entry(assetIndex uint8) (*CollateralEntry, bool) {
	for i := uint8(0); i < a.Head; i++ {
		if a.Collaterals[i].AssetIndex == assetIndex {
			return &a.Collaterals[i], true
		}
	}
	return nil, false
}

// Balance returns the deposited amount of assetIndex, or zero.
func (a *Account) Balance(assetIndex uint8) decimal.Decimal {
	entry, ok := a.Entry(assetIndex)
	if !ok {
		return decimal.Decimal{}
	}
	return entry.Amount
}

// Deposit credits amount to the slot for assetIndex, opening the slot on
// first use. Slots are never closed, so a zero balance persists.
func (a *Account) Deposit(assetIndex uint8, amount decimal.Decimal) error {
	entry, ok := a.Entry(assetIndex)
	if !ok {
		if a.Head >= assets.Capacity {
			return ErrAccountFull
		}
		entry = &a.Collaterals[a.Head]
		*entry = CollateralEntry{
			AssetIndex: assetIndex,
			Amount:     decimal.Zero(amount.Scale),
		}
		a.Head++
	}
	balance, err := entry.Amount.Add(amount)
	if err != nil {
		return err
	}
	entry.Amount = balance
	return nil
}

// Withdraw debits amount from the slot for assetIndex.
func (a *Account) Withdraw(assetIndex uint8, amount decimal.Decimal) error {
	entry, ok := a.Entry(assetIndex)
	if !ok || entry.Amount.Lt(amount) {
		return fmt.Errorf("%w: withdraw %s of collateral %d, balance %s",
			health.ErrInsufficientCollateral, amount, assetIndex, a.Balance(assetIndex))
	}
	balance, err := entry.Amount.Sub(amount)
	if err != nil {
		return err
	}
	entry.Amount = balance
	return nil
}

// AddShares credits newly minted debt shares.
func (a *Account) AddShares(shares uint64) error {
	total, err := math.Add(a.DebtShares, shares)
	if err != nil {
		return err
	}
	a.DebtShares = total
	return nil
}

// RemoveShares retires debt shares.
func (a *Account) RemoveShares(shares uint64) error {
	total, err := math.Sub(a.DebtShares, shares)
	if err != nil {
		return fmt.Errorf("%w: burn %d of %d", ErrInsufficientShares, shares, a.DebtShares)
	}
	a.DebtShares = total
	return nil
}

// Valuation prices every collateral slot with a balance.
func (a *Account) Valuation(list *assets.List, snapshot *oracle.Snapshot, now int64, maxDelay uint32) (health.Valuation, error) {
	valuation := health.NewValuation()
	for i := uint8(0); i < a.Head; i++ {
		entry := a.Collaterals[i]
		if entry.Amount.IsZero() {
			continue
		}
		collateral, err := list.Collateral(entry.AssetIndex)
		if err != nil {
			return health.Valuation{}, err
		}
		feed, err := list.CollateralFeed(entry.AssetIndex, snapshot, now, maxDelay)
		if err != nil {
			return health.Valuation{}, err
		}
		if err := valuation.Add(entry.Amount, feed.Price, collateral.CollateralRatio); err != nil {
			return health.Valuation{}, err
		}
	}
	return valuation, nil
}
