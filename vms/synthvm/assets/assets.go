// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package assets implements the bounded registry of collaterals and
// synthetics. Slots are append-only and never freed so that an index handed
// out once stays valid forever.
package assets

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
)

const (
	// Capacity is the number of slots per asset kind.
	Capacity = 30

	// XUSDIndex is the synthetic slot of the exchange's USD. It is created
	// with the list and priced at exactly 1.0.
	XUSDIndex uint8 = 0
)

// Collateral is an asset that can be deposited to back debt.
type Collateral struct {
	AssetID ids.ID
	// FeedID links the asset to its price feed. The empty id prices the
	// asset at exactly 1.0.
	FeedID ids.ID
	// ReserveBalance fixes the asset's scale.
	ReserveBalance decimal.Decimal
	// CollateralRatio is at decimal.PercentScale.
	CollateralRatio decimal.Decimal
	MaxCollateral   decimal.Decimal
	// LiquidationFund holds the exchange's share of liquidation penalties.
	LiquidationFund decimal.Decimal
}

// Scale is the number of fractional digits of the asset.
func (c *Collateral) Scale() uint8 {
	return c.ReserveBalance.Scale
}

// Deposit increases the reserve. The reserve may reach but not exceed
// MaxCollateral.
func (c *Collateral) Deposit(amount decimal.Decimal) error {
	reserve, err := c.ReserveBalance.Add(amount)
	if err != nil {
		return err
	}
	if reserve.Gt(c.MaxCollateral) {
		return fmt.Errorf("%w: reserve %s, max %s", ErrCollateralLimitExceeded, reserve, c.MaxCollateral)
	}
	c.ReserveBalance = reserve
	return nil
}

// Withdraw decreases the reserve.
func (c *Collateral) Withdraw(amount decimal.Decimal) error {
	reserve, err := c.ReserveBalance.Sub(amount)
	if err != nil {
		return err
	}
	c.ReserveBalance = reserve
	return nil
}

// Synthetic is an asset that can be minted or borrowed against collateral.
type Synthetic struct {
	AssetID ids.ID
	// FeedID links the asset to its price feed. The empty id prices the
	// asset at exactly 1.0.
	FeedID ids.ID
	// Supply fixes the asset's scale.
	Supply         decimal.Decimal
	BorrowedSupply decimal.Decimal
	// SwaplineSupply was issued through swaplines against native collateral.
	SwaplineSupply decimal.Decimal
	MaxSupply      decimal.Decimal
	// SwapTaxBearing marks classes whose swaps pay the swap tax.
	SwapTaxBearing bool
	Halted         bool
	// SettlementTime is the earliest time the synthetic may be settled.
	// Zero when no settlement is scheduled.
	SettlementTime int64
	// Settled synthetics are no longer traded and are owed by the
	// settlement reserve instead of the debt pool.
	Settled bool
}

// Scale is the number of fractional digits of the asset.
func (s *Synthetic) Scale() uint8 {
	return s.Supply.Scale
}

// SetSupply replaces the supply. A supply equal to MaxSupply is allowed.
func (s *Synthetic) SetSupply(supply decimal.Decimal) error {
	if supply.Gt(s.MaxSupply) {
		return fmt.Errorf("%w: supply %s, max %s", ErrMaxSupply, supply, s.MaxSupply)
	}
	s.Supply = supply
	return nil
}

// Mint increases the supply subject to MaxSupply.
func (s *Synthetic) Mint(amount decimal.Decimal) error {
	supply, err := s.Supply.Add(amount)
	if err != nil {
		return err
	}
	return s.SetSupply(supply)
}

// Burn decreases the supply.
func (s *Synthetic) Burn(amount decimal.Decimal) error {
	supply, err := s.Supply.Sub(amount)
	if err != nil {
		return err
	}
	s.Supply = supply
	return nil
}

// Borrow mints amount and records it as vault-borrowed supply.
func (s *Synthetic) Borrow(amount decimal.Decimal) error {
	borrowed, err := s.BorrowedSupply.Add(amount)
	if err != nil {
		return err
	}
	if err := s.Mint(amount); err != nil {
		return err
	}
	s.BorrowedSupply = borrowed
	return nil
}

// Accrue adds vault interest to both the supply and the borrowed supply.
// Interest is never refused, so MaxSupply is not enforced.
func (s *Synthetic) Accrue(interest decimal.Decimal) error {
	supply, err := s.Supply.Add(interest)
	if err != nil {
		return err
	}
	borrowed, err := s.BorrowedSupply.Add(interest)
	if err != nil {
		return err
	}
	s.Supply, s.BorrowedSupply = supply, borrowed
	return nil
}

// Inflate adds debt-pool interest to the supply. Like Accrue, it is never
// refused.
func (s *Synthetic) Inflate(interest decimal.Decimal) error {
	supply, err := s.Supply.Add(interest)
	if err != nil {
		return err
	}
	s.Supply = supply
	return nil
}

// Repay burns amount of vault-borrowed supply.
func (s *Synthetic) Repay(amount decimal.Decimal) error {
	borrowed, err := s.BorrowedSupply.Sub(amount)
	if err != nil {
		return err
	}
	if err := s.Burn(amount); err != nil {
		return err
	}
	s.BorrowedSupply = borrowed
	return nil
}

// SwaplineMint mints amount and records it as swapline supply.
func (s *Synthetic) SwaplineMint(amount decimal.Decimal) error {
	issued, err := s.SwaplineSupply.Add(amount)
	if err != nil {
		return err
	}
	if err := s.Mint(amount); err != nil {
		return err
	}
	s.SwaplineSupply = issued
	return nil
}

// SwaplineBurn burns amount of swapline supply.
func (s *Synthetic) SwaplineBurn(amount decimal.Decimal) error {
	issued, err := s.SwaplineSupply.Sub(amount)
	if err != nil {
		return err
	}
	if err := s.Burn(amount); err != nil {
		return err
	}
	s.SwaplineSupply = issued
	return nil
}

// FreeSupply is the supply backed by the debt-share pool. Borrowed or
// swapline tokens that were swapped away can leave the supply below the
// externally backed supply, in which case nothing is backed by the pool.
func (s *Synthetic) FreeSupply() decimal.Decimal {
	zero := decimal.Zero(s.Scale())
	if s.Settled {
		return zero
	}
	backed := s.BorrowedSupply
	if !s.SwaplineSupply.IsZero() {
		sum, err := backed.Add(s.SwaplineSupply)
		if err != nil {
			return zero
		}
		backed = sum
	}
	if backed.Gte(s.Supply) {
		return zero
	}
	free, _ := s.Supply.Sub(backed)
	return free
}

// List is the registry. It is a plain value so that callers can snapshot
// and restore it by assignment.
type List struct {
	HeadCollaterals uint8
	HeadSynthetics  uint8
	Collaterals     [Capacity]Collateral
	Synthetics      [Capacity]Synthetic
}

// NewList returns a registry holding only xUSD.
func NewList(xusdAssetID ids.ID, xusdMaxSupply decimal.Decimal) *List {
	l := &List{}
	l.Synthetics[XUSDIndex] = Synthetic{
		AssetID:        xusdAssetID,
		Supply:         decimal.Zero(decimal.USDScale),
		BorrowedSupply: decimal.Zero(decimal.USDScale),
		SwaplineSupply: decimal.Zero(decimal.USDScale),
		MaxSupply:      xusdMaxSupply,
	}
	l.HeadSynthetics = 1
	return l
}

// AddCollateral appends c and returns its index.
func (l *List) AddCollateral(c Collateral) (uint8, error) {
	if l.HeadCollaterals >= Capacity {
		return 0, fmt.Errorf("%w: %d collaterals", ErrAssetLimitExceeded, l.HeadCollaterals)
	}
	if _, _, err := l.CollateralByAsset(c.AssetID); err == nil {
		return 0, fmt.Errorf("%w: collateral %s", ErrAssetExists, c.AssetID)
	}
	if c.CollateralRatio.Gt(decimal.One(decimal.PercentScale)) {
		return 0, ErrInvalidCollateralRatio
	}
	scale := c.Scale()
	c.LiquidationFund = decimal.Zero(scale)
	index := l.HeadCollaterals
	l.Collaterals[index] = c
	l.HeadCollaterals++
	return index, nil
}

// AddSynthetic appends s and returns its index.
func (l *List) AddSynthetic(s Synthetic) (uint8, error) {
	if l.HeadSynthetics >= Capacity {
		return 0, fmt.Errorf("%w: %d synthetics", ErrAssetLimitExceeded, l.HeadSynthetics)
	}
	if _, _, err := l.SyntheticByAsset(s.AssetID); err == nil {
		return 0, fmt.Errorf("%w: synthetic %s", ErrAssetExists, s.AssetID)
	}
	if s.Supply.Gt(s.MaxSupply) {
		return 0, fmt.Errorf("%w: supply %s, max %s", ErrMaxSupply, s.Supply, s.MaxSupply)
	}
	s.BorrowedSupply = decimal.Zero(s.Scale())
	s.SwaplineSupply = decimal.Zero(s.Scale())
	s.Settled = false
	index := l.HeadSynthetics
	l.Synthetics[index] = s
	l.HeadSynthetics++
	return index, nil
}

// Collateral returns the collateral at index for in-place mutation.
func (l *List) Collateral(index uint8) (*Collateral, error) {
	if index >= l.HeadCollaterals {
		return nil, fmt.Errorf("%w: collateral %d, head %d", ErrInvalidAssetIndex, index, l.HeadCollaterals)
	}
	return &l.Collaterals[index], nil
}

// Synthetic returns the synthetic at index for in-place mutation.
func (l *List) Synthetic(index uint8) (*Synthetic, error) {
	if index >= l.HeadSynthetics {
		return nil, fmt.Errorf("%w: synthetic %d, head %d", ErrInvalidAssetIndex, index, l.HeadSynthetics)
	}
	return &l.Synthetics[index], nil
}

// CollateralByAsset scans the registry for the collateral with assetID.
func (l *List) CollateralByAsset(assetID ids.ID) (uint8, *Collateral, error) {
	for i := uint8(0); i < l.HeadCollaterals; i++ {
		if l.Collaterals[i].AssetID == assetID {
			return i, &l.Collaterals[i], nil
		}
	}
	return 0, nil, fmt.Errorf("%w: collateral %s", ErrAssetNotFound, assetID)
}

// SyntheticByAsset scans the registry for the synthetic with assetID.
func (l *List) SyntheticByAsset(assetID ids.ID) (uint8, *Synthetic, error) {
	for i := uint8(0); i < l.HeadSynthetics; i++ {
		if l.Synthetics[i].AssetID == assetID {
			return i, &l.Synthetics[i], nil
		}
	}
	return 0, nil, fmt.Errorf("%w: synthetic %s", ErrAssetNotFound, assetID)
}

// SetCollateralRatio replaces the collateral ratio at index.
func (l *List) SetCollateralRatio(index uint8, ratio decimal.Decimal) error {
	c, err := l.Collateral(index)
	if err != nil {
		return err
	}
	if ratio.Gt(decimal.One(decimal.PercentScale)) {
		return ErrInvalidCollateralRatio
	}
	ratio, err = ratio.ToScale(decimal.PercentScale)
	if err != nil {
		return err
	}
	c.CollateralRatio = ratio
	return nil
}

// SetMaxCollateral replaces the reserve limit at index.
func (l *List) SetMaxCollateral(index uint8, limit decimal.Decimal) error {
	c, err := l.Collateral(index)
	if err != nil {
		return err
	}
	c.MaxCollateral = limit
	return nil
}

// SetMaxSupply replaces the supply limit at index. The limit may not drop
// below the current supply.
func (l *List) SetMaxSupply(index uint8, limit decimal.Decimal) error {
	s, err := l.Synthetic(index)
	if err != nil {
		return err
	}
	if s.Supply.Gt(limit) {
		return fmt.Errorf("%w: supply %s, max %s", ErrMaxSupply, s.Supply, limit)
	}
	s.MaxSupply = limit
	return nil
}

// SetSyntheticHalted halts or resumes acquisitions of the synthetic at index.
func (l *List) SetSyntheticHalted(index uint8, halted bool) error {
	s, err := l.Synthetic(index)
	if err != nil {
		return err
	}
	s.Halted = halted
	return nil
}

// SetSettlementTime schedules the settlement of the synthetic at index. xUSD
// is never settled.
func (l *List) SetSettlementTime(index uint8, settlementTime int64) error {
	if index == XUSDIndex {
		return fmt.Errorf("%w: xUSD cannot be settled", ErrInvalidAssetIndex)
	}
	s, err := l.Synthetic(index)
	if err != nil {
		return err
	}
	if s.Settled {
		return fmt.Errorf("%w: synthetic %d", ErrSettled, index)
	}
	s.SettlementTime = settlementTime
	return nil
}

// WithdrawLiquidationFund returns the liquidation fund of the collateral at
// index and empties it.
func (l *List) WithdrawLiquidationFund(index uint8) (decimal.Decimal, error) {
	c, err := l.Collateral(index)
	if err != nil {
		return decimal.Decimal{}, err
	}
	fund := c.LiquidationFund
	c.LiquidationFund = decimal.Zero(c.Scale())
	return fund, nil
}

// SetSwapTaxBearing marks the synthetic at index as paying the swap tax.
func (l *List) SetSwapTaxBearing(index uint8, taxed bool) error {
	s, err := l.Synthetic(index)
	if err != nil {
		return err
	}
	s.SwapTaxBearing = taxed
	return nil
}

// SetCollateralFeed relinks the collateral at index to another feed.
func (l *List) SetCollateralFeed(index uint8, feedID ids.ID) error {
	c, err := l.Collateral(index)
	if err != nil {
		return err
	}
	c.FeedID = feedID
	return nil
}

// SetSyntheticFeed relinks the synthetic at index to another feed. xUSD is
// never linked.
func (l *List) SetSyntheticFeed(index uint8, feedID ids.ID) error {
	if index == XUSDIndex {
		return fmt.Errorf("%w: xUSD has no feed", ErrInvalidAssetIndex)
	}
	s, err := l.Synthetic(index)
	if err != nil {
		return err
	}
	s.FeedID = feedID
	return nil
}

// CollateralFeed resolves the price feed of the collateral at index.
func (l *List) CollateralFeed(index uint8, snapshot *oracle.Snapshot, now int64, maxDelay uint32) (oracle.Feed, error) {
	c, err := l.Collateral(index)
	if err != nil {
		return oracle.Feed{}, err
	}
	return resolve(c.FeedID, snapshot, now, maxDelay)
}

// SyntheticFeed resolves the price feed of the synthetic at index.
func (l *List) SyntheticFeed(index uint8, snapshot *oracle.Snapshot, now int64, maxDelay uint32) (oracle.Feed, error) {
	s, err := l.Synthetic(index)
	if err != nil {
		return oracle.Feed{}, err
	}
	return resolve(s.FeedID, snapshot, now, maxDelay)
}

func resolve(feedID ids.ID, snapshot *oracle.Snapshot, now int64, maxDelay uint32) (oracle.Feed, error) {
	if feedID == ids.Empty {
		one := decimal.One(decimal.PriceScale)
		return oracle.Feed{
			Price:      one,
			Twap:       one,
			Status:     oracle.StatusTrading,
			LastUpdate: now,
		}, nil
	}
	return snapshot.Fresh(feedID, now, maxDelay)
}
