// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package swapline converts a registered collateral into a synthetic of the
// same underlying one to one, and back. Synthetics issued through a
// swapline are backed by the collateral it holds, not by the debt pool.
package swapline

import (
	"errors"
	"fmt"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

var (
	ErrHalted              = errors.New("swapline is halted")
	ErrLimitExceeded       = errors.New("swapline limit exceeded")
	ErrInsufficientBalance = errors.New("swapline balance too low")
	ErrInvalidFee          = errors.New("swapline fee must not exceed 100%")
)

// Key identifies the swapline between a synthetic and a collateral.
type Key struct {
	SyntheticIndex  uint8
	CollateralIndex uint8
}

// Swapline is a plain value so that callers can snapshot and restore it by
// assignment.
type Swapline struct {
	SyntheticIndex  uint8
	CollateralIndex uint8
	// Fee is at decimal.PercentScale and charged in collateral both ways.
	Fee decimal.Decimal
	// Balance is the collateral held against swapline supply.
	Balance decimal.Decimal
	// Limit caps Balance.
	Limit          decimal.Decimal
	AccumulatedFee decimal.Decimal
	Halted         bool
}

// New returns an empty swapline. Amounts are kept at the collateral's scale.
func New(key Key, collateralScale uint8, fee, limit decimal.Decimal) (*Swapline, error) {
	if fee.Gt(decimal.One(decimal.PercentScale)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFee, fee)
	}
	fee, err := fee.ToScale(decimal.PercentScale)
	if err != nil {
		return nil, err
	}
	limit, err = limit.ToScale(collateralScale)
	if err != nil {
		return nil, err
	}
	return &Swapline{
		SyntheticIndex:  key.SyntheticIndex,
		CollateralIndex: key.CollateralIndex,
		Fee:             fee,
		Balance:         decimal.Zero(collateralScale),
		Limit:           limit,
		AccumulatedFee:  decimal.Zero(collateralScale),
	}, nil
}

// Key returns the swapline's key.
func (l *Swapline) Key() Key {
	return Key{
		SyntheticIndex:  l.SyntheticIndex,
		CollateralIndex: l.CollateralIndex,
	}
}

// NativeToSynthetic takes amount of collateral, keeps the fee and issues
// the rest as s. It returns the synthetic issued.
func (l *Swapline) NativeToSynthetic(s *assets.Synthetic, amount decimal.Decimal) (decimal.Decimal, error) {
	if l.Halted {
		return decimal.Decimal{}, ErrHalted
	}
	fee, err := amount.MulUp(l.Fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	net, err := amount.Sub(fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	balance, err := l.Balance.Add(net)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if balance.Gt(l.Limit) {
		return decimal.Decimal{}, fmt.Errorf("%w: balance %s, limit %s", ErrLimitExceeded, balance, l.Limit)
	}
	accumulated, err := l.AccumulatedFee.Add(fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	out, err := net.ToScale(s.Scale())
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := s.SwaplineMint(out); err != nil {
		return decimal.Decimal{}, err
	}
	l.Balance = balance
	l.AccumulatedFee = accumulated
	return out, nil
}

// SyntheticToNative burns amount of s and pays out the matching collateral
// less the fee. It returns the collateral paid out.
func (l *Swapline) SyntheticToNative(s *assets.Synthetic, amount decimal.Decimal) (decimal.Decimal, error) {
	if l.Halted {
		return decimal.Decimal{}, ErrHalted
	}
	collateral, err := amount.ToScale(l.Balance.Scale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	fee, err := collateral.MulUp(l.Fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	out, err := collateral.Sub(fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	balance, err := l.Balance.Sub(collateral)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: redeem %s, balance %s", ErrInsufficientBalance, collateral, l.Balance)
	}
	accumulated, err := l.AccumulatedFee.Add(fee)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := s.SwaplineBurn(amount); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: burn %s, swapline supply %s", ErrInsufficientBalance, amount, s.SwaplineSupply)
	}
	l.Balance = balance
	l.AccumulatedFee = accumulated
	return out, nil
}

// WithdrawFee returns the accumulated fee and resets it.
func (l *Swapline) WithdrawFee() decimal.Decimal {
	fee := l.AccumulatedFee
	l.AccumulatedFee = decimal.Zero(fee.Scale)
	return fee
}

// SetLimit replaces the balance limit. The limit may drop below the balance,
// which only blocks further deposits.
func (l *Swapline) SetLimit(limit decimal.Decimal) error {
	limit, err := limit.ToScale(l.Balance.Scale)
	if err != nil {
		return err
	}
	l.Limit = limit
	return nil
}
