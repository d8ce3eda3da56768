// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

var (
	_ UnsignedTx = (*CreateAccountTx)(nil)
	_ UnsignedTx = (*DepositTx)(nil)
	_ UnsignedTx = (*WithdrawTx)(nil)
	_ UnsignedTx = (*MintTx)(nil)
	_ UnsignedTx = (*BurnTx)(nil)
	_ UnsignedTx = (*SwapTx)(nil)
	_ UnsignedTx = (*CheckAccountCollateralizationTx)(nil)
	_ UnsignedTx = (*LiquidateTx)(nil)
	_ UnsignedTx = (*ClaimRewardsTx)(nil)
	_ UnsignedTx = (*WithdrawRewardsTx)(nil)
)

// CreateAccountTx opens the caller's exchange account.
type CreateAccountTx struct{}

func (tx *CreateAccountTx) Visit(v Visitor) error {
	return v.CreateAccountTx(tx)
}

type DepositTx struct {
	CollateralIndex uint8           `json:"collateralIndex"`
	Amount          decimal.Decimal `json:"amount"`
}

func (tx *DepositTx) Visit(v Visitor) error {
	return v.DepositTx(tx)
}

type WithdrawTx struct {
	CollateralIndex uint8           `json:"collateralIndex"`
	Amount          decimal.Decimal `json:"amount"`
}

func (tx *WithdrawTx) Visit(v Visitor) error {
	return v.WithdrawTx(tx)
}

// MintTx issues xUSD against the caller's account.
type MintTx struct {
	Amount decimal.Decimal `json:"amount"`
}

func (tx *MintTx) Visit(v Visitor) error {
	return v.MintTx(tx)
}

type BurnTx struct {
	Amount decimal.Decimal `json:"amount"`
}

func (tx *BurnTx) Visit(v Visitor) error {
	return v.BurnTx(tx)
}

type SwapTx struct {
	TokenIn  uint8           `json:"tokenIn"`
	TokenOut uint8           `json:"tokenOut"`
	AmountIn decimal.Decimal `json:"amountIn"`
}

func (tx *SwapTx) Visit(v Visitor) error {
	return v.SwapTx(tx)
}

// CheckAccountCollateralizationTx flags or unflags Owner's account. Anyone
// may send it.
type CheckAccountCollateralizationTx struct {
	Owner ids.ShortID `json:"owner"`
}

func (tx *CheckAccountCollateralizationTx) Visit(v Visitor) error {
	return v.CheckAccountCollateralizationTx(tx)
}

// LiquidateTx repays part of Owner's debt with the caller's xUSD.
type LiquidateTx struct {
	Owner           ids.ShortID     `json:"owner"`
	CollateralIndex uint8           `json:"collateralIndex"`
	Amount          decimal.Decimal `json:"amount"`
}

func (tx *LiquidateTx) Visit(v Visitor) error {
	return v.LiquidateTx(tx)
}

// ClaimRewardsTx credits Owner's account with its staking reward for the
// finished round. Anyone may send it.
type ClaimRewardsTx struct {
	Owner ids.ShortID `json:"owner"`
}

func (tx *ClaimRewardsTx) Visit(v Visitor) error {
	return v.ClaimRewardsTx(tx)
}

// WithdrawRewardsTx pays out the caller's claimed staking rewards.
type WithdrawRewardsTx struct{}

func (tx *WithdrawRewardsTx) Visit(v Visitor) error {
	return v.WithdrawRewardsTx(tx)
}
