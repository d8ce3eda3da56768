// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

var (
	_ UnsignedTx = (*CreateVaultTx)(nil)
	_ UnsignedTx = (*SetVaultHaltedTx)(nil)
	_ UnsignedTx = (*WithdrawVaultAccumulatedInterestTx)(nil)
	_ UnsignedTx = (*CreateVaultEntryTx)(nil)
	_ UnsignedTx = (*VaultDepositTx)(nil)
	_ UnsignedTx = (*VaultWithdrawTx)(nil)
	_ UnsignedTx = (*BorrowVaultTx)(nil)
	_ UnsignedTx = (*RepayVaultTx)(nil)
	_ UnsignedTx = (*LiquidateVaultTx)(nil)
)

type CreateVaultTx struct {
	Vault  vault.Key    `json:"vault"`
	Params vault.Params `json:"params"`
}

func (tx *CreateVaultTx) Visit(v Visitor) error {
	return v.CreateVaultTx(tx)
}

type SetVaultHaltedTx struct {
	Vault  vault.Key `json:"vault"`
	Halted bool      `json:"halted"`
}

func (tx *SetVaultHaltedTx) Visit(v Visitor) error {
	return v.SetVaultHaltedTx(tx)
}

type WithdrawVaultAccumulatedInterestTx struct {
	Vault vault.Key `json:"vault"`
}

func (tx *WithdrawVaultAccumulatedInterestTx) Visit(v Visitor) error {
	return v.WithdrawVaultAccumulatedInterestTx(tx)
}

// CreateVaultEntryTx opens the caller's position in Vault.
type CreateVaultEntryTx struct {
	Vault vault.Key `json:"vault"`
}

func (tx *CreateVaultEntryTx) Visit(v Visitor) error {
	return v.CreateVaultEntryTx(tx)
}

// VaultDepositTx adds collateral to the caller's entry. A zero amount only
// accrues interest.
type VaultDepositTx struct {
	Vault  vault.Key       `json:"vault"`
	Amount decimal.Decimal `json:"amount"`
}

func (tx *VaultDepositTx) Visit(v Visitor) error {
	return v.VaultDepositTx(tx)
}

type VaultWithdrawTx struct {
	Vault  vault.Key       `json:"vault"`
	Amount decimal.Decimal `json:"amount"`
}

func (tx *VaultWithdrawTx) Visit(v Visitor) error {
	return v.VaultWithdrawTx(tx)
}

type BorrowVaultTx struct {
	Vault  vault.Key       `json:"vault"`
	Amount decimal.Decimal `json:"amount"`
}

func (tx *BorrowVaultTx) Visit(v Visitor) error {
	return v.BorrowVaultTx(tx)
}

// RepayVaultTx burns the caller's synthetic to reduce Owner's entry debt.
type RepayVaultTx struct {
	Vault  vault.Key       `json:"vault"`
	Owner  ids.ShortID     `json:"owner"`
	Amount decimal.Decimal `json:"amount"`
}

func (tx *RepayVaultTx) Visit(v Visitor) error {
	return v.RepayVaultTx(tx)
}

type LiquidateVaultTx struct {
	Vault  vault.Key       `json:"vault"`
	Owner  ids.ShortID     `json:"owner"`
	Amount decimal.Decimal `json:"amount"`
}

func (tx *LiquidateVaultTx) Visit(v Visitor) error {
	return v.LiquidateVaultTx(tx)
}
