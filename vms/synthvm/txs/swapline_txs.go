// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
)

var (
	_ UnsignedTx = (*CreateSwaplineTx)(nil)
	_ UnsignedTx = (*SetSwaplineHaltedTx)(nil)
	_ UnsignedTx = (*SetSwaplineLimitTx)(nil)
	_ UnsignedTx = (*WithdrawSwaplineFeeTx)(nil)
	_ UnsignedTx = (*NativeToSyntheticTx)(nil)
	_ UnsignedTx = (*SyntheticToNativeTx)(nil)
)

type CreateSwaplineTx struct {
	Swapline swapline.Key    `json:"swapline"`
	Fee      decimal.Decimal `json:"fee"`
	Limit    decimal.Decimal `json:"limit"`
}

func (tx *CreateSwaplineTx) Visit(v Visitor) error {
	return v.CreateSwaplineTx(tx)
}

type SetSwaplineHaltedTx struct {
	Swapline swapline.Key `json:"swapline"`
	Halted   bool         `json:"halted"`
}

func (tx *SetSwaplineHaltedTx) Visit(v Visitor) error {
	return v.SetSwaplineHaltedTx(tx)
}

type SetSwaplineLimitTx struct {
	Swapline swapline.Key    `json:"swapline"`
	Limit    decimal.Decimal `json:"limit"`
}

func (tx *SetSwaplineLimitTx) Visit(v Visitor) error {
	return v.SetSwaplineLimitTx(tx)
}

type WithdrawSwaplineFeeTx struct {
	Swapline swapline.Key `json:"swapline"`
}

func (tx *WithdrawSwaplineFeeTx) Visit(v Visitor) error {
	return v.WithdrawSwaplineFeeTx(tx)
}

// NativeToSyntheticTx converts Amount of the swapline's collateral into its
// synthetic.
type NativeToSyntheticTx struct {
	Swapline swapline.Key    `json:"swapline"`
	Amount   decimal.Decimal `json:"amount"`
}

func (tx *NativeToSyntheticTx) Visit(v Visitor) error {
	return v.NativeToSyntheticTx(tx)
}

type SyntheticToNativeTx struct {
	Swapline swapline.Key    `json:"swapline"`
	Amount   decimal.Decimal `json:"amount"`
}

func (tx *SyntheticToNativeTx) Visit(v Visitor) error {
	return v.SyntheticToNativeTx(tx)
}
