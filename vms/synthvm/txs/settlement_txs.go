// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/synthvm/vms/synthvm/decimal"

var (
	_ UnsignedTx = (*SettleSyntheticTx)(nil)
	_ UnsignedTx = (*SwapSettledSyntheticTx)(nil)
)

// SettleSyntheticTx settles a synthetic whose settlement time has passed.
// Anyone may send it.
type SettleSyntheticTx struct {
	SyntheticIndex uint8 `json:"syntheticIndex"`
}

func (tx *SettleSyntheticTx) Visit(v Visitor) error {
	return v.SettleSyntheticTx(tx)
}

// SwapSettledSyntheticTx redeems Amount of a settled synthetic for xUSD.
type SwapSettledSyntheticTx struct {
	SyntheticIndex uint8           `json:"syntheticIndex"`
	Amount         decimal.Decimal `json:"amount"`
}

func (tx *SwapSettledSyntheticTx) Visit(v Visitor) error {
	return v.SwapSettledSyntheticTx(tx)
}
