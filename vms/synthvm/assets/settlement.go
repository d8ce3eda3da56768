// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assets

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

// Settlement redeems a settled synthetic for xUSD at the price it was
// settled at.
type Settlement struct {
	SyntheticIndex uint8
	AssetID        ids.ID
	// Ratio is the USD price of one unit of the synthetic.
	Ratio decimal.Decimal
	// Reserve is the xUSD minted at settlement and not yet paid out.
	Reserve   decimal.Decimal
	SettledAt int64
}

// Pay takes amount of xUSD out of the reserve.
func (st *Settlement) Pay(amount decimal.Decimal) error {
	reserve, err := st.Reserve.Sub(amount)
	if err != nil {
		return fmt.Errorf("settlement of synthetic %d pays %s, reserve %s: %w", st.SyntheticIndex, amount, st.Reserve, err)
	}
	st.Reserve = reserve
	return nil
}
