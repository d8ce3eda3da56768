// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
)

var (
	_ UnsignedTx = (*AddCollateralTx)(nil)
	_ UnsignedTx = (*AddSyntheticTx)(nil)
	_ UnsignedTx = (*SetAssetMaxSupplyTx)(nil)
	_ UnsignedTx = (*SetCollateralRatioTx)(nil)
	_ UnsignedTx = (*SetMaxCollateralTx)(nil)
	_ UnsignedTx = (*SetPriceFeedTx)(nil)
	_ UnsignedTx = (*SetSyntheticHaltedTx)(nil)
	_ UnsignedTx = (*SetSwapTaxBearingTx)(nil)
	_ UnsignedTx = (*SetHaltedTx)(nil)
	_ UnsignedTx = (*SetAdminTx)(nil)
	_ UnsignedTx = (*SetFeeTx)(nil)
	_ UnsignedTx = (*SetSwapTaxRatioTx)(nil)
	_ UnsignedTx = (*SetMaxDelayTx)(nil)
	_ UnsignedTx = (*SetHealthFactorTx)(nil)
	_ UnsignedTx = (*SetDebtInterestRateTx)(nil)
	_ UnsignedTx = (*SetLiquidationParamsTx)(nil)
	_ UnsignedTx = (*WithdrawSwapTaxTx)(nil)
	_ UnsignedTx = (*WithdrawAccumulatedDebtInterestTx)(nil)
	_ UnsignedTx = (*WithdrawLiquidationPenaltyTx)(nil)
	_ UnsignedTx = (*SetSettlementTimeTx)(nil)
	_ UnsignedTx = (*SetStakingAmountPerRoundTx)(nil)
	_ UnsignedTx = (*SetStakingRoundLengthTx)(nil)
)

// AddCollateralTx registers a new collateral.
type AddCollateralTx struct {
	Collateral assets.Collateral `json:"collateral"`
}

func (tx *AddCollateralTx) Visit(v Visitor) error {
	return v.AddCollateralTx(tx)
}

// AddSyntheticTx registers a new synthetic.
type AddSyntheticTx struct {
	Synthetic assets.Synthetic `json:"synthetic"`
}

func (tx *AddSyntheticTx) Visit(v Visitor) error {
	return v.AddSyntheticTx(tx)
}

type SetAssetMaxSupplyTx struct {
	SyntheticIndex uint8           `json:"syntheticIndex"`
	MaxSupply      decimal.Decimal `json:"maxSupply"`
}

func (tx *SetAssetMaxSupplyTx) Visit(v Visitor) error {
	return v.SetAssetMaxSupplyTx(tx)
}

type SetCollateralRatioTx struct {
	CollateralIndex uint8           `json:"collateralIndex"`
	CollateralRatio decimal.Decimal `json:"collateralRatio"`
}

func (tx *SetCollateralRatioTx) Visit(v Visitor) error {
	return v.SetCollateralRatioTx(tx)
}

type SetMaxCollateralTx struct {
	CollateralIndex uint8           `json:"collateralIndex"`
	MaxCollateral   decimal.Decimal `json:"maxCollateral"`
}

func (tx *SetMaxCollateralTx) Visit(v Visitor) error {
	return v.SetMaxCollateralTx(tx)
}

// SetPriceFeedTx relinks a collateral, or a synthetic when Collateral is
// false, to another feed.
type SetPriceFeedTx struct {
	Collateral bool   `json:"collateral"`
	AssetIndex uint8  `json:"assetIndex"`
	FeedID     ids.ID `json:"feedID"`
}

func (tx *SetPriceFeedTx) Visit(v Visitor) error {
	return v.SetPriceFeedTx(tx)
}

type SetSyntheticHaltedTx struct {
	SyntheticIndex uint8 `json:"syntheticIndex"`
	Halted         bool  `json:"halted"`
}

func (tx *SetSyntheticHaltedTx) Visit(v Visitor) error {
	return v.SetSyntheticHaltedTx(tx)
}

type SetSwapTaxBearingTx struct {
	SyntheticIndex uint8 `json:"syntheticIndex"`
	SwapTaxBearing bool  `json:"swapTaxBearing"`
}

func (tx *SetSwapTaxBearingTx) Visit(v Visitor) error {
	return v.SetSwapTaxBearingTx(tx)
}

type SetHaltedTx struct {
	Halted bool `json:"halted"`
}

func (tx *SetHaltedTx) Visit(v Visitor) error {
	return v.SetHaltedTx(tx)
}

type SetAdminTx struct {
	Admin ids.ShortID `json:"admin"`
}

func (tx *SetAdminTx) Visit(v Visitor) error {
	return v.SetAdminTx(tx)
}

type SetFeeTx struct {
	Fee decimal.Decimal `json:"fee"`
}

func (tx *SetFeeTx) Visit(v Visitor) error {
	return v.SetFeeTx(tx)
}

type SetSwapTaxRatioTx struct {
	SwapTaxRatio decimal.Decimal `json:"swapTaxRatio"`
}

func (tx *SetSwapTaxRatioTx) Visit(v Visitor) error {
	return v.SetSwapTaxRatioTx(tx)
}

type SetMaxDelayTx struct {
	MaxDelay uint32 `json:"maxDelay"`
}

func (tx *SetMaxDelayTx) Visit(v Visitor) error {
	return v.SetMaxDelayTx(tx)
}

type SetHealthFactorTx struct {
	HealthFactor decimal.Decimal `json:"healthFactor"`
}

func (tx *SetHealthFactorTx) Visit(v Visitor) error {
	return v.SetHealthFactorTx(tx)
}

type SetDebtInterestRateTx struct {
	DebtInterestRate decimal.Decimal `json:"debtInterestRate"`
}

func (tx *SetDebtInterestRateTx) Visit(v Visitor) error {
	return v.SetDebtInterestRateTx(tx)
}

type SetLiquidationParamsTx struct {
	Params exchange.LiquidationParams `json:"params"`
}

func (tx *SetLiquidationParamsTx) Visit(v Visitor) error {
	return v.SetLiquidationParamsTx(tx)
}

// WithdrawSwapTaxTx mints the swap tax reserve as xUSD for the admin.
type WithdrawSwapTaxTx struct{}

func (tx *WithdrawSwapTaxTx) Visit(v Visitor) error {
	return v.WithdrawSwapTaxTx(tx)
}

type WithdrawAccumulatedDebtInterestTx struct{}

func (tx *WithdrawAccumulatedDebtInterestTx) Visit(v Visitor) error {
	return v.WithdrawAccumulatedDebtInterestTx(tx)
}

// WithdrawLiquidationPenaltyTx empties the liquidation fund of a collateral.
type WithdrawLiquidationPenaltyTx struct {
	CollateralIndex uint8 `json:"collateralIndex"`
}

func (tx *WithdrawLiquidationPenaltyTx) Visit(v Visitor) error {
	return v.WithdrawLiquidationPenaltyTx(tx)
}

type SetSettlementTimeTx struct {
	SyntheticIndex uint8 `json:"syntheticIndex"`
	SettlementTime int64 `json:"settlementTime"`
}

func (tx *SetSettlementTimeTx) Visit(v Visitor) error {
	return v.SetSettlementTimeTx(tx)
}

type SetStakingAmountPerRoundTx struct {
	Amount decimal.Decimal `json:"amount"`
}

func (tx *SetStakingAmountPerRoundTx) Visit(v Visitor) error {
	return v.SetStakingAmountPerRoundTx(tx)
}

type SetStakingRoundLengthTx struct {
	RoundLength uint32 `json:"roundLength"`
}

func (tx *SetStakingRoundLengthTx) Visit(v Visitor) error {
	return v.SetStakingRoundLengthTx(tx)
}
