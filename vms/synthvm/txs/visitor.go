// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Allow the executor and metrics to run custom logic against the underlying
// transaction types.
type Visitor interface {
	// Registry:
	AddCollateralTx(*AddCollateralTx) error
	AddSyntheticTx(*AddSyntheticTx) error
	SetAssetMaxSupplyTx(*SetAssetMaxSupplyTx) error
	SetCollateralRatioTx(*SetCollateralRatioTx) error
	SetMaxCollateralTx(*SetMaxCollateralTx) error
	SetPriceFeedTx(*SetPriceFeedTx) error
	SetSyntheticHaltedTx(*SetSyntheticHaltedTx) error
	SetSwapTaxBearingTx(*SetSwapTaxBearingTx) error

	// Exchange parameters:
	SetHaltedTx(*SetHaltedTx) error
	SetAdminTx(*SetAdminTx) error
	SetFeeTx(*SetFeeTx) error
	SetSwapTaxRatioTx(*SetSwapTaxRatioTx) error
	SetMaxDelayTx(*SetMaxDelayTx) error
	SetHealthFactorTx(*SetHealthFactorTx) error
	SetDebtInterestRateTx(*SetDebtInterestRateTx) error
	SetLiquidationParamsTx(*SetLiquidationParamsTx) error
	WithdrawSwapTaxTx(*WithdrawSwapTaxTx) error
	WithdrawAccumulatedDebtInterestTx(*WithdrawAccumulatedDebtInterestTx) error
	WithdrawLiquidationPenaltyTx(*WithdrawLiquidationPenaltyTx) error
	SetStakingAmountPerRoundTx(*SetStakingAmountPerRoundTx) error
	SetStakingRoundLengthTx(*SetStakingRoundLengthTx) error

	// Exchange accounts:
	CreateAccountTx(*CreateAccountTx) error
	DepositTx(*DepositTx) error
	WithdrawTx(*WithdrawTx) error
	MintTx(*MintTx) error
	BurnTx(*BurnTx) error
	SwapTx(*SwapTx) error
	CheckAccountCollateralizationTx(*CheckAccountCollateralizationTx) error
	LiquidateTx(*LiquidateTx) error
	ClaimRewardsTx(*ClaimRewardsTx) error
	WithdrawRewardsTx(*WithdrawRewardsTx) error

	// Vaults:
	CreateVaultTx(*CreateVaultTx) error
	SetVaultHaltedTx(*SetVaultHaltedTx) error
	WithdrawVaultAccumulatedInterestTx(*WithdrawVaultAccumulatedInterestTx) error
	CreateVaultEntryTx(*CreateVaultEntryTx) error
	VaultDepositTx(*VaultDepositTx) error
	VaultWithdrawTx(*VaultWithdrawTx) error
	BorrowVaultTx(*BorrowVaultTx) error
	RepayVaultTx(*RepayVaultTx) error
	LiquidateVaultTx(*LiquidateVaultTx) error

	// Swaplines:
	CreateSwaplineTx(*CreateSwaplineTx) error
	SetSwaplineHaltedTx(*SetSwaplineHaltedTx) error
	SetSwaplineLimitTx(*SetSwaplineLimitTx) error
	WithdrawSwaplineFeeTx(*WithdrawSwaplineFeeTx) error
	NativeToSyntheticTx(*NativeToSyntheticTx) error
	SyntheticToNativeTx(*SyntheticToNativeTx) error

	// Settlement:
	SetSettlementTimeTx(*SetSettlementTimeTx) error
	SettleSyntheticTx(*SettleSyntheticTx) error
	SwapSettledSyntheticTx(*SwapSettledSyntheticTx) error
}
