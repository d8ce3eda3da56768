// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/synthvm/vms/synthvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics(name, help string) *txMetrics {
	return &txMetrics{
		numTxs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: name,
				Help: help,
			},
			txLabels,
		),
	}
}

func (m *txMetrics) inc(kind string) error {
	m.numTxs.With(metric.Labels{
		txLabel: kind,
	}).Inc()
	return nil
}

func (m *txMetrics) AddCollateralTx(*txs.AddCollateralTx) error {
	return m.inc("add_collateral")
}

func (m *txMetrics) AddSyntheticTx(*txs.AddSyntheticTx) error {
	return m.inc("add_synthetic")
}

func (m *txMetrics) SetAssetMaxSupplyTx(*txs.SetAssetMaxSupplyTx) error {
	return m.inc("set_asset_max_supply")
}

func (m *txMetrics) SetCollateralRatioTx(*txs.SetCollateralRatioTx) error {
	return m.inc("set_collateral_ratio")
}

func (m *txMetrics) SetMaxCollateralTx(*txs.SetMaxCollateralTx) error {
	return m.inc("set_max_collateral")
}

func (m *txMetrics) SetPriceFeedTx(*txs.SetPriceFeedTx) error {
	return m.inc("set_price_feed")
}

func (m *txMetrics) SetSyntheticHaltedTx(*txs.SetSyntheticHaltedTx) error {
	return m.inc("set_synthetic_halted")
}

func (m *txMetrics) SetSwapTaxBearingTx(*txs.SetSwapTaxBearingTx) error {
	return m.inc("set_swap_tax_bearing")
}

func (m *txMetrics) SetHaltedTx(*txs.SetHaltedTx) error {
	return m.inc("set_halted")
}

func (m *txMetrics) SetAdminTx(*txs.SetAdminTx) error {
	return m.inc("set_admin")
}

func (m *txMetrics) SetFeeTx(*txs.SetFeeTx) error {
	return m.inc("set_fee")
}

func (m *txMetrics) SetSwapTaxRatioTx(*txs.SetSwapTaxRatioTx) error {
	return m.inc("set_swap_tax_ratio")
}

func (m *txMetrics) SetMaxDelayTx(*txs.SetMaxDelayTx) error {
	return m.inc("set_max_delay")
}

func (m *txMetrics) SetHealthFactorTx(*txs.SetHealthFactorTx) error {
	return m.inc("set_health_factor")
}

func (m *txMetrics) SetDebtInterestRateTx(*txs.SetDebtInterestRateTx) error {
	return m.inc("set_debt_interest_rate")
}

func (m *txMetrics) SetLiquidationParamsTx(*txs.SetLiquidationParamsTx) error {
	return m.inc("set_liquidation_params")
}

func (m *txMetrics) WithdrawSwapTaxTx(*txs.WithdrawSwapTaxTx) error {
	return m.inc("withdraw_swap_tax")
}

func (m *txMetrics) WithdrawAccumulatedDebtInterestTx(*txs.WithdrawAccumulatedDebtInterestTx) error {
	return m.inc("withdraw_accumulated_debt_interest")
}

func (m *txMetrics) CreateAccountTx(*txs.CreateAccountTx) error {
	return m.inc("create_account")
}

func (m *txMetrics) DepositTx(*txs.DepositTx) error {
	return m.inc("deposit")
}

func (m *txMetrics) WithdrawTx(*txs.WithdrawTx) error {
	return m.inc("withdraw")
}

func (m *txMetrics) MintTx(*txs.MintTx) error {
	return m.inc("mint")
}

func (m *txMetrics) BurnTx(*txs.BurnTx) error {
	return m.inc("burn")
}

func (m *txMetrics) SwapTx(*txs.SwapTx) error {
	return m.inc("swap")
}

func (m *txMetrics) CheckAccountCollateralizationTx(*txs.CheckAccountCollateralizationTx) error {
	return m.inc("check_account_collateralization")
}

func (m *txMetrics) LiquidateTx(*txs.LiquidateTx) error {
	return m.inc("liquidate")
}

func (m *txMetrics) CreateVaultTx(*txs.CreateVaultTx) error {
	return m.inc("create_vault")
}

func (m *txMetrics) SetVaultHaltedTx(*txs.SetVaultHaltedTx) error {
	return m.inc("set_vault_halted")
}

func (m *txMetrics) WithdrawVaultAccumulatedInterestTx(*txs.WithdrawVaultAccumulatedInterestTx) error {
	return m.inc("withdraw_vault_accumulated_interest")
}

func (m *txMetrics) CreateVaultEntryTx(*txs.CreateVaultEntryTx) error {
	return m.inc("create_vault_entry")
}

func (m *txMetrics) VaultDepositTx(*txs.VaultDepositTx) error {
	return m.inc("vault_deposit")
}

func (m *txMetrics) VaultWithdrawTx(*txs.VaultWithdrawTx) error {
	return m.inc("vault_withdraw")
}

func (m *txMetrics) BorrowVaultTx(*txs.BorrowVaultTx) error {
	return m.inc("borrow_vault")
}

func (m *txMetrics) RepayVaultTx(*txs.RepayVaultTx) error {
	return m.inc("repay_vault")
}

func (m *txMetrics) LiquidateVaultTx(*txs.LiquidateVaultTx) error {
	return m.inc("liquidate_vault")
}

func (m *txMetrics) WithdrawLiquidationPenaltyTx(*txs.WithdrawLiquidationPenaltyTx) error {
	return m.inc("withdraw_liquidation_penalty")
}

func (m *txMetrics) SetStakingAmountPerRoundTx(*txs.SetStakingAmountPerRoundTx) error {
	return m.inc("set_staking_amount_per_round")
}

func (m *txMetrics) SetStakingRoundLengthTx(*txs.SetStakingRoundLengthTx) error {
	return m.inc("set_staking_round_length")
}

func (m *txMetrics) ClaimRewardsTx(*txs.ClaimRewardsTx) error {
	return m.inc("claim_rewards")
}

func (m *txMetrics) WithdrawRewardsTx(*txs.WithdrawRewardsTx) error {
	return m.inc("withdraw_rewards")
}

func (m *txMetrics) CreateSwaplineTx(*txs.CreateSwaplineTx) error {
	return m.inc("create_swapline")
}

func (m *txMetrics) SetSwaplineHaltedTx(*txs.SetSwaplineHaltedTx) error {
	return m.inc("set_swapline_halted")
}

func (m *txMetrics) SetSwaplineLimitTx(*txs.SetSwaplineLimitTx) error {
	return m.inc("set_swapline_limit")
}

func (m *txMetrics) WithdrawSwaplineFeeTx(*txs.WithdrawSwaplineFeeTx) error {
	return m.inc("withdraw_swapline_fee")
}

func (m *txMetrics) NativeToSyntheticTx(*txs.NativeToSyntheticTx) error {
	return m.inc("native_to_synthetic")
}

func (m *txMetrics) SyntheticToNativeTx(*txs.SyntheticToNativeTx) error {
	return m.inc("synthetic_to_native")
}

func (m *txMetrics) SetSettlementTimeTx(*txs.SetSettlementTimeTx) error {
	return m.inc("set_settlement_time")
}

func (m *txMetrics) SettleSyntheticTx(*txs.SettleSyntheticTx) error {
	return m.inc("settle_synthetic")
}

func (m *txMetrics) SwapSettledSyntheticTx(*txs.SwapSettledSyntheticTx) error {
	return m.inc("swap_settled_synthetic")
}
