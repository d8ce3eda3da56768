// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/state"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
	"github.com/luxfi/synthvm/vms/synthvm/txs"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

var _ txs.Visitor = (*operation)(nil)

// operation loads the records a transaction touches, runs it through the
// engine and writes the records back.
type operation struct {
	backend *Backend
	state   state.State
	env     exchange.Env
	records exchange.Records
}

func (o *operation) load() error {
	s, err := o.state.GetExchange()
	if err != nil {
		return err
	}
	l, err := o.state.GetAssets()
	if err != nil {
		return err
	}
	o.records = exchange.Records{
		State:  s,
		Assets: l,
	}
	return nil
}

func (o *operation) loadAccount(owner ids.ShortID) error {
	a, err := optional(o.state.GetAccount(owner))
	o.records.Account = a
	return err
}

func (o *operation) loadLiquidator() error {
	a, err := optional(o.state.GetAccount(o.env.Caller))
	o.records.Liquidator = a
	return err
}

func (o *operation) loadVault(key vault.Key) error {
	v, err := optional(o.state.GetVault(key))
	o.records.Vault = v
	return err
}

func (o *operation) loadEntry(key vault.Key, owner ids.ShortID) error {
	if err := o.loadVault(key); err != nil {
		return err
	}
	e, err := optional(o.state.GetEntry(owner, key))
	o.records.Entry = e
	return err
}

func (o *operation) loadSwapline(key swapline.Key) error {
	l, err := optional(o.state.GetSwapline(key))
	o.records.Swapline = l
	return err
}

func (o *operation) loadSettlement(syntheticIndex uint8) error {
	st, err := optional(o.state.GetSettlement(syntheticIndex))
	o.records.Settlement = st
	return err
}

func (o *operation) persist() error {
	r := o.records
	if err := o.state.PutExchange(r.State); err != nil {
		return err
	}
	if err := o.state.PutAssets(r.Assets); err != nil {
		return err
	}
	if r.Account != nil {
		if err := o.state.PutAccount(r.Account); err != nil {
			return err
		}
	}
	if r.Liquidator != nil {
		if err := o.state.PutAccount(r.Liquidator); err != nil {
			return err
		}
	}
	if r.Vault != nil {
		if err := o.state.PutVault(r.Vault); err != nil {
			return err
		}
	}
	if r.Entry != nil {
		if err := o.state.PutEntry(r.Entry); err != nil {
			return err
		}
	}
	if r.Swapline != nil {
		if err := o.state.PutSwapline(r.Swapline); err != nil {
			return err
		}
	}
	if r.Settlement != nil {
		if err := o.state.PutSettlement(r.Settlement); err != nil {
			return err
		}
	}
	return nil
}

func (o *operation) withdrawn(op string, amount decimal.Decimal) {
	o.backend.Log.Info("withdrew accumulated funds",
		log.String("op", op),
		log.Stringer("amount", amount),
	)
}

func (o *operation) AddCollateralTx(tx *txs.AddCollateralTx) error {
	_, err := o.backend.Engine.AddCollateral(o.env, o.records, tx.Collateral)
	return err
}

func (o *operation) AddSyntheticTx(tx *txs.AddSyntheticTx) error {
	_, err := o.backend.Engine.AddSynthetic(o.env, o.records, tx.Synthetic)
	return err
}

func (o *operation) SetAssetMaxSupplyTx(tx *txs.SetAssetMaxSupplyTx) error {
	return o.backend.Engine.SetAssetMaxSupply(o.env, o.records, tx.SyntheticIndex, tx.MaxSupply)
}

func (o *operation) SetCollateralRatioTx(tx *txs.SetCollateralRatioTx) error {
	return o.backend.Engine.SetCollateralRatio(o.env, o.records, tx.CollateralIndex, tx.CollateralRatio)
}

func (o *operation) SetMaxCollateralTx(tx *txs.SetMaxCollateralTx) error {
	return o.backend.Engine.SetMaxCollateral(o.env, o.records, tx.CollateralIndex, tx.MaxCollateral)
}

func (o *operation) SetPriceFeedTx(tx *txs.SetPriceFeedTx) error {
	return o.backend.Engine.SetPriceFeed(o.env, o.records, tx.Collateral, tx.AssetIndex, tx.FeedID)
}

func (o *operation) SetSyntheticHaltedTx(tx *txs.SetSyntheticHaltedTx) error {
	return o.backend.Engine.SetSyntheticHalted(o.env, o.records, tx.SyntheticIndex, tx.Halted)
}

func (o *operation) SetSwapTaxBearingTx(tx *txs.SetSwapTaxBearingTx) error {
	return o.backend.Engine.SetSwapTaxBearing(o.env, o.records, tx.SyntheticIndex, tx.SwapTaxBearing)
}

func (o *operation) SetHaltedTx(tx *txs.SetHaltedTx) error {
	return o.backend.Engine.SetHalted(o.env, o.records, tx.Halted)
}

func (o *operation) SetAdminTx(tx *txs.SetAdminTx) error {
	return o.backend.Engine.SetAdmin(o.env, o.records, tx.Admin)
}

func (o *operation) SetFeeTx(tx *txs.SetFeeTx) error {
	return o.backend.Engine.SetFee(o.env, o.records, tx.Fee)
}

func (o *operation) SetSwapTaxRatioTx(tx *txs.SetSwapTaxRatioTx) error {
	return o.backend.Engine.SetSwapTaxRatio(o.env, o.records, tx.SwapTaxRatio)
}

func (o *operation) SetMaxDelayTx(tx *txs.SetMaxDelayTx) error {
	return o.backend.Engine.SetMaxDelay(o.env, o.records, tx.MaxDelay)
}

func (o *operation) SetHealthFactorTx(tx *txs.SetHealthFactorTx) error {
	return o.backend.Engine.SetHealthFactor(o.env, o.records, tx.HealthFactor)
}

func (o *operation) SetDebtInterestRateTx(tx *txs.SetDebtInterestRateTx) error {
	return o.backend.Engine.SetDebtInterestRate(o.env, o.records, tx.DebtInterestRate)
}

func (o *operation) SetLiquidationParamsTx(tx *txs.SetLiquidationParamsTx) error {
	return o.backend.Engine.SetLiquidationParams(o.env, o.records, tx.Params)
}

func (o *operation) WithdrawSwapTaxTx(*txs.WithdrawSwapTaxTx) error {
	amount, err := o.backend.Engine.WithdrawSwapTax(o.env, o.records)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawSwapTax", amount)
	return nil
}

func (o *operation) WithdrawAccumulatedDebtInterestTx(*txs.WithdrawAccumulatedDebtInterestTx) error {
	amount, err := o.backend.Engine.WithdrawAccumulatedDebtInterest(o.env, o.records)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawAccumulatedDebtInterest", amount)
	return nil
}

func (o *operation) WithdrawLiquidationPenaltyTx(tx *txs.WithdrawLiquidationPenaltyTx) error {
	amount, err := o.backend.Engine.WithdrawLiquidationPenalty(o.env, o.records, tx.CollateralIndex)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawLiquidationPenalty", amount)
	return nil
}

func (o *operation) SetStakingAmountPerRoundTx(tx *txs.SetStakingAmountPerRoundTx) error {
	return o.backend.Engine.SetStakingAmountPerRound(o.env, o.records, tx.Amount)
}

func (o *operation) SetStakingRoundLengthTx(tx *txs.SetStakingRoundLengthTx) error {
	return o.backend.Engine.SetStakingRoundLength(o.env, o.records, tx.RoundLength)
}

func (o *operation) CreateAccountTx(*txs.CreateAccountTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	created, err := o.backend.Engine.CreateAccount(o.env, o.records)
	if err != nil {
		return err
	}
	o.records.Account = created
	return nil
}

func (o *operation) DepositTx(tx *txs.DepositTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.Deposit(o.env, o.records, tx.CollateralIndex, tx.Amount)
}

func (o *operation) WithdrawTx(tx *txs.WithdrawTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.Withdraw(o.env, o.records, tx.CollateralIndex, tx.Amount)
}

func (o *operation) MintTx(tx *txs.MintTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.Mint(o.env, o.records, tx.Amount)
}

func (o *operation) BurnTx(tx *txs.BurnTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	_, err := o.backend.Engine.Burn(o.env, o.records, tx.Amount)
	return err
}

func (o *operation) SwapTx(tx *txs.SwapTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	_, err := o.backend.Engine.Swap(o.env, o.records, tx.TokenIn, tx.TokenOut, tx.AmountIn)
	return err
}

func (o *operation) CheckAccountCollateralizationTx(tx *txs.CheckAccountCollateralizationTx) error {
	if err := o.loadAccount(tx.Owner); err != nil {
		return err
	}
	return o.backend.Engine.CheckAccountCollateralization(o.env, o.records)
}

func (o *operation) LiquidateTx(tx *txs.LiquidateTx) error {
	if err := o.loadAccount(tx.Owner); err != nil {
		return err
	}
	if err := o.loadLiquidator(); err != nil {
		return err
	}
	_, err := o.backend.Engine.Liquidate(o.env, o.records, tx.CollateralIndex, tx.Amount)
	return err
}

func (o *operation) ClaimRewardsTx(tx *txs.ClaimRewardsTx) error {
	if err := o.loadAccount(tx.Owner); err != nil {
		return err
	}
	_, err := o.backend.Engine.ClaimRewards(o.env, o.records)
	return err
}

func (o *operation) WithdrawRewardsTx(*txs.WithdrawRewardsTx) error {
	if err := o.loadAccount(o.env.Caller); err != nil {
		return err
	}
	amount, err := o.backend.Engine.WithdrawRewards(o.env, o.records)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawRewards", amount)
	return nil
}

func (o *operation) CreateVaultTx(tx *txs.CreateVaultTx) error {
	if err := o.loadVault(tx.Vault); err != nil {
		return err
	}
	created, err := o.backend.Engine.CreateVault(o.env, o.records, tx.Vault.Collateral, tx.Vault.Synthetic, tx.Params)
	if err != nil {
		return err
	}
	o.records.Vault = created
	return nil
}

func (o *operation) SetVaultHaltedTx(tx *txs.SetVaultHaltedTx) error {
	if err := o.loadVault(tx.Vault); err != nil {
		return err
	}
	return o.backend.Engine.SetVaultHalted(o.env, o.records, tx.Halted)
}

func (o *operation) WithdrawVaultAccumulatedInterestTx(tx *txs.WithdrawVaultAccumulatedInterestTx) error {
	if err := o.loadVault(tx.Vault); err != nil {
		return err
	}
	amount, err := o.backend.Engine.WithdrawVaultAccumulatedInterest(o.env, o.records)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawVaultAccumulatedInterest", amount)
	return nil
}

func (o *operation) CreateVaultEntryTx(tx *txs.CreateVaultEntryTx) error {
	if err := o.loadEntry(tx.Vault, o.env.Caller); err != nil {
		return err
	}
	created, err := o.backend.Engine.CreateVaultEntry(o.env, o.records)
	if err != nil {
		return err
	}
	o.records.Entry = created
	return nil
}

func (o *operation) VaultDepositTx(tx *txs.VaultDepositTx) error {
	if err := o.loadEntry(tx.Vault, o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.VaultDeposit(o.env, o.records, tx.Amount)
}

func (o *operation) VaultWithdrawTx(tx *txs.VaultWithdrawTx) error {
	if err := o.loadEntry(tx.Vault, o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.VaultWithdraw(o.env, o.records, tx.Amount)
}

func (o *operation) BorrowVaultTx(tx *txs.BorrowVaultTx) error {
	if err := o.loadEntry(tx.Vault, o.env.Caller); err != nil {
		return err
	}
	return o.backend.Engine.BorrowVault(o.env, o.records, tx.Amount)
}

func (o *operation) RepayVaultTx(tx *txs.RepayVaultTx) error {
	if err := o.loadEntry(tx.Vault, tx.Owner); err != nil {
		return err
	}
	_, err := o.backend.Engine.RepayVault(o.env, o.records, tx.Amount)
	return err
}

func (o *operation) LiquidateVaultTx(tx *txs.LiquidateVaultTx) error {
	if err := o.loadEntry(tx.Vault, tx.Owner); err != nil {
		return err
	}
	_, err := o.backend.Engine.LiquidateVault(o.env, o.records, tx.Amount)
	return err
}

func (o *operation) CreateSwaplineTx(tx *txs.CreateSwaplineTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	created, err := o.backend.Engine.CreateSwapline(o.env, o.records, tx.Swapline, tx.Fee, tx.Limit)
	if err != nil {
		return err
	}
	o.records.Swapline = created
	return nil
}

func (o *operation) SetSwaplineHaltedTx(tx *txs.SetSwaplineHaltedTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	return o.backend.Engine.SetSwaplineHalted(o.env, o.records, tx.Halted)
}

func (o *operation) SetSwaplineLimitTx(tx *txs.SetSwaplineLimitTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	return o.backend.Engine.SetSwaplineLimit(o.env, o.records, tx.Limit)
}

func (o *operation) WithdrawSwaplineFeeTx(tx *txs.WithdrawSwaplineFeeTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	amount, err := o.backend.Engine.WithdrawSwaplineFee(o.env, o.records)
	if err != nil {
		return err
	}
	o.withdrawn("withdrawSwaplineFee", amount)
	return nil
}

func (o *operation) NativeToSyntheticTx(tx *txs.NativeToSyntheticTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	_, err := o.backend.Engine.NativeToSynthetic(o.env, o.records, tx.Amount)
	return err
}

func (o *operation) SyntheticToNativeTx(tx *txs.SyntheticToNativeTx) error {
	if err := o.loadSwapline(tx.Swapline); err != nil {
		return err
	}
	_, err := o.backend.Engine.SyntheticToNative(o.env, o.records, tx.Amount)
	return err
}

func (o *operation) SetSettlementTimeTx(tx *txs.SetSettlementTimeTx) error {
	return o.backend.Engine.SetSettlementTime(o.env, o.records, tx.SyntheticIndex, tx.SettlementTime)
}

func (o *operation) SettleSyntheticTx(tx *txs.SettleSyntheticTx) error {
	settled, err := o.backend.Engine.SettleSynthetic(o.env, o.records, tx.SyntheticIndex)
	if err != nil {
		return err
	}
	o.records.Settlement = settled
	return nil
}

func (o *operation) SwapSettledSyntheticTx(tx *txs.SwapSettledSyntheticTx) error {
	if err := o.loadSettlement(tx.SyntheticIndex); err != nil {
		return err
	}
	_, err := o.backend.Engine.SwapSettledSynthetic(o.env, o.records, tx.Amount)
	return err
}
