// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/config"
	"github.com/luxfi/synthvm/vms/synthvm/debt"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
)

// State is the exchange singleton. Ratios are at decimal.PercentScale.
type State struct {
	Admin          ids.ShortID
	Halted         bool
	AccountVersion uint8

	Fee          decimal.Decimal
	SwapTaxRatio decimal.Decimal
	// SwapTaxReserve is the USD value of collected swap tax not yet
	// withdrawn as xUSD.
	SwapTaxReserve decimal.Decimal
	MaxDelay       uint32
	HealthFactor   decimal.Decimal

	LiquidationRate     decimal.Decimal
	PenaltyToLiquidator decimal.Decimal
	PenaltyToExchange   decimal.Decimal
	LiquidationBuffer   uint32

	Pool    debt.Pool
	Staking staking.Staking
}

// Genesis builds the initial state and registry from cfg.
func Genesis(cfg config.Config, now int64) (*State, *assets.List, error) {
	if err := cfg.Verify(); err != nil {
		return nil, nil, err
	}
	admin, err := cfg.AdminID()
	if err != nil {
		return nil, nil, err
	}
	xusdID, err := cfg.XUSDID()
	if err != nil {
		return nil, nil, err
	}

	rounds, err := staking.New(cfg.StakingRoundLength, decimal.New(cfg.StakingAmountPerRound, staking.RewardScale), now)
	if err != nil {
		return nil, nil, err
	}

	s := &State{
		Admin:               admin,
		Halted:              cfg.Halted,
		AccountVersion:      cfg.AccountVersion,
		Fee:                 decimal.Percent(cfg.Fee),
		SwapTaxRatio:        decimal.Percent(cfg.SwapTaxRatio),
		SwapTaxReserve:      decimal.Zero(decimal.USDScale),
		MaxDelay:            cfg.MaxDelay,
		HealthFactor:        decimal.Percent(cfg.HealthFactor),
		LiquidationRate:     decimal.Percent(cfg.LiquidationRate),
		PenaltyToLiquidator: decimal.Percent(cfg.PenaltyToLiquidator),
		PenaltyToExchange:   decimal.Percent(cfg.PenaltyToExchange),
		LiquidationBuffer:   cfg.LiquidationBuffer,
		Pool:                debt.New(decimal.Percent(cfg.DebtInterestRate), now),
		Staking:             rounds,
	}
	list := assets.NewList(xusdID, decimal.USD(cfg.XUSDMaxSupply))
	return s, list, nil
}
