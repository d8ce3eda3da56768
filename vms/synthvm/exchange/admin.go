// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

// LiquidationParams are the exchange-account liquidation parameters at
// decimal.PercentScale.
type LiquidationParams struct {
	LiquidationRate     decimal.Decimal
	PenaltyToLiquidator decimal.Decimal
	PenaltyToExchange   decimal.Decimal
	LiquidationBuffer   uint32
}

// admin runs f for the admin only.
func (e *Engine) admin(op string, env Env, r Records, f func(Records) error) error {
	return e.apply(op, env, r, func(w Records) error {
		if err := requireAdmin(env, w.State); err != nil {
			return err
		}
		if err := f(w); err != nil {
			return err
		}
		e.log.Info("admin operation applied",
			log.String("op", op),
			log.Stringer("admin", env.Caller),
		)
		return nil
	})
}

func checkFraction(name string, ratio decimal.Decimal) (decimal.Decimal, error) {
	if ratio.Gt(decimal.One(decimal.PercentScale)) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %s above 100%%", ErrInvalidAmount, name, ratio)
	}
	return ratio.ToScale(decimal.PercentScale)
}

// AddCollateral appends c to the registry and returns its index.
func (e *Engine) AddCollateral(env Env, r Records, c assets.Collateral) (uint8, error) {
	var index uint8
	err := e.admin("addCollateral", env, r, func(w Records) error {
		var err error
		index, err = w.Assets.AddCollateral(c)
		return err
	})
	return index, err
}

// AddSynthetic appends s to the registry and returns its index.
func (e *Engine) AddSynthetic(env Env, r Records, s assets.Synthetic) (uint8, error) {
	var index uint8
	err := e.admin("addSynthetic", env, r, func(w Records) error {
		var err error
		index, err = w.Assets.AddSynthetic(s)
		return err
	})
	return index, err
}

func (e *Engine) SetAssetMaxSupply(env Env, r Records, index uint8, limit decimal.Decimal) error {
	return e.admin("setAssetMaxSupply", env, r, func(w Records) error {
		s, err := w.Assets.Synthetic(index)
		if err != nil {
			return err
		}
		limit, err := rescale(limit, s.Scale())
		if err != nil {
			return err
		}
		return w.Assets.SetMaxSupply(index, limit)
	})
}

func (e *Engine) SetCollateralRatio(env Env, r Records, index uint8, ratio decimal.Decimal) error {
	return e.admin("setCollateralRatio", env, r, func(w Records) error {
		return w.Assets.SetCollateralRatio(index, ratio)
	})
}

func (e *Engine) SetMaxCollateral(env Env, r Records, index uint8, limit decimal.Decimal) error {
	return e.admin("setMaxCollateral", env, r, func(w Records) error {
		c, err := w.Assets.Collateral(index)
		if err != nil {
			return err
		}
		limit, err := rescale(limit, c.Scale())
		if err != nil {
			return err
		}
		return w.Assets.SetMaxCollateral(index, limit)
	})
}

// SetPriceFeed relinks a registry slot to another feed. collateral selects
// the collateral arena, otherwise the synthetic arena is used.
func (e *Engine) SetPriceFeed(env Env, r Records, collateral bool, index uint8, feedID ids.ID) error {
	return e.admin("setPriceFeed", env, r, func(w Records) error {
		if collateral {
			return w.Assets.SetCollateralFeed(index, feedID)
		}
		return w.Assets.SetSyntheticFeed(index, feedID)
	})
}

func (e *Engine) SetSyntheticHalted(env Env, r Records, index uint8, halted bool) error {
	return e.admin("setSyntheticHalted", env, r, func(w Records) error {
		return w.Assets.SetSyntheticHalted(index, halted)
	})
}

func (e *Engine) SetSwapTaxBearing(env Env, r Records, index uint8, taxed bool) error {
	return e.admin("setSwapTaxBearing", env, r, func(w Records) error {
		return w.Assets.SetSwapTaxBearing(index, taxed)
	})
}

// SetHalted halts or resumes every user operation.
func (e *Engine) SetHalted(env Env, r Records, halted bool) error {
	return e.admin("setHalted", env, r, func(w Records) error {
		w.State.Halted = halted
		return nil
	})
}

// SetAdmin hands the admin role to another identity.
func (e *Engine) SetAdmin(env Env, r Records, admin ids.ShortID) error {
	return e.admin("setAdmin", env, r, func(w Records) error {
		w.State.Admin = admin
		return nil
	})
}

func (e *Engine) SetFee(env Env, r Records, fee decimal.Decimal) error {
	return e.admin("setFee", env, r, func(w Records) error {
		fee, err := checkFraction("fee", fee)
		if err != nil {
			return err
		}
		w.State.Fee = fee
		return nil
	})
}

func (e *Engine) SetSwapTaxRatio(env Env, r Records, ratio decimal.Decimal) error {
	return e.admin("setSwapTaxRatio", env, r, func(w Records) error {
		ratio, err := checkFraction("swap tax ratio", ratio)
		if err != nil {
			return err
		}
		w.State.SwapTaxRatio = ratio
		return nil
	})
}

func (e *Engine) SetMaxDelay(env Env, r Records, maxDelay uint32) error {
	return e.admin("setMaxDelay", env, r, func(w Records) error {
		w.State.MaxDelay = maxDelay
		return nil
	})
}

func (e *Engine) SetHealthFactor(env Env, r Records, factor decimal.Decimal) error {
	return e.admin("setHealthFactor", env, r, func(w Records) error {
		factor, err := checkFraction("health factor", factor)
		if err != nil {
			return err
		}
		if factor.IsZero() {
			return fmt.Errorf("%w: zero health factor", ErrInvalidAmount)
		}
		w.State.HealthFactor = factor
		return nil
	})
}

// SetDebtInterestRate charges the interest due at the old rate before
// switching to rate.
func (e *Engine) SetDebtInterestRate(env Env, r Records, rate decimal.Decimal) error {
	return e.admin("setDebtInterestRate", env, r, func(w Records) error {
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		w.State.Pool.DebtInterestRate = rate
		return nil
	})
}

func (e *Engine) SetLiquidationParams(env Env, r Records, params LiquidationParams) error {
	return e.admin("setLiquidationParams", env, r, func(w Records) error {
		rate, err := checkFraction("liquidation rate", params.LiquidationRate)
		if err != nil {
			return err
		}
		toLiquidator, err := checkFraction("liquidator penalty", params.PenaltyToLiquidator)
		if err != nil {
			return err
		}
		toExchange, err := checkFraction("exchange penalty", params.PenaltyToExchange)
		if err != nil {
			return err
		}
		w.State.LiquidationRate = rate
		w.State.PenaltyToLiquidator = toLiquidator
		w.State.PenaltyToExchange = toExchange
		w.State.LiquidationBuffer = params.LiquidationBuffer
		return nil
	})
}

// WithdrawSwapTax mints the swap tax reserve as xUSD for the admin and
// returns the amount.
func (e *Engine) WithdrawSwapTax(env Env, r Records) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := e.admin("withdrawSwapTax", env, r, func(w Records) error {
		xusd, err := w.Assets.Synthetic(assets.XUSDIndex)
		if err != nil {
			return err
		}
		amount = w.State.SwapTaxReserve
		if err := xusd.Mint(amount); err != nil {
			return err
		}
		w.State.SwapTaxReserve = decimal.Zero(amount.Scale)
		return nil
	})
	return amount, err
}

// WithdrawAccumulatedDebtInterest returns the xUSD charged as debt interest
// since the last withdrawal. It is already part of the xUSD supply.
func (e *Engine) WithdrawAccumulatedDebtInterest(env Env, r Records) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := e.admin("withdrawAccumulatedDebtInterest", env, r, func(w Records) error {
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		amount = w.State.Pool.CollectInterest()
		return nil
	})
	return amount, err
}
