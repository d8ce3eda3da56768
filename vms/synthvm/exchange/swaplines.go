// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
)

// CreateSwapline opens the swapline between the synthetic and collateral
// named by key. r.Swapline holds the existing swapline for key, if any.
func (e *Engine) CreateSwapline(
	env Env,
	r Records,
	key swapline.Key,
	fee decimal.Decimal,
	limit decimal.Decimal,
) (*swapline.Swapline, error) {
	var created *swapline.Swapline
	err := e.admin("createSwapline", env, r, func(w Records) error {
		if w.Swapline != nil {
			return fmt.Errorf("%w: %d/%d", ErrSwaplineExists, key.SyntheticIndex, key.CollateralIndex)
		}
		c, err := w.Assets.Collateral(key.CollateralIndex)
		if err != nil {
			return err
		}
		s, err := w.Assets.Synthetic(key.SyntheticIndex)
		if err != nil {
			return err
		}
		if s.Settled {
			return fmt.Errorf("%w: synthetic %d", assets.ErrSettled, key.SyntheticIndex)
		}
		limit, err := rescale(limit, c.Scale())
		if err != nil {
			return err
		}
		created, err = swapline.New(key, c.Scale(), fee, limit)
		return err
	})
	return created, err
}

// openSwapline runs the checks shared by the swapline conversions.
func openSwapline(w Records) (*assets.Collateral, *assets.Synthetic, error) {
	if err := requireRunning(w.State); err != nil {
		return nil, nil, err
	}
	if w.Swapline == nil {
		return nil, nil, ErrSwaplineNotFound
	}
	c, err := w.Assets.Collateral(w.Swapline.CollateralIndex)
	if err != nil {
		return nil, nil, err
	}
	s, err := w.Assets.Synthetic(w.Swapline.SyntheticIndex)
	if err != nil {
		return nil, nil, err
	}
	if s.Settled {
		return nil, nil, fmt.Errorf("%w: synthetic %d", assets.ErrSettled, w.Swapline.SyntheticIndex)
	}
	return c, s, nil
}

// NativeToSynthetic converts amount of the swapline's collateral into its
// synthetic and returns the synthetic issued.
func (e *Engine) NativeToSynthetic(env Env, r Records, amount decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := e.apply("nativeToSynthetic", env, r, func(w Records) error {
		c, s, err := openSwapline(w)
		if err != nil {
			return err
		}
		if s.Halted {
			return fmt.Errorf("%w: synthetic %d is halted", ErrHaltedPair, w.Swapline.SyntheticIndex)
		}
		amount, err := checkAmount(amount, c.Scale())
		if err != nil {
			return err
		}
		out, err = w.Swapline.NativeToSynthetic(s, amount)
		if err != nil {
			return err
		}
		e.log.Debug("converted collateral to synthetic",
			log.Int("synthetic", int(w.Swapline.SyntheticIndex)),
			log.Int("collateral", int(w.Swapline.CollateralIndex)),
			log.Stringer("amountIn", amount),
			log.Stringer("amountOut", out),
		)
		return nil
	})
	return out, err
}

// SyntheticToNative converts amount of the swapline's synthetic back into
// its collateral and returns the collateral paid out.
func (e *Engine) SyntheticToNative(env Env, r Records, amount decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := e.apply("syntheticToNative", env, r, func(w Records) error {
		_, s, err := openSwapline(w)
		if err != nil {
			return err
		}
		amount, err := checkAmount(amount, s.Scale())
		if err != nil {
			return err
		}
		out, err = w.Swapline.SyntheticToNative(s, amount)
		if err != nil {
			return err
		}
		e.log.Debug("converted synthetic to collateral",
			log.Int("synthetic", int(w.Swapline.SyntheticIndex)),
			log.Int("collateral", int(w.Swapline.CollateralIndex)),
			log.Stringer("amountIn", amount),
			log.Stringer("amountOut", out),
		)
		return nil
	})
	return out, err
}

// WithdrawSwaplineFee returns the fee collected by r.Swapline and resets it.
func (e *Engine) WithdrawSwaplineFee(env Env, r Records) (decimal.Decimal, error) {
	var fee decimal.Decimal
	err := e.admin("withdrawSwaplineFee", env, r, func(w Records) error {
		if w.Swapline == nil {
			return ErrSwaplineNotFound
		}
		fee = w.Swapline.WithdrawFee()
		return nil
	})
	return fee, err
}

func (e *Engine) SetSwaplineHalted(env Env, r Records, halted bool) error {
	return e.admin("setSwaplineHalted", env, r, func(w Records) error {
		if w.Swapline == nil {
			return ErrSwaplineNotFound
		}
		w.Swapline.Halted = halted
		return nil
	})
}

func (e *Engine) SetSwaplineLimit(env Env, r Records, limit decimal.Decimal) error {
	return e.admin("setSwaplineLimit", env, r, func(w Records) error {
		if w.Swapline == nil {
			return ErrSwaplineNotFound
		}
		limit, err := rescale(limit, w.Swapline.Limit.Scale)
		if err != nil {
			return err
		}
		return w.Swapline.SetLimit(limit)
	})
}
