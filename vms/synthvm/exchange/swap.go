// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"errors"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
)

// SwapResult describes a settled swap. Fee and Tax are USD values.
type SwapResult struct {
	AmountOut decimal.Decimal
	Fee       decimal.Decimal
	Tax       decimal.Decimal
}

// Swap converts amountIn of the synthetic at tokenIn into the synthetic at
// tokenOut at feed prices. The fee is burned except for the swap tax, which
// is kept in the reserve when either side is tax bearing.
func (e *Engine) Swap(env Env, r Records, tokenIn, tokenOut uint8, amountIn decimal.Decimal) (SwapResult, error) {
	var result SwapResult
	err := e.apply("swap", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		if tokenIn == tokenOut {
			return fmt.Errorf("%w: swap of synthetic %d into itself", assets.ErrInvalidAssetIndex, tokenIn)
		}
		in, err := w.Assets.Synthetic(tokenIn)
		if err != nil {
			return err
		}
		out, err := w.Assets.Synthetic(tokenOut)
		if err != nil {
			return err
		}
		if in.Settled || out.Settled {
			return fmt.Errorf("%w: swap of synthetic %d into %d", assets.ErrSettled, tokenIn, tokenOut)
		}
		amountIn, err := checkAmount(amountIn, in.Scale())
		if err != nil {
			return err
		}

		feedIn, err := w.Assets.SyntheticFeed(tokenIn, env.Feeds, env.Now, w.State.MaxDelay)
		if err != nil {
			return err
		}
		feedOut, err := w.Assets.SyntheticFeed(tokenOut, env.Feeds, env.Now, w.State.MaxDelay)
		if err != nil {
			return err
		}
		if out.Halted || !feedOut.Tradable() {
			return fmt.Errorf("%w: synthetic %d is %s", ErrHaltedPair, tokenOut, feedOut.Status)
		}

		result, err = quote(w.State, in, out, feedIn.Price, feedOut.Price, amountIn)
		if err != nil {
			return err
		}
		if err := in.Burn(amountIn); err != nil {
			if errors.Is(err, decimal.ErrNegativeResult) {
				return fmt.Errorf("%w: burn %s of supply %s", ErrInsufficientBalance, amountIn, in.Supply)
			}
			return err
		}
		if err := out.Mint(result.AmountOut); err != nil {
			return err
		}
		reserve, err := w.State.SwapTaxReserve.Add(result.Tax)
		if err != nil {
			return err
		}
		w.State.SwapTaxReserve = reserve

		e.log.Debug("swapped",
			log.Int("tokenIn", int(tokenIn)),
			log.Int("tokenOut", int(tokenOut)),
			log.Stringer("amountIn", amountIn),
			log.Stringer("amountOut", result.AmountOut),
			log.Stringer("fee", result.Fee),
		)
		return nil
	})
	return result, err
}

// quote prices a swap without touching any record.
func quote(
	s *State,
	in *assets.Synthetic,
	out *assets.Synthetic,
	priceIn decimal.Decimal,
	priceOut decimal.Decimal,
	amountIn decimal.Decimal,
) (SwapResult, error) {
	valueIn, err := health.Value(amountIn, priceIn)
	if err != nil {
		return SwapResult{}, err
	}
	fee, err := valueIn.MulUp(s.Fee)
	if err != nil {
		return SwapResult{}, err
	}
	tax := decimal.Zero(decimal.USDScale)
	if in.SwapTaxBearing || out.SwapTaxBearing {
		tax, err = fee.MulUp(s.SwapTaxRatio)
		if err != nil {
			return SwapResult{}, err
		}
	}
	valueOut, err := valueIn.Sub(fee)
	if err != nil {
		return SwapResult{}, err
	}
	amountOut, err := health.Amount(valueOut, priceOut, out.Scale())
	if err != nil {
		return SwapResult{}, err
	}
	return SwapResult{
		AmountOut: amountOut,
		Fee:       fee,
		Tax:       tax,
	}, nil
}
