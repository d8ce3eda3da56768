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

// WithdrawLiquidationPenalty returns the exchange's share of the
// liquidation penalties collected in the collateral at index and empties
// the fund.
func (e *Engine) WithdrawLiquidationPenalty(env Env, r Records, index uint8) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := e.admin("withdrawLiquidationPenalty", env, r, func(w Records) error {
		var err error
		amount, err = w.Assets.WithdrawLiquidationFund(index)
		return err
	})
	return amount, err
}

// SetSettlementTime schedules the settlement of the synthetic at index.
func (e *Engine) SetSettlementTime(env Env, r Records, index uint8, settlementTime int64) error {
	return e.admin("setSettlementTime", env, r, func(w Records) error {
		return w.Assets.SetSettlementTime(index, settlementTime)
	})
}

// SettleSynthetic retires the synthetic at index once its settlement time
// has passed. Its supply is valued at the current price and that value is
// minted as xUSD into the returned settlement, from which holders redeem.
// Anyone may settle.
func (e *Engine) SettleSynthetic(env Env, r Records, index uint8) (*assets.Settlement, error) {
	var settled *assets.Settlement
	err := e.apply("settleSynthetic", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if index == assets.XUSDIndex {
			return fmt.Errorf("%w: xUSD cannot be settled", assets.ErrInvalidAssetIndex)
		}
		s, err := w.Assets.Synthetic(index)
		if err != nil {
			return err
		}
		if s.Settled {
			return fmt.Errorf("%w: synthetic %d", assets.ErrSettled, index)
		}
		if s.SettlementTime == 0 || env.Now < s.SettlementTime {
			return fmt.Errorf("%w: settlement time %d, now %d", assets.ErrSettlementNotDue, s.SettlementTime, env.Now)
		}
		if !s.BorrowedSupply.IsZero() || !s.SwaplineSupply.IsZero() {
			return fmt.Errorf("%w: borrowed %s, swapline %s", assets.ErrSettlementOutstanding, s.BorrowedSupply, s.SwaplineSupply)
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		feed, err := w.Assets.SyntheticFeed(index, env.Feeds, env.Now, w.State.MaxDelay)
		if err != nil {
			return err
		}
		reserve, err := health.Value(s.Supply, feed.Price)
		if err != nil {
			return err
		}
		xusd, err := w.Assets.Synthetic(assets.XUSDIndex)
		if err != nil {
			return err
		}
		// The debt moves from s to xUSD, so MaxSupply is not enforced.
		if err := xusd.Inflate(reserve); err != nil {
			return err
		}
		s.Settled = true
		s.Halted = true

		settled = &assets.Settlement{
			SyntheticIndex: index,
			AssetID:        s.AssetID,
			Ratio:          feed.Price,
			Reserve:        reserve,
			SettledAt:      env.Now,
		}
		e.log.Info("synthetic settled",
			log.Int("synthetic", int(index)),
			log.Stringer("price", feed.Price),
			log.Stringer("supply", s.Supply),
			log.Stringer("reserve", reserve),
		)
		return nil
	})
	return settled, err
}

// SwapSettledSynthetic burns amount of the synthetic settled by
// r.Settlement and pays its value in xUSD from the settlement reserve. It
// returns the xUSD paid.
func (e *Engine) SwapSettledSynthetic(env Env, r Records, amount decimal.Decimal) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := e.apply("swapSettledSynthetic", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if w.Settlement == nil {
			return ErrSettlementNotFound
		}
		s, err := w.Assets.Synthetic(w.Settlement.SyntheticIndex)
		if err != nil {
			return err
		}
		amount, err := checkAmount(amount, s.Scale())
		if err != nil {
			return err
		}
		paid, err = health.Value(amount, w.Settlement.Ratio)
		if err != nil {
			return err
		}
		if err := s.Burn(amount); err != nil {
			if errors.Is(err, decimal.ErrNegativeResult) {
				return fmt.Errorf("%w: burn %s of supply %s", ErrInsufficientBalance, amount, s.Supply)
			}
			return err
		}
		return w.Settlement.Pay(paid)
	})
	return paid, err
}
