// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"errors"
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
)

// AccountLiquidation describes an exchange-account liquidation.
type AccountLiquidation struct {
	// Repaid is the xUSD burned by the liquidator.
	Repaid decimal.Decimal
	// BurnedShares are the debt shares retired from the liquidated account.
	BurnedShares uint64
	// CollateralToLiquidator is credited to the liquidator's account.
	CollateralToLiquidator decimal.Decimal
	// CollateralToExchange is routed to the collateral's liquidation fund.
	CollateralToExchange decimal.Decimal
}

// AccountHealth is a read-only valuation of an exchange account.
type AccountHealth struct {
	CollateralValue decimal.Decimal
	MaxDebt         decimal.Decimal
	Debt            decimal.Decimal
	// Ratio is MaxDebt / Debt. An account without debt reports
	// health.MaxRatio.
	Ratio decimal.Decimal
}

// AccountHealth values r.Account as of env.Now, including the debt interest
// due since the last adjustment. No record is written.
func (e *Engine) AccountHealth(env Env, r Records) (AccountHealth, error) {
	if r.State == nil || r.Assets == nil {
		return AccountHealth{}, errors.New("accountHealth: missing exchange records")
	}
	if err := requireAccount(r.Account); err != nil {
		return AccountHealth{}, err
	}
	w := r.clone()
	if err := e.refreshPool(env, w); err != nil {
		return AccountHealth{}, err
	}
	p, err := accountPosition(env, w, w.Account)
	if err != nil {
		return AccountHealth{}, err
	}
	ratio, err := health.Ratio(p.MaxDebt, p.UserDebt)
	if err != nil {
		return AccountHealth{}, err
	}
	return AccountHealth{
		CollateralValue: p.CollateralValue,
		MaxDebt:         p.MaxDebt,
		Debt:            p.UserDebt,
		Ratio:           ratio,
	}, nil
}

// CreateAccount opens the caller's exchange account. r.Account holds the
// caller's existing account, if any.
func (e *Engine) CreateAccount(env Env, r Records) (*account.Account, error) {
	var created *account.Account
	err := e.apply("createExchangeAccount", env, r, func(w Records) error {
		if w.Account != nil {
			return fmt.Errorf("%w: %s", ErrAccountExists, env.Caller)
		}
		created = account.New(env.Caller, w.State.AccountVersion)
		return nil
	})
	return created, err
}

// Deposit moves amount of the collateral at index into r.Account.
func (e *Engine) Deposit(env Env, r Records, index uint8, amount decimal.Decimal) error {
	return e.apply("deposit", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		c, err := w.Assets.Collateral(index)
		if err != nil {
			return err
		}
		amount, err := checkAmount(amount, c.Scale())
		if err != nil {
			return err
		}
		if err := c.Deposit(amount); err != nil {
			return err
		}
		return w.Account.Deposit(index, amount)
	})
}

// Withdraw moves amount of the collateral at index out of r.Account if the
// remaining collateral still covers the account's debt.
func (e *Engine) Withdraw(env Env, r Records, index uint8, amount decimal.Decimal) error {
	return e.apply("withdraw", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		c, err := w.Assets.Collateral(index)
		if err != nil {
			return err
		}
		amount, err := checkAmount(amount, c.Scale())
		if err != nil {
			return err
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		if err := w.Account.Withdraw(index, amount); err != nil {
			return err
		}
		if err := c.Withdraw(amount); err != nil {
			return err
		}
		p, err := accountPosition(env, w, w.Account)
		if err != nil {
			return err
		}
		return health.Check(p.MaxDebt, p.UserDebt)
	})
}

// Mint issues amount of xUSD against r.Account's collateral.
func (e *Engine) Mint(env Env, r Records, amount decimal.Decimal) error {
	return e.apply("mint", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		amount, err := checkAmount(amount, decimal.USDScale)
		if err != nil {
			return err
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		p, err := accountPosition(env, w, w.Account)
		if err != nil {
			return err
		}
		mintLimit, err := p.MaxDebt.Mul(w.State.HealthFactor)
		if err != nil {
			return err
		}
		nextDebt, err := p.UserDebt.Add(amount)
		if err != nil {
			return err
		}
		if nextDebt.Gt(mintLimit) {
			return fmt.Errorf("%w: debt %s, limit %s", ErrMintLimit, nextDebt, mintLimit)
		}

		shares, err := w.State.Pool.NewShares(p.TotalDebt, amount)
		if err != nil {
			return err
		}
		syncStaking(env, w, w.Account)
		if err := w.Account.AddShares(shares); err != nil {
			return err
		}
		if err := w.State.Pool.Issue(shares); err != nil {
			return err
		}
		w.State.Staking.Minted(&w.Account.Staking, w.Account.DebtShares, w.State.Pool.DebtShares)
		xusd, err := w.Assets.Synthetic(assets.XUSDIndex)
		if err != nil {
			return err
		}
		return xusd.Mint(amount)
	})
}

// Burn repays up to amount of r.Account's debt in xUSD and returns the
// amount burned.
func (e *Engine) Burn(env Env, r Records, amount decimal.Decimal) (decimal.Decimal, error) {
	var burned decimal.Decimal
	err := e.apply("burn", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		amount, err := checkAmount(amount, decimal.USDScale)
		if err != nil {
			return err
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		p, err := accountPosition(env, w, w.Account)
		if err != nil {
			return err
		}
		burned, _, err = retireDebt(env, w, w.Account, p.UserDebt, amount)
		return err
	})
	return burned, err
}

// retireDebt burns min(amount, userDebt) of xUSD and retires the matching
// shares of a. It returns the xUSD burned and the shares retired.
func retireDebt(env Env, w Records, a *account.Account, userDebt, amount decimal.Decimal) (decimal.Decimal, uint64, error) {
	shares, err := w.State.Pool.BurnedShares(userDebt, a.DebtShares, amount)
	if err != nil {
		return decimal.Decimal{}, 0, err
	}
	burned := decimal.Min(amount, userDebt)
	xusd, err := w.Assets.Synthetic(assets.XUSDIndex)
	if err != nil {
		return decimal.Decimal{}, 0, err
	}
	if err := xusd.Burn(burned); err != nil {
		if errors.Is(err, decimal.ErrNegativeResult) {
			return decimal.Decimal{}, 0, fmt.Errorf("%w: burn %s of %s xUSD", ErrInsufficientBalance, burned, xusd.Supply)
		}
		return decimal.Decimal{}, 0, err
	}
	syncStaking(env, w, a)
	if err := a.RemoveShares(shares); err != nil {
		return decimal.Decimal{}, 0, err
	}
	if err := w.State.Pool.Retire(shares); err != nil {
		return decimal.Decimal{}, 0, err
	}
	w.State.Staking.Burned(&a.Staking, shares, a.DebtShares, w.State.Pool.DebtShares)
	return burned, shares, nil
}

// CheckAccountCollateralization flags r.Account for liquidation once its
// collateral no longer covers its debt. The account becomes liquidatable
// LiquidationBuffer seconds after it was first flagged. A healthy account is
// unflagged.
func (e *Engine) CheckAccountCollateralization(env Env, r Records) error {
	return e.apply("checkAccountCollateralization", env, r, func(w Records) error {
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		p, err := accountPosition(env, w, w.Account)
		if err != nil {
			return err
		}
		if p.MaxDebt.Gte(p.UserDebt) {
			w.Account.LiquidationDeadline = 0
			return nil
		}
		if w.Account.LiquidationDeadline == 0 {
			ratio, err := health.Ratio(p.MaxDebt, p.UserDebt)
			if err != nil {
				return err
			}
			w.Account.LiquidationDeadline = env.Now + int64(w.State.LiquidationBuffer)
			e.log.Warn("account flagged for liquidation",
				log.Stringer("owner", w.Account.Owner),
				log.Stringer("debt", p.UserDebt),
				log.Stringer("maxDebt", p.MaxDebt),
				log.Stringer("ratio", ratio),
			)
		}
		return nil
	})
}

// Liquidate repays up to LiquidationRate of r.Account's debt with
// r.Liquidator's xUSD. The liquidator's account is credited with collateral
// worth the repaid value plus PenaltyToLiquidator, and collateral worth
// PenaltyToExchange goes to the liquidation fund. The seized collateral is
// capped at the account's balance with the liquidator paid first.
func (e *Engine) Liquidate(env Env, r Records, index uint8, amount decimal.Decimal) (AccountLiquidation, error) {
	var result AccountLiquidation
	err := e.apply("liquidate", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		if err := requireAccount(w.Liquidator); err != nil {
			return err
		}
		if w.Account.Owner == w.Liquidator.Owner {
			return ErrSelfLiquidation
		}
		owner := w.Account
		if owner.LiquidationDeadline == 0 || env.Now < owner.LiquidationDeadline {
			return fmt.Errorf("%w: deadline %d, now %d", ErrLiquidationDeadline, owner.LiquidationDeadline, env.Now)
		}
		amount, err := checkAmount(amount, decimal.USDScale)
		if err != nil {
			return err
		}
		if err := e.refreshPool(env, w); err != nil {
			return err
		}
		p, err := accountPosition(env, w, owner)
		if err != nil {
			return err
		}
		if p.MaxDebt.Gte(p.UserDebt) {
			return fmt.Errorf("%w: max debt %s, debt %s", ErrLiquidationNotEligible, p.MaxDebt, p.UserDebt)
		}

		maxRepay, err := p.UserDebt.Mul(w.State.LiquidationRate)
		if err != nil {
			return err
		}
		repay := decimal.Min(amount, maxRepay)
		if repay.IsZero() {
			return fmt.Errorf("%w: nothing to repay", ErrInvalidAmount)
		}

		c, err := w.Assets.Collateral(index)
		if err != nil {
			return err
		}
		feed, err := w.Assets.CollateralFeed(index, env.Feeds, env.Now, w.State.MaxDelay)
		if err != nil {
			return err
		}
		toLiquidator, toExchange, err := seize(
			repay,
			w.State.PenaltyToLiquidator,
			w.State.PenaltyToExchange,
			feed.Price,
			owner.Balance(index),
			c.Scale(),
		)
		if err != nil {
			return err
		}

		repaid, shares, err := retireDebt(env, w, owner, p.UserDebt, repay)
		if err != nil {
			return err
		}
		seized, err := toLiquidator.Add(toExchange)
		if err != nil {
			return err
		}
		if err := owner.Withdraw(index, seized); err != nil {
			return err
		}
		if err := w.Liquidator.Deposit(index, toLiquidator); err != nil {
			return err
		}
		if err := c.Withdraw(toExchange); err != nil {
			return err
		}
		fund, err := c.LiquidationFund.Add(toExchange)
		if err != nil {
			return err
		}
		c.LiquidationFund = fund

		after, err := accountPosition(env, w, owner)
		if err != nil {
			return err
		}
		if after.MaxDebt.Gte(after.UserDebt) {
			owner.LiquidationDeadline = 0
		}

		result = AccountLiquidation{
			Repaid:                 repaid,
			BurnedShares:           shares,
			CollateralToLiquidator: toLiquidator,
			CollateralToExchange:   toExchange,
		}
		e.log.Warn("exchange account liquidated",
			log.Stringer("owner", owner.Owner),
			log.Stringer("liquidator", w.Liquidator.Owner),
			log.Stringer("repaid", repaid),
			log.Stringer("seized", seized),
		)
		return nil
	})
	return result, err
}

// seize converts a repaid USD value into the collateral paid to the
// liquidator and to the exchange, capped at balance.
func seize(
	repaid decimal.Decimal,
	penaltyToLiquidator decimal.Decimal,
	penaltyToExchange decimal.Decimal,
	price decimal.Decimal,
	balance decimal.Decimal,
	scale uint8,
) (decimal.Decimal, decimal.Decimal, error) {
	bonus, err := repaid.Mul(penaltyToLiquidator)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	liquidatorValue, err := repaid.Add(bonus)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	exchangeValue, err := repaid.Mul(penaltyToExchange)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	toLiquidator, err := health.Amount(liquidatorValue, price, scale)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	toExchange, err := health.Amount(exchangeValue, price, scale)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	balance, err = balance.ToScale(scale)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	toLiquidator = decimal.Min(toLiquidator, balance)
	remaining, err := balance.Sub(toLiquidator)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return toLiquidator, decimal.Min(toExchange, remaining), nil
}
