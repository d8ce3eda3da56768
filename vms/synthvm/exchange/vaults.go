// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

// CreateVault opens the vault lending the synthetic at syntheticIndex
// against the collateral at collateralIndex. r.Vault holds the existing
// vault for the pair, if any.
func (e *Engine) CreateVault(
	env Env,
	r Records,
	collateralIndex uint8,
	syntheticIndex uint8,
	params vault.Params,
) (*vault.Vault, error) {
	var created *vault.Vault
	err := e.admin("createVault", env, r, func(w Records) error {
		if w.Vault != nil {
			return fmt.Errorf("%w: %s", ErrVaultExists, w.Vault.Key())
		}
		c, err := w.Assets.Collateral(collateralIndex)
		if err != nil {
			return err
		}
		s, err := w.Assets.Synthetic(syntheticIndex)
		if err != nil {
			return err
		}
		created, err = vault.New(collateralIndex, c, syntheticIndex, s, params, env.Now)
		return err
	})
	return created, err
}

// SetVaultHalted halts or resumes r.Vault.
func (e *Engine) SetVaultHalted(env Env, r Records, halted bool) error {
	return e.admin("setVaultHalted", env, r, func(w Records) error {
		if w.Vault == nil {
			return ErrVaultNotFound
		}
		w.Vault.Halted = halted
		return nil
	})
}

// WithdrawVaultAccumulatedInterest returns the synthetic interest accrued by
// r.Vault since the last withdrawal. It is already part of the supply.
func (e *Engine) WithdrawVaultAccumulatedInterest(env Env, r Records) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := e.admin("withdrawVaultAccumulatedInterest", env, r, func(w Records) error {
		if _, _, err := e.refreshVault(env, w); err != nil {
			return err
		}
		amount = w.Vault.CollectInterest()
		return nil
	})
	return amount, err
}

// refreshVault accrues r.Vault up to now and catches r.Entry up with it.
func (e *Engine) refreshVault(env Env, w Records) (*assets.Collateral, *assets.Synthetic, error) {
	if w.Vault == nil {
		return nil, nil, ErrVaultNotFound
	}
	c, err := w.Assets.Collateral(w.Vault.CollateralIndex)
	if err != nil {
		return nil, nil, err
	}
	s, err := w.Assets.Synthetic(w.Vault.SyntheticIndex)
	if err != nil {
		return nil, nil, err
	}
	delta, err := w.Vault.Refresh(env.Now, s)
	if err != nil {
		return nil, nil, err
	}
	if !delta.IsZero() {
		e.log.Debug("accrued vault interest",
			log.Stringer("vault", w.Vault.Key()),
			log.Stringer("interest", delta),
			log.Stringer("rate", w.Vault.AccumulatedInterestRate),
		)
	}
	if w.Entry != nil {
		if err := w.Entry.Refresh(w.Vault, s); err != nil {
			return nil, nil, err
		}
	}
	return c, s, nil
}

// openVault runs the checks shared by every user vault operation and
// refreshes the vault and entry.
func (e *Engine) openVault(env Env, w Records) (*assets.Collateral, *assets.Synthetic, error) {
	if err := requireRunning(w.State); err != nil {
		return nil, nil, err
	}
	if w.Vault == nil {
		return nil, nil, ErrVaultNotFound
	}
	if w.Vault.Halted {
		return nil, nil, fmt.Errorf("%w: %s", ErrVaultHalted, w.Vault.Key())
	}
	if w.Entry == nil {
		return nil, nil, fmt.Errorf("%w: vault %s", vault.ErrVaultEntryNotFound, w.Vault.Key())
	}
	return e.refreshVault(env, w)
}

func vaultPrices(env Env, w Records) (vault.Prices, error) {
	collateral, err := w.Assets.CollateralFeed(w.Vault.CollateralIndex, env.Feeds, env.Now, w.State.MaxDelay)
	if err != nil {
		return vault.Prices{}, err
	}
	synthetic, err := w.Assets.SyntheticFeed(w.Vault.SyntheticIndex, env.Feeds, env.Now, w.State.MaxDelay)
	if err != nil {
		return vault.Prices{}, err
	}
	return vault.Prices{
		Collateral: collateral.Price,
		Synthetic:  synthetic.Price,
	}, nil
}

func requireOwner(env Env, entry *vault.Entry) error {
	if entry.Owner != env.Caller {
		return fmt.Errorf("%w: entry of %s", ErrUnauthorized, entry.Owner)
	}
	return nil
}

// CreateVaultEntry opens the caller's position in r.Vault. r.Entry holds the
// caller's existing entry, if any.
func (e *Engine) CreateVaultEntry(env Env, r Records) (*vault.Entry, error) {
	var created *vault.Entry
	err := e.apply("createVaultEntry", env, r, func(w Records) error {
		if err := requireRunning(w.State); err != nil {
			return err
		}
		if w.Entry != nil {
			return fmt.Errorf("%w: %s", ErrVaultEntryExists, env.Caller)
		}
		if _, _, err := e.refreshVault(env, w); err != nil {
			return err
		}
		created = vault.NewEntry(w.Vault, env.Caller)
		return nil
	})
	return created, err
}

// VaultDeposit adds collateral to r.Entry. A zero amount only accrues.
func (e *Engine) VaultDeposit(env Env, r Records, amount decimal.Decimal) error {
	return e.apply("vaultDeposit", env, r, func(w Records) error {
		c, _, err := e.openVault(env, w)
		if err != nil {
			return err
		}
		amount, err := rescale(amount, c.Scale())
		if err != nil {
			return err
		}
		return w.Vault.Deposit(w.Entry, amount)
	})
}

// VaultWithdraw removes collateral from the caller's r.Entry.
func (e *Engine) VaultWithdraw(env Env, r Records, amount decimal.Decimal) error {
	return e.apply("vaultWithdraw", env, r, func(w Records) error {
		c, _, err := e.openVault(env, w)
		if err != nil {
			return err
		}
		if err := requireOwner(env, w.Entry); err != nil {
			return err
		}
		amount, err := checkAmount(amount, c.Scale())
		if err != nil {
			return err
		}
		prices, err := vaultPrices(env, w)
		if err != nil {
			return err
		}
		return w.Vault.Withdraw(w.Entry, amount, prices)
	})
}

// BorrowVault mints amount of the vault's synthetic against the caller's
// r.Entry.
func (e *Engine) BorrowVault(env Env, r Records, amount decimal.Decimal) error {
	return e.apply("borrowVault", env, r, func(w Records) error {
		_, s, err := e.openVault(env, w)
		if err != nil {
			return err
		}
		if err := requireOwner(env, w.Entry); err != nil {
			return err
		}
		if s.Settled {
			return fmt.Errorf("%w: synthetic %d", assets.ErrSettled, w.Vault.SyntheticIndex)
		}
		amount, err := checkAmount(amount, s.Scale())
		if err != nil {
			return err
		}
		prices, err := vaultPrices(env, w)
		if err != nil {
			return err
		}
		return w.Vault.Borrow(w.Entry, s, amount, prices)
	})
}

// RepayVault burns up to amount of r.Entry's debt and returns the amount
// repaid.
func (e *Engine) RepayVault(env Env, r Records, amount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := e.apply("repayVault", env, r, func(w Records) error {
		_, s, err := e.openVault(env, w)
		if err != nil {
			return err
		}
		amount, err := checkAmount(amount, s.Scale())
		if err != nil {
			return err
		}
		repaid, err = w.Vault.Repay(w.Entry, s, amount)
		return err
	})
	return repaid, err
}

// LiquidateVault repays part of the undercollateralized r.Entry on behalf of
// the caller.
func (e *Engine) LiquidateVault(env Env, r Records, amount decimal.Decimal) (vault.LiquidationResult, error) {
	var result vault.LiquidationResult
	err := e.apply("liquidateVault", env, r, func(w Records) error {
		c, s, err := e.openVault(env, w)
		if err != nil {
			return err
		}
		if w.Entry.Owner == env.Caller {
			return ErrSelfLiquidation
		}
		amount, err := checkAmount(amount, s.Scale())
		if err != nil {
			return err
		}
		prices, err := vaultPrices(env, w)
		if err != nil {
			return err
		}
		result, err = w.Vault.Liquidate(w.Entry, s, c, amount, prices)
		if err != nil {
			return err
		}
		e.log.Warn("vault entry liquidated",
			log.Stringer("vault", w.Vault.Key()),
			log.Stringer("owner", w.Entry.Owner),
			log.Stringer("liquidator", env.Caller),
			log.Stringer("repaid", result.Repaid),
			log.Stringer("collateralToLiquidator", result.CollateralToLiquidator),
		)
		return nil
	})
	return result, err
}
