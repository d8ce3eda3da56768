// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
)

// syncStaking rolls the staking rounds up to now and brings a's points up
// to date. It must run before a's shares change.
func syncStaking(env Env, w Records, a *account.Account) {
	w.State.Staking.Advance(env.Now, w.State.Pool.DebtShares)
	a.Staking.Sync(&w.State.Staking, a.DebtShares)
}

// ClaimRewards credits r.Account with its part of the finished staking
// round and returns the amount credited. Anyone may claim for any account.
func (e *Engine) ClaimRewards(env Env, r Records) (decimal.Decimal, error) {
	var claimed decimal.Decimal
	err := e.apply("claimRewards", env, r, func(w Records) error {
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		syncStaking(env, w, w.Account)
		var err error
		claimed, err = w.Account.Staking.Claim(&w.State.Staking)
		if err != nil {
			return err
		}
		if !claimed.IsZero() {
			e.log.Debug("claimed staking rewards",
				log.Stringer("owner", w.Account.Owner),
				log.Stringer("amount", claimed),
				log.Int("roundStart", int(w.State.Staking.FinishedRound.Start)),
			)
		}
		return nil
	})
	return claimed, err
}

// WithdrawRewards pays out the rewards claimed by the caller's r.Account.
func (e *Engine) WithdrawRewards(env Env, r Records) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := e.apply("withdrawRewards", env, r, func(w Records) error {
		if err := requireAccount(w.Account); err != nil {
			return err
		}
		if w.Account.Owner != env.Caller {
			return fmt.Errorf("%w: account of %s", ErrUnauthorized, w.Account.Owner)
		}
		var err error
		amount, err = w.Account.Staking.Withdraw()
		return err
	})
	return amount, err
}

// SetStakingAmountPerRound changes the reward of every round opened from
// now on.
func (e *Engine) SetStakingAmountPerRound(env Env, r Records, amount decimal.Decimal) error {
	return e.admin("setStakingAmountPerRound", env, r, func(w Records) error {
		amount, err := rescale(amount, staking.RewardScale)
		if err != nil {
			return err
		}
		w.State.Staking.AmountPerRound = amount
		return nil
	})
}

// SetStakingRoundLength changes the length of every round opened from now
// on.
func (e *Engine) SetStakingRoundLength(env Env, r Records, length uint32) error {
	return e.admin("setStakingRoundLength", env, r, func(w Records) error {
		if length == 0 {
			return staking.ErrInvalidRoundLength
		}
		w.State.Staking.RoundLength = length
		return nil
	})
}
