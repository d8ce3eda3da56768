// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package exchange implements every state transition of the synthetic
// exchange. Operations run in three steps: a lazy refresh of the touched
// pool or vault, the health checks against the hypothetical post-operation
// state, and the mutation. They work on copies of the records they are given
// and only write back when every step succeeded.
package exchange

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/debt"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

// Env is the context of one operation.
type Env struct {
	// Now is the current unix time in seconds.
	Now int64
	// Caller is the authenticated identity running the operation.
	Caller ids.ShortID
	// Feeds is the price-feed snapshot supplied with the operation.
	Feeds *oracle.Snapshot
}

// Records are the persisted records an operation reads and writes. State and
// Assets are always required; the rest depend on the operation.
type Records struct {
	State      *State
	Assets     *assets.List
	Account    *account.Account
	Liquidator *account.Account
	Vault      *vault.Vault
	Entry      *vault.Entry
	Swapline   *swapline.Swapline
	Settlement *assets.Settlement
}

// clone returns deep copies of the records.
func (r Records) clone() Records {
	c := Records{}
	if r.State != nil {
		s := *r.State
		c.State = &s
	}
	if r.Assets != nil {
		l := *r.Assets
		c.Assets = &l
	}
	if r.Account != nil {
		a := *r.Account
		c.Account = &a
	}
	if r.Liquidator != nil {
		a := *r.Liquidator
		c.Liquidator = &a
	}
	if r.Vault != nil {
		v := *r.Vault
		c.Vault = &v
	}
	if r.Entry != nil {
		e := *r.Entry
		c.Entry = &e
	}
	if r.Swapline != nil {
		l := *r.Swapline
		c.Swapline = &l
	}
	if r.Settlement != nil {
		st := *r.Settlement
		c.Settlement = &st
	}
	return c
}

// commit overwrites the records with the working copies.
func (r Records) commit(work Records) {
	if r.State != nil {
		*r.State = *work.State
	}
	if r.Assets != nil {
		*r.Assets = *work.Assets
	}
	if r.Account != nil {
		*r.Account = *work.Account
	}
	if r.Liquidator != nil {
		*r.Liquidator = *work.Liquidator
	}
	if r.Vault != nil {
		*r.Vault = *work.Vault
	}
	if r.Entry != nil {
		*r.Entry = *work.Entry
	}
	if r.Swapline != nil {
		*r.Swapline = *work.Swapline
	}
	if r.Settlement != nil {
		*r.Settlement = *work.Settlement
	}
}

// Engine runs operations against caller-supplied records.
type Engine struct {
	log log.Logger
}

func NewEngine(log log.Logger) *Engine {
	return &Engine{log: log}
}

// apply runs f on copies of r and writes them back if f succeeds.
func (e *Engine) apply(op string, env Env, r Records, f func(Records) error) error {
	if r.State == nil || r.Assets == nil {
		return fmt.Errorf("%s: missing exchange records", op)
	}
	work := r.clone()
	if err := f(work); err != nil {
		e.log.Debug("operation rejected",
			log.String("op", op),
			log.Stringer("caller", env.Caller),
			log.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	r.commit(work)
	return nil
}

func requireAdmin(env Env, s *State) error {
	if env.Caller != s.Admin {
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Caller)
	}
	return nil
}

func requireRunning(s *State) error {
	if s.Halted {
		return ErrHalted
	}
	return nil
}

func requireAccount(a *account.Account) error {
	if a == nil {
		return ErrAccountNotFound
	}
	return nil
}

// checkAmount rejects zero amounts and amounts with more fractional digits
// than the asset, and returns amount at the asset's scale.
func checkAmount(amount decimal.Decimal, scale uint8) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: zero", ErrInvalidAmount)
	}
	return rescale(amount, scale)
}

// rescale returns amount at scale, rejecting any loss of precision.
func rescale(amount decimal.Decimal, scale uint8) (decimal.Decimal, error) {
	scaled, err := amount.ToScale(scale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !scaled.Eq(amount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s has more than %d fractional digits", ErrInvalidAmount, amount, scale)
	}
	return scaled, nil
}

// refreshPool charges the debt interest due since the last adjustment.
func (e *Engine) refreshPool(env Env, r Records) error {
	charged, err := r.State.Pool.Refresh(r.Assets, env.Feeds, env.Now, r.State.MaxDelay)
	if err != nil {
		return err
	}
	if !charged.IsZero() {
		e.log.Debug("charged debt interest",
			log.Stringer("interest", charged),
			log.Int("lastDebtAdjustment", int(r.State.Pool.LastDebtAdjustment)),
		)
	}
	return nil
}

// position is an exchange account valued against the pool.
type position struct {
	health.Valuation
	TotalDebt decimal.Decimal
	UserDebt  decimal.Decimal
}

func accountPosition(env Env, r Records, a *account.Account) (position, error) {
	valuation, err := a.Valuation(r.Assets, env.Feeds, env.Now, r.State.MaxDelay)
	if err != nil {
		return position{}, err
	}
	totalDebt, err := debt.TotalDebt(r.Assets, env.Feeds, env.Now, r.State.MaxDelay, false)
	if err != nil {
		return position{}, err
	}
	userDebt, err := r.State.Pool.UserDebt(totalDebt, a.DebtShares)
	if err != nil {
		return position{}, err
	}
	return position{
		Valuation: valuation,
		TotalDebt: totalDebt,
		UserDebt:  userDebt,
	}, nil
}
