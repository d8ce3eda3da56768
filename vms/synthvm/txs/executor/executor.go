// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/synthvm/utils/timer/mockable"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/metrics"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
	"github.com/luxfi/synthvm/vms/synthvm/state"
	"github.com/luxfi/synthvm/vms/synthvm/txs"
)

var errMissingTx = errors.New("missing operation")

type Backend struct {
	Engine  *exchange.Engine
	Clk     *mockable.Clock
	Metrics metrics.Metrics
	Log     log.Logger
}

// Executor runs operations against the persisted state one at a time. An
// accepted operation is committed with every record it touched; a rejected
// one leaves the database unchanged.
type Executor struct {
	backend *Backend

	lock  sync.Mutex
	state state.State
}

func New(backend *Backend, s state.State) *Executor {
	return &Executor{
		backend: backend,
		state:   s,
	}
}

// Execute runs tx at the clock's current time.
func (e *Executor) Execute(tx *txs.Tx) error {
	if tx == nil || tx.Unsigned == nil {
		return errMissingTx
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	op := &operation{
		backend: e.backend,
		state:   e.state,
		env: exchange.Env{
			Now:    e.backend.Clk.Unix(),
			Caller: tx.Caller,
			Feeds:  tx.Feeds,
		},
	}
	if err := e.execute(op, tx.Unsigned); err != nil {
		e.state.Abort()
		return errors.Join(err, e.backend.Metrics.MarkRejected(tx.Unsigned))
	}

	e.backend.Metrics.SetDebtShares(op.records.State.Pool.DebtShares)
	return e.backend.Metrics.MarkAccepted(tx.Unsigned)
}

// AccountHealth values the exchange account of owner at the clock's current
// time against feeds without writing anything.
func (e *Executor) AccountHealth(owner ids.ShortID, feeds *oracle.Snapshot) (exchange.AccountHealth, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	op := &operation{
		backend: e.backend,
		state:   e.state,
		env: exchange.Env{
			Now:    e.backend.Clk.Unix(),
			Caller: owner,
			Feeds:  feeds,
		},
	}
	if err := op.load(); err != nil {
		return exchange.AccountHealth{}, err
	}
	if err := op.loadAccount(owner); err != nil {
		return exchange.AccountHealth{}, err
	}
	return e.backend.Engine.AccountHealth(op.env, op.records)
}

func (e *Executor) execute(op *operation, tx txs.UnsignedTx) error {
	if err := op.load(); err != nil {
		return err
	}
	if err := tx.Visit(op); err != nil {
		return err
	}
	if err := op.persist(); err != nil {
		return err
	}
	if err := e.state.Commit(); err != nil {
		return err
	}
	e.backend.Log.Debug("operation committed",
		log.Stringer("caller", op.env.Caller),
		log.Int("now", int(op.env.Now)),
	)
	return nil
}

// optional maps a missing record to nil.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
