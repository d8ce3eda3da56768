// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/synthvm/utils/wrappers"
	"github.com/luxfi/synthvm/vms/synthvm/txs"
)

var _ Metrics = (*metricsImpl)(nil)

type Metrics interface {
	// Mark that the given operation was committed.
	MarkAccepted(txs.UnsignedTx) error
	// Mark that the given operation was rejected and left the state unchanged.
	MarkRejected(txs.UnsignedTx) error

	// Mark the debt shares outstanding after the last committed operation.
	SetDebtShares(uint64)
}

func New(registerer metric.Registerer) (Metrics, error) {
	m := &metricsImpl{
		accepted: newTxMetrics("txs_accepted", "number of operations accepted"),
		rejected: newTxMetrics("txs_rejected", "number of operations rejected"),
		debtShares: metric.NewGauge(metric.GaugeOpts{
			Name: "debt_shares",
			Help: "Debt shares outstanding in the global pool",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(metric.AsCollector(m.accepted.numTxs)),
		registerer.Register(metric.AsCollector(m.rejected.numTxs)),
		registerer.Register(metric.AsCollector(m.debtShares)),
	)
	return m, errs.Err
}

type metricsImpl struct {
	accepted *txMetrics
	rejected *txMetrics

	debtShares metric.Gauge
}

func (m *metricsImpl) MarkAccepted(tx txs.UnsignedTx) error {
	return tx.Visit(m.accepted)
}

func (m *metricsImpl) MarkRejected(tx txs.UnsignedTx) error {
	return tx.Visit(m.rejected)
}

func (m *metricsImpl) SetDebtShares(shares uint64) {
	m.debtShares.Set(float64(shares))
}
