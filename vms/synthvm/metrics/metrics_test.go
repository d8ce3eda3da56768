// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/txs"
)

// values returns the value of every metric in the family keyed by its tx
// label. An unlabelled metric is keyed by the empty string.
func values(t *testing.T, gatherer metric.Gatherer, name string, kind any) map[string]float64 {
	families, err := gatherer.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		if family.Name != name {
			continue
		}
		require.Equal(t, kind, family.Type)
		for _, m := range family.Metrics {
			key := ""
			for _, label := range m.Labels {
				if label.Name == txLabel {
					key = label.Value
				}
			}
			values[key] = m.Value.Value
		}
	}
	return values
}

func TestMarkAcceptedAndRejected(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	m, err := New(registry)
	require.NoError(err)

	require.NoError(m.MarkAccepted(&txs.MintTx{}))
	require.NoError(m.MarkAccepted(&txs.MintTx{}))
	require.NoError(m.MarkAccepted(&txs.LiquidateVaultTx{}))
	require.NoError(m.MarkRejected(&txs.SwapTx{}))

	require.Equal(map[string]float64{
		"mint":            2,
		"liquidate_vault": 1,
	}, values(t, registry, "txs_accepted", metric.MetricTypeCounter))
	require.Equal(map[string]float64{
		"swap": 1,
	}, values(t, registry, "txs_rejected", metric.MetricTypeCounter))
}

func TestDebtSharesGauge(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	m, err := New(registry)
	require.NoError(err)
	m.SetDebtShares(10_000_000_000)

	require.Equal(map[string]float64{
		"": 1e10,
	}, values(t, registry, "debt_shares", metric.MetricTypeGauge))
}
