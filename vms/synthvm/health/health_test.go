// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

func TestValue(t *testing.T) {
	require := require.New(t)

	// 1.5 BTC at 20000.0
	amount := decimal.New(150_000_000, 8)
	price := decimal.Price(2_000_000_000_000)
	value, err := Value(amount, price)
	require.NoError(err)
	require.Equal(decimal.USD(30_000_000_000), value)

	// 0.000000001 at 1.5 truncates to zero or rounds up to one unit
	dust := decimal.New(1, 9)
	value, err = Value(dust, decimal.Price(150_000_000))
	require.NoError(err)
	require.True(value.IsZero())
	value, err = ValueUp(dust, decimal.Price(150_000_000))
	require.NoError(err)
	require.Equal(decimal.USD(1), value)
}

func TestAmount(t *testing.T) {
	require := require.New(t)

	amount, err := Amount(decimal.USD(30_000_000_000), decimal.Price(2_000_000_000_000), 8)
	require.NoError(err)
	require.Equal(decimal.New(150_000_000, 8), amount)

	amount, err = Amount(decimal.USD(1_000_000), decimal.Price(300_000_000), 6)
	require.NoError(err)
	require.Equal(decimal.New(333_333, 6), amount)
}

func TestValuation(t *testing.T) {
	require := require.New(t)

	v := NewValuation()
	// 2 units at 10.0 with 50%
	require.NoError(v.Add(decimal.New(200_000_000, 8), decimal.Price(1_000_000_000), decimal.Percent(50_000)))
	// 100 units at 1.0 with 100%
	require.NoError(v.Add(decimal.New(100_000_000, 6), decimal.One(decimal.PriceScale), decimal.Percent(100_000)))

	require.Equal(decimal.USD(120_000_000), v.CollateralValue)
	require.Equal(decimal.USD(110_000_000), v.MaxDebt)
}

func TestRatio(t *testing.T) {
	require := require.New(t)

	ratio, err := Ratio(decimal.USD(150), decimal.USD(100))
	require.NoError(err)
	require.Equal(decimal.Percent(150_000), ratio)

	ratio, err = Ratio(decimal.USD(150), decimal.USD(0))
	require.NoError(err)
	require.Equal(MaxRatio, ratio)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		maxDebt  decimal.Decimal
		debt     decimal.Decimal
		expected error
	}{
		{
			name:    "healthy",
			maxDebt: decimal.USD(101),
			debt:    decimal.USD(100),
		},
		{
			name:    "exactly one",
			maxDebt: decimal.USD(100),
			debt:    decimal.USD(100),
		},
		{
			name:     "below one",
			maxDebt:  decimal.USD(99),
			debt:     decimal.USD(100),
			expected: ErrInsufficientCollateral,
		},
		{
			name:    "no debt",
			maxDebt: decimal.USD(0),
			debt:    decimal.USD(0),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, Check(test.maxDebt, test.debt), test.expected)
		})
	}
}

func TestLiquidatable(t *testing.T) {
	require := require.New(t)

	// 100 of collateral with an 80% threshold covers 80 of debt
	ok, err := Liquidatable(decimal.USD(100_000_000), decimal.Percent(80_000), decimal.USD(80_000_000))
	require.NoError(err)
	require.False(ok)

	ok, err = Liquidatable(decimal.USD(100_000_000), decimal.Percent(80_000), decimal.USD(80_000_001))
	require.NoError(err)
	require.True(ok)
}
