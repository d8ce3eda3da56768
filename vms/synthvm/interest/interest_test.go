// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package interest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

func TestPeriods(t *testing.T) {
	tests := []struct {
		name          string
		last, now     int64
		expectedN     uint64
		expectedAfter int64
	}{
		{
			name:          "no time",
			last:          100,
			now:           100,
			expectedAfter: 100,
		},
		{
			name:          "clock behind",
			last:          100,
			now:           50,
			expectedAfter: 100,
		},
		{
			name:          "partial period",
			last:          0,
			now:           59,
			expectedAfter: 0,
		},
		{
			name:          "one period with remainder",
			last:          0,
			now:           65,
			expectedN:     1,
			expectedAfter: 60,
		},
		{
			name:          "several periods",
			last:          0,
			now:           430,
			expectedN:     7,
			expectedAfter: 420,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			n, after := Periods(test.last, test.now)
			require.Equal(test.expectedN, n)
			require.Equal(test.expectedAfter, after)
		})
	}
}

func TestPeriodRate(t *testing.T) {
	require := require.New(t)

	rate, err := PeriodRate(decimal.Percent(7_000))
	require.NoError(err)
	require.Equal(decimal.InterestRate(133_181_126_331), rate)

	rate, err = PeriodRate(decimal.Percent(1_000))
	require.NoError(err)
	require.Equal(decimal.InterestRate(19_025_875_190), rate)
}

func TestFactor(t *testing.T) {
	require := require.New(t)

	factor, err := Factor(decimal.Percent(7_000), 1)
	require.NoError(err)
	require.Equal(decimal.InterestRate(1_000_000_133_181_126_331), factor)

	factor, err = Factor(decimal.New(55, 3), 7)
	require.NoError(err)
	require.Equal(decimal.InterestRate(1_000_000_732_496_424_772), factor)

	factor, err = Factor(decimal.Percent(7_000), 0)
	require.NoError(err)
	require.Equal(decimal.One(decimal.InterestScale), factor)
}

func TestCompounded(t *testing.T) {
	require := require.New(t)

	debt := decimal.MustFromInteger(100_000, decimal.USDScale)

	delta, err := Compounded(debt, decimal.Percent(1_000), 1)
	require.NoError(err)
	require.Equal(decimal.USD(1_903), delta)

	delta, err = Compounded(debt, decimal.Percent(1_000), 2)
	require.NoError(err)
	require.Equal(decimal.USD(3_806), delta)

	delta, err = Compounded(debt, decimal.Percent(1_000), 0)
	require.NoError(err)
	require.True(delta.IsZero())
}
