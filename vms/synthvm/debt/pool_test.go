// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package debt

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/utils/math"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
)

var onePercent = decimal.Percent(1_000)

func newList(t *testing.T, xusdSupply uint64) *assets.List {
	l := assets.NewList(ids.GenerateTestID(), decimal.MustFromInteger(1_000_000_000, decimal.USDScale))
	xusd, err := l.Synthetic(assets.XUSDIndex)
	require.NoError(t, err)
	require.NoError(t, xusd.Mint(decimal.MustFromInteger(xusdSupply, decimal.USDScale)))
	return l
}

func addSynthetic(t *testing.T, l *assets.List, supply, borrowed decimal.Decimal) (uint8, ids.ID) {
	feedID := ids.GenerateTestID()
	index, err := l.AddSynthetic(assets.Synthetic{
		AssetID:   ids.GenerateTestID(),
		FeedID:    feedID,
		Supply:    decimal.Zero(supply.Scale),
		MaxSupply: decimal.MustFromInteger(1_000_000_000, supply.Scale),
	})
	require.NoError(t, err)
	s, err := l.Synthetic(index)
	require.NoError(t, err)
	require.NoError(t, s.Mint(supply))
	require.NoError(t, s.Borrow(borrowed))
	return index, feedID
}

func TestRefreshPeriods(t *testing.T) {
	tests := []struct {
		name               string
		now                int64
		expectedInterest   decimal.Decimal
		expectedAdjustment int64
	}{
		{
			name:               "partial period",
			now:                59,
			expectedInterest:   decimal.USD(0),
			expectedAdjustment: 0,
		},
		{
			name:               "one period with remainder",
			now:                65,
			expectedInterest:   decimal.USD(1_903),
			expectedAdjustment: 60,
		},
		{
			name:               "two periods",
			now:                120,
			expectedInterest:   decimal.USD(3_806),
			expectedAdjustment: 120,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			l := newList(t, 100_000)
			p := New(onePercent, 0)

			charged, err := p.Refresh(l, nil, test.now, 0)
			require.NoError(err)
			require.Equal(test.expectedInterest, charged)
			require.Equal(test.expectedInterest, p.AccumulatedDebtInterest)
			require.Equal(test.expectedAdjustment, p.LastDebtAdjustment)

			expectedSupply, err := decimal.MustFromInteger(100_000, decimal.USDScale).Add(test.expectedInterest)
			require.NoError(err)
			require.Equal(expectedSupply, l.Synthetics[assets.XUSDIndex].Supply)
		})
	}
}

func TestRefreshSequential(t *testing.T) {
	require := require.New(t)

	l := newList(t, 100_000)
	p := New(onePercent, 0)

	for _, step := range []struct {
		now         int64
		accumulated uint64
	}{
		{now: 90, accumulated: 1_903},
		{now: 121, accumulated: 3_806},
		{now: 183, accumulated: 5_709},
	} {
		_, err := p.Refresh(l, nil, step.now, 0)
		require.NoError(err)
		require.Equal(decimal.USD(step.accumulated), p.AccumulatedDebtInterest)
	}
	require.Equal(int64(180), p.LastDebtAdjustment)

	require.Equal(decimal.USD(5_709), p.CollectInterest())
	require.True(p.AccumulatedDebtInterest.IsZero())
}

func TestRefreshNeedsFreshFeeds(t *testing.T) {
	require := require.New(t)

	l := newList(t, 1_000)
	_, feedID := addSynthetic(t, l, decimal.MustFromInteger(10, 9), decimal.Zero(9))
	p := New(onePercent, 0)

	_, err := p.Refresh(l, nil, 60, 0)
	require.ErrorIs(err, oracle.ErrFeedNotFound)

	snapshot, err := oracle.NewSnapshot(oracle.Feed{
		ID:         feedID,
		Price:      decimal.Price(2_000_000_000),
		Status:     oracle.StatusTrading,
		LastUpdate: 30,
	})
	require.NoError(err)
	_, err = p.Refresh(l, snapshot, 60, 10)
	require.ErrorIs(err, oracle.ErrStalePrice)
	require.Zero(p.LastDebtAdjustment)

	_, err = p.Refresh(l, snapshot, 60, 30)
	require.NoError(err)
	require.Equal(int64(60), p.LastDebtAdjustment)
}

func TestTotalDebt(t *testing.T) {
	require := require.New(t)

	l := newList(t, 1_000)
	// 10 xSOL of which 4 were borrowed through a vault
	_, feedID := addSynthetic(t, l, decimal.MustFromInteger(6, 9), decimal.MustFromInteger(4, 9))
	// a synthetic without free supply needs no feed
	addSynthetic(t, l, decimal.Zero(9), decimal.Zero(9))

	snapshot, err := oracle.NewSnapshot(oracle.Feed{
		ID:         feedID,
		Price:      decimal.Price(2_000_000_000),
		Twap:       decimal.Price(2_100_000_000),
		Status:     oracle.StatusTrading,
		LastUpdate: 100,
	})
	require.NoError(err)

	spot, err := TotalDebt(l, snapshot, 100, 0, false)
	require.NoError(err)
	require.Equal(decimal.MustFromInteger(1_120, decimal.USDScale), spot)

	twap, err := TotalDebt(l, snapshot, 100, 0, true)
	require.NoError(err)
	require.Equal(decimal.MustFromInteger(1_126, decimal.USDScale), twap)
}

func TestShares(t *testing.T) {
	require := require.New(t)

	p := New(onePercent, 0)

	// the first mint issues one share per raw unit
	shares, err := p.NewShares(decimal.USD(0), decimal.MustFromInteger(100, decimal.USDScale))
	require.NoError(err)
	require.Equal(uint64(100_000_000), shares)
	require.NoError(p.Issue(shares))

	// the debt doubled, so a second mint of the same size gets half
	shares, err = p.NewShares(decimal.MustFromInteger(200, decimal.USDScale), decimal.MustFromInteger(100, decimal.USDScale))
	require.NoError(err)
	require.Equal(uint64(50_000_000), shares)
	require.NoError(p.Issue(shares))
	require.Equal(uint64(150_000_000), p.DebtShares)

	debt, err := p.UserDebt(decimal.MustFromInteger(300, decimal.USDScale), shares)
	require.NoError(err)
	require.Equal(decimal.MustFromInteger(100, decimal.USDScale), debt)

	debt, err = p.UserDebt(decimal.MustFromInteger(300, decimal.USDScale), 0)
	require.NoError(err)
	require.True(debt.IsZero())
}

func TestSharesRoundInPoolsFavour(t *testing.T) {
	require := require.New(t)

	p := New(onePercent, 0)
	require.NoError(p.Issue(3))

	debt, err := p.UserDebt(decimal.USD(100_000_001), 1)
	require.NoError(err)
	require.Equal(decimal.USD(33_333_334), debt)

	shares, err := p.NewShares(decimal.USD(10), decimal.USD(1))
	require.NoError(err)
	require.Equal(uint64(1), shares)

	burned, err := p.BurnedShares(decimal.USD(10), 3, decimal.USD(3))
	require.NoError(err)
	require.Zero(burned)
}

func TestBurnedShares(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected uint64
	}{
		{
			name:     "partial",
			amount:   decimal.MustFromInteger(40, decimal.USDScale),
			expected: 20_000_000,
		},
		{
			name:     "exact debt",
			amount:   decimal.MustFromInteger(100, decimal.USDScale),
			expected: 50_000_000,
		},
		{
			name:     "more than the debt",
			amount:   decimal.MustFromInteger(150, decimal.USDScale),
			expected: 50_000_000,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			p := New(onePercent, 0)
			burned, err := p.BurnedShares(decimal.MustFromInteger(100, decimal.USDScale), 50_000_000, test.amount)
			require.NoError(err)
			require.Equal(test.expected, burned)
		})
	}
}

func TestBurnWithoutDebt(t *testing.T) {
	p := New(onePercent, 0)
	_, err := p.BurnedShares(decimal.USD(0), 10, decimal.USD(1))
	require.ErrorIs(t, err, ErrNoDebt)
}

func TestSharesOverflow(t *testing.T) {
	require := require.New(t)

	p := New(onePercent, 0)
	_, err := p.NewShares(decimal.USD(0), decimal.MustFromInteger(20_000_000_000_000, decimal.USDScale))
	require.ErrorIs(err, ErrSharesOverflow)

	require.NoError(p.Issue(math.MaxUint[uint64]()))
	require.ErrorIs(p.Issue(1), ErrSharesOverflow)

	p.DebtShares = 5
	require.ErrorIs(p.Retire(6), math.ErrUnderflow)
	require.Equal(uint64(5), p.DebtShares)
}
