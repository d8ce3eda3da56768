// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
)

func wsol(units uint64) decimal.Decimal {
	return decimal.New(units, xsolScale)
}

// openSwapline registers native SOL and opens its swapline into xSOL with a
// 1% fee and a 100 SOL limit.
func (f *fixture) openSwapline(t *testing.T) *swapline.Swapline {
	require := require.New(t)

	adminEnv := f.env(f.admin, start)
	native, err := f.engine.AddCollateral(adminEnv, f.records(nil), assets.Collateral{
		AssetID:         ids.GenerateTestID(),
		FeedID:          f.xsolFeed,
		ReserveBalance:  decimal.Zero(xsolScale),
		CollateralRatio: decimal.Percent(50_000),
		MaxCollateral:   decimal.MustFromInteger(1_000, xsolScale),
	})
	require.NoError(err)

	key := swapline.Key{
		SyntheticIndex:  f.xsol,
		CollateralIndex: native,
	}
	_, err = f.engine.CreateSwapline(f.env(f.user, start), f.records(nil), key, decimal.Percent(percent), wsol(100_000_000_000))
	require.ErrorIs(err, ErrUnauthorized)

	l, err := f.engine.CreateSwapline(adminEnv, f.records(nil), key, decimal.Percent(percent), wsol(100_000_000_000))
	require.NoError(err)
	require.Equal(key, l.Key())

	_, err = f.engine.CreateSwapline(adminEnv, Records{
		State:    f.state,
		Assets:   f.list,
		Swapline: l,
	}, key, decimal.Percent(percent), wsol(100_000_000_000))
	require.ErrorIs(err, ErrSwaplineExists)
	return l
}

func (f *fixture) swaplineRecords(l *swapline.Swapline) Records {
	return Records{
		State:    f.state,
		Assets:   f.list,
		Swapline: l,
	}
}

func TestSwapline(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	l := f.openSwapline(t)
	env := f.env(f.user, start)

	out, err := f.engine.NativeToSynthetic(env, f.swaplineRecords(l), wsol(10_000_000_000))
	require.NoError(err)
	require.Equal(xsol(9_900_000_000), out)
	require.Equal(wsol(9_900_000_000), l.Balance)
	require.Equal(wsol(100_000_000), l.AccumulatedFee)

	s := f.list.Synthetics[f.xsol]
	require.Equal(xsol(9_900_000_000), s.Supply)
	require.Equal(xsol(9_900_000_000), s.SwaplineSupply)
	// swapline supply is backed by the swapline, not the debt pool
	require.True(s.FreeSupply().IsZero())

	before := *l
	_, err = f.engine.NativeToSynthetic(env, f.swaplineRecords(l), wsol(100_000_000_000))
	require.ErrorIs(err, swapline.ErrLimitExceeded)
	require.Equal(before, *l)

	paid, err := f.engine.SyntheticToNative(env, f.swaplineRecords(l), xsol(5_000_000_000))
	require.NoError(err)
	require.Equal(wsol(4_950_000_000), paid)
	require.Equal(wsol(4_900_000_000), l.Balance)
	require.Equal(wsol(150_000_000), l.AccumulatedFee)
	require.Equal(xsol(4_900_000_000), f.list.Synthetics[f.xsol].SwaplineSupply)

	_, err = f.engine.SyntheticToNative(env, f.swaplineRecords(l), xsol(6_000_000_000))
	require.ErrorIs(err, swapline.ErrInsufficientBalance)
	_, err = f.engine.SyntheticToNative(env, f.records(nil), xsol(1))
	require.ErrorIs(err, ErrSwaplineNotFound)

	adminEnv := f.env(f.admin, start)
	require.ErrorIs(f.engine.SetSwaplineHalted(env, f.swaplineRecords(l), true), ErrUnauthorized)
	require.NoError(f.engine.SetSwaplineHalted(adminEnv, f.swaplineRecords(l), true))
	_, err = f.engine.NativeToSynthetic(env, f.swaplineRecords(l), wsol(1_000_000_000))
	require.ErrorIs(err, swapline.ErrHalted)
	require.NoError(f.engine.SetSwaplineHalted(adminEnv, f.swaplineRecords(l), false))

	require.NoError(f.engine.SetSwaplineLimit(adminEnv, f.swaplineRecords(l), wsol(4_000_000_000)))
	_, err = f.engine.NativeToSynthetic(env, f.swaplineRecords(l), wsol(1_000_000_000))
	require.ErrorIs(err, swapline.ErrLimitExceeded)

	fee, err := f.engine.WithdrawSwaplineFee(adminEnv, f.swaplineRecords(l))
	require.NoError(err)
	require.Equal(wsol(150_000_000), fee)
	require.True(l.AccumulatedFee.IsZero())

	// supply left in the swapline blocks settlement
	require.NoError(f.engine.SetSettlementTime(adminEnv, f.records(nil), f.xsol, start))
	_, err = f.engine.SettleSynthetic(env, f.records(nil), f.xsol)
	require.ErrorIs(err, assets.ErrSettlementOutstanding)
}
