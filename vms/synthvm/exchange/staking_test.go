// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/config"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
)

func reward(whole uint64) decimal.Decimal {
	return decimal.MustFromInteger(whole, staking.RewardScale)
}

func TestStakingRewards(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, func(c *config.Config) {
		c.StakingRoundLength = 100
		c.StakingAmountPerRound = 100_000_000
	})
	require.Equal(start+100, f.state.Staking.NextRound.Start)
	require.Equal(reward(100), f.state.Staking.NextRound.Amount)

	otherID := ids.GenerateTestShortID()
	a := f.newAccount(t, f.user)
	b := f.newAccount(t, otherID)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(1_000)))
	otherEnv := f.env(otherID, start)
	require.NoError(f.engine.Deposit(otherEnv, f.records(b), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(otherEnv, f.records(b), usd(3_000)))

	require.Equal(uint64(1_000_000_000), a.Staking.NextRoundPoints)
	require.Equal(uint64(3_000_000_000), b.Staking.NextRoundPoints)
	require.Equal(uint64(4_000_000_000), f.state.Staking.NextRound.AllPoints)

	// nothing has finished yet
	claimed, err := f.engine.ClaimRewards(f.env(otherID, start+50), f.records(a))
	require.NoError(err)
	require.True(claimed.IsZero())

	// the round starting at start+100 finished at start+200
	claimEnv := f.env(otherID, start+250)
	claimed, err = f.engine.ClaimRewards(claimEnv, f.records(a))
	require.NoError(err)
	require.Equal(reward(25), claimed)
	require.Equal(start+100, f.state.Staking.FinishedRound.Start)
	require.Equal(start+200, f.state.Staking.CurrentRound.Start)

	claimed, err = f.engine.ClaimRewards(claimEnv, f.records(a))
	require.NoError(err)
	require.True(claimed.IsZero())

	claimed, err = f.engine.ClaimRewards(claimEnv, f.records(b))
	require.NoError(err)
	require.Equal(reward(75), claimed)

	_, err = f.engine.WithdrawRewards(claimEnv, f.records(a))
	require.ErrorIs(err, ErrUnauthorized)
	withdrawn, err := f.engine.WithdrawRewards(f.env(f.user, start+250), f.records(a))
	require.NoError(err)
	require.Equal(reward(25), withdrawn)
	_, err = f.engine.WithdrawRewards(f.env(f.user, start+250), f.records(a))
	require.ErrorIs(err, staking.ErrNoRewards)

	_, err = f.engine.ClaimRewards(claimEnv, f.records(nil))
	require.ErrorIs(err, ErrAccountNotFound)
}

func TestStakingBurnLosesPoints(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, func(c *config.Config) {
		c.StakingRoundLength = 100
	})
	a := f.newAccount(t, f.user)
	require.NoError(f.engine.Deposit(f.env(f.user, start), f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(f.env(f.user, start), f.records(a), usd(1_000)))

	// during the first rewarded round the account burns half of its debt
	burnEnv := f.env(f.user, start+150)
	_, err := f.engine.Burn(burnEnv, f.records(a), usd(500))
	require.NoError(err)
	require.Equal(uint64(500_000_000), a.Staking.CurrentRoundPoints)
	require.Equal(uint64(500_000_000), a.Staking.NextRoundPoints)
	require.Equal(uint64(500_000_000), f.state.Staking.CurrentRound.AllPoints)
	require.Equal(uint64(500_000_000), f.state.Staking.NextRound.AllPoints)
}

func TestStakingParameters(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	adminEnv := f.env(f.admin, start)

	require.ErrorIs(f.engine.SetStakingRoundLength(adminEnv, f.records(nil), 0), staking.ErrInvalidRoundLength)
	require.NoError(f.engine.SetStakingRoundLength(adminEnv, f.records(nil), 3_600))
	require.Equal(uint32(3_600), f.state.Staking.RoundLength)

	err := f.engine.SetStakingAmountPerRound(adminEnv, f.records(nil), decimal.New(1, staking.RewardScale+1))
	require.ErrorIs(err, ErrInvalidAmount)
	require.NoError(f.engine.SetStakingAmountPerRound(adminEnv, f.records(nil), reward(5)))
	require.Equal(reward(5), f.state.Staking.AmountPerRound)

	err = f.engine.SetStakingRoundLength(f.env(f.user, start), f.records(nil), 60)
	require.ErrorIs(err, ErrUnauthorized)
}
