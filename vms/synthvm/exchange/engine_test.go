// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/config"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/health"
	"github.com/luxfi/synthvm/vms/synthvm/oracle"
)

const (
	start     = int64(1_000)
	btcScale  = 8
	xsolScale = 9

	btc20k  = 2_000_000_000_000 // 20000.0
	btc15k  = 1_500_000_000_000 // 15000.0
	xsol20  = 2_000_000_000     // 20.0
	percent = 1_000             // 1% at decimal.PercentScale
)

type fixture struct {
	engine *Engine
	admin  ids.ShortID
	user   ids.ShortID
	state  *State
	list   *assets.List

	btc      uint8
	btcFeed  ids.ID
	xsol     uint8
	xsolFeed ids.ID

	btcPrice    uint64
	xsolPrice   uint64
	xsolStatus  oracle.Status
	feedUpdated int64
}

func newFixture(t *testing.T, modify func(*config.Config)) *fixture {
	require := require.New(t)

	f := &fixture{
		engine:     NewEngine(log.NoLog{}),
		admin:      ids.GenerateTestShortID(),
		user:       ids.GenerateTestShortID(),
		btcFeed:    ids.GenerateTestID(),
		xsolFeed:   ids.GenerateTestID(),
		btcPrice:   btc20k,
		xsolPrice:  xsol20,
		xsolStatus: oracle.StatusTrading,
	}

	cfg := config.DefaultConfig()
	cfg.Admin = f.admin.String()
	cfg.XUSDAssetID = ids.GenerateTestID().String()
	cfg.DebtInterestRate = 0
	if modify != nil {
		modify(&cfg)
	}
	var err error
	f.state, f.list, err = Genesis(cfg, start)
	require.NoError(err)

	env := f.env(f.admin, start)
	f.btc, err = f.engine.AddCollateral(env, f.records(nil), assets.Collateral{
		AssetID:         ids.GenerateTestID(),
		FeedID:          f.btcFeed,
		ReserveBalance:  decimal.Zero(btcScale),
		CollateralRatio: decimal.Percent(50_000),
		MaxCollateral:   decimal.MustFromInteger(1_000, btcScale),
	})
	require.NoError(err)
	f.xsol, err = f.engine.AddSynthetic(env, f.records(nil), assets.Synthetic{
		AssetID:   ids.GenerateTestID(),
		FeedID:    f.xsolFeed,
		Supply:    decimal.Zero(xsolScale),
		MaxSupply: decimal.MustFromInteger(1_000_000_000, xsolScale),
	})
	require.NoError(err)
	return f
}

// env returns an environment whose feeds were all published at now unless
// feedUpdated is set.
func (f *fixture) env(caller ids.ShortID, now int64) Env {
	updated := now
	if f.feedUpdated != 0 {
		updated = f.feedUpdated
	}
	snapshot, err := oracle.NewSnapshot(
		oracle.Feed{
			ID:         f.btcFeed,
			Price:      decimal.Price(f.btcPrice),
			Status:     oracle.StatusTrading,
			LastUpdate: updated,
		},
		oracle.Feed{
			ID:         f.xsolFeed,
			Price:      decimal.Price(f.xsolPrice),
			Status:     f.xsolStatus,
			LastUpdate: updated,
		},
	)
	if err != nil {
		panic(err)
	}
	return Env{
		Now:    now,
		Caller: caller,
		Feeds:  snapshot,
	}
}

func (f *fixture) records(a *account.Account) Records {
	return Records{
		State:   f.state,
		Assets:  f.list,
		Account: a,
	}
}

func (f *fixture) newAccount(t *testing.T, owner ids.ShortID) *account.Account {
	a, err := f.engine.CreateAccount(f.env(owner, start), f.records(nil))
	require.NoError(t, err)
	return a
}

// snapshot copies every exchange record for before/after comparisons.
type snapshot struct {
	state   State
	list    assets.List
	account account.Account
}

func (f *fixture) snapshot(a *account.Account) snapshot {
	return snapshot{
		state:   *f.state,
		list:    *f.list,
		account: *a,
	}
}

func btc(units uint64) decimal.Decimal {
	return decimal.New(units, btcScale)
}

func usd(whole uint64) decimal.Decimal {
	return decimal.MustFromInteger(whole, decimal.USDScale)
}

func TestGenesis(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	require.Equal(f.admin, f.state.Admin)
	require.Equal(decimal.Percent(300), f.state.Fee)
	require.Equal(decimal.Percent(100_000), f.state.HealthFactor)
	require.Equal(uint32(172_800), f.state.LiquidationBuffer)
	require.Equal(start, f.state.Pool.LastDebtAdjustment)
	require.Equal(uint8(1), f.list.HeadCollaterals)
	require.Equal(uint8(2), f.list.HeadSynthetics)

	_, _, err := Genesis(config.DefaultConfig(), start)
	require.ErrorIs(err, config.ErrMissingAdmin)
}

func TestCreateAccount(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	require.Equal(f.user, a.Owner)
	require.Equal(f.state.AccountVersion, a.Version)

	_, err := f.engine.CreateAccount(f.env(f.user, start), f.records(a))
	require.ErrorIs(err, ErrAccountExists)
}

func TestDepositWithdrawConservation(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)

	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(200_000_000)))
	require.NoError(f.engine.Withdraw(env, f.records(a), f.btc, btc(50_000_000)))

	require.Equal(btc(250_000_000), a.Balance(f.btc))
	require.Equal(btc(250_000_000), f.list.Collaterals[f.btc].ReserveBalance)

	err := f.engine.Withdraw(env, f.records(a), f.btc, btc(250_000_001))
	require.ErrorIs(err, health.ErrInsufficientCollateral)
	require.Equal(btc(250_000_000), a.Balance(f.btc))
}

func TestDepositChecks(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)

	err := f.engine.Deposit(env, f.records(a), f.btc, btc(0))
	require.ErrorIs(err, ErrInvalidAmount)

	// more digits than the asset carries
	err = f.engine.Deposit(env, f.records(a), f.btc, decimal.New(1, 9))
	require.ErrorIs(err, ErrInvalidAmount)

	err = f.engine.Deposit(env, f.records(a), 5, btc(1))
	require.ErrorIs(err, assets.ErrInvalidAssetIndex)

	err = f.engine.Deposit(env, f.records(a), f.btc, decimal.MustFromInteger(1_001, btcScale))
	require.ErrorIs(err, assets.ErrCollateralLimitExceeded)

	err = f.engine.Deposit(env, f.records(nil), f.btc, btc(1))
	require.ErrorIs(err, ErrAccountNotFound)
}

func TestHalted(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)

	err := f.engine.SetHalted(f.env(f.user, start), f.records(nil), true)
	require.ErrorIs(err, ErrUnauthorized)
	require.False(f.state.Halted)

	require.NoError(f.engine.SetHalted(f.env(f.admin, start), f.records(nil), true))
	require.True(f.state.Halted)

	err = f.engine.Deposit(f.env(f.user, start), f.records(a), f.btc, btc(1))
	require.ErrorIs(err, ErrHalted)
	err = f.engine.Mint(f.env(f.user, start), f.records(a), usd(1))
	require.ErrorIs(err, ErrHalted)
}

func TestMintLimit(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	// 1 BTC at 20000 with a 50% ratio backs 10000 xUSD
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))

	before := f.snapshot(a)
	err := f.engine.Mint(env, f.records(a), decimal.USD(10_000_000_001))
	require.ErrorIs(err, ErrMintLimit)
	require.Equal(before, f.snapshot(a))

	require.NoError(f.engine.Mint(env, f.records(a), usd(10_000)))
	require.Equal(uint64(10_000_000_000), a.DebtShares)
	require.Equal(a.DebtShares, f.state.Pool.DebtShares)
	require.Equal(usd(10_000), f.list.Synthetics[assets.XUSDIndex].Supply)

	err = f.engine.Mint(env, f.records(a), decimal.USD(1))
	require.ErrorIs(err, ErrMintLimit)
}

func TestMintHealthFactor(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, func(c *config.Config) {
		c.HealthFactor = 50_000
	})
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))

	err := f.engine.Mint(env, f.records(a), usd(5_001))
	require.ErrorIs(err, ErrMintLimit)
	require.NoError(f.engine.Mint(env, f.records(a), usd(5_000)))
}

func TestWithdrawHealthGate(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(5_000)))

	// 0.4 BTC left would back only 4000
	before := f.snapshot(a)
	err := f.engine.Withdraw(env, f.records(a), f.btc, btc(60_000_000))
	require.ErrorIs(err, health.ErrInsufficientCollateral)
	require.Equal(before, f.snapshot(a))

	require.NoError(f.engine.Withdraw(env, f.records(a), f.btc, btc(50_000_000)))
	require.Equal(btc(50_000_000), a.Balance(f.btc))
}

func TestWithdrawStalePrice(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	require.NoError(f.engine.Deposit(f.env(f.user, start), f.records(a), f.btc, btc(100_000_000)))

	f.feedUpdated = start
	err := f.engine.Withdraw(f.env(f.user, start+1), f.records(a), f.btc, btc(1))
	require.ErrorIs(err, oracle.ErrStalePrice)
}

func TestBurn(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(5_000)))

	burned, err := f.engine.Burn(env, f.records(a), usd(2_000))
	require.NoError(err)
	require.Equal(usd(2_000), burned)
	require.Equal(uint64(3_000_000_000), a.DebtShares)
	require.Equal(usd(3_000), f.list.Synthetics[assets.XUSDIndex].Supply)

	// over-burning only removes the outstanding debt
	burned, err = f.engine.Burn(env, f.records(a), usd(10_000))
	require.NoError(err)
	require.Equal(usd(3_000), burned)
	require.Zero(a.DebtShares)
	require.Zero(f.state.Pool.DebtShares)
	require.True(f.list.Synthetics[assets.XUSDIndex].Supply.IsZero())
}

func TestSwap(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(1_000)))

	result, err := f.engine.Swap(env, f.records(a), assets.XUSDIndex, f.xsol, usd(1_000))
	require.NoError(err)
	require.Equal(SwapResult{
		AmountOut: decimal.New(49_850_000_000, xsolScale),
		Fee:       usd(3),
		Tax:       decimal.USD(0),
	}, result)
	require.True(f.list.Synthetics[assets.XUSDIndex].Supply.IsZero())
	require.Equal(decimal.New(49_850_000_000, xsolScale), f.list.Synthetics[f.xsol].Supply)
	require.True(f.state.SwapTaxReserve.IsZero())
}

func TestSwapTax(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(1_000)))
	require.NoError(f.engine.SetSwapTaxBearing(f.env(f.admin, start), f.records(nil), f.xsol, true))

	result, err := f.engine.Swap(env, f.records(a), assets.XUSDIndex, f.xsol, usd(1_000))
	require.NoError(err)
	// 20% of the 3 USD fee
	require.Equal(decimal.USD(600_000), result.Tax)
	require.Equal(decimal.USD(600_000), f.state.SwapTaxReserve)

	_, err = f.engine.WithdrawSwapTax(f.env(f.user, start), f.records(nil))
	require.ErrorIs(err, ErrUnauthorized)

	withdrawn, err := f.engine.WithdrawSwapTax(f.env(f.admin, start), f.records(nil))
	require.NoError(err)
	require.Equal(decimal.USD(600_000), withdrawn)
	require.True(f.state.SwapTaxReserve.IsZero())
	require.Equal(decimal.USD(600_000), f.list.Synthetics[assets.XUSDIndex].Supply)
}

func TestSwapRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		fee       uint64
		xsolPrice uint64
		there     decimal.Decimal
		back      decimal.Decimal
	}{
		{
			name:      "without fee",
			xsolPrice: xsol20,
			there:     xsol(50_000_000_000),
			back:      usd(1_000),
		},
		{
			name:      "without fee at a non-dividing price",
			xsolPrice: 700_000_000, // 7.0
			there:     xsol(142_857_142_857),
			back:      decimal.USD(999_999_999),
		},
		{
			name:      "with fee",
			fee:       300,
			xsolPrice: xsol20,
			there:     xsol(49_850_000_000),
			back:      decimal.USD(994_009_000),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			f := newFixture(t, func(c *config.Config) {
				c.Fee = test.fee
			})
			f.xsolPrice = test.xsolPrice
			a := f.newAccount(t, f.user)
			env := f.env(f.user, start)
			require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
			require.NoError(f.engine.Mint(env, f.records(a), usd(1_000)))

			there, err := f.engine.Swap(env, f.records(a), assets.XUSDIndex, f.xsol, usd(1_000))
			require.NoError(err)
			require.Equal(test.there, there.AmountOut)
			back, err := f.engine.Swap(env, f.records(a), f.xsol, assets.XUSDIndex, there.AmountOut)
			require.NoError(err)
			require.Equal(test.back, back.AmountOut)

			if test.fee == 0 {
				// truncation loses at most one unit of the input scale
				loss, err := usd(1_000).Sub(back.AmountOut)
				require.NoError(err)
				require.True(loss.Lte(decimal.USD(1)))
			}
		})
	}
}

func TestSwapErrors(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(1_000)))

	_, err := f.engine.Swap(env, f.records(a), f.xsol, f.xsol, usd(1))
	require.ErrorIs(err, assets.ErrInvalidAssetIndex)

	_, err = f.engine.Swap(env, f.records(a), assets.XUSDIndex, 9, usd(1))
	require.ErrorIs(err, assets.ErrInvalidAssetIndex)

	// one second older than the allowed delay
	f.feedUpdated = start - 1
	_, err = f.engine.Swap(f.env(f.user, start), f.records(a), assets.XUSDIndex, f.xsol, usd(1))
	require.ErrorIs(err, oracle.ErrStalePrice)
	f.feedUpdated = 0

	f.xsolStatus = oracle.StatusHalted
	before := f.snapshot(a)
	_, err = f.engine.Swap(f.env(f.user, start), f.records(a), assets.XUSDIndex, f.xsol, usd(1))
	require.ErrorIs(err, ErrHaltedPair)
	require.Equal(before, f.snapshot(a))
	f.xsolStatus = oracle.StatusTrading

	require.NoError(f.engine.SetSyntheticHalted(f.env(f.admin, start), f.records(nil), f.xsol, true))
	_, err = f.engine.Swap(f.env(f.user, start), f.records(a), assets.XUSDIndex, f.xsol, usd(1))
	require.ErrorIs(err, ErrHaltedPair)

	// the output must trade but the input may be halted
	_, err = f.engine.Swap(f.env(f.user, start), f.records(a), f.xsol, assets.XUSDIndex, decimal.New(1, xsolScale))
	require.ErrorIs(err, ErrInsufficientBalance)
}

func TestAccountLiquidation(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	owner := f.newAccount(t, f.user)
	liquidatorID := ids.GenerateTestShortID()
	liquidator := f.newAccount(t, liquidatorID)
	records := Records{
		State:      f.state,
		Assets:     f.list,
		Account:    owner,
		Liquidator: liquidator,
	}

	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(owner), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(owner), usd(10_000)))

	// BTC drops to 15000: the account backs 7500 of 10000
	f.btcPrice = btc15k
	_, err := f.engine.Liquidate(f.env(liquidatorID, start), records, f.btc, usd(5_000))
	require.ErrorIs(err, ErrLiquidationDeadline)

	require.NoError(f.engine.CheckAccountCollateralization(f.env(liquidatorID, start), f.records(owner)))
	deadline := start + 172_800
	require.Equal(deadline, owner.LiquidationDeadline)

	_, err = f.engine.Liquidate(f.env(liquidatorID, deadline-1), records, f.btc, usd(5_000))
	require.ErrorIs(err, ErrLiquidationDeadline)

	_, err = f.engine.Liquidate(f.env(f.user, deadline), Records{
		State:      f.state,
		Assets:     f.list,
		Account:    owner,
		Liquidator: owner,
	}, f.btc, usd(5_000))
	require.ErrorIs(err, ErrSelfLiquidation)

	result, err := f.engine.Liquidate(f.env(liquidatorID, deadline), records, f.btc, usd(5_000))
	require.NoError(err)
	// 20% of the debt, worth 2000 + 5% to the liquidator and 5% to the fund
	require.Equal(AccountLiquidation{
		Repaid:                 usd(2_000),
		BurnedShares:           2_000_000_000,
		CollateralToLiquidator: btc(14_000_000),
		CollateralToExchange:   btc(666_666),
	}, result)

	require.Equal(uint64(8_000_000_000), owner.DebtShares)
	require.Equal(uint64(8_000_000_000), f.state.Pool.DebtShares)
	require.Equal(btc(85_333_334), owner.Balance(f.btc))
	require.Equal(btc(14_000_000), liquidator.Balance(f.btc))
	require.Equal(btc(99_333_334), f.list.Collaterals[f.btc].ReserveBalance)
	require.Equal(btc(666_666), f.list.Collaterals[f.btc].LiquidationFund)
	require.Equal(usd(8_000), f.list.Synthetics[assets.XUSDIndex].Supply)
	// still undercollateralized
	require.Equal(deadline, owner.LiquidationDeadline)

	_, err = f.engine.WithdrawLiquidationPenalty(f.env(liquidatorID, deadline), f.records(nil), f.btc)
	require.ErrorIs(err, ErrUnauthorized)
	penalty, err := f.engine.WithdrawLiquidationPenalty(f.env(f.admin, deadline), f.records(nil), f.btc)
	require.NoError(err)
	require.Equal(btc(666_666), penalty)
	require.True(f.list.Collaterals[f.btc].LiquidationFund.IsZero())
	require.Equal(btc(99_333_334), f.list.Collaterals[f.btc].ReserveBalance)

	_, err = f.engine.WithdrawLiquidationPenalty(f.env(f.admin, deadline), f.records(nil), f.btc+1)
	require.ErrorIs(err, assets.ErrInvalidAssetIndex)
}

func TestAccountLiquidationNotEligible(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	owner := f.newAccount(t, f.user)
	liquidatorID := ids.GenerateTestShortID()
	liquidator := f.newAccount(t, liquidatorID)

	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(owner), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(owner), usd(10_000)))

	f.btcPrice = btc15k
	require.NoError(f.engine.CheckAccountCollateralization(f.env(f.user, start), f.records(owner)))
	require.NotZero(owner.LiquidationDeadline)

	// the price recovers before the deadline
	f.btcPrice = btc20k
	deadline := owner.LiquidationDeadline
	_, err := f.engine.Liquidate(f.env(liquidatorID, deadline), Records{
		State:      f.state,
		Assets:     f.list,
		Account:    owner,
		Liquidator: liquidator,
	}, f.btc, usd(1_000))
	require.ErrorIs(err, ErrLiquidationNotEligible)

	require.NoError(f.engine.CheckAccountCollateralization(f.env(f.user, deadline), f.records(owner)))
	require.Zero(owner.LiquidationDeadline)
}

func TestAccountHealth(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))

	h, err := f.engine.AccountHealth(env, f.records(a))
	require.NoError(err)
	require.Equal(usd(20_000), h.CollateralValue)
	require.Equal(usd(10_000), h.MaxDebt)
	require.True(h.Debt.IsZero())
	require.Equal(health.MaxRatio, h.Ratio)

	require.NoError(f.engine.Mint(env, f.records(a), usd(4_000)))
	before := f.snapshot(a)
	h, err = f.engine.AccountHealth(env, f.records(a))
	require.NoError(err)
	require.Equal(usd(4_000), h.Debt)
	require.Equal(decimal.Percent(250_000), h.Ratio)
	require.Equal(before, f.snapshot(a))

	_, err = f.engine.AccountHealth(env, f.records(nil))
	require.ErrorIs(err, ErrAccountNotFound)
}

func TestDebtInterest(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, func(c *config.Config) {
		c.DebtInterestRate = percent
	})
	a := f.newAccount(t, f.user)
	env := f.env(f.user, start)
	require.NoError(f.engine.Deposit(env, f.records(a), f.btc, btc(100_000_000)))
	require.NoError(f.engine.Mint(env, f.records(a), usd(10_000)))

	interest, err := f.engine.WithdrawAccumulatedDebtInterest(f.env(f.admin, start+65), f.records(nil))
	require.NoError(err)
	require.Equal(decimal.USD(191), interest)
	require.Equal(start+60, f.state.Pool.LastDebtAdjustment)
	require.Equal(decimal.USD(10_000_000_191), f.list.Synthetics[assets.XUSDIndex].Supply)
	require.True(f.state.Pool.AccumulatedDebtInterest.IsZero())

	// the owner now owes the interest too
	err = f.engine.Mint(f.env(f.user, start+65), f.records(a), decimal.USD(1))
	require.ErrorIs(err, ErrMintLimit)

	// switching the rate charges what is due at the old rate first
	require.NoError(f.engine.SetDebtInterestRate(f.env(f.admin, start+120), f.records(nil), decimal.Percent(0)))
	require.Equal(start+120, f.state.Pool.LastDebtAdjustment)
	require.False(f.state.Pool.AccumulatedDebtInterest.IsZero())
}

func TestAdminParameters(t *testing.T) {
	require := require.New(t)

	f := newFixture(t, nil)
	adminEnv := f.env(f.admin, start)

	require.ErrorIs(f.engine.SetFee(adminEnv, f.records(nil), decimal.Percent(100_001)), ErrInvalidAmount)
	require.NoError(f.engine.SetFee(adminEnv, f.records(nil), decimal.Percent(500)))
	require.Equal(decimal.Percent(500), f.state.Fee)

	require.NoError(f.engine.SetMaxDelay(adminEnv, f.records(nil), 30))
	require.Equal(uint32(30), f.state.MaxDelay)

	require.ErrorIs(f.engine.SetHealthFactor(adminEnv, f.records(nil), decimal.Percent(0)), ErrInvalidAmount)
	require.NoError(f.engine.SetHealthFactor(adminEnv, f.records(nil), decimal.Percent(80_000)))
	require.Equal(decimal.Percent(80_000), f.state.HealthFactor)

	require.NoError(f.engine.SetSwapTaxRatio(adminEnv, f.records(nil), decimal.Percent(10_000)))
	require.Equal(decimal.Percent(10_000), f.state.SwapTaxRatio)

	require.NoError(f.engine.SetLiquidationParams(adminEnv, f.records(nil), LiquidationParams{
		LiquidationRate:     decimal.Percent(50_000),
		PenaltyToLiquidator: decimal.Percent(2_000),
		PenaltyToExchange:   decimal.Percent(1_000),
		LiquidationBuffer:   60,
	}))
	require.Equal(decimal.Percent(50_000), f.state.LiquidationRate)
	require.Equal(uint32(60), f.state.LiquidationBuffer)

	require.NoError(f.engine.SetAssetMaxSupply(adminEnv, f.records(nil), f.xsol, decimal.MustFromInteger(5, xsolScale)))
	require.Equal(decimal.MustFromInteger(5, xsolScale), f.list.Synthetics[f.xsol].MaxSupply)

	require.NoError(f.engine.SetCollateralRatio(adminEnv, f.records(nil), f.btc, decimal.Percent(60_000)))
	require.NoError(f.engine.SetMaxCollateral(adminEnv, f.records(nil), f.btc, btc(1)))
	require.Equal(btc(1), f.list.Collaterals[f.btc].MaxCollateral)

	feed := ids.GenerateTestID()
	require.NoError(f.engine.SetPriceFeed(adminEnv, f.records(nil), true, f.btc, feed))
	require.Equal(feed, f.list.Collaterals[f.btc].FeedID)
	require.ErrorIs(f.engine.SetPriceFeed(adminEnv, f.records(nil), false, assets.XUSDIndex, feed), assets.ErrInvalidAssetIndex)

	newAdmin := ids.GenerateTestShortID()
	require.NoError(f.engine.SetAdmin(adminEnv, f.records(nil), newAdmin))
	require.ErrorIs(f.engine.SetMaxDelay(adminEnv, f.records(nil), 0), ErrUnauthorized)
	require.NoError(f.engine.SetMaxDelay(f.env(newAdmin, start), f.records(nil), 0))
}
