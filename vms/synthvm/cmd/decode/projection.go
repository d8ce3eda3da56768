// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decode

import (
	"github.com/luxfi/ids"
	shopspring "github.com/shopspring/decimal"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

// The projections below render every amount as a human decimal string.

type exchangeJSON struct {
	Admin                   ids.ShortID        `json:"admin"`
	Halted                  bool               `json:"halted"`
	AccountVersion          uint8              `json:"accountVersion"`
	Fee                     shopspring.Decimal `json:"fee"`
	SwapTaxRatio            shopspring.Decimal `json:"swapTaxRatio"`
	SwapTaxReserve          shopspring.Decimal `json:"swapTaxReserve"`
	MaxDelay                uint32             `json:"maxDelay"`
	HealthFactor            shopspring.Decimal `json:"healthFactor"`
	LiquidationRate         shopspring.Decimal `json:"liquidationRate"`
	PenaltyToLiquidator     shopspring.Decimal `json:"penaltyToLiquidator"`
	PenaltyToExchange       shopspring.Decimal `json:"penaltyToExchange"`
	LiquidationBuffer       uint32             `json:"liquidationBuffer"`
	DebtShares              uint64             `json:"debtShares"`
	DebtInterestRate        shopspring.Decimal `json:"debtInterestRate"`
	AccumulatedDebtInterest shopspring.Decimal `json:"accumulatedDebtInterest"`
	LastDebtAdjustment      int64              `json:"lastDebtAdjustment"`
	Staking                 stakingJSON        `json:"staking"`
}

type roundJSON struct {
	Start     int64              `json:"start"`
	AllPoints uint64             `json:"allPoints"`
	Amount    shopspring.Decimal `json:"amount"`
}

func projectRound(r staking.Round) roundJSON {
	return roundJSON{
		Start:     r.Start,
		AllPoints: r.AllPoints,
		Amount:    r.Amount.Human(),
	}
}

type stakingJSON struct {
	RoundLength    uint32             `json:"roundLength"`
	AmountPerRound shopspring.Decimal `json:"amountPerRound"`
	FinishedRound  roundJSON          `json:"finishedRound"`
	CurrentRound   roundJSON          `json:"currentRound"`
	NextRound      roundJSON          `json:"nextRound"`
}

func projectExchange(s *exchange.State) exchangeJSON {
	return exchangeJSON{
		Admin:                   s.Admin,
		Halted:                  s.Halted,
		AccountVersion:          s.AccountVersion,
		Fee:                     s.Fee.Human(),
		SwapTaxRatio:            s.SwapTaxRatio.Human(),
		SwapTaxReserve:          s.SwapTaxReserve.Human(),
		MaxDelay:                s.MaxDelay,
		HealthFactor:            s.HealthFactor.Human(),
		LiquidationRate:         s.LiquidationRate.Human(),
		PenaltyToLiquidator:     s.PenaltyToLiquidator.Human(),
		PenaltyToExchange:       s.PenaltyToExchange.Human(),
		LiquidationBuffer:       s.LiquidationBuffer,
		DebtShares:              s.Pool.DebtShares,
		DebtInterestRate:        s.Pool.DebtInterestRate.Human(),
		AccumulatedDebtInterest: s.Pool.AccumulatedDebtInterest.Human(),
		LastDebtAdjustment:      s.Pool.LastDebtAdjustment,
		Staking: stakingJSON{
			RoundLength:    s.Staking.RoundLength,
			AmountPerRound: s.Staking.AmountPerRound.Human(),
			FinishedRound:  projectRound(s.Staking.FinishedRound),
			CurrentRound:   projectRound(s.Staking.CurrentRound),
			NextRound:      projectRound(s.Staking.NextRound),
		},
	}
}

type collateralJSON struct {
	Index           uint8              `json:"index"`
	AssetID         ids.ID             `json:"assetID"`
	FeedID          ids.ID             `json:"feedID"`
	Scale           uint8              `json:"scale"`
	ReserveBalance  shopspring.Decimal `json:"reserveBalance"`
	CollateralRatio shopspring.Decimal `json:"collateralRatio"`
	MaxCollateral   shopspring.Decimal `json:"maxCollateral"`
	LiquidationFund shopspring.Decimal `json:"liquidationFund"`
}

type syntheticJSON struct {
	Index          uint8              `json:"index"`
	AssetID        ids.ID             `json:"assetID"`
	FeedID         ids.ID             `json:"feedID"`
	Scale          uint8              `json:"scale"`
	Supply         shopspring.Decimal `json:"supply"`
	BorrowedSupply shopspring.Decimal `json:"borrowedSupply"`
	SwaplineSupply shopspring.Decimal `json:"swaplineSupply"`
	MaxSupply      shopspring.Decimal `json:"maxSupply"`
	SwapTaxBearing bool               `json:"swapTaxBearing"`
	Halted         bool               `json:"halted"`
	SettlementTime int64              `json:"settlementTime"`
	Settled        bool               `json:"settled"`
}

type assetsJSON struct {
	Collaterals []collateralJSON `json:"collaterals"`
	Synthetics  []syntheticJSON  `json:"synthetics"`
}

func projectAssets(l *assets.List) assetsJSON {
	p := assetsJSON{
		Collaterals: make([]collateralJSON, 0, l.HeadCollaterals),
		Synthetics:  make([]syntheticJSON, 0, l.HeadSynthetics),
	}
	for i := range l.HeadCollaterals {
		c := &l.Collaterals[i]
		p.Collaterals = append(p.Collaterals, collateralJSON{
			Index:           i,
			AssetID:         c.AssetID,
			FeedID:          c.FeedID,
			Scale:           c.Scale(),
			ReserveBalance:  c.ReserveBalance.Human(),
			CollateralRatio: c.CollateralRatio.Human(),
			MaxCollateral:   c.MaxCollateral.Human(),
			LiquidationFund: c.LiquidationFund.Human(),
		})
	}
	for i := range l.HeadSynthetics {
		s := &l.Synthetics[i]
		p.Synthetics = append(p.Synthetics, syntheticJSON{
			Index:          i,
			AssetID:        s.AssetID,
			FeedID:         s.FeedID,
			Scale:          s.Scale(),
			Supply:         s.Supply.Human(),
			BorrowedSupply: s.BorrowedSupply.Human(),
			SwaplineSupply: s.SwaplineSupply.Human(),
			MaxSupply:      s.MaxSupply.Human(),
			SwapTaxBearing: s.SwapTaxBearing,
			Halted:         s.Halted,
			SettlementTime: s.SettlementTime,
			Settled:        s.Settled,
		})
	}
	return p
}

type balanceJSON struct {
	AssetIndex uint8              `json:"assetIndex"`
	Amount     shopspring.Decimal `json:"amount"`
}

type accountJSON struct {
	Owner               ids.ShortID   `json:"owner"`
	Version             uint8         `json:"version"`
	DebtShares          uint64        `json:"debtShares"`
	LiquidationDeadline int64         `json:"liquidationDeadline"`
	Collaterals         []balanceJSON `json:"collaterals"`
	Staking             stakerJSON    `json:"staking"`
}

type stakerJSON struct {
	AmountToClaim       shopspring.Decimal `json:"amountToClaim"`
	FinishedRoundPoints uint64             `json:"finishedRoundPoints"`
	CurrentRoundPoints  uint64             `json:"currentRoundPoints"`
	NextRoundPoints     uint64             `json:"nextRoundPoints"`
	LastUpdate          int64              `json:"lastUpdate"`
}

func projectAccount(a *account.Account) accountJSON {
	p := accountJSON{
		Owner:               a.Owner,
		Version:             a.Version,
		DebtShares:          a.DebtShares,
		LiquidationDeadline: a.LiquidationDeadline,
		Collaterals:         make([]balanceJSON, 0, a.Head),
		Staking: stakerJSON{
			AmountToClaim:       a.Staking.AmountToClaim.Human(),
			FinishedRoundPoints: a.Staking.FinishedRoundPoints,
			CurrentRoundPoints:  a.Staking.CurrentRoundPoints,
			NextRoundPoints:     a.Staking.NextRoundPoints,
			LastUpdate:          a.Staking.LastUpdate,
		},
	}
	for _, e := range a.Collaterals[:a.Head] {
		p.Collaterals = append(p.Collaterals, balanceJSON{
			AssetIndex: e.AssetIndex,
			Amount:     e.Amount.Human(),
		})
	}
	return p
}

type vaultJSON struct {
	Collateral                   uint8              `json:"collateral"`
	Synthetic                    uint8              `json:"synthetic"`
	CollateralReserveBalance     shopspring.Decimal `json:"collateralReserveBalance"`
	MintAmount                   shopspring.Decimal `json:"mintAmount"`
	AccumulatedInterestRate      shopspring.Decimal `json:"accumulatedInterestRate"`
	AccumulatedInterest          shopspring.Decimal `json:"accumulatedInterest"`
	PendingInterest              shopspring.Decimal `json:"pendingInterest"`
	LastUpdate                   int64              `json:"lastUpdate"`
	DebtInterestRate             shopspring.Decimal `json:"debtInterestRate"`
	CollateralRatio              shopspring.Decimal `json:"collateralRatio"`
	LiquidationThreshold         shopspring.Decimal `json:"liquidationThreshold"`
	LiquidationRatio             shopspring.Decimal `json:"liquidationRatio"`
	LiquidationPenaltyExchange   shopspring.Decimal `json:"liquidationPenaltyExchange"`
	LiquidationPenaltyLiquidator shopspring.Decimal `json:"liquidationPenaltyLiquidator"`
	MaxBorrow                    shopspring.Decimal `json:"maxBorrow"`
	Halted                       bool               `json:"halted"`
}

func projectVault(v *vault.Vault) vaultJSON {
	return vaultJSON{
		Collateral:                   v.CollateralIndex,
		Synthetic:                    v.SyntheticIndex,
		CollateralReserveBalance:     v.CollateralReserveBalance.Human(),
		MintAmount:                   v.MintAmount.Human(),
		AccumulatedInterestRate:      v.AccumulatedInterestRate.Human(),
		AccumulatedInterest:          v.AccumulatedInterest.Human(),
		PendingInterest:              v.PendingInterest.Human(),
		LastUpdate:                   v.LastUpdate,
		DebtInterestRate:             v.DebtInterestRate.Human(),
		CollateralRatio:              v.CollateralRatio.Human(),
		LiquidationThreshold:         v.LiquidationThreshold.Human(),
		LiquidationRatio:             v.LiquidationRatio.Human(),
		LiquidationPenaltyExchange:   v.LiquidationPenaltyExchange.Human(),
		LiquidationPenaltyLiquidator: v.LiquidationPenaltyLiquidator.Human(),
		MaxBorrow:                    v.MaxBorrow.Human(),
		Halted:                       v.Halted,
	}
}

type entryJSON struct {
	Owner                       ids.ShortID        `json:"owner"`
	Collateral                  uint8              `json:"collateral"`
	Synthetic                   uint8              `json:"synthetic"`
	CollateralAmount            shopspring.Decimal `json:"collateralAmount"`
	SyntheticAmount             shopspring.Decimal `json:"syntheticAmount"`
	LastAccumulatedInterestRate shopspring.Decimal `json:"lastAccumulatedInterestRate"`
}

func projectEntry(e *vault.Entry) entryJSON {
	return entryJSON{
		Owner:                       e.Owner,
		Collateral:                  e.CollateralIndex,
		Synthetic:                   e.SyntheticIndex,
		CollateralAmount:            e.CollateralAmount.Human(),
		SyntheticAmount:             e.SyntheticAmount.Human(),
		LastAccumulatedInterestRate: e.LastAccumulatedInterestRate.Human(),
	}
}

type swaplineJSON struct {
	Synthetic      uint8              `json:"synthetic"`
	Collateral     uint8              `json:"collateral"`
	Fee            shopspring.Decimal `json:"fee"`
	Balance        shopspring.Decimal `json:"balance"`
	Limit          shopspring.Decimal `json:"limit"`
	AccumulatedFee shopspring.Decimal `json:"accumulatedFee"`
	Halted         bool               `json:"halted"`
}

func projectSwapline(l *swapline.Swapline) swaplineJSON {
	return swaplineJSON{
		Synthetic:      l.SyntheticIndex,
		Collateral:     l.CollateralIndex,
		Fee:            l.Fee.Human(),
		Balance:        l.Balance.Human(),
		Limit:          l.Limit.Human(),
		AccumulatedFee: l.AccumulatedFee.Human(),
		Halted:         l.Halted,
	}
}

type settlementJSON struct {
	Synthetic uint8              `json:"synthetic"`
	AssetID   ids.ID             `json:"assetID"`
	Ratio     shopspring.Decimal `json:"ratio"`
	Reserve   shopspring.Decimal `json:"reserve"`
	SettledAt int64              `json:"settledAt"`
}

func projectSettlement(st *assets.Settlement) settlementJSON {
	return settlementJSON{
		Synthetic: st.SyntheticIndex,
		AssetID:   st.AssetID,
		Ratio:     st.Ratio.Human(),
		Reserve:   st.Reserve.Human(),
		SettledAt: st.SettledAt,
	}
}
