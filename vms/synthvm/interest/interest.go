// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package interest compounds nominal annual rates over whole accrual periods.
package interest

import (
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

const (
	// Period is the accrual granularity in seconds.
	Period int64 = 60

	// PeriodsPerYear is the number of accrual periods in a 365 day year.
	PeriodsPerYear = 525_600
)

// Periods returns the number of whole periods between last and now, and the
// timestamp last advances to. Partial periods are carried forward.
func Periods(last, now int64) (uint64, int64) {
	if now <= last {
		return 0, last
	}
	n := (now - last) / Period
	return uint64(n), last + n*Period
}

// PeriodRate converts a nominal annual rate into a per-period rate at
// decimal.InterestScale.
func PeriodRate(annual decimal.Decimal) (decimal.Decimal, error) {
	annual, err := annual.ToScale(decimal.InterestScale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return annual.Div(decimal.New(PeriodsPerYear, 0))
}

// Factor returns (1 + annual/PeriodsPerYear)^periods.
func Factor(annual decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	rate, err := PeriodRate(annual)
	if err != nil {
		return decimal.Decimal{}, err
	}
	base, err := rate.Add(decimal.One(decimal.InterestScale))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return base.Pow(periods)
}

// Compounded returns the interest accrued on base over periods, rounded up.
func Compounded(base, annual decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	factor, err := Factor(annual, periods)
	if err != nil {
		return decimal.Decimal{}, err
	}
	growth, err := factor.Sub(decimal.One(decimal.InterestScale))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return base.MulUp(growth)
}
