// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accrue

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

const (
	RateKey    = "rate"
	ElapsedKey = "elapsed"
	AmountKey  = "amount"
	ScaleKey   = "scale"
)

var errNegativeElapsed = errors.New("elapsed time must not be negative")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(RateKey, "0.07", "Nominal annual interest rate as a fraction")
	flags.Int64(ElapsedKey, 0, "Seconds since the last accrual")
	flags.String(AmountKey, "0", "Outstanding debt")
	flags.Uint8(ScaleKey, decimal.USDScale, "Fractional digits of the debt asset")
}

type Config struct {
	Rate    decimal.Decimal
	Elapsed int64
	Amount  decimal.Decimal
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	rateStr, err := flags.GetString(RateKey)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.Parse(rateStr, decimal.PercentScale)
	if err != nil {
		return nil, err
	}

	elapsed, err := flags.GetInt64(ElapsedKey)
	if err != nil {
		return nil, err
	}
	if elapsed < 0 {
		return nil, errNegativeElapsed
	}

	scale, err := flags.GetUint8(ScaleKey)
	if err != nil {
		return nil, err
	}
	amountStr, err := flags.GetString(AmountKey)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.Parse(amountStr, scale)
	if err != nil {
		return nil, err
	}

	return &Config{
		Rate:    rate,
		Elapsed: elapsed,
		Amount:  amount,
	}, nil
}
