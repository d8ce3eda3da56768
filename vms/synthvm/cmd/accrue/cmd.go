// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package accrue

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/interest"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "accrue",
		Short: "Projects the interest accrued on a debt",
		RunE:  accrueFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func accrueFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	projection, err := Project(config.Amount, config.Rate, config.Elapsed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.OutOrStdout(),
		"periods: %d\ninterest: %s\ntotal: %s\n",
		projection.Periods,
		projection.Interest.Human(),
		projection.Total.Human(),
	)
	return err
}

type Projection struct {
	Periods  uint64
	Interest decimal.Decimal
	Total    decimal.Decimal
}

// Project compounds amount at the annual rate over the whole periods in
// elapsed seconds. Partial periods accrue nothing.
func Project(amount, rate decimal.Decimal, elapsed int64) (Projection, error) {
	periods, _ := interest.Periods(0, elapsed)
	accrued, err := interest.Compounded(amount, rate, periods)
	if err != nil {
		return Projection{}, err
	}
	total, err := amount.Add(accrued)
	if err != nil {
		return Projection{}, err
	}
	return Projection{
		Periods:  periods,
		Interest: accrued,
		Total:    total,
	}, nil
}
