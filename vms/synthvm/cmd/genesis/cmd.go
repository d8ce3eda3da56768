// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/hex"
	"fmt"

	"github.com/luxfi/log"
	"github.com/spf13/cobra"

	"github.com/luxfi/synthvm/vms/synthvm/config"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/state"
)

func Command(logger log.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Encodes the genesis exchange state and asset registry",
		RunE: func(c *cobra.Command, args []string) error {
			return genesisFunc(c, args, logger)
		},
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func genesisFunc(c *cobra.Command, args []string, logger log.Logger) error {
	flags := c.Flags()
	cmdConfig, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmdConfig.ConfigPath)
	if err != nil {
		return err
	}
	s, list, err := exchange.Genesis(cfg, cmdConfig.Timestamp)
	if err != nil {
		return err
	}

	stateBytes, err := state.MarshalExchange(s)
	if err != nil {
		return err
	}
	listBytes, err := state.MarshalList(list)
	if err != nil {
		return err
	}
	logger.Info("encoded genesis",
		log.Stringer("admin", s.Admin),
		log.Int("stateSize", len(stateBytes)),
		log.Int("assetsSize", len(listBytes)),
	)

	out := c.OutOrStdout()
	if _, err := fmt.Fprintf(out, "state: 0x%s\n", hex.EncodeToString(stateBytes)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "assets: 0x%s\n", hex.EncodeToString(listBytes))
	return err
}
