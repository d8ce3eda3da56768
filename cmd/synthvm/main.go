// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/luxfi/log"
	"github.com/spf13/cobra"

	"github.com/luxfi/synthvm/vms/synthvm/cmd/accrue"
	"github.com/luxfi/synthvm/vms/synthvm/cmd/decode"
	"github.com/luxfi/synthvm/vms/synthvm/cmd/genesis"
)

func main() {
	cmd := &cobra.Command{
		Use:          "synthvm",
		Short:        "Offline tooling for the synthetic asset exchange",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		genesis.Command(log.Root()),
		decode.Command(),
		accrue.Command(),
	)
	if err := cmd.Execute(); err != nil {
		fmt.Printf("synthvm error: %s\n", err)
		os.Exit(1)
	}
}
