// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decode

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/luxfi/synthvm/vms/synthvm/state"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Prints a stored record as JSON",
		RunE:  decodeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func decodeFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	projection, err := Project(config.Kind, config.Bytes)
	if err != nil {
		return err
	}
	return write(c.OutOrStdout(), projection)
}

// Project decodes b as a record of the given kind.
func Project(kind string, b []byte) (any, error) {
	switch kind {
	case KindState:
		s, err := state.UnmarshalExchange(b)
		if err != nil {
			return nil, err
		}
		return projectExchange(s), nil
	case KindAssets:
		l, err := state.UnmarshalList(b)
		if err != nil {
			return nil, err
		}
		return projectAssets(l), nil
	case KindAccount:
		a, err := state.UnmarshalAccount(b)
		if err != nil {
			return nil, err
		}
		return projectAccount(a), nil
	case KindVault:
		v, err := state.UnmarshalVault(b)
		if err != nil {
			return nil, err
		}
		return projectVault(v), nil
	case KindEntry:
		e, err := state.UnmarshalEntry(b)
		if err != nil {
			return nil, err
		}
		return projectEntry(e), nil
	case KindSwapline:
		l, err := state.UnmarshalSwapline(b)
		if err != nil {
			return nil, err
		}
		return projectSwapline(l), nil
	case KindSettlement:
		st, err := state.UnmarshalSettlement(b)
		if err != nil {
			return nil, err
		}
		return projectSettlement(st), nil
	default:
		return nil, errUnknownKind
	}
}

func write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
