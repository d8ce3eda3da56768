// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decode

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const KindKey = "kind"

// Record kinds accepted by --kind.
const (
	KindState      = "state"
	KindAssets     = "assets"
	KindAccount    = "account"
	KindVault      = "vault"
	KindEntry      = "entry"
	KindSwapline   = "swapline"
	KindSettlement = "settlement"
)

var (
	errUnknownKind = errors.New("unknown record kind")
	errMissingData = errors.New("expected exactly one hex encoded record")
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(KindKey, KindState, "Record kind: state, assets, account, vault, entry, swapline or settlement")
}

type Config struct {
	Kind  string
	Bytes []byte
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	kind, err := flags.GetString(KindKey)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindState, KindAssets, KindAccount, KindVault, KindEntry, KindSwapline, KindSettlement:
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, kind)
	}

	if flags.NArg() != 1 {
		return nil, errMissingData
	}
	b, err := hex.DecodeString(strings.TrimPrefix(flags.Arg(0), "0x"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Kind:  kind,
		Bytes: b,
	}, nil
}
