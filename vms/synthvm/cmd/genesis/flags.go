// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"

	"github.com/spf13/pflag"
)

const (
	ConfigKey    = "config"
	TimestampKey = "timestamp"
)

var errMissingConfig = errors.New("--config is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigKey, "", "YAML file with the exchange parameters (required)")
	flags.Int64(TimestampKey, 0, "Unix time the debt pool starts accruing from")
}

type Config struct {
	ConfigPath string
	Timestamp  int64
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	path, err := flags.GetString(ConfigKey)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errMissingConfig
	}

	timestamp, err := flags.GetInt64(TimestampKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		ConfigPath: path,
		Timestamp:  timestamp,
	}, nil
}
