// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the genesis parameters of the synthetic exchange.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/luxfi/ids"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidRatio  = errors.New("ratio above 100%")
	ErrMissingAdmin  = errors.New("admin is not set")
	ErrInvalidFactor = errors.New("health factor must be positive")
	ErrInvalidRound  = errors.New("staking round length must be positive")
)

// percentOne is 100% at decimal.PercentScale.
const percentOne = 100_000

// Config contains the parameters of the exchange state record. Ratios are
// raw values at decimal.PercentScale (100_000 = 100%).
type Config struct {
	// Admin is the only identity allowed to run admin operations
	Admin string `json:"admin" yaml:"admin"`
	// Halted stops every user operation
	Halted bool `json:"halted" yaml:"halted"`
	// AccountVersion is stamped into every new exchange account
	AccountVersion uint8 `json:"accountVersion" yaml:"accountVersion"`

	// Fee is charged on the USD value of a swap
	Fee uint64 `json:"fee" yaml:"fee"`
	// SwapTaxRatio is the share of a taxed swap fee kept in the reserve
	SwapTaxRatio uint64 `json:"swapTaxRatio" yaml:"swapTaxRatio"`
	// MaxDelay is the maximum age of a price feed in seconds
	MaxDelay uint32 `json:"maxDelay" yaml:"maxDelay"`
	// HealthFactor scales the debt an account may mint against its collateral
	HealthFactor uint64 `json:"healthFactor" yaml:"healthFactor"`
	// DebtInterestRate is the nominal annual rate charged on the pool debt
	DebtInterestRate uint64 `json:"debtInterestRate" yaml:"debtInterestRate"`

	// LiquidationRate is the share of an account's debt one liquidation may repay
	LiquidationRate uint64 `json:"liquidationRate" yaml:"liquidationRate"`
	// PenaltyToLiquidator is paid on top of the repaid value
	PenaltyToLiquidator uint64 `json:"penaltyToLiquidator" yaml:"penaltyToLiquidator"`
	// PenaltyToExchange is routed to the collateral's liquidation fund
	PenaltyToExchange uint64 `json:"penaltyToExchange" yaml:"penaltyToExchange"`
	// LiquidationBuffer is the grace period in seconds between an account
	// being flagged and it becoming liquidatable
	LiquidationBuffer uint32 `json:"liquidationBuffer" yaml:"liquidationBuffer"`

	// StakingRoundLength is the length of a staking round in seconds
	StakingRoundLength uint32 `json:"stakingRoundLength" yaml:"stakingRoundLength"`
	// StakingAmountPerRound is the reward paid per round, a raw value at
	// staking.RewardScale
	StakingAmountPerRound uint64 `json:"stakingAmountPerRound" yaml:"stakingAmountPerRound"`

	// XUSDAssetID identifies the exchange's USD synthetic
	XUSDAssetID string `json:"xusdAssetID" yaml:"xusdAssetID"`
	// XUSDMaxSupply is a raw value at decimal.USDScale
	XUSDMaxSupply uint64 `json:"xusdMaxSupply" yaml:"xusdMaxSupply"`
}

// DefaultConfig returns the default configuration. The admin must still be
// set.
func DefaultConfig() Config {
	return Config{
		Halted:         false,
		AccountVersion: 0,

		Fee:              300,     // 0.3%
		SwapTaxRatio:     20_000,  // 20%
		MaxDelay:         0,       // feeds must be updated in the same second
		HealthFactor:     100_000, // 100%
		DebtInterestRate: 1_000,   // 1%

		LiquidationRate:     20_000,  // 20%
		PenaltyToLiquidator: 5_000,   // 5%
		PenaltyToExchange:   5_000,   // 5%
		LiquidationBuffer:   172_800, // 2 days

		StakingRoundLength:    604_800,     // 1 week
		StakingAmountPerRound: 100_000_000, // 100

		XUSDMaxSupply: 18_446_744_073_709_551_615, // unlimited
	}
}

// AdminID parses the admin address.
func (c *Config) AdminID() (ids.ShortID, error) {
	if c.Admin == "" {
		return ids.ShortID{}, ErrMissingAdmin
	}
	return ids.ShortFromString(c.Admin)
}

// XUSDID parses the xUSD asset id. An unset id is ids.Empty.
func (c *Config) XUSDID() (ids.ID, error) {
	if c.XUSDAssetID == "" {
		return ids.Empty, nil
	}
	return ids.FromString(c.XUSDAssetID)
}

// Verify checks that every ratio is at most 100% and that the ids parse.
func (c *Config) Verify() error {
	if _, err := c.AdminID(); err != nil {
		return fmt.Errorf("invalid admin: %w", err)
	}
	if _, err := c.XUSDID(); err != nil {
		return fmt.Errorf("invalid xUSD asset id: %w", err)
	}
	if c.HealthFactor == 0 {
		return ErrInvalidFactor
	}
	if c.StakingRoundLength == 0 {
		return ErrInvalidRound
	}
	for name, ratio := range map[string]uint64{
		"fee":                 c.Fee,
		"swapTaxRatio":        c.SwapTaxRatio,
		"healthFactor":        c.HealthFactor,
		"liquidationRate":     c.LiquidationRate,
		"penaltyToLiquidator": c.PenaltyToLiquidator,
		"penaltyToExchange":   c.PenaltyToExchange,
	} {
		if ratio > percentOne {
			return fmt.Errorf("%w: %s is %d", ErrInvalidRatio, name, ratio)
		}
	}
	return nil
}

// ParseConfig parses configuration from JSON bytes on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("couldn't parse %s: %w", path, err)
	}
	return cfg, nil
}
