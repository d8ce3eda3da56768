// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import (
	"errors"

	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

var (
	ErrHalted              = errors.New("exchange is halted")
	ErrUnauthorized        = errors.New("caller is not the admin")
	ErrMintLimit           = errors.New("mint limit exceeded")
	ErrHaltedPair          = errors.New("output asset is not trading")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLiquidationDeadline = errors.New("liquidation deadline not reached")
	ErrSelfLiquidation     = errors.New("account cannot liquidate itself")
	ErrAccountExists       = errors.New("exchange account already exists")
	ErrAccountNotFound     = errors.New("exchange account not found")
	ErrVaultExists         = errors.New("vault already exists")
	ErrVaultNotFound       = errors.New("vault not found")
	ErrVaultEntryExists    = errors.New("vault entry already exists")
	ErrVaultHalted         = errors.New("vault is halted")
	ErrSwaplineExists      = errors.New("swapline already exists")
	ErrSwaplineNotFound    = errors.New("swapline not found")
	ErrSettlementNotFound  = errors.New("settlement not found")

	// ErrLiquidationNotEligible is shared with vault liquidations.
	ErrLiquidationNotEligible = vault.ErrLiquidationNotEligible
)
