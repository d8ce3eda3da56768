// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assets

import "errors"

var (
	// ErrAssetLimitExceeded indicates the arena has no free slot left.
	ErrAssetLimitExceeded = errors.New("asset limit exceeded")

	// ErrInvalidAssetIndex indicates an index at or past the head.
	ErrInvalidAssetIndex = errors.New("invalid asset index")

	// ErrAssetNotFound indicates no slot holds the requested asset id.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetExists indicates the asset id is already registered.
	ErrAssetExists = errors.New("asset already registered")

	// ErrMaxSupply indicates a synthetic supply above its maximum.
	ErrMaxSupply = errors.New("max supply exceeded")

	// ErrCollateralLimitExceeded indicates a reserve above its maximum.
	ErrCollateralLimitExceeded = errors.New("collateral limit exceeded")

	// ErrInvalidCollateralRatio indicates a ratio above 100%.
	ErrInvalidCollateralRatio = errors.New("collateral ratio must not exceed 100%")

	// ErrSettled indicates a synthetic that was already settled.
	ErrSettled = errors.New("synthetic is settled")

	// ErrSettlementNotDue indicates a synthetic without a reached
	// settlement time.
	ErrSettlementNotDue = errors.New("settlement time not reached")

	// ErrSettlementOutstanding indicates supply that is still owed by
	// vaults or swaplines.
	ErrSettlementOutstanding = errors.New("synthetic has externally backed supply")
)
