// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the operations accepted by the exchange.
package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/oracle"
)

// UnsignedTx is the body of an operation.
type UnsignedTx interface {
	// Visit calls the visitor method for the concrete type.
	Visit(visitor Visitor) error
}

// Tx is an operation with its authenticated sender and the price feeds it
// was submitted with.
type Tx struct {
	Unsigned UnsignedTx
	Caller   ids.ShortID
	Feeds    *oracle.Snapshot
}
