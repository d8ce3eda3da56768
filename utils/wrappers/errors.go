// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wrappers provides the fixed-width binary packer used by persisted
// records.
package wrappers

// Packed widths in bytes.
const (
	ByteLen    = 1
	BoolLen    = 1
	ShortLen   = 2
	IntLen     = 4
	LongLen    = 8
	Uint128Len = 16
)

// Errs keeps the first error of a sequence of operations.
type Errs struct {
	Err error
}

func (errs *Errs) Errored() bool {
	return errs.Err != nil
}

// Add records the first non-nil error unless one is already set.
func (errs *Errs) Add(errors ...error) {
	if errs.Err != nil {
		return
	}
	for _, err := range errors {
		if err != nil {
			errs.Err = err
			return
		}
	}
}
