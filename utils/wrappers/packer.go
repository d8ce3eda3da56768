// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"encoding/binary"
	"errors"
	"slices"

	"github.com/holiman/uint256"
)

var (
	ErrInsufficientLength = errors.New("packer has insufficient length for input")
	ErrTrailingBytes      = errors.New("packer has unread trailing bytes")
	errNegativeLength     = errors.New("negative length")
	errBadBool            = errors.New("unexpected value when unpacking bool")
	errOversized          = errors.New("value is larger than 128 bits")
)

// Packer writes or reads a record of fixed width fields. Integers are
// big-endian. The first failure is kept in Err and every later call is a
// no-op.
type Packer struct {
	Errs

	// MaxSize bounds the bytes a packer may write.
	MaxSize int
	Bytes   []byte
	// Offset is the position of the next field.
	Offset int
}

// NewPacker returns a packer that can write exactly size bytes.
func NewPacker(size int) *Packer {
	return &Packer{
		MaxSize: size,
		Bytes:   make([]byte, 0, size),
	}
}

// NewUnpacker returns a packer reading from b.
func NewUnpacker(b []byte) *Packer {
	return &Packer{
		MaxSize: len(b),
		Bytes:   b,
	}
}

// reserve grows the record by n bytes and returns them for writing. Once the
// packer has failed it returns a scratch buffer instead.
func (p *Packer) reserve(n int) []byte {
	switch {
	case p.Errored():
	case n < 0:
		p.Add(errNegativeLength)
	case p.Offset+n > p.MaxSize:
		p.Add(ErrInsufficientLength)
	default:
		p.Bytes = slices.Grow(p.Bytes[:p.Offset], n)[:p.Offset+n]
		field := p.Bytes[p.Offset:]
		p.Offset += n
		return field
	}
	return make([]byte, max(n, 0))
}

// consume returns the next n bytes of the record. Once the packer has failed
// it returns zeroes instead.
func (p *Packer) consume(n int) []byte {
	switch {
	case p.Errored():
	case n < 0:
		p.Add(errNegativeLength)
	case len(p.Bytes)-p.Offset < n:
		p.Add(ErrInsufficientLength)
	default:
		field := p.Bytes[p.Offset : p.Offset+n]
		p.Offset += n
		return field
	}
	return make([]byte, max(n, 0))
}

func (p *Packer) PackByte(val byte) {
	p.reserve(ByteLen)[0] = val
}

func (p *Packer) UnpackByte() byte {
	return p.consume(ByteLen)[0]
}

func (p *Packer) PackShort(val uint16) {
	binary.BigEndian.PutUint16(p.reserve(ShortLen), val)
}

func (p *Packer) UnpackShort() uint16 {
	return binary.BigEndian.Uint16(p.consume(ShortLen))
}

func (p *Packer) PackInt(val uint32) {
	binary.BigEndian.PutUint32(p.reserve(IntLen), val)
}

func (p *Packer) UnpackInt() uint32 {
	return binary.BigEndian.Uint32(p.consume(IntLen))
}

func (p *Packer) PackLong(val uint64) {
	binary.BigEndian.PutUint64(p.reserve(LongLen), val)
}

func (p *Packer) UnpackLong() uint64 {
	return binary.BigEndian.Uint64(p.consume(LongLen))
}

// PackInt64 packs a signed timestamp as its two's complement long.
func (p *Packer) PackInt64(val int64) {
	p.PackLong(uint64(val))
}

func (p *Packer) UnpackInt64() int64 {
	return int64(p.UnpackLong())
}

// PackUint128 appends the low 16 bytes of val. Values wider than 128 bits are
// rejected.
func (p *Packer) PackUint128(val *uint256.Int) {
	if val.BitLen() > 128 {
		p.Add(errOversized)
		return
	}
	b := val.Bytes32()
	copy(p.reserve(Uint128Len), b[32-Uint128Len:])
}

func (p *Packer) UnpackUint128() *uint256.Int {
	return new(uint256.Int).SetBytes(p.consume(Uint128Len))
}

func (p *Packer) PackBool(b bool) {
	if b {
		p.PackByte(1)
		return
	}
	p.PackByte(0)
}

// UnpackBool rejects any byte other than 0 or 1.
func (p *Packer) UnpackBool() bool {
	switch p.UnpackByte() {
	case 0:
		return false
	case 1:
		return true
	default:
		p.Add(errBadBool)
		return false
	}
}

// PackFixedBytes appends b without a length prefix.
func (p *Packer) PackFixedBytes(b []byte) {
	copy(p.reserve(len(b)), b)
}

// UnpackFixedBytes returns the next size bytes. The result aliases the
// packer's buffer.
func (p *Packer) UnpackFixedBytes(size int) []byte {
	return p.consume(size)
}

// Done records ErrTrailingBytes if any input remains unread.
func (p *Packer) Done() {
	if !p.Errored() && p.Offset != len(p.Bytes) {
		p.Add(ErrTrailingBytes)
	}
}
