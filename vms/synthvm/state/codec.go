// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/utils/wrappers"
	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/debt"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/staking"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

// CodecVersion prefixes every persisted record.
const CodecVersion uint16 = 0

const (
	idLen      = 32
	shortIDLen = 20
	// DecimalLen is a 128-bit value followed by its scale.
	DecimalLen = wrappers.Uint128Len + wrappers.ByteLen

	collateralLen = 2*idLen + 4*DecimalLen
	syntheticLen  = 2*idLen + 4*DecimalLen + wrappers.LongLen + 3*wrappers.BoolLen
	entryLen      = wrappers.ByteLen + DecimalLen
	poolLen       = wrappers.LongLen + 2*DecimalLen + wrappers.LongLen
	paramsLen     = 7 * DecimalLen
	roundLen      = 2*wrappers.LongLen + DecimalLen
	stakingLen    = wrappers.IntLen + DecimalLen + 3*roundLen
	stakerLen     = DecimalLen + 4*wrappers.LongLen

	// ListSize is the encoded size of the asset registry.
	ListSize = wrappers.ShortLen +
		2*wrappers.ByteLen +
		assets.Capacity*collateralLen +
		assets.Capacity*syntheticLen

	// AccountSize is the encoded size of an exchange account.
	AccountSize = wrappers.ShortLen +
		shortIDLen +
		wrappers.ByteLen +
		2*wrappers.LongLen +
		wrappers.ByteLen +
		assets.Capacity*entryLen +
		stakerLen

	// VaultSize is the encoded size of a vault.
	VaultSize = wrappers.ShortLen +
		2*wrappers.ByteLen +
		5*DecimalLen +
		wrappers.LongLen +
		wrappers.BoolLen +
		paramsLen

	// EntrySize is the encoded size of a vault entry.
	EntrySize = wrappers.ShortLen +
		shortIDLen +
		2*wrappers.ByteLen +
		3*DecimalLen

	// ExchangeSize is the encoded size of the exchange singleton.
	ExchangeSize = wrappers.ShortLen +
		shortIDLen +
		wrappers.BoolLen +
		wrappers.ByteLen +
		7*DecimalLen +
		2*wrappers.IntLen +
		poolLen +
		stakingLen

	// SwaplineSize is the encoded size of a swapline.
	SwaplineSize = wrappers.ShortLen +
		2*wrappers.ByteLen +
		4*DecimalLen +
		wrappers.BoolLen

	// SettlementSize is the encoded size of a settlement.
	SettlementSize = wrappers.ShortLen +
		wrappers.ByteLen +
		idLen +
		2*DecimalLen +
		wrappers.LongLen
)

var ErrUnknownCodecVersion = errors.New("unknown codec version")

func packVersion(p *wrappers.Packer) {
	p.PackShort(CodecVersion)
}

func unpackVersion(p *wrappers.Packer) {
	if v := p.UnpackShort(); !p.Errored() && v != CodecVersion {
		p.Add(fmt.Errorf("%w: %d", ErrUnknownCodecVersion, v))
	}
}

func packDecimal(p *wrappers.Packer, d decimal.Decimal) {
	p.PackUint128(&d.Value)
	p.PackByte(d.Scale)
}

func unpackDecimal(p *wrappers.Packer) decimal.Decimal {
	value := p.UnpackUint128()
	scale := p.UnpackByte()
	return decimal.Decimal{
		Value: *value,
		Scale: scale,
	}
}

func unpackID(p *wrappers.Packer) ids.ID {
	var id ids.ID
	copy(id[:], p.UnpackFixedBytes(idLen))
	return id
}

func unpackShortID(p *wrappers.Packer) ids.ShortID {
	var id ids.ShortID
	copy(id[:], p.UnpackFixedBytes(shortIDLen))
	return id
}

func finish(p *wrappers.Packer, size int) ([]byte, error) {
	if p.Err == nil && len(p.Bytes) != size {
		p.Add(fmt.Errorf("encoded %d bytes, expected %d", len(p.Bytes), size))
	}
	return p.Bytes, p.Err
}

// MarshalList encodes the asset registry.
func MarshalList(l *assets.List) ([]byte, error) {
	p := wrappers.NewPacker(ListSize)
	packVersion(p)
	p.PackByte(l.HeadCollaterals)
	p.PackByte(l.HeadSynthetics)
	for i := range l.Collaterals {
		c := &l.Collaterals[i]
		p.PackFixedBytes(c.AssetID[:])
		p.PackFixedBytes(c.FeedID[:])
		packDecimal(p, c.ReserveBalance)
		packDecimal(p, c.CollateralRatio)
		packDecimal(p, c.MaxCollateral)
		packDecimal(p, c.LiquidationFund)
	}
	for i := range l.Synthetics {
		s := &l.Synthetics[i]
		p.PackFixedBytes(s.AssetID[:])
		p.PackFixedBytes(s.FeedID[:])
		packDecimal(p, s.Supply)
		packDecimal(p, s.BorrowedSupply)
		packDecimal(p, s.SwaplineSupply)
		packDecimal(p, s.MaxSupply)
		p.PackBool(s.SwapTaxBearing)
		p.PackBool(s.Halted)
		p.PackInt64(s.SettlementTime)
		p.PackBool(s.Settled)
	}
	return finish(p, ListSize)
}

// UnmarshalList decodes the asset registry.
func UnmarshalList(b []byte) (*assets.List, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	l := &assets.List{
		HeadCollaterals: p.UnpackByte(),
		HeadSynthetics:  p.UnpackByte(),
	}
	for i := range l.Collaterals {
		l.Collaterals[i] = assets.Collateral{
			AssetID:         unpackID(p),
			FeedID:          unpackID(p),
			ReserveBalance:  unpackDecimal(p),
			CollateralRatio: unpackDecimal(p),
			MaxCollateral:   unpackDecimal(p),
			LiquidationFund: unpackDecimal(p),
		}
	}
	for i := range l.Synthetics {
		l.Synthetics[i] = assets.Synthetic{
			AssetID:        unpackID(p),
			FeedID:         unpackID(p),
			Supply:         unpackDecimal(p),
			BorrowedSupply: unpackDecimal(p),
			SwaplineSupply: unpackDecimal(p),
			MaxSupply:      unpackDecimal(p),
			SwapTaxBearing: p.UnpackBool(),
			Halted:         p.UnpackBool(),
			SettlementTime: p.UnpackInt64(),
			Settled:        p.UnpackBool(),
		}
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("asset list: %w", p.Err)
	}
	if l.HeadCollaterals > assets.Capacity || l.HeadSynthetics > assets.Capacity {
		return nil, fmt.Errorf("asset list: %w: heads %d/%d", assets.ErrAssetLimitExceeded, l.HeadCollaterals, l.HeadSynthetics)
	}
	return l, nil
}

// MarshalAccount encodes an exchange account.
func MarshalAccount(a *account.Account) ([]byte, error) {
	p := wrappers.NewPacker(AccountSize)
	packVersion(p)
	p.PackFixedBytes(a.Owner[:])
	p.PackByte(a.Version)
	p.PackLong(a.DebtShares)
	p.PackInt64(a.LiquidationDeadline)
	p.PackByte(a.Head)
	for i := range a.Collaterals {
		p.PackByte(a.Collaterals[i].AssetIndex)
		packDecimal(p, a.Collaterals[i].Amount)
	}
	packDecimal(p, a.Staking.AmountToClaim)
	p.PackLong(a.Staking.FinishedRoundPoints)
	p.PackLong(a.Staking.CurrentRoundPoints)
	p.PackLong(a.Staking.NextRoundPoints)
	p.PackInt64(a.Staking.LastUpdate)
	return finish(p, AccountSize)
}

// UnmarshalAccount decodes an exchange account.
func UnmarshalAccount(b []byte) (*account.Account, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	a := &account.Account{
		Owner:               unpackShortID(p),
		Version:             p.UnpackByte(),
		DebtShares:          p.UnpackLong(),
		LiquidationDeadline: p.UnpackInt64(),
		Head:                p.UnpackByte(),
	}
	for i := range a.Collaterals {
		a.Collaterals[i] = account.CollateralEntry{
			AssetIndex: p.UnpackByte(),
			Amount:     unpackDecimal(p),
		}
	}
	a.Staking = staking.Account{
		AmountToClaim:       unpackDecimal(p),
		FinishedRoundPoints: p.UnpackLong(),
		CurrentRoundPoints:  p.UnpackLong(),
		NextRoundPoints:     p.UnpackLong(),
		LastUpdate:          p.UnpackInt64(),
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("account: %w", p.Err)
	}
	if a.Head > assets.Capacity {
		return nil, fmt.Errorf("account: %w: head %d", account.ErrAccountFull, a.Head)
	}
	return a, nil
}

func packParams(p *wrappers.Packer, params vault.Params) {
	packDecimal(p, params.DebtInterestRate)
	packDecimal(p, params.CollateralRatio)
	packDecimal(p, params.LiquidationThreshold)
	packDecimal(p, params.LiquidationRatio)
	packDecimal(p, params.LiquidationPenaltyExchange)
	packDecimal(p, params.LiquidationPenaltyLiquidator)
	packDecimal(p, params.MaxBorrow)
}

func unpackParams(p *wrappers.Packer) vault.Params {
	return vault.Params{
		DebtInterestRate:             unpackDecimal(p),
		CollateralRatio:              unpackDecimal(p),
		LiquidationThreshold:         unpackDecimal(p),
		LiquidationRatio:             unpackDecimal(p),
		LiquidationPenaltyExchange:   unpackDecimal(p),
		LiquidationPenaltyLiquidator: unpackDecimal(p),
		MaxBorrow:                    unpackDecimal(p),
	}
}

// MarshalVault encodes a vault.
func MarshalVault(v *vault.Vault) ([]byte, error) {
	p := wrappers.NewPacker(VaultSize)
	packVersion(p)
	p.PackByte(v.CollateralIndex)
	p.PackByte(v.SyntheticIndex)
	packDecimal(p, v.CollateralReserveBalance)
	packDecimal(p, v.MintAmount)
	packDecimal(p, v.AccumulatedInterestRate)
	packDecimal(p, v.AccumulatedInterest)
	packDecimal(p, v.PendingInterest)
	p.PackInt64(v.LastUpdate)
	p.PackBool(v.Halted)
	packParams(p, v.Params)
	return finish(p, VaultSize)
}

// UnmarshalVault decodes a vault.
func UnmarshalVault(b []byte) (*vault.Vault, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	v := &vault.Vault{
		CollateralIndex:          p.UnpackByte(),
		SyntheticIndex:           p.UnpackByte(),
		CollateralReserveBalance: unpackDecimal(p),
		MintAmount:               unpackDecimal(p),
		AccumulatedInterestRate:  unpackDecimal(p),
		AccumulatedInterest:      unpackDecimal(p),
		PendingInterest:          unpackDecimal(p),
		LastUpdate:               p.UnpackInt64(),
		Halted:                   p.UnpackBool(),
		Params:                   unpackParams(p),
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("vault: %w", p.Err)
	}
	return v, nil
}

// MarshalEntry encodes a vault entry.
func MarshalEntry(e *vault.Entry) ([]byte, error) {
	p := wrappers.NewPacker(EntrySize)
	packVersion(p)
	p.PackFixedBytes(e.Owner[:])
	p.PackByte(e.CollateralIndex)
	p.PackByte(e.SyntheticIndex)
	packDecimal(p, e.CollateralAmount)
	packDecimal(p, e.SyntheticAmount)
	packDecimal(p, e.LastAccumulatedInterestRate)
	return finish(p, EntrySize)
}

// UnmarshalEntry decodes a vault entry.
func UnmarshalEntry(b []byte) (*vault.Entry, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	e := &vault.Entry{
		Owner:                       unpackShortID(p),
		CollateralIndex:             p.UnpackByte(),
		SyntheticIndex:              p.UnpackByte(),
		CollateralAmount:            unpackDecimal(p),
		SyntheticAmount:             unpackDecimal(p),
		LastAccumulatedInterestRate: unpackDecimal(p),
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("vault entry: %w", p.Err)
	}
	return e, nil
}

// MarshalExchange encodes the exchange singleton.
func MarshalExchange(s *exchange.State) ([]byte, error) {
	p := wrappers.NewPacker(ExchangeSize)
	packVersion(p)
	p.PackFixedBytes(s.Admin[:])
	p.PackBool(s.Halted)
	p.PackByte(s.AccountVersion)
	packDecimal(p, s.Fee)
	packDecimal(p, s.SwapTaxRatio)
	packDecimal(p, s.SwapTaxReserve)
	p.PackInt(s.MaxDelay)
	packDecimal(p, s.HealthFactor)
	packDecimal(p, s.LiquidationRate)
	packDecimal(p, s.PenaltyToLiquidator)
	packDecimal(p, s.PenaltyToExchange)
	p.PackInt(s.LiquidationBuffer)
	p.PackLong(s.Pool.DebtShares)
	packDecimal(p, s.Pool.DebtInterestRate)
	packDecimal(p, s.Pool.AccumulatedDebtInterest)
	p.PackInt64(s.Pool.LastDebtAdjustment)
	p.PackInt(s.Staking.RoundLength)
	packDecimal(p, s.Staking.AmountPerRound)
	packRound(p, s.Staking.FinishedRound)
	packRound(p, s.Staking.CurrentRound)
	packRound(p, s.Staking.NextRound)
	return finish(p, ExchangeSize)
}

func packRound(p *wrappers.Packer, r staking.Round) {
	p.PackInt64(r.Start)
	p.PackLong(r.AllPoints)
	packDecimal(p, r.Amount)
}

func unpackRound(p *wrappers.Packer) staking.Round {
	return staking.Round{
		Start:     p.UnpackInt64(),
		AllPoints: p.UnpackLong(),
		Amount:    unpackDecimal(p),
	}
}

// UnmarshalExchange decodes the exchange singleton.
func UnmarshalExchange(b []byte) (*exchange.State, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	s := &exchange.State{
		Admin:               unpackShortID(p),
		Halted:              p.UnpackBool(),
		AccountVersion:      p.UnpackByte(),
		Fee:                 unpackDecimal(p),
		SwapTaxRatio:        unpackDecimal(p),
		SwapTaxReserve:      unpackDecimal(p),
		MaxDelay:            p.UnpackInt(),
		HealthFactor:        unpackDecimal(p),
		LiquidationRate:     unpackDecimal(p),
		PenaltyToLiquidator: unpackDecimal(p),
		PenaltyToExchange:   unpackDecimal(p),
		LiquidationBuffer:   p.UnpackInt(),
		Pool: debt.Pool{
			DebtShares:              p.UnpackLong(),
			DebtInterestRate:        unpackDecimal(p),
			AccumulatedDebtInterest: unpackDecimal(p),
			LastDebtAdjustment:      p.UnpackInt64(),
		},
		Staking: staking.Staking{
			RoundLength:    p.UnpackInt(),
			AmountPerRound: unpackDecimal(p),
			FinishedRound:  unpackRound(p),
			CurrentRound:   unpackRound(p),
			NextRound:      unpackRound(p),
		},
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("exchange: %w", p.Err)
	}
	return s, nil
}

// MarshalSwapline encodes a swapline.
func MarshalSwapline(l *swapline.Swapline) ([]byte, error) {
	p := wrappers.NewPacker(SwaplineSize)
	packVersion(p)
	p.PackByte(l.SyntheticIndex)
	p.PackByte(l.CollateralIndex)
	packDecimal(p, l.Fee)
	packDecimal(p, l.Balance)
	packDecimal(p, l.Limit)
	packDecimal(p, l.AccumulatedFee)
	p.PackBool(l.Halted)
	return finish(p, SwaplineSize)
}

// UnmarshalSwapline decodes a swapline.
func UnmarshalSwapline(b []byte) (*swapline.Swapline, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	l := &swapline.Swapline{
		SyntheticIndex:  p.UnpackByte(),
		CollateralIndex: p.UnpackByte(),
		Fee:             unpackDecimal(p),
		Balance:         unpackDecimal(p),
		Limit:           unpackDecimal(p),
		AccumulatedFee:  unpackDecimal(p),
		Halted:          p.UnpackBool(),
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("swapline: %w", p.Err)
	}
	return l, nil
}

// MarshalSettlement encodes a settlement.
func MarshalSettlement(st *assets.Settlement) ([]byte, error) {
	p := wrappers.NewPacker(SettlementSize)
	packVersion(p)
	p.PackByte(st.SyntheticIndex)
	p.PackFixedBytes(st.AssetID[:])
	packDecimal(p, st.Ratio)
	packDecimal(p, st.Reserve)
	p.PackInt64(st.SettledAt)
	return finish(p, SettlementSize)
}

// UnmarshalSettlement decodes a settlement.
func UnmarshalSettlement(b []byte) (*assets.Settlement, error) {
	p := wrappers.NewUnpacker(b)
	unpackVersion(p)
	st := &assets.Settlement{
		SyntheticIndex: p.UnpackByte(),
		AssetID:        unpackID(p),
		Ratio:          unpackDecimal(p),
		Reserve:        unpackDecimal(p),
		SettledAt:      p.UnpackInt64(),
	}
	p.Done()
	if p.Err != nil {
		return nil, fmt.Errorf("settlement: %w", p.Err)
	}
	return st, nil
}
