// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking pays a fixed reward per round to debt-share holders. An
// account earns points equal to the shares it held through a round and
// claims its part of the round's reward once the round has finished.
//
// Three rounds are tracked at any time: the finished round that can be
// claimed, the current round that is accruing, and the next round whose
// points follow every mint and burn.
package staking

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/synthvm/utils/math"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

// RewardScale is the scale of staking rewards.
const RewardScale uint8 = 6

var (
	ErrNoRewards          = errors.New("no staking rewards to withdraw")
	ErrInvalidRoundLength = errors.New("staking round length must be positive")
)

// Round is one staking period.
type Round struct {
	Start int64
	// AllPoints is the sum of the points of every account in the round.
	AllPoints uint64
	Amount    decimal.Decimal
}

// Staking is the exchange-wide round schedule.
type Staking struct {
	// RoundLength is in seconds.
	RoundLength    uint32
	AmountPerRound decimal.Decimal
	FinishedRound  Round
	CurrentRound   Round
	NextRound      Round
}

// New starts the schedule at now. The first reward is paid for the round
// after the current one.
func New(roundLength uint32, amountPerRound decimal.Decimal, now int64) (Staking, error) {
	if roundLength == 0 {
		return Staking{}, ErrInvalidRoundLength
	}
	amountPerRound, err := amountPerRound.ToScale(RewardScale)
	if err != nil {
		return Staking{}, err
	}
	zero := decimal.Zero(RewardScale)
	return Staking{
		RoundLength:    roundLength,
		AmountPerRound: amountPerRound,
		FinishedRound:  Round{Amount: zero},
		CurrentRound:   Round{Start: now, Amount: zero},
		NextRound: Round{
			Start:  now + int64(roundLength),
			Amount: amountPerRound,
		},
	}, nil
}

// Advance rolls the rounds forward so that NextRound starts after now.
// Rounds that open while nobody traded see debtShares as their points.
func (s *Staking) Advance(now int64, debtShares uint64) {
	if now <= s.NextRound.Start {
		return
	}
	length := int64(s.RoundLength)
	elapsed := (now - s.NextRound.Start + length - 1) / length
	fresh := func(start int64) Round {
		return Round{
			Start:     start,
			AllPoints: debtShares,
			Amount:    s.AmountPerRound,
		}
	}

	start := s.NextRound.Start
	switch elapsed {
	case 1:
		s.FinishedRound = s.CurrentRound
		s.CurrentRound = s.NextRound
		s.NextRound = fresh(start + length)
	case 2:
		s.FinishedRound = s.NextRound
		s.CurrentRound = fresh(start + length)
		s.NextRound = fresh(start + 2*length)
	default:
		s.FinishedRound = fresh(start + (elapsed-2)*length)
		s.CurrentRound = fresh(start + (elapsed-1)*length)
		s.NextRound = fresh(start + elapsed*length)
	}
}

// Minted records that an account now holds accountShares of a pool of
// totalShares after a mint.
func (s *Staking) Minted(u *Account, accountShares, totalShares uint64) {
	u.NextRoundPoints = accountShares
	s.NextRound.AllPoints = totalShares
}

// Burned records that an account retired burned shares and now holds
// accountShares of a pool of totalShares. The current round loses the
// burned points the account had earned in it.
func (s *Staking) Burned(u *Account, burned, accountShares, totalShares uint64) {
	lost := min(burned, u.CurrentRoundPoints)
	u.CurrentRoundPoints -= lost
	if s.CurrentRound.AllPoints >= lost {
		s.CurrentRound.AllPoints -= lost
	} else {
		s.CurrentRound.AllPoints = 0
	}
	s.Minted(u, accountShares, totalShares)
}

// Account is the staking position of one exchange account.
type Account struct {
	AmountToClaim       decimal.Decimal
	FinishedRoundPoints uint64
	CurrentRoundPoints  uint64
	NextRoundPoints     uint64
	// LastUpdate is just after the start of the current round the account
	// was last synced to.
	LastUpdate int64
}

// NewAccount returns a position without points.
func NewAccount() Account {
	return Account{AmountToClaim: decimal.Zero(RewardScale)}
}

// Sync moves the account's points to the rounds of s. debtShares are the
// shares the account held since it was last synced.
func (u *Account) Sync(s *Staking, debtShares uint64) {
	if u.LastUpdate >= s.CurrentRound.Start {
		return
	}
	if u.LastUpdate < s.FinishedRound.Start {
		u.FinishedRoundPoints = debtShares
		u.CurrentRoundPoints = debtShares
		u.NextRoundPoints = debtShares
	} else {
		u.FinishedRoundPoints = u.CurrentRoundPoints
		u.CurrentRoundPoints = u.NextRoundPoints
		u.NextRoundPoints = debtShares
	}
	u.LastUpdate = s.CurrentRound.Start + 1
}

// Claim credits the account's part of the finished round and returns it.
// The points are spent even when the reward truncates to zero.
func (u *Account) Claim(s *Staking) (decimal.Decimal, error) {
	zero := decimal.Zero(RewardScale)
	if u.FinishedRoundPoints == 0 || s.FinishedRound.AllPoints == 0 {
		return zero, nil
	}
	amount, err := s.FinishedRound.Amount.ToScale(RewardScale)
	if err != nil {
		return zero, err
	}
	raw, err := math.MulDiv(&amount.Value, uint256.NewInt(u.FinishedRoundPoints), uint256.NewInt(s.FinishedRound.AllPoints))
	if err != nil {
		return zero, fmt.Errorf("%w: %w", decimal.ErrArithmeticOverflow, err)
	}
	reward, err := decimal.FromUint256(raw, RewardScale)
	if err != nil {
		return zero, err
	}
	total, err := u.AmountToClaim.Add(reward)
	if err != nil {
		return zero, err
	}
	u.AmountToClaim = total
	u.FinishedRoundPoints = 0
	return reward, nil
}

// Withdraw returns the claimed rewards and empties the balance.
func (u *Account) Withdraw() (decimal.Decimal, error) {
	if u.AmountToClaim.IsZero() {
		return decimal.Decimal{}, ErrNoRewards
	}
	amount := u.AmountToClaim
	u.AmountToClaim = decimal.Zero(RewardScale)
	return amount, nil
}
