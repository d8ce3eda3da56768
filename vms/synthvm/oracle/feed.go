// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle consumes externally supplied price-feed snapshots. Prices
// are never computed here.
package oracle

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/decimal"
)

var (
	// ErrStalePrice indicates a feed was last updated before now - maxDelay.
	ErrStalePrice = errors.New("stale price")

	// ErrFeedNotFound indicates the snapshot has no entry for a feed.
	ErrFeedNotFound = errors.New("price feed not found")
)

// Status is the market status reported by the feed publisher.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusTrading
	StatusHalted
)

func (s Status) String() string {
	switch s {
	case StatusTrading:
		return "trading"
	case StatusHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Feed is a single price observation as published by the oracle.
type Feed struct {
	ID ids.ID
	// Price and Twap are carried at decimal.PriceScale.
	Price      decimal.Decimal
	Twap       decimal.Decimal
	Status     Status
	LastUpdate int64
}

// Check returns ErrStalePrice if the feed was last updated before
// now - maxDelay. An update exactly at the boundary is fresh.
func (f Feed) Check(now int64, maxDelay uint32) error {
	if f.LastUpdate < now-int64(maxDelay) {
		return fmt.Errorf("%w: feed %s updated at %d, now %d, max delay %d",
			ErrStalePrice, f.ID, f.LastUpdate, now, maxDelay)
	}
	return nil
}

// Tradable reports whether assets priced by this feed may be acquired.
func (f Feed) Tradable() bool {
	return f.Status == StatusTrading
}

// Snapshot is the set of feeds supplied with one operation.
type Snapshot struct {
	feeds map[ids.ID]Feed
}

// NewSnapshot returns a snapshot holding feeds. Prices are normalized to
// decimal.PriceScale.
func NewSnapshot(feeds ...Feed) (*Snapshot, error) {
	s := &Snapshot{feeds: make(map[ids.ID]Feed, len(feeds))}
	for _, f := range feeds {
		if err := s.Put(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Put adds or replaces a feed.
func (s *Snapshot) Put(f Feed) error {
	price, err := f.Price.ToScale(decimal.PriceScale)
	if err != nil {
		return fmt.Errorf("feed %s price: %w", f.ID, err)
	}
	twap, err := f.Twap.ToScale(decimal.PriceScale)
	if err != nil {
		return fmt.Errorf("feed %s twap: %w", f.ID, err)
	}
	f.Price, f.Twap = price, twap
	if s.feeds == nil {
		s.feeds = make(map[ids.ID]Feed)
	}
	s.feeds[f.ID] = f
	return nil
}

// Get returns the feed with the given id.
func (s *Snapshot) Get(id ids.ID) (Feed, error) {
	if s == nil {
		return Feed{}, fmt.Errorf("%w: %s", ErrFeedNotFound, id)
	}
	f, ok := s.feeds[id]
	if !ok {
		return Feed{}, fmt.Errorf("%w: %s", ErrFeedNotFound, id)
	}
	return f, nil
}

// Fresh returns the feed with the given id after checking its staleness.
func (s *Snapshot) Fresh(id ids.ID, now int64, maxDelay uint32) (Feed, error) {
	f, err := s.Get(id)
	if err != nil {
		return Feed{}, err
	}
	return f, f.Check(now, maxDelay)
}

// Len returns the number of feeds in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.feeds)
}
