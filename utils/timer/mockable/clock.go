// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"sync"
	"time"
)

// Clock supplies the unix timestamp handed to every state transition. The
// zero value follows wall time; Set and Advance pin it. It is safe for
// concurrent use.
type Clock struct {
	mu     sync.RWMutex
	pinned bool
	now    time.Time
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = true
	c.now = t
}

// Advance moves a pinned clock forward by d. An unpinned clock is pinned to
// the current wall time first.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pinned {
		c.pinned = true
		c.now = time.Now()
	}
	c.now = c.now.Add(d)
}

// Sync releases a pinned clock back to wall time.
func (c *Clock) Sync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = false
}

func (c *Clock) Time() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.pinned {
		return time.Now()
	}
	return c.now
}

// Unix returns the unix timestamp in seconds. Times before the epoch read as
// zero.
func (c *Clock) Unix() int64 {
	return max(c.Time().Unix(), 0)
}
