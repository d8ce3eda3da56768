// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSetAdvance(t *testing.T) {
	require := require.New(t)

	var c Clock
	c.Set(time.Unix(1_000, 0))
	require.Equal(int64(1_000), c.Unix())

	c.Advance(time.Minute)
	require.Equal(int64(1_060), c.Unix())

	c.Set(time.Unix(-5, 0))
	require.Zero(c.Unix())
}

func TestClockSync(t *testing.T) {
	require := require.New(t)

	var c Clock
	c.Set(time.Unix(1, 0))
	c.Sync()
	require.Greater(c.Unix(), int64(1))
}
