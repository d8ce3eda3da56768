// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/decimal"
	"github.com/luxfi/synthvm/vms/synthvm/state"
)

func TestGenesisCommand(t *testing.T) {
	require := require.New(t)

	admin := ids.GenerateTestShortID()
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	contents := fmt.Sprintf("admin: %s\nfee: 500\nmaxDelay: 30\n", admin)
	require.NoError(os.WriteFile(path, []byte(contents), 0o600))

	var out bytes.Buffer
	c := Command(log.NoLog{})
	c.SetOut(&out)
	c.SetArgs([]string{
		"--config", path,
		"--timestamp", "1000",
	})
	require.NoError(c.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(lines, 2)

	stateHex, ok := strings.CutPrefix(lines[0], "state: 0x")
	require.True(ok)
	stateBytes, err := hex.DecodeString(stateHex)
	require.NoError(err)
	s, err := state.UnmarshalExchange(stateBytes)
	require.NoError(err)
	require.Equal(admin, s.Admin)
	require.Equal(decimal.Percent(500), s.Fee)
	require.Equal(uint32(30), s.MaxDelay)
	require.Equal(int64(1000), s.Pool.LastDebtAdjustment)

	listHex, ok := strings.CutPrefix(lines[1], "assets: 0x")
	require.True(ok)
	listBytes, err := hex.DecodeString(listHex)
	require.NoError(err)
	list, err := state.UnmarshalList(listBytes)
	require.NoError(err)
	require.Equal(uint8(1), list.HeadSynthetics)
	require.Zero(list.HeadCollaterals)
	require.True(list.Synthetics[assets.XUSDIndex].Supply.IsZero())
}

func TestGenesisCommandErrors(t *testing.T) {
	require := require.New(t)

	c := Command(log.NoLog{})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(nil)
	require.ErrorIs(c.Execute(), errMissingConfig)

	// the admin is mandatory
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(os.WriteFile(path, []byte("fee: 500\n"), 0o600))
	c = Command(log.NoLog{})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--config", path})
	require.Error(c.Execute())
}
