// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/types"
)

const testConfig = `
owner: "0x00000000000000000000000000000000000000aa"
contract: "0x00000000000000000000000000000000000000bb"
cache: 128
api:
  addr: "0.0.0.0:9000"
  cors: "https://example.org"
metrics:
  addr: "0.0.0.0:9001"
claim:
  batch: 5
  reward: "0x64"
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "lsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range commonFlags(ownerFlag, apiAddrFlag, apiCorsFlag, metricsAddrFlag, batchFlag, rewardFlag) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestReadConfig(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, testConfig), config{Cache: 1})
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Cache)
	assert.Equal(t, "0.0.0.0:9000", cfg.API.Addr)
	assert.Equal(t, "https://example.org", cfg.API.CORS)
	assert.Equal(t, "0.0.0.0:9001", cfg.Metrics.Addr)
	assert.Equal(t, uint64(5), cfg.Claim.Batch)

	owner, err := cfg.owner()
	require.NoError(t, err)
	assert.Equal(t, types.MustParseAddress("0x00000000000000000000000000000000000000aa"), owner)

	contract, err := cfg.contract()
	require.NoError(t, err)
	assert.Equal(t, types.MustParseAddress("0x00000000000000000000000000000000000000bb"), contract)

	reward, err := cfg.reward()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), reward)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := readConfig(filepath.Join(t.TempDir(), "missing.yaml"), config{})
	assert.Error(t, err)

	_, err = readConfig(writeConfig(t, "cache: [1"), config{})
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newContext(t))
	require.NoError(t, err)

	assert.Equal(t, cacheFlag.Value, cfg.Cache)
	assert.Equal(t, apiAddrFlag.Value, cfg.API.Addr)
	assert.Equal(t, metricsAddrFlag.Value, cfg.Metrics.Addr)

	contract, err := cfg.contract()
	require.NoError(t, err)
	assert.Equal(t, defaultContract, contract)

	_, err = cfg.owner()
	assert.Error(t, err)

	reward, err := cfg.reward()
	require.NoError(t, err)
	assert.Equal(t, 0, reward.Sign())
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, testConfig)
	cfg, err := loadConfig(newContext(t,
		"--config", path,
		"--api-addr", "localhost:1",
		"--batch", "7",
	))
	require.NoError(t, err)

	assert.Equal(t, "localhost:1", cfg.API.Addr)
	assert.Equal(t, uint64(7), cfg.Claim.Batch)
	// untouched flags keep the file values
	assert.Equal(t, 128, cfg.Cache)
	assert.Equal(t, "0.0.0.0:9001", cfg.Metrics.Addr)
	assert.Equal(t, "0x64", cfg.Claim.Reward)
}

func TestConfigInvalidAddresses(t *testing.T) {
	cfg := config{Owner: "0x12", Contract: "not an address"}

	_, err := cfg.owner()
	assert.Error(t, err)
	_, err = cfg.contract()
	assert.Error(t, err)
}
