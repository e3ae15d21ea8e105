// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/liquid-staking/lsd/types"
)

// defaultContract is where the pool state lives unless configured otherwise.
var defaultContract = types.BytesToAddress([]byte("LiquidStaking"))

type apiConfig struct {
	Addr string `yaml:"addr"`
	CORS string `yaml:"cors"`
}

type metricsConfig struct {
	Addr string `yaml:"addr"`
}

type claimConfig struct {
	Batch  uint64 `yaml:"batch"`
	Reward string `yaml:"reward"`
}

// config is the YAML file layout. Flags that are set explicitly override it.
type config struct {
	Owner    string        `yaml:"owner"`
	Contract string        `yaml:"contract"`
	Cache    int           `yaml:"cache"`
	API      apiConfig     `yaml:"api"`
	Metrics  metricsConfig `yaml:"metrics"`
	Claim    claimConfig   `yaml:"claim"`
}

// readConfig parses the YAML file at path on top of base.
func readConfig(path string, base config) (config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return config{}, errors.Wrap(err, "read config")
	}
	cfg := base
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return config{}, errors.Wrapf(err, "parse config %v", path)
	}
	return cfg, nil
}

// loadConfig merges flag defaults, the optional config file and explicitly set flags.
func loadConfig(ctx *cli.Context) (config, error) {
	cfg := config{
		Cache:   ctx.Int(cacheFlag.Name),
		API:     apiConfig{Addr: ctx.String(apiAddrFlag.Name), CORS: ctx.String(apiCorsFlag.Name)},
		Metrics: metricsConfig{Addr: ctx.String(metricsAddrFlag.Name)},
		Claim:   claimConfig{Batch: ctx.Uint64(batchFlag.Name), Reward: ctx.String(rewardFlag.Name)},
	}
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = readConfig(path, cfg); err != nil {
			return config{}, err
		}
	}

	overlay := func(name string, apply func()) {
		if ctx.IsSet(name) {
			apply()
		}
	}
	overlay(ownerFlag.Name, func() { cfg.Owner = ctx.String(ownerFlag.Name) })
	overlay(contractFlag.Name, func() { cfg.Contract = ctx.String(contractFlag.Name) })
	overlay(cacheFlag.Name, func() { cfg.Cache = ctx.Int(cacheFlag.Name) })
	overlay(apiAddrFlag.Name, func() { cfg.API.Addr = ctx.String(apiAddrFlag.Name) })
	overlay(apiCorsFlag.Name, func() { cfg.API.CORS = ctx.String(apiCorsFlag.Name) })
	overlay(metricsAddrFlag.Name, func() { cfg.Metrics.Addr = ctx.String(metricsAddrFlag.Name) })
	overlay(batchFlag.Name, func() { cfg.Claim.Batch = ctx.Uint64(batchFlag.Name) })
	overlay(rewardFlag.Name, func() { cfg.Claim.Reward = ctx.String(rewardFlag.Name) })
	return cfg, nil
}

func (c *config) contract() (types.Address, error) {
	if c.Contract == "" {
		return defaultContract, nil
	}
	addr, err := types.ParseAddress(c.Contract)
	if err != nil {
		return types.Address{}, errors.Wrap(err, "invalid contract address")
	}
	return addr, nil
}

func (c *config) owner() (types.Address, error) {
	if c.Owner == "" {
		return types.Address{}, errors.New("owner not configured")
	}
	addr, err := types.ParseAddress(c.Owner)
	if err != nil {
		return types.Address{}, errors.Wrap(err, "invalid owner address")
	}
	return addr, nil
}

func (c *config) reward() (*big.Int, error) {
	if c.Claim.Reward == "" {
		return new(big.Int), nil
	}
	return parseAmount(c.Claim.Reward)
}
