// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for the pool state database",
		EnvVar: "LSD_DATA_DIR",
	}
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to a YAML config file, flags take precedence",
		EnvVar: "LSD_CONFIG",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		Usage:  "log verbosity (0-9)",
		EnvVar: "LSD_VERBOSITY",
	}
	vmoduleFlag = cli.StringFlag{
		Name:   "vmodule",
		Usage:  "per-module verbosity: comma-separated list of <pattern>=<level> (e.g. state/*=5)",
		EnvVar: "LSD_VMODULE",
	}
	logFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Value:  log.FormatTerminal,
		Usage:  "log output format (terminal|json|logfmt)",
		EnvVar: "LSD_LOG_FORMAT",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		Usage:  "output logs in JSON format, shorthand for --log-format json",
		EnvVar: "LSD_JSON_LOGS",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  4096,
		Usage:  "number of committed storage slots kept in memory",
		EnvVar: "LSD_CACHE",
	}
	contractFlag = cli.StringFlag{
		Name:   "contract",
		Usage:  "address the pool state is stored under",
		EnvVar: "LSD_CONTRACT",
	}

	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8690",
		Usage:  "API service listening address",
		EnvVar: "LSD_API_ADDR",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
		EnvVar: "LSD_API_CORS",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		Usage:  "enables API requests logging",
		EnvVar: "LSD_ENABLE_API_LOGS",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Usage:  "admin service listening address, disabled when empty",
		EnvVar: "LSD_ADMIN_ADDR",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "LSD_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: "LSD_METRICS_ADDR",
	}

	fromFlag = cli.StringFlag{
		Name:   "from",
		Usage:  "address of the caller, checked against the pool owner",
		EnvVar: "LSD_FROM",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "owner address set by init",
	}
	targetFlag = cli.StringFlag{
		Name:  "target",
		Usage: "delegation target address",
	}
	totalStakedFlag = cli.StringFlag{
		Name:  "total-staked",
		Value: "0",
		Usage: "total amount staked on the target, decimal or 0x hex",
	}
	capacityFlag = cli.Uint64Flag{
		Name:  "capacity",
		Usage: "stake capacity of the target",
	}
	nodesFlag = cli.Uint64Flag{
		Name:  "nodes",
		Usage: "number of nodes run by the target",
	}
	apyFlag = cli.Uint64Flag{
		Name:  "apy",
		Usage: "annual yield of the target in basis points",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount, decimal or 0x hex",
	}
	epochFlag = cli.Uint64Flag{
		Name:   "epoch",
		Usage:  "current epoch",
		EnvVar: "LSD_EPOCH",
	}
	batchFlag = cli.Uint64Flag{
		Name:   "batch",
		Usage:  "max targets claimed per call, 0 claims all of them",
		EnvVar: "LSD_CLAIM_BATCH",
	}
	rewardFlag = cli.StringFlag{
		Name:   "reward",
		Usage:  "reward recorded for each claimed target, decimal or 0x hex",
		EnvVar: "LSD_CLAIM_REWARD",
	}
)

// commonFlags are accepted by every command.
func commonFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		dataDirFlag,
		configFlag,
		verbosityFlag,
		vmoduleFlag,
		logFormatFlag,
		jsonLogsFlag,
		cacheFlag,
		contractFlag,
	}, extra...)
}

func targetParamFlags(extra ...cli.Flag) []cli.Flag {
	return commonFlags(append([]cli.Flag{
		fromFlag,
		targetFlag,
		totalStakedFlag,
		capacityFlag,
		nodesFlag,
		apyFlag,
	}, extra...)...)
}
