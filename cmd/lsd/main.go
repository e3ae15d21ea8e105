// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/api"
	"github.com/liquid-staking/lsd/api/admin"
	"github.com/liquid-staking/lsd/builtin/liquidstaking"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/log"
	"github.com/liquid-staking/lsd/metrics"
	"github.com/liquid-staking/lsd/types"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "lsd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "lsd",
		Usage:   "Liquid staking delegation pool manager",
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "set the pool owner and activate the pool",
				Flags:  commonFlags(ownerFlag),
				Action: initAction,
			},
			{
				Name:  "whitelist",
				Usage: "register a delegation target",
				Flags: targetParamFlags(),
				Action: targetAction(func(ls *liquidstaking.LiquidStaking, addr types.Address, params target.Params) error {
					return ls.WhitelistTarget(addr, params)
				}),
			},
			{
				Name:  "update",
				Usage: "replace the parameters of a registered target",
				Flags: targetParamFlags(),
				Action: targetAction(func(ls *liquidstaking.LiquidStaking, addr types.Address, params target.Params) error {
					return ls.UpdateTargetParams(addr, params)
				}),
			},
			{
				Name:  "record-delegation",
				Usage: "record pool stake moved to a target",
				Flags: commonFlags(fromFlag, targetFlag, amountFlag),
				Action: recordAction(func(ls *liquidstaking.LiquidStaking, addr types.Address, amount *big.Int) error {
					return ls.RecordDelegation(addr, amount)
				}),
			},
			{
				Name:  "record-undelegation",
				Usage: "record pool stake withdrawn from a target",
				Flags: commonFlags(fromFlag, targetFlag, amountFlag),
				Action: recordAction(func(ls *liquidstaking.LiquidStaking, addr types.Address, amount *big.Int) error {
					return ls.RecordUndelegation(addr, amount)
				}),
			},
			{
				Name:   "next",
				Usage:  "advance the round-robin cursor and print the selected target",
				Flags:  commonFlags(),
				Action: nextAction,
			},
			{
				Name:   "claim",
				Usage:  "claim rewards from the targets for an epoch",
				Flags:  commonFlags(epochFlag, batchFlag, rewardFlag),
				Action: claimAction,
			},
			{
				Name:   "delegate",
				Usage:  "delegate the rewards of a finished claim cycle",
				Flags:  commonFlags(),
				Action: delegateAction,
			},
			{
				Name:   "reserve",
				Usage:  "set the stored reserve",
				Flags:  commonFlags(fromFlag, amountFlag),
				Action: reserveAction,
			},
			{
				Name:      "state",
				Usage:     "activate or deactivate the pool",
				ArgsUsage: "on|off",
				Flags:     commonFlags(fromFlag),
				Action:    stateAction,
			},
			{
				Name:   "show",
				Usage:  "print the pool state",
				Flags:  commonFlags(),
				Action: showAction,
			},
			{
				Name:  "serve",
				Usage: "serve the read-only pool API",
				Flags: commonFlags(
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					adminAddrFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				),
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	return withSession(ctx, func(s *session, cfg config) error {
		var apiLogs atomic.Bool
		apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

		handler := api.New(s.stater, s.contract, api.Options{
			AllowedOrigins:  cfg.API.CORS,
			EnableReqLogger: &apiLogs,
			EnableMetrics:   enableMetrics,
		})
		apiURL, srvCloser, err := startServer(cfg.API.Addr, handler)
		if err != nil {
			return errors.Wrap(err, "api server")
		}
		defer func() { logger.Info("stopping API server..."); srvCloser() }()

		if enableMetrics {
			metricsURL, closeFunc, err := startMetricsServer(cfg.Metrics.Addr)
			if err != nil {
				return err
			}
			defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
			logger.Info("metrics server started", "url", metricsURL)
		}

		if addr := ctx.String(adminAddrFlag.Name); addr != "" {
			adminURL, closeFunc, err := startServer(addr, admin.New(&logLevel, &apiLogs))
			if err != nil {
				return errors.Wrap(err, "admin server")
			}
			defer func() { logger.Info("stopping admin server..."); closeFunc() }()
			logger.Info("admin server started", "url", adminURL+"/admin")
		}

		logger.Info("API server started", "url", apiURL, "contract", s.contract)
		<-handleExitSignal().Done()
		return nil
	})
}
