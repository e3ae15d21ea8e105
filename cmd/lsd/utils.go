// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"math/big"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/log"
	"github.com/liquid-staking/lsd/lvldb"
	"github.com/liquid-staking/lsd/types"
)

// logLevel is the root log level, adjustable through the admin API.
var logLevel log.LevelVar

func initLogger(ctx *cli.Context) error {
	format := ctx.String(logFormatFlag.Name)
	if ctx.Bool(jsonLogsFlag.Name) {
		format = log.FormatJSON
	}
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	handler, err := log.NewHandler(os.Stderr, log.HandlerConfig{
		Format:    format,
		Verbosity: ctx.Int(verbosityFlag.Name),
		Vmodule:   ctx.String(vmoduleFlag.Name),
		Color:     color && format == log.FormatTerminal,
		Level:     &logLevel,
	})
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func openStore(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir at '%v'", dataDir)
	}

	dir := filepath.Join(dataDir, "pool.db")
	db, err := lvldb.New(dir, lvldb.Options{CacheSize: 16, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, errors.Wrapf(err, "open pool database at '%v'", dir)
	}
	return db, nil
}

// parseAmount accepts a non-negative decimal or 0x prefixed hex amount up to 256 bits.
func parseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex("0x" + s[2:])
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", s)
	}
	return v.ToBig(), nil
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (types.Address, error) {
	value := ctx.String(flag.Name)
	if value == "" {
		return types.Address{}, errors.Errorf("missing --%s", flag.Name)
	}
	addr, err := types.ParseAddress(value)
	if err != nil {
		return types.Address{}, errors.Wrapf(err, "invalid --%s", flag.Name)
	}
	return addr, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.lsd")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.lsd")
		default:
			return filepath.Join(home, ".org.lsd")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
