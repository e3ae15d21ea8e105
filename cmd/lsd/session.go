// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/builtin/liquidstaking"
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/types"
)

var (
	errNotOwner           = errors.New("caller is not the pool owner")
	errNotInitialized     = errors.New("pool not initialized, run init first")
	errAlreadyInitialized = errors.New("pool already initialized")
)

// session runs one operation per state and commits its writes in a single batch.
type session struct {
	stater   *state.Stater
	contract types.Address
}

func (s *session) contractAt() *liquidstaking.LiquidStaking {
	return liquidstaking.New(s.contract, s.stater.NewState(), nil)
}

func (s *session) run(op func(ls *liquidstaking.LiquidStaking) error) error {
	st := s.stater.NewState()
	if err := op(liquidstaking.New(s.contract, st, nil)); err != nil {
		return err
	}

	stage := st.Stage()
	hash := stage.Hash()
	if err := stage.Commit(); err != nil {
		return err
	}
	logger.Debug("state committed", "changes", stage.Len(), "hash", hash)
	return nil
}

// runAsOwner is run for operations restricted to the pool owner.
func (s *session) runAsOwner(from types.Address, op func(ls *liquidstaking.LiquidStaking) error) error {
	return s.run(func(ls *liquidstaking.LiquidStaking) error {
		owner, err := ls.Owner()
		if err != nil {
			return err
		}
		if owner.IsZero() {
			return errNotInitialized
		}
		if owner != from {
			return errNotOwner
		}
		return op(ls)
	})
}

// withSession sets up logging, config and the store around fn.
func withSession(ctx *cli.Context, fn func(s *session, cfg config) error) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	contract, err := cfg.contract()
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Debug("closing pool database..."); db.Close() }()

	stater, err := state.NewStater(db, cfg.Cache)
	if err != nil {
		return err
	}
	return fn(&session{stater: stater, contract: contract}, cfg)
}
