// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"

	"github.com/liquid-staking/lsd/types"
)

// ledger records claims and delegations without an external chain. Each claim yields
// the same configured reward.
type ledger struct {
	reward *big.Int

	claimed   map[types.Address]*big.Int
	delegated map[types.Address]*big.Int
}

func newLedger(reward *big.Int) *ledger {
	return &ledger{
		reward:    reward,
		claimed:   make(map[types.Address]*big.Int),
		delegated: make(map[types.Address]*big.Int),
	}
}

func (l *ledger) ClaimRewards(target types.Address, epoch uint64) (*big.Int, error) {
	amount := new(big.Int).Set(l.reward)
	l.claimed[target] = add(l.claimed[target], amount)
	logger.Info("rewards claimed", "target", target, "epoch", epoch, "amount", amount)
	return amount, nil
}

func (l *ledger) Delegate(target types.Address, amount *big.Int) error {
	l.delegated[target] = add(l.delegated[target], amount)
	logger.Info("rewards delegated", "target", target, "amount", amount)
	return nil
}

func add(sum, v *big.Int) *big.Int {
	if sum == nil {
		return new(big.Int).Set(v)
	}
	return sum.Add(sum, v)
}
