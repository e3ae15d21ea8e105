// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package target

import (
	"math/big"

	"github.com/liquid-staking/lsd/builtin/reverts"
	"github.com/liquid-staking/lsd/types"
)

var (
	ErrAlreadyRegistered = reverts.New("target already registered")
	ErrNotRegistered     = reverts.New("target not registered")
	ErrInvalidAmount     = reverts.New("invalid amount")
)

// Target is a delegation destination of the pool.
type Target struct {
	Address     types.Address
	TotalStaked *big.Int
	Capacity    uint64 // upper bound on stake
	NodeCount   uint64
	APY         uint64 // basis points

	// amounts moved by the pool, never touched by parameter updates
	StakedFromPool      *big.Int
	UndelegatedFromPool *big.Int
}

// Params are the owner supplied, replaceable fields of a target.
type Params struct {
	TotalStaked *big.Int
	Capacity    uint64
	NodeCount   uint64
	APY         uint64
}

func (p *Params) Validate() error {
	if p.TotalStaked == nil || p.TotalStaked.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NetFromPool returns staked minus undelegated pool amounts.
func (t *Target) NetFromPool() *big.Int {
	return new(big.Int).Sub(t.StakedFromPool, t.UndelegatedFromPool)
}

func (t *Target) apply(p Params) {
	t.TotalStaked = new(big.Int).Set(p.TotalStaked)
	t.Capacity = p.Capacity
	t.NodeCount = p.NodeCount
	t.APY = p.APY
}
