// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package allocator walks the target registry in strict cyclic order.
//
// The cursor holds the 1-based index of the last returned target and is persisted, so
// consecutive calls across operations continue where the previous one stopped. Targets
// appended to the registry are picked up once the cursor passes the previous end.
// Selection does not look at target load or capacity.
package allocator

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/builtin/reverts"
	"github.com/liquid-staking/lsd/builtin/solidity"
	"github.com/liquid-staking/lsd/types"
)

var slotLastIndex = types.BytesToBytes32([]byte("delegation-last-index"))

var ErrEmptyRegistry = reverts.New("no delegation targets registered")

type Allocator struct {
	targets   *target.Service
	lastIndex *solidity.Uint256
}

func New(sctx *solidity.Context, targets *target.Service) *Allocator {
	return &Allocator{
		targets:   targets,
		lastIndex: solidity.NewUint256(sctx, slotLastIndex),
	}
}

// Next advances the cursor, wrapping to 1 past the end, and returns the target at it.
func (a *Allocator) Next() (types.Address, error) {
	n, err := a.targets.Len()
	if err != nil {
		return types.Address{}, err
	}
	if n == 0 {
		return types.Address{}, ErrEmptyRegistry
	}

	last, err := a.Cursor()
	if err != nil {
		return types.Address{}, err
	}

	next := uint64(1)
	if last < n {
		next = last + 1
	}
	a.lastIndex.Set(new(big.Int).SetUint64(next))

	return a.targets.At(next)
}

// Cursor returns the index of the last returned target, 0 before the first call.
func (a *Allocator) Cursor() (uint64, error) {
	last, err := a.lastIndex.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get allocator cursor")
	}
	return last.Uint64(), nil
}
