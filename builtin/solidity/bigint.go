// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/types"
)

// BigInt stores a non-negative amount of any size RLP encoded at a fixed slot.
// Unlike Uint256 it never truncates.
type BigInt struct {
	raw *Raw[*big.Int]
}

func NewBigInt(context *Context, pos types.Bytes32) *BigInt {
	return &BigInt{raw: NewRaw[*big.Int](context, pos)}
}

// Get returns the stored amount, zero when unset.
func (b *BigInt) Get() (*big.Int, error) {
	v, err := b.raw.Get()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return new(big.Int), nil
	}
	return v, nil
}

// Set stores value; nil and zero clear the slot.
func (b *BigInt) Set(value *big.Int) error {
	if value != nil && value.Sign() < 0 {
		return errors.New("negative amount")
	}
	if value == nil || value.Sign() == 0 {
		return b.raw.Upsert(nil)
	}
	return b.raw.Upsert(value)
}

func (b *BigInt) Add(value *big.Int) error {
	v, err := b.Get()
	if err != nil {
		return err
	}
	return b.Set(v.Add(v, value))
}
