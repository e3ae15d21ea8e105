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

// Array is an append-only, 1-based list of values.
// The length lives at pos, element i at blake2b(i, pos).
type Array[V any] struct {
	length *Uint256
	items  *Mapping[types.Bytes32, V]
}

func NewArray[V any](context *Context, pos types.Bytes32) *Array[V] {
	return &Array[V]{
		length: NewUint256(context, pos),
		items:  NewMapping[types.Bytes32, V](context, pos),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Get returns the element at the 1-based index.
func (a *Array[V]) Get(index uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if index == 0 || index > n {
		return value, errors.Errorf("index %d out of range [1, %d]", index, n)
	}
	return a.items.Get(types.Uint64ToBytes32(index))
}

// Push appends value and returns its index.
func (a *Array[V]) Push(value V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	n++
	if err := a.items.Insert(types.Uint64ToBytes32(n), value); err != nil {
		return 0, err
	}
	a.length.Set(new(big.Int).SetUint64(n))
	return n, nil
}

// All returns every element in insertion order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]V, 0, n)
	for i := uint64(1); i <= n; i++ {
		v, err := a.items.Get(types.Uint64ToBytes32(i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
