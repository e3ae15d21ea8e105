// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/liquid-staking/lsd/types"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are RLP encoded at blake2b(key, basePos). A zero value clears the entry.
type Mapping[K Key, V any] struct {
	context *Context
	basePos types.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos types.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) types.Bytes32 {
	return types.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value of the key, or the zero value (nil for pointers) when absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Insert stores a value that is expected not to be present yet.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	return m.set(key, value)
}

// Update replaces an existing value.
func (m *Mapping[K, V]) Update(key K, value V) error {
	return m.set(key, value)
}

func (m *Mapping[K, V]) set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return encode(value)
	})
}

// encode RLP encodes v, an empty result for zero values.
func encode[V any](v V) ([]byte, error) {
	if rv := reflect.ValueOf(v); !rv.IsValid() || rv.IsZero() {
		return nil, nil
	}
	return rlp.EncodeToBytes(v)
}
