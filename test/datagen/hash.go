// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/liquid-staking/lsd/types"
)

func RandomHash() types.Bytes32 {
	var b32 types.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() types.Address {
	var addr types.Address

	rand.Read(addr[:])
	return addr
}

func RandAddresses(n int) []types.Address {
	addrs := make([]types.Address, 0, n)
	for range n {
		addrs = append(addrs, RandAddress())
	}
	return addrs
}
