// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand/v2"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

func RandUint64N(n uint64) uint64 {
	return mathrand.Uint64N(n) //#nosec G404
}

// RandBigInt returns a random positive amount below 1e27.
func RandBigInt() *big.Int {
	v := new(big.Int).SetUint64(mathrand.Uint64()) //#nosec G404
	v.Mul(v, big.NewInt(1e9))
	return v.Add(v, big.NewInt(1))
}
