// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package target

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquid-staking/lsd/builtin/solidity"
	"github.com/liquid-staking/lsd/lvldb"
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/test/datagen"
	"github.com/liquid-staking/lsd/types"
)

func newTestService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(datagen.RandAddress(), state.New(db)))
}

func newParams() Params {
	return Params{
		TotalStaked: datagen.RandBigInt(),
		Capacity:    datagen.RandUint64N(1_000_000) + 1,
		NodeCount:   datagen.RandUint64N(100),
		APY:         datagen.RandUint64N(10_000),
	}
}

func TestWhitelist(t *testing.T) {
	svc := newTestService(t)
	addr := datagen.RandAddress()
	params := newParams()

	require.NoError(t, svc.Whitelist(addr, params))

	target, err := svc.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, addr, target.Address)
	assert.Equal(t, params.TotalStaked, target.TotalStaked)
	assert.Equal(t, params.Capacity, target.Capacity)
	assert.Equal(t, params.NodeCount, target.NodeCount)
	assert.Equal(t, params.APY, target.APY)
	assert.Equal(t, 0, target.StakedFromPool.Sign())
	assert.Equal(t, 0, target.UndelegatedFromPool.Sign())

	n, err := svc.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	at, err := svc.At(1)
	require.NoError(t, err)
	assert.Equal(t, addr, at)
}

func TestWhitelist_AlreadyRegistered(t *testing.T) {
	svc := newTestService(t)
	addr := datagen.RandAddress()

	require.NoError(t, svc.Whitelist(addr, newParams()))
	assert.ErrorIs(t, svc.Whitelist(addr, newParams()), ErrAlreadyRegistered)

	n, err := svc.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n, "registry size unchanged")
}

func TestWhitelist_InvalidParams(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		staked *big.Int
	}{
		{"nil total staked", nil},
		{"negative total staked", big.NewInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := newParams()
			params.TotalStaked = tt.staked
			assert.ErrorIs(t, svc.Whitelist(datagen.RandAddress(), params), ErrInvalidAmount)
		})
	}

	params := newParams()
	params.TotalStaked = big.NewInt(0)
	assert.NoError(t, svc.Whitelist(datagen.RandAddress(), params), "zero stake is allowed")
}

func TestUpdate_PreservesPoolCounters(t *testing.T) {
	svc := newTestService(t)
	addr := datagen.RandAddress()

	require.NoError(t, svc.Whitelist(addr, newParams()))
	require.NoError(t, svc.AddStakedFromPool(addr, big.NewInt(1000)))
	require.NoError(t, svc.AddUndelegatedFromPool(addr, big.NewInt(300)))

	params := newParams()
	require.NoError(t, svc.Update(addr, params))

	target, err := svc.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, params.TotalStaked, target.TotalStaked)
	assert.Equal(t, params.Capacity, target.Capacity)
	assert.Equal(t, params.NodeCount, target.NodeCount)
	assert.Equal(t, params.APY, target.APY)
	assert.Equal(t, big.NewInt(1000), target.StakedFromPool)
	assert.Equal(t, big.NewInt(300), target.UndelegatedFromPool)
	assert.Equal(t, big.NewInt(700), target.NetFromPool())
}

func TestUpdate_NotRegistered(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.Update(datagen.RandAddress(), newParams()), ErrNotRegistered)

	_, err := svc.Get(datagen.RandAddress())
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestPoolCounters_InvalidAmount(t *testing.T) {
	svc := newTestService(t)
	addr := datagen.RandAddress()
	require.NoError(t, svc.Whitelist(addr, newParams()))

	assert.ErrorIs(t, svc.AddStakedFromPool(addr, big.NewInt(0)), ErrInvalidAmount)
	assert.ErrorIs(t, svc.AddUndelegatedFromPool(addr, big.NewInt(-5)), ErrInvalidAmount)
	assert.ErrorIs(t, svc.AddStakedFromPool(addr, nil), ErrInvalidAmount)
	assert.ErrorIs(t, svc.AddStakedFromPool(datagen.RandAddress(), big.NewInt(1)), ErrNotRegistered)
}

func TestAddresses_InsertionOrder(t *testing.T) {
	svc := newTestService(t)
	addrs := datagen.RandAddresses(5)
	for _, addr := range addrs {
		require.NoError(t, svc.Whitelist(addr, newParams()))
	}

	got, err := svc.Addresses()
	require.NoError(t, err)
	assert.Equal(t, addrs, got)

	for _, addr := range addrs {
		ok, err := svc.Exists(addr)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := svc.Exists(datagen.RandAddress())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.At(uint64(len(addrs) + 1))
	assert.Error(t, err)
}

func TestEmptyRegistry(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Addresses()
	require.NoError(t, err)
	assert.Empty(t, got)

	var zero types.Address
	at, err := svc.At(1)
	assert.Error(t, err)
	assert.Equal(t, zero, at)
}

func TestParamsRoundTripFuzz(t *testing.T) {
	svc := newTestService(t)
	f := fuzz.New().NilChance(0).Funcs(func(b *big.Int, c fuzz.Continue) {
		b.SetUint64(c.Uint64())
		b.Lsh(b, uint(c.Intn(128)))
	})

	for range 50 {
		var (
			addr   types.Address
			params Params
		)
		f.Fuzz(&addr)
		f.Fuzz(&params)

		if exists, err := svc.Exists(addr); err == nil && exists {
			continue
		}
		require.NoError(t, svc.Whitelist(addr, params))

		got, err := svc.Get(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, got.Address)
		assert.Equal(t, 0, params.TotalStaked.Cmp(got.TotalStaked))
		assert.Equal(t, params.Capacity, got.Capacity)
		assert.Equal(t, params.NodeCount, got.NodeCount)
		assert.Equal(t, params.APY, got.APY)
		assert.Equal(t, 0, got.NetFromPool().Sign())
	}
}
