// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package liquidstaking implements the delegation side of a liquid staking pool: a registry
// of delegation targets walked in round-robin order, and the reward claim cycle gated by
// the claim status machine.
//
// Every mutating operation runs against a state checkpoint and is reverted as a whole
// when it fails. Callers are expected to serialize operations.
package liquidstaking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/builtin/liquidstaking/allocator"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/claim"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/builtin/reverts"
	"github.com/liquid-staking/lsd/builtin/solidity"
	"github.com/liquid-staking/lsd/log"
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/types"
)

var logger = log.WithContext("pkg", "liquidstaking")

var (
	slotReserve = types.BytesToBytes32([]byte("virtual-reserve"))
	slotRewards = types.BytesToBytes32([]byte("claimed-rewards"))
	slotActive  = types.BytesToBytes32([]byte("contract-active"))
	slotOwner   = types.BytesToBytes32([]byte("owner"))
)

var (
	ErrInactive = reverts.New("contract is inactive")

	ErrAlreadyRegistered = target.ErrAlreadyRegistered
	ErrNotRegistered     = target.ErrNotRegistered
	ErrInvalidAmount     = target.ErrInvalidAmount
	ErrEmptyRegistry     = allocator.ErrEmptyRegistry
	ErrInvalidDraftState = claim.ErrInvalidDraftState
	ErrCycleNotClosed    = claim.ErrCycleNotClosed
	ErrEpochNotAdvanced  = claim.ErrEpochNotAdvanced
	ErrNotPending        = claim.ErrNotPending
	ErrNotFinished       = claim.ErrNotFinished
)

// ReserveOracle reads the pool-wide reserve snapshotted when a claim cycle starts.
type ReserveOracle interface {
	Reserve() (*big.Int, error)
}

// RewardClaimer claims the rewards accrued by the pool on a target for an epoch.
type RewardClaimer interface {
	ClaimRewards(target types.Address, epoch uint64) (*big.Int, error)
}

// Redelegator delegates claimed rewards to a target.
type Redelegator interface {
	Delegate(target types.Address, amount *big.Int) error
}

// LiquidStaking binds the registry, allocator and claim services to one contract address.
type LiquidStaking struct {
	state  *state.State
	oracle ReserveOracle

	targets   *target.Service
	allocator *allocator.Allocator
	claims    *claim.Service

	reserve *solidity.BigInt
	rewards *solidity.BigInt
	active  *solidity.Raw[bool]
	owner   *solidity.Address
}

// New creates the contract at addr. With a nil oracle the stored reserve is used.
func New(addr types.Address, st *state.State, oracle ReserveOracle) *LiquidStaking {
	sctx := solidity.NewContext(addr, st)
	targets := target.New(sctx)

	ls := &LiquidStaking{
		state:     st,
		targets:   targets,
		allocator: allocator.New(sctx, targets),
		claims:    claim.New(sctx),
		reserve:   solidity.NewBigInt(sctx, slotReserve),
		rewards:   solidity.NewBigInt(sctx, slotRewards),
		active:    solidity.NewRaw[bool](sctx, slotActive),
		owner:     solidity.NewAddress(sctx, slotOwner),
	}
	if oracle == nil {
		oracle = ls
	}
	ls.oracle = oracle
	return ls
}

// atomic runs fn under a checkpoint, reverting every write of fn if it fails.
// On success the checkpoint is folded so a long-lived state does not grow a level per call.
func (ls *LiquidStaking) atomic(fn func() error) error {
	checkpoint := ls.state.NewCheckpoint()
	if err := fn(); err != nil {
		ls.state.RevertTo(checkpoint)
		return err
	}
	ls.state.DiscardCheckpoint(checkpoint)
	return nil
}

//
// Registry
//

// WhitelistTarget registers a new delegation target.
func (ls *LiquidStaking) WhitelistTarget(addr types.Address, params target.Params) error {
	err := ls.atomic(func() error {
		if err := ls.targets.Whitelist(addr, params); err != nil {
			return err
		}
		return ls.refreshTargetsGauge()
	})
	if err != nil {
		return err
	}
	metricTargetsMutations().AddWithLabel(1, map[string]string{"op": "whitelist"})
	logger.Debug("target whitelisted", "target", addr, "capacity", params.Capacity, "apy", params.APY)
	return nil
}

// UpdateTargetParams replaces the parameters of a registered target.
func (ls *LiquidStaking) UpdateTargetParams(addr types.Address, params target.Params) error {
	if err := ls.atomic(func() error { return ls.targets.Update(addr, params) }); err != nil {
		return err
	}
	metricTargetsMutations().AddWithLabel(1, map[string]string{"op": "update"})
	logger.Debug("target updated", "target", addr, "capacity", params.Capacity, "apy", params.APY)
	return nil
}

// RecordDelegation credits amount delegated by the pool to the target.
func (ls *LiquidStaking) RecordDelegation(addr types.Address, amount *big.Int) error {
	return ls.atomic(func() error { return ls.targets.AddStakedFromPool(addr, amount) })
}

// RecordUndelegation credits amount withdrawn by the pool from the target.
func (ls *LiquidStaking) RecordUndelegation(addr types.Address, amount *big.Int) error {
	return ls.atomic(func() error { return ls.targets.AddUndelegatedFromPool(addr, amount) })
}

// Targets returns the registered targets in registration order.
func (ls *LiquidStaking) Targets() ([]*target.Target, error) {
	addrs, err := ls.targets.Addresses()
	if err != nil {
		return nil, err
	}
	targets := make([]*target.Target, 0, len(addrs))
	for _, addr := range addrs {
		t, err := ls.targets.Get(addr)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// TargetAddresses returns the registered addresses in registration order.
func (ls *LiquidStaking) TargetAddresses() ([]types.Address, error) {
	return ls.targets.Addresses()
}

func (ls *LiquidStaking) Target(addr types.Address) (*target.Target, error) {
	return ls.targets.Get(addr)
}

func (ls *LiquidStaking) refreshTargetsGauge() error {
	n, err := ls.targets.Len()
	if err != nil {
		return err
	}
	metricTargetsCount().Set(int64(n))
	return nil
}

//
// Allocator
//

// NextTarget advances the round-robin cursor and returns the target it lands on.
func (ls *LiquidStaking) NextTarget() (types.Address, error) {
	var addr types.Address
	err := ls.atomic(func() (err error) {
		addr, err = ls.allocator.Next()
		return
	})
	if err != nil {
		return types.Address{}, err
	}
	metricAllocatorPicks().Add(1)
	return addr, nil
}

// Cursor returns the 1-based index of the last target returned by NextTarget.
func (ls *LiquidStaking) Cursor() (uint64, error) {
	return ls.allocator.Cursor()
}

//
// Reserve, state and owner
//

// Reserve returns the stored pool reserve.
func (ls *LiquidStaking) Reserve() (*big.Int, error) {
	amount, err := ls.reserve.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reserve")
	}
	return amount, nil
}

func (ls *LiquidStaking) SetReserve(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := ls.reserve.Set(amount); err != nil {
		return errors.Wrap(err, "failed to set reserve")
	}
	return nil
}

// PendingRewards returns rewards claimed in the current cycle and not yet redelegated.
func (ls *LiquidStaking) PendingRewards() (*big.Int, error) {
	amount, err := ls.rewards.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get claimed rewards")
	}
	return amount, nil
}

func (ls *LiquidStaking) IsActive() (bool, error) {
	active, err := ls.active.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get contract state")
	}
	return active, nil
}

func (ls *LiquidStaking) SetActive(active bool) error {
	if err := ls.active.Upsert(active); err != nil {
		return errors.Wrap(err, "failed to set contract state")
	}
	logger.Info("contract state changed", "active", active)
	return nil
}

func (ls *LiquidStaking) Owner() (types.Address, error) {
	return ls.owner.Get()
}

func (ls *LiquidStaking) SetOwner(addr types.Address) {
	ls.owner.Set(&addr)
}

func (ls *LiquidStaking) requireActive() error {
	active, err := ls.IsActive()
	if err != nil {
		return err
	}
	if !active {
		return ErrInactive
	}
	return nil
}
