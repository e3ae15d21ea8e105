// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package target

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/builtin/solidity"
	"github.com/liquid-staking/lsd/types"
)

var (
	slotTargets     = types.BytesToBytes32([]byte("delegation-targets"))
	slotTargetsList = types.BytesToBytes32([]byte("delegation-targets-list"))
)

// Service is the registry of delegation targets: a record per address plus the
// append-only list of addresses in registration order.
type Service struct {
	targets *solidity.Mapping[types.Address, *Target]
	list    *solidity.Array[types.Address]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		targets: solidity.NewMapping[types.Address, *Target](sctx, slotTargets),
		list:    solidity.NewArray[types.Address](sctx, slotTargetsList),
	}
}

// Whitelist registers a new target with zeroed pool counters.
func (s *Service) Whitelist(addr types.Address, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	exists, err := s.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}

	target := &Target{
		Address:             addr,
		StakedFromPool:      big.NewInt(0),
		UndelegatedFromPool: big.NewInt(0),
	}
	target.apply(params)

	if err := s.targets.Insert(addr, target); err != nil {
		return errors.Wrap(err, "failed to set target")
	}
	if _, err := s.list.Push(addr); err != nil {
		return errors.Wrap(err, "failed to append target")
	}
	return nil
}

// Update replaces the owner supplied fields, keeping the pool counters.
func (s *Service) Update(addr types.Address, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	target, err := s.Get(addr)
	if err != nil {
		return err
	}
	target.apply(params)

	if err := s.targets.Update(addr, target); err != nil {
		return errors.Wrap(err, "failed to update target")
	}
	return nil
}

// Get returns the target, ErrNotRegistered if absent.
func (s *Service) Get(addr types.Address) (*Target, error) {
	target, err := s.targets.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get target")
	}
	if target == nil {
		return nil, ErrNotRegistered
	}
	return target, nil
}

func (s *Service) Exists(addr types.Address) (bool, error) {
	target, err := s.targets.Get(addr)
	if err != nil {
		return false, errors.Wrap(err, "failed to get target")
	}
	return target != nil, nil
}

// Len returns the number of registered targets.
func (s *Service) Len() (uint64, error) {
	n, err := s.list.Len()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get targets count")
	}
	return n, nil
}

// At returns the address registered at the 1-based index.
func (s *Service) At(index uint64) (types.Address, error) {
	addr, err := s.list.Get(index)
	if err != nil {
		return types.Address{}, errors.Wrap(err, "failed to get target address")
	}
	return addr, nil
}

// Addresses returns all target addresses in registration order.
func (s *Service) Addresses() ([]types.Address, error) {
	addrs, err := s.list.All()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list targets")
	}
	return addrs, nil
}

func (s *Service) AddStakedFromPool(addr types.Address, amount *big.Int) error {
	return s.addToPoolCounter(addr, amount, func(t *Target) *big.Int { return t.StakedFromPool })
}

func (s *Service) AddUndelegatedFromPool(addr types.Address, amount *big.Int) error {
	return s.addToPoolCounter(addr, amount, func(t *Target) *big.Int { return t.UndelegatedFromPool })
}

func (s *Service) addToPoolCounter(addr types.Address, amount *big.Int, counter func(*Target) *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	target, err := s.Get(addr)
	if err != nil {
		return err
	}
	c := counter(target)
	c.Add(c, amount)

	if err := s.targets.Update(addr, target); err != nil {
		return errors.Wrap(err, "failed to update target")
	}
	return nil
}
