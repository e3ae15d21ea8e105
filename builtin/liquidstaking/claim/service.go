// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/builtin/solidity"
	"github.com/liquid-staking/lsd/types"
)

var (
	slotClaimStatus  = types.BytesToBytes32([]byte("claim-status"))
	slotOngoingClaim = types.BytesToBytes32([]byte("claim-ongoing"))
)

// Service persists the claim status singleton and the draft of a claim spanning
// several calls.
type Service struct {
	status  *solidity.Raw[*ClaimStatus]
	ongoing *solidity.Raw[*ClaimStatus]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		status:  solidity.NewRaw[*ClaimStatus](sctx, slotClaimStatus),
		ongoing: solidity.NewRaw[*ClaimStatus](sctx, slotOngoingClaim),
	}
}

// Get returns the persisted status, the default when never set.
func (s *Service) Get() (ClaimStatus, error) {
	return s.load(s.status, "claim status")
}

func (s *Service) Set(st ClaimStatus) error {
	if err := s.status.Upsert(&st); err != nil {
		return errors.Wrap(err, "failed to set claim status")
	}
	return nil
}

// Evaluate runs CanStart against the persisted status. It does not persist the result.
func (s *Service) Evaluate(draft ClaimStatus, epoch uint64, reserve ReserveFunc) (ClaimStatus, error) {
	persisted, err := s.Get()
	if err != nil {
		return draft, err
	}
	return CanStart(draft, persisted, epoch, reserve)
}

// Ongoing returns the saved draft, the default when there is none.
func (s *Service) Ongoing() (ClaimStatus, error) {
	return s.load(s.ongoing, "ongoing claim")
}

func (s *Service) SetOngoing(st ClaimStatus) error {
	if err := s.ongoing.Upsert(&st); err != nil {
		return errors.Wrap(err, "failed to set ongoing claim")
	}
	return nil
}

func (s *Service) ClearOngoing() error {
	if err := s.ongoing.Upsert(nil); err != nil {
		return errors.Wrap(err, "failed to clear ongoing claim")
	}
	return nil
}

func (s *Service) load(raw *solidity.Raw[*ClaimStatus], name string) (ClaimStatus, error) {
	st, err := raw.Get()
	if err != nil {
		return ClaimStatus{}, errors.Wrapf(err, "failed to get %s", name)
	}
	if st == nil {
		return Default(), nil
	}
	return *st, nil
}
