// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"fmt"
	"math/big"

	"github.com/liquid-staking/lsd/builtin/reverts"
)

// Status is the phase of the reward claim cycle.
type Status uint8

const (
	StatusNone        Status = iota // no cycle started yet
	StatusPending                   // claiming in progress
	StatusFinished                  // claimed, redelegation pending
	StatusRedelegated               // cycle closed
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusPending:
		return "pending"
	case StatusFinished:
		return "finished"
	case StatusRedelegated:
		return "redelegated"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for st := StatusNone; st <= StatusRedelegated; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid claim status %q", s)
}

func (s Status) MarshalText() ([]byte, error) {
	if s > StatusRedelegated {
		return nil, fmt.Errorf("invalid claim status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

var (
	ErrInvalidDraftState = reverts.New("claim status must be none or pending")
	ErrCycleNotClosed    = reverts.New("previous claim cycle is not closed")
	ErrEpochNotAdvanced  = reverts.New("epoch must be greater than last claim epoch")
	ErrNotPending        = reverts.New("claim status must be pending")
	ErrNotFinished       = reverts.New("claim status must be finished")
)

// ClaimStatus is the state of the claim cycle.
type ClaimStatus struct {
	Status           Status
	LastClaimEpoch   uint64
	CurrentIteration uint64
	StartingReserve  *big.Int // pool reserve when the cycle started
}

// Default returns the status before any cycle started.
func Default() ClaimStatus {
	return ClaimStatus{
		Status:           StatusNone,
		CurrentIteration: 1,
		StartingReserve:  big.NewInt(0),
	}
}

// Clone returns a copy not sharing the reserve amount.
func (c ClaimStatus) Clone() ClaimStatus {
	if c.StartingReserve != nil {
		c.StartingReserve = new(big.Int).Set(c.StartingReserve)
	}
	return c
}

// ReserveFunc reads the current pool reserve.
type ReserveFunc func() (*big.Int, error)

// CanStart checks whether a claim cycle may start or resume at epoch.
// A draft in None is upgraded to Pending with the epoch and a snapshot of the reserve;
// a Pending draft is returned unchanged. The persisted status must be closed, that is
// Redelegated or None when no cycle ever ran, and epoch must advance past its last claim.
func CanStart(draft, persisted ClaimStatus, epoch uint64, reserve ReserveFunc) (ClaimStatus, error) {
	if draft.Status != StatusNone && draft.Status != StatusPending {
		return draft, ErrInvalidDraftState
	}
	if persisted.Status != StatusRedelegated && persisted.Status != StatusNone {
		return draft, ErrCycleNotClosed
	}
	if epoch <= persisted.LastClaimEpoch {
		return draft, ErrEpochNotAdvanced
	}

	if draft.Status == StatusPending {
		return draft, nil
	}

	amount, err := reserve()
	if err != nil {
		return draft, err
	}
	next := draft.Clone()
	next.Status = StatusPending
	next.LastClaimEpoch = epoch
	next.StartingReserve = new(big.Int).Set(amount)
	return next, nil
}

// Finish closes the claim side of a pending cycle.
func Finish(st ClaimStatus) (ClaimStatus, error) {
	if st.Status != StatusPending {
		return st, ErrNotPending
	}
	next := st.Clone()
	next.Status = StatusFinished
	return next, nil
}

// Redelegate closes a finished cycle and resets the iteration.
func Redelegate(st ClaimStatus) (ClaimStatus, error) {
	if st.Status != StatusFinished {
		return st, ErrNotFinished
	}
	next := st.Clone()
	next.Status = StatusRedelegated
	next.CurrentIteration = 1
	return next, nil
}
