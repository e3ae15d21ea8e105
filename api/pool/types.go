// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/liquid-staking/lsd/builtin/liquidstaking/claim"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/types"
)

type Target struct {
	Address             types.Address         `json:"address"`
	TotalStaked         *math.HexOrDecimal256 `json:"totalStaked"`
	Capacity            uint64                `json:"capacity"`
	NodeCount           uint64                `json:"nodeCount"`
	APY                 uint64                `json:"apy"`
	StakedFromPool      *math.HexOrDecimal256 `json:"stakedFromPool"`
	UndelegatedFromPool *math.HexOrDecimal256 `json:"undelegatedFromPool"`
	NetFromPool         *math.HexOrDecimal256 `json:"netFromPool"`
}

func ConvertTarget(t *target.Target) *Target {
	return &Target{
		Address:             t.Address,
		TotalStaked:         Amount(t.TotalStaked),
		Capacity:            t.Capacity,
		NodeCount:           t.NodeCount,
		APY:                 t.APY,
		StakedFromPool:      Amount(t.StakedFromPool),
		UndelegatedFromPool: Amount(t.UndelegatedFromPool),
		NetFromPool:         Amount(t.NetFromPool()),
	}
}

type ClaimStatus struct {
	Status           claim.Status          `json:"status"`
	LastClaimEpoch   uint64                `json:"lastClaimEpoch"`
	CurrentIteration uint64                `json:"currentIteration"`
	StartingReserve  *math.HexOrDecimal256 `json:"startingReserve"`
}

func ConvertClaimStatus(st claim.ClaimStatus) *ClaimStatus {
	return &ClaimStatus{
		Status:           st.Status,
		LastClaimEpoch:   st.LastClaimEpoch,
		CurrentIteration: st.CurrentIteration,
		StartingReserve:  Amount(st.StartingReserve),
	}
}

// ClaimState is the persisted claim status plus the draft of a claim in progress.
type ClaimState struct {
	ClaimStatus
	Ongoing *ClaimStatus `json:"ongoing"`
}

type Cursor struct {
	Cursor  uint64 `json:"cursor"`
	Targets uint64 `json:"targets"`
}

type Reserve struct {
	Reserve        *math.HexOrDecimal256 `json:"reserve"`
	PendingRewards *math.HexOrDecimal256 `json:"pendingRewards"`
	Active         bool                  `json:"active"`
}

// Amount converts v for JSON output, nil as zero.
func Amount(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
