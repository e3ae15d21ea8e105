// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"github.com/liquid-staking/lsd/builtin/reverts"
	"github.com/liquid-staking/lsd/metrics"
)

var (
	metricTargetsCount     = metrics.LazyLoadGauge("liquidstaking_targets")
	metricTargetsMutations = metrics.LazyLoadCounterVec("liquidstaking_target_mutations_count", []string{"op"})
	metricAllocatorPicks   = metrics.LazyLoadCounter("liquidstaking_allocator_picks_count")
	metricClaimEvaluations = metrics.LazyLoadCounterVec("liquidstaking_claim_evaluations_count", []string{"result"})
	metricRewardsClaimed   = metrics.LazyLoadCounter("liquidstaking_rewards_claimed_count")
)

// evaluationResult labels a claim start evaluation by its outcome.
func evaluationResult(err error) string {
	if err == nil {
		return "ok"
	}
	if revert, ok := reverts.AsRevert(err); ok {
		return revert.Error()
	}
	return "error"
}
