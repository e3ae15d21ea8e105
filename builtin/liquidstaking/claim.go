// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/builtin/liquidstaking/claim"
	"github.com/liquid-staking/lsd/types"
)

// ClaimStatus returns the persisted claim status.
func (ls *LiquidStaking) ClaimStatus() (claim.ClaimStatus, error) {
	return ls.claims.Get()
}

// OngoingClaim returns the draft of a claim spanning several ClaimRewards calls.
func (ls *LiquidStaking) OngoingClaim() (claim.ClaimStatus, error) {
	return ls.claims.Ongoing()
}

// EvaluateClaimStart checks whether the draft may start or resume a claim cycle at epoch,
// returning the draft upgraded to Pending with a reserve snapshot when it starts one.
// Nothing is persisted.
func (ls *LiquidStaking) EvaluateClaimStart(draft claim.ClaimStatus, epoch uint64) (claim.ClaimStatus, error) {
	next, err := ls.claims.Evaluate(draft, epoch, ls.oracle.Reserve)
	metricClaimEvaluations().AddWithLabel(1, map[string]string{"result": evaluationResult(err)})
	return next, err
}

// ClaimRewards runs the claim side of a cycle at epoch. It claims from up to maxTargets
// targets (all when 0) in registration order, starting at the draft's iteration, and saves
// the draft so the next call resumes where this one stopped. Once every target has been
// visited the cycle is Finished. The walk is independent of the allocator cursor.
func (ls *LiquidStaking) ClaimRewards(epoch uint64, claimer RewardClaimer, maxTargets uint64) (claim.ClaimStatus, error) {
	var result claim.ClaimStatus
	err := ls.atomic(func() error {
		if err := ls.requireActive(); err != nil {
			return err
		}

		draft, err := ls.claims.Ongoing()
		if err != nil {
			return err
		}
		draft, err = ls.EvaluateClaimStart(draft, epoch)
		if err != nil {
			return err
		}

		n, err := ls.targets.Len()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrEmptyRegistry
		}

		for visited := uint64(0); draft.CurrentIteration <= n && (maxTargets == 0 || visited < maxTargets); visited++ {
			addr, err := ls.targets.At(draft.CurrentIteration)
			if err != nil {
				return err
			}
			reward, err := claimer.ClaimRewards(addr, draft.LastClaimEpoch)
			if err != nil {
				return errors.Wrapf(err, "failed to claim rewards from %v", addr)
			}
			if reward != nil && reward.Sign() > 0 {
				if err := ls.rewards.Add(reward); err != nil {
					return err
				}
			}
			metricRewardsClaimed().Add(1)
			logger.Debug("rewards claimed", "target", addr, "epoch", draft.LastClaimEpoch, "reward", reward)
			draft.CurrentIteration++
		}

		if draft.CurrentIteration <= n {
			result = draft
			return ls.claims.SetOngoing(draft)
		}

		finished, err := claim.Finish(draft)
		if err != nil {
			return err
		}
		if err := ls.claims.Set(finished); err != nil {
			return err
		}
		result = finished
		return ls.claims.ClearOngoing()
	})
	if err != nil {
		return claim.ClaimStatus{}, err
	}

	if result.Status == claim.StatusFinished {
		logger.Info("claim cycle finished", "epoch", result.LastClaimEpoch, "starting reserve", result.StartingReserve)
	}
	return result, nil
}

// DelegateRewards closes a finished cycle: the claimed rewards are delegated to the next
// target in round-robin order and added to the reserve. It returns the target and the
// amount, the zero address when there was nothing to delegate.
func (ls *LiquidStaking) DelegateRewards(redelegator Redelegator) (types.Address, *big.Int, error) {
	var (
		addr   types.Address
		amount *big.Int
	)
	err := ls.atomic(func() error {
		if err := ls.requireActive(); err != nil {
			return err
		}

		st, err := ls.claims.Get()
		if err != nil {
			return err
		}
		closed, err := claim.Redelegate(st)
		if err != nil {
			return err
		}

		if amount, err = ls.PendingRewards(); err != nil {
			return err
		}
		if amount.Sign() > 0 {
			if addr, err = ls.allocator.Next(); err != nil {
				return err
			}
			if err := redelegator.Delegate(addr, amount); err != nil {
				return errors.Wrapf(err, "failed to delegate rewards to %v", addr)
			}
			if err := ls.targets.AddStakedFromPool(addr, amount); err != nil {
				return err
			}
			if err := ls.reserve.Add(amount); err != nil {
				return err
			}
			if err := ls.rewards.Set(nil); err != nil {
				return err
			}
		}
		return ls.claims.Set(closed)
	})
	if err != nil {
		return types.Address{}, nil, err
	}

	logger.Info("claim cycle closed", "target", addr, "amount", amount)
	return addr, amount, nil
}
