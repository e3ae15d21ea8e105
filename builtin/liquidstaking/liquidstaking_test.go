// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquid-staking/lsd/builtin/liquidstaking/claim"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/lvldb"
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/test/datagen"
	"github.com/liquid-staking/lsd/types"
)

type staticOracle struct{ amount *big.Int }

func (o staticOracle) Reserve() (*big.Int, error) { return o.amount, nil }

// recordingClaimer pays a fixed reward per target and records the visits.
type recordingClaimer struct {
	reward  *big.Int
	visited []types.Address
	failOn  *types.Address
}

func (c *recordingClaimer) ClaimRewards(addr types.Address, _ uint64) (*big.Int, error) {
	if c.failOn != nil && *c.failOn == addr {
		return nil, errors.New("claim rejected")
	}
	c.visited = append(c.visited, addr)
	return c.reward, nil
}

type recordingRedelegator struct {
	target types.Address
	amount *big.Int
}

func (r *recordingRedelegator) Delegate(addr types.Address, amount *big.Int) error {
	r.target, r.amount = addr, amount
	return nil
}

func newTestLiquidStaking(t *testing.T, oracle ReserveOracle) (*LiquidStaking, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	return New(datagen.RandAddress(), st, oracle), st
}

func newParams() target.Params {
	return target.Params{
		TotalStaked: datagen.RandBigInt(),
		Capacity:    1000,
		NodeCount:   4,
		APY:         850,
	}
}

func whitelistN(t *testing.T, ls *LiquidStaking, n int) []types.Address {
	addrs := datagen.RandAddresses(n)
	for _, addr := range addrs {
		require.NoError(t, ls.WhitelistTarget(addr, newParams()))
	}
	return addrs
}

func TestRoundRobinCoverage(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 4)

	for _, want := range addrs {
		got, err := ls.NextTarget()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := ls.NextTarget()
	require.NoError(t, err)
	assert.Equal(t, addrs[0], got)

	cursor, err := ls.Cursor()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cursor)
}

func TestNextTarget_EmptyRegistry(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)

	_, err := ls.NextTarget()
	assert.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestWhitelistUniqueness(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 2)

	assert.ErrorIs(t, ls.WhitelistTarget(addrs[1], newParams()), ErrAlreadyRegistered)

	got, err := ls.TargetAddresses()
	require.NoError(t, err)
	assert.Equal(t, addrs, got)
}

func TestUpdatePreservesPoolCounters(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addr := whitelistN(t, ls, 1)[0]

	require.NoError(t, ls.RecordDelegation(addr, big.NewInt(500)))
	require.NoError(t, ls.RecordUndelegation(addr, big.NewInt(200)))

	params := target.Params{TotalStaked: big.NewInt(9), Capacity: 1, NodeCount: 2, APY: 3}
	require.NoError(t, ls.UpdateTargetParams(addr, params))

	got, err := ls.Target(addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), got.TotalStaked)
	assert.Equal(t, uint64(1), got.Capacity)
	assert.Equal(t, uint64(2), got.NodeCount)
	assert.Equal(t, uint64(3), got.APY)
	assert.Equal(t, big.NewInt(500), got.StakedFromPool)
	assert.Equal(t, big.NewInt(200), got.UndelegatedFromPool)

	assert.ErrorIs(t, ls.UpdateTargetParams(datagen.RandAddress(), params), ErrNotRegistered)
}

func TestTargets(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 3)

	targets, err := ls.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 3)
	for i, tgt := range targets {
		assert.Equal(t, addrs[i], tgt.Address)
	}
}

func TestFailedOperationReverts(t *testing.T) {
	ls, st := newTestLiquidStaking(t, nil)
	addr := whitelistN(t, ls, 1)[0]
	before := st.Stage().Hash()

	assert.ErrorIs(t, ls.WhitelistTarget(addr, newParams()), ErrAlreadyRegistered)
	assert.ErrorIs(t, ls.RecordDelegation(addr, big.NewInt(0)), ErrInvalidAmount)
	assert.ErrorIs(t, ls.UpdateTargetParams(addr, target.Params{}), ErrInvalidAmount)

	assert.Equal(t, before, st.Stage().Hash(), "failed calls leave no writes behind")
}

func seedClaimStatus(t *testing.T, ls *LiquidStaking, st claim.ClaimStatus) {
	require.NoError(t, ls.claims.Set(st))
}

func TestEvaluateClaimStart(t *testing.T) {
	reserve := big.NewInt(1_000_000)
	redelegated := claim.ClaimStatus{Status: claim.StatusRedelegated, LastClaimEpoch: 5, CurrentIteration: 1, StartingReserve: big.NewInt(0)}

	t.Run("happy path", func(t *testing.T) {
		ls, _ := newTestLiquidStaking(t, staticOracle{reserve})
		seedClaimStatus(t, ls, redelegated)

		got, err := ls.EvaluateClaimStart(claim.Default(), 6)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusPending, got.Status)
		assert.Equal(t, uint64(6), got.LastClaimEpoch)
		assert.Equal(t, reserve, got.StartingReserve)
	})

	t.Run("epoch rejection", func(t *testing.T) {
		ls, _ := newTestLiquidStaking(t, staticOracle{reserve})
		seedClaimStatus(t, ls, redelegated)

		_, err := ls.EvaluateClaimStart(claim.Default(), 5)
		assert.ErrorIs(t, err, ErrEpochNotAdvanced)
	})

	t.Run("cycle not closed", func(t *testing.T) {
		ls, _ := newTestLiquidStaking(t, staticOracle{reserve})
		seedClaimStatus(t, ls, claim.ClaimStatus{Status: claim.StatusPending, LastClaimEpoch: 1, CurrentIteration: 1, StartingReserve: big.NewInt(0)})

		for _, epoch := range []uint64{0, 1, 2, 100} {
			_, err := ls.EvaluateClaimStart(claim.Default(), epoch)
			assert.ErrorIs(t, err, ErrCycleNotClosed)
		}
	})

	t.Run("idempotent resume", func(t *testing.T) {
		ls, _ := newTestLiquidStaking(t, staticOracle{reserve})
		seedClaimStatus(t, ls, redelegated)

		draft := claim.ClaimStatus{Status: claim.StatusPending, LastClaimEpoch: 6, CurrentIteration: 2, StartingReserve: big.NewInt(3)}
		got, err := ls.EvaluateClaimStart(draft, 7)
		require.NoError(t, err)
		assert.Equal(t, draft, got)
	})

	t.Run("storage reserve fallback", func(t *testing.T) {
		ls, _ := newTestLiquidStaking(t, nil)
		require.NoError(t, ls.SetReserve(big.NewInt(77)))

		got, err := ls.EvaluateClaimStart(claim.Default(), 1)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(77), got.StartingReserve)

		persisted, err := ls.ClaimStatus()
		require.NoError(t, err)
		assert.Equal(t, claim.Default(), persisted, "evaluation does not persist")
	})
}

func TestClaimCycle(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 3)
	require.NoError(t, ls.SetActive(true))
	require.NoError(t, ls.SetReserve(big.NewInt(1000)))

	claimer := &recordingClaimer{reward: big.NewInt(10)}

	// first batch covers two of three targets
	st, err := ls.ClaimRewards(1, claimer, 2)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusPending, st.Status)
	assert.Equal(t, uint64(3), st.CurrentIteration)
	assert.Equal(t, big.NewInt(1000), st.StartingReserve)

	ongoing, err := ls.OngoingClaim()
	require.NoError(t, err)
	assert.Equal(t, st, ongoing)

	// second batch resumes and finishes
	st, err = ls.ClaimRewards(1, claimer, 2)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusFinished, st.Status)
	assert.Equal(t, addrs, claimer.visited)

	persisted, err := ls.ClaimStatus()
	require.NoError(t, err)
	assert.Equal(t, claim.StatusFinished, persisted.Status)
	assert.Equal(t, uint64(1), persisted.LastClaimEpoch)

	ongoing, err = ls.OngoingClaim()
	require.NoError(t, err)
	assert.Equal(t, claim.Default(), ongoing)

	rewards, err := ls.PendingRewards()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), rewards)

	// no new cycle until redelegated
	_, err = ls.ClaimRewards(2, claimer, 0)
	assert.ErrorIs(t, err, ErrCycleNotClosed)

	redelegator := &recordingRedelegator{}
	addr, amount, err := ls.DelegateRewards(redelegator)
	require.NoError(t, err)
	assert.Equal(t, addrs[0], addr, "rewards go to the next round-robin target")
	assert.Equal(t, big.NewInt(30), amount)
	assert.Equal(t, addr, redelegator.target)

	persisted, err = ls.ClaimStatus()
	require.NoError(t, err)
	assert.Equal(t, claim.StatusRedelegated, persisted.Status)
	assert.Equal(t, uint64(1), persisted.CurrentIteration)

	tgt, err := ls.Target(addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), tgt.StakedFromPool)

	reserve, err := ls.Reserve()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1030), reserve)

	rewards, err = ls.PendingRewards()
	require.NoError(t, err)
	assert.Equal(t, 0, rewards.Sign())

	// same epoch is rejected, the next one starts a cycle
	_, err = ls.ClaimRewards(1, claimer, 0)
	assert.ErrorIs(t, err, ErrEpochNotAdvanced)

	st, err = ls.ClaimRewards(2, claimer, 0)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusFinished, st.Status)
	assert.Equal(t, big.NewInt(1030), st.StartingReserve)
}

func TestClaimRewards_NextTargetBetweenBatches(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 3)
	require.NoError(t, ls.SetActive(true))

	claimer := &recordingClaimer{reward: big.NewInt(1)}
	st, err := ls.ClaimRewards(1, claimer, 1)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusPending, st.Status)

	picked, err := ls.NextTarget()
	require.NoError(t, err)
	assert.Equal(t, addrs[0], picked)

	st, err = ls.ClaimRewards(1, claimer, 0)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusFinished, st.Status)
	assert.Equal(t, addrs, claimer.visited, "each target claimed exactly once")

	cursor, err := ls.Cursor()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cursor)

	rewards, err := ls.PendingRewards()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), rewards)
}

func TestOperationsLeaveNoCheckpoints(t *testing.T) {
	ls, st := newTestLiquidStaking(t, nil)
	depth := st.NewCheckpoint()
	st.RevertTo(depth)

	whitelistN(t, ls, 3)
	require.NoError(t, ls.SetActive(true))
	_, err := ls.NextTarget()
	require.NoError(t, err)
	_, err = ls.ClaimRewards(1, &recordingClaimer{reward: big.NewInt(1)}, 0)
	require.NoError(t, err)
	assert.Error(t, ls.SetReserve(big.NewInt(-1)))

	assert.Equal(t, depth, st.NewCheckpoint())
}

func TestClaimRewards_Inactive(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	whitelistN(t, ls, 1)

	_, err := ls.ClaimRewards(1, &recordingClaimer{reward: big.NewInt(1)}, 0)
	assert.ErrorIs(t, err, ErrInactive)

	_, _, err = ls.DelegateRewards(&recordingRedelegator{})
	assert.ErrorIs(t, err, ErrInactive)
}

func TestClaimRewards_EmptyRegistry(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	require.NoError(t, ls.SetActive(true))

	_, err := ls.ClaimRewards(1, &recordingClaimer{}, 0)
	assert.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestClaimRewards_FailureReverts(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 3)
	require.NoError(t, ls.SetActive(true))

	claimer := &recordingClaimer{reward: big.NewInt(5), failOn: &addrs[1]}
	_, err := ls.ClaimRewards(1, claimer, 0)
	assert.Error(t, err)

	cursor, err := ls.Cursor()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor, "claims never move the cursor")

	ongoing, err := ls.OngoingClaim()
	require.NoError(t, err)
	assert.Equal(t, claim.Default(), ongoing)

	rewards, err := ls.PendingRewards()
	require.NoError(t, err)
	assert.Equal(t, 0, rewards.Sign())
}

func TestDelegateRewards_NotFinished(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	require.NoError(t, ls.SetActive(true))

	_, _, err := ls.DelegateRewards(&recordingRedelegator{})
	assert.ErrorIs(t, err, ErrNotFinished)
}

func TestDelegateRewards_NothingClaimed(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	whitelistN(t, ls, 2)
	require.NoError(t, ls.SetActive(true))

	_, err := ls.ClaimRewards(3, &recordingClaimer{}, 0)
	require.NoError(t, err)

	redelegator := &recordingRedelegator{}
	addr, amount, err := ls.DelegateRewards(redelegator)
	require.NoError(t, err)
	assert.True(t, addr.IsZero())
	assert.Equal(t, 0, amount.Sign())
	assert.Nil(t, redelegator.amount)

	persisted, err := ls.ClaimStatus()
	require.NoError(t, err)
	assert.Equal(t, claim.StatusRedelegated, persisted.Status)
}

func TestOwnerAndState(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)

	owner, err := ls.Owner()
	require.NoError(t, err)
	assert.True(t, owner.IsZero())

	addr := datagen.RandAddress()
	ls.SetOwner(addr)
	owner, err = ls.Owner()
	require.NoError(t, err)
	assert.Equal(t, addr, owner)

	active, err := ls.IsActive()
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, ls.SetActive(true))
	active, err = ls.IsActive()
	require.NoError(t, err)
	assert.True(t, active)

	assert.ErrorIs(t, ls.SetReserve(big.NewInt(-1)), ErrInvalidAmount)
}

func TestReserveBeyond256Bits(t *testing.T) {
	ls, _ := newTestLiquidStaking(t, nil)
	addrs := whitelistN(t, ls, 2)
	require.NoError(t, ls.SetActive(true))

	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	huge.Add(huge, big.NewInt(5))
	require.NoError(t, ls.SetReserve(huge))

	reserve, err := ls.Reserve()
	require.NoError(t, err)
	assert.Equal(t, huge, reserve)

	claimer := &recordingClaimer{reward: huge}
	st, err := ls.ClaimRewards(1, claimer, 0)
	require.NoError(t, err)
	assert.Equal(t, huge, st.StartingReserve)

	twice := new(big.Int).Mul(huge, big.NewInt(2))
	rewards, err := ls.PendingRewards()
	require.NoError(t, err)
	assert.Equal(t, twice, rewards)

	addr, amount, err := ls.DelegateRewards(&recordingRedelegator{})
	require.NoError(t, err)
	assert.Equal(t, addrs[0], addr)
	assert.Equal(t, twice, amount)

	reserve, err = ls.Reserve()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(huge, big.NewInt(3)), reserve)
}
