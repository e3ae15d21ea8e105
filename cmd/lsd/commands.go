// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/liquid-staking/lsd/api/pool"
	"github.com/liquid-staking/lsd/builtin/liquidstaking"
	"github.com/liquid-staking/lsd/builtin/liquidstaking/target"
	"github.com/liquid-staking/lsd/types"
)

func initAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, cfg config) error {
		owner, err := cfg.owner()
		if err != nil {
			return err
		}
		return s.run(func(ls *liquidstaking.LiquidStaking) error {
			return initPool(ls, owner)
		})
	})
}

func initPool(ls *liquidstaking.LiquidStaking, owner types.Address) error {
	current, err := ls.Owner()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errAlreadyInitialized
	}
	ls.SetOwner(owner)
	return ls.SetActive(true)
}

func targetParams(ctx *cli.Context) (types.Address, target.Params, error) {
	addr, err := parseAddressFlag(ctx, targetFlag)
	if err != nil {
		return types.Address{}, target.Params{}, err
	}
	staked, err := parseAmount(ctx.String(totalStakedFlag.Name))
	if err != nil {
		return types.Address{}, target.Params{}, err
	}
	return addr, target.Params{
		TotalStaked: staked,
		Capacity:    ctx.Uint64(capacityFlag.Name),
		NodeCount:   ctx.Uint64(nodesFlag.Name),
		APY:         ctx.Uint64(apyFlag.Name),
	}, nil
}

// targetAction builds the whitelist and update commands.
func targetAction(apply func(ls *liquidstaking.LiquidStaking, addr types.Address, params target.Params) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		return withSession(ctx, func(s *session, _ config) error {
			from, err := parseAddressFlag(ctx, fromFlag)
			if err != nil {
				return err
			}
			addr, params, err := targetParams(ctx)
			if err != nil {
				return err
			}
			return s.runAsOwner(from, func(ls *liquidstaking.LiquidStaking) error {
				return apply(ls, addr, params)
			})
		})
	}
}

// recordAction builds the commands recording pool stake movements.
func recordAction(apply func(ls *liquidstaking.LiquidStaking, addr types.Address, amount *big.Int) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		return withSession(ctx, func(s *session, _ config) error {
			from, err := parseAddressFlag(ctx, fromFlag)
			if err != nil {
				return err
			}
			addr, err := parseAddressFlag(ctx, targetFlag)
			if err != nil {
				return err
			}
			amount, err := parseAmount(ctx.String(amountFlag.Name))
			if err != nil {
				return err
			}
			return s.runAsOwner(from, func(ls *liquidstaking.LiquidStaking) error {
				return apply(ls, addr, amount)
			})
		})
	}
}

func nextAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, _ config) error {
		return s.run(func(ls *liquidstaking.LiquidStaking) error {
			addr, err := ls.NextTarget()
			if err != nil {
				return err
			}
			fmt.Println(addr)
			return nil
		})
	})
}

func claimAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, cfg config) error {
		if !ctx.IsSet(epochFlag.Name) {
			return errors.Errorf("missing --%s", epochFlag.Name)
		}
		reward, err := cfg.reward()
		if err != nil {
			return err
		}
		epoch := ctx.Uint64(epochFlag.Name)

		return s.run(func(ls *liquidstaking.LiquidStaking) error {
			status, err := ls.ClaimRewards(epoch, newLedger(reward), cfg.Claim.Batch)
			if err != nil {
				return err
			}
			fmt.Printf("status: %v, epoch: %d, iteration: %d\n", status.Status, status.LastClaimEpoch, status.CurrentIteration)
			return nil
		})
	})
}

func delegateAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, _ config) error {
		return s.run(func(ls *liquidstaking.LiquidStaking) error {
			addr, amount, err := ls.DelegateRewards(newLedger(new(big.Int)))
			if err != nil {
				return err
			}
			if amount.Sign() == 0 {
				fmt.Println("nothing to delegate")
				return nil
			}
			fmt.Printf("delegated %v to %v\n", amount, addr)
			return nil
		})
	})
}

func reserveAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, _ config) error {
		from, err := parseAddressFlag(ctx, fromFlag)
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		return s.runAsOwner(from, func(ls *liquidstaking.LiquidStaking) error {
			return ls.SetReserve(amount)
		})
	})
}

func stateAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, _ config) error {
		from, err := parseAddressFlag(ctx, fromFlag)
		if err != nil {
			return err
		}
		var active bool
		switch arg := ctx.Args().First(); arg {
		case "on":
			active = true
		case "off":
		default:
			return errors.Errorf("expected on or off, got %q", arg)
		}
		return s.runAsOwner(from, func(ls *liquidstaking.LiquidStaking) error {
			return ls.SetActive(active)
		})
	})
}

// snapshot is the full contract state, encoded like the pool API responses.
type snapshot struct {
	Owner          types.Address         `json:"owner"`
	Active         bool                  `json:"active"`
	Reserve        *math.HexOrDecimal256 `json:"reserve"`
	PendingRewards *math.HexOrDecimal256 `json:"pendingRewards"`
	Cursor         uint64                `json:"cursor"`
	Targets        []*pool.Target        `json:"targets"`
	ClaimStatus    *pool.ClaimStatus     `json:"claimStatus"`
	OngoingClaim   *pool.ClaimStatus     `json:"ongoingClaim"`
}

func takeSnapshot(ls *liquidstaking.LiquidStaking) (*snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.Owner, err = ls.Owner(); err != nil {
		return nil, err
	}
	if snap.Active, err = ls.IsActive(); err != nil {
		return nil, err
	}
	reserve, err := ls.Reserve()
	if err != nil {
		return nil, err
	}
	rewards, err := ls.PendingRewards()
	if err != nil {
		return nil, err
	}
	snap.Reserve, snap.PendingRewards = pool.Amount(reserve), pool.Amount(rewards)

	if snap.Cursor, err = ls.Cursor(); err != nil {
		return nil, err
	}
	targets, err := ls.Targets()
	if err != nil {
		return nil, err
	}
	snap.Targets = make([]*pool.Target, 0, len(targets))
	for _, t := range targets {
		snap.Targets = append(snap.Targets, pool.ConvertTarget(t))
	}

	st, err := ls.ClaimStatus()
	if err != nil {
		return nil, err
	}
	ongoing, err := ls.OngoingClaim()
	if err != nil {
		return nil, err
	}
	snap.ClaimStatus, snap.OngoingClaim = pool.ConvertClaimStatus(st), pool.ConvertClaimStatus(ongoing)
	return &snap, nil
}

func showAction(ctx *cli.Context) error {
	return withSession(ctx, func(s *session, _ config) error {
		snap, err := takeSnapshot(s.contractAt())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	})
}
