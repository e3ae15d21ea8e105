// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/liquid-staking/lsd/api/utils"
	"github.com/liquid-staking/lsd/builtin/liquidstaking"
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/types"
)

// Pool serves read only queries over the committed pool state.
type Pool struct {
	stater   *state.Stater
	contract types.Address
}

func New(stater *state.Stater, contract types.Address) *Pool {
	return &Pool{
		stater:   stater,
		contract: contract,
	}
}

// liquidStaking binds the contract to a fresh state, so every request reads the latest commit.
func (p *Pool) liquidStaking() *liquidstaking.LiquidStaking {
	return liquidstaking.New(p.contract, p.stater.NewState(), nil)
}

func (p *Pool) handleGetTargets(w http.ResponseWriter, _ *http.Request) error {
	targets, err := p.liquidStaking().Targets()
	if err != nil {
		return err
	}
	resp := make([]*Target, 0, len(targets))
	for _, t := range targets {
		resp = append(resp, ConvertTarget(t))
	}
	return utils.WriteJSON(w, resp)
}

func (p *Pool) handleGetTarget(w http.ResponseWriter, req *http.Request) error {
	addr, err := types.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "address"))
	}
	t, err := p.liquidStaking().Target(addr)
	if err != nil {
		if errors.Is(err, liquidstaking.ErrNotRegistered) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, ConvertTarget(t))
}

func (p *Pool) handleGetClaimStatus(w http.ResponseWriter, _ *http.Request) error {
	ls := p.liquidStaking()
	st, err := ls.ClaimStatus()
	if err != nil {
		return err
	}
	ongoing, err := ls.OngoingClaim()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ClaimState{
		ClaimStatus: *ConvertClaimStatus(st),
		Ongoing:     ConvertClaimStatus(ongoing),
	})
}

func (p *Pool) handleGetCursor(w http.ResponseWriter, _ *http.Request) error {
	ls := p.liquidStaking()
	cursor, err := ls.Cursor()
	if err != nil {
		return err
	}
	addrs, err := ls.TargetAddresses()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Cursor{Cursor: cursor, Targets: uint64(len(addrs))})
}

func (p *Pool) handleGetReserve(w http.ResponseWriter, _ *http.Request) error {
	ls := p.liquidStaking()
	reserve, err := ls.Reserve()
	if err != nil {
		return err
	}
	rewards, err := ls.PendingRewards()
	if err != nil {
		return err
	}
	active, err := ls.IsActive()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Reserve{
		Reserve:        Amount(reserve),
		PendingRewards: Amount(rewards),
		Active:         active,
	})
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/targets").
		Methods(http.MethodGet).
		Name("GET /pool/targets").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetTargets))
	sub.Path("/targets/{address}").
		Methods(http.MethodGet).
		Name("GET /pool/targets/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetTarget))
	sub.Path("/claim-status").
		Methods(http.MethodGet).
		Name("GET /pool/claim-status").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetClaimStatus))
	sub.Path("/cursor").
		Methods(http.MethodGet).
		Name("GET /pool/cursor").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetCursor))
	sub.Path("/reserve").
		Methods(http.MethodGet).
		Name("GET /pool/reserve").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetReserve))
}
