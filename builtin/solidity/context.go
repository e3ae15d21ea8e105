// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/liquid-staking/lsd/state"
	"github.com/liquid-staking/lsd/types"
)

// Context binds typed storage slots to one contract address of a state.
type Context struct {
	address types.Address
	state   *state.State
}

func NewContext(address types.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() types.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
