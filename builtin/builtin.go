// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

// Registry binds built-in contracts to one shared state, so a call crossing
// contracts reverts as a whole.
type Registry struct {
	state  *state.State
	tokens map[thor.Address]*token.Token
	pools  map[thor.Address]*rewardpool.RewardPool
}

func NewRegistry(st *state.State) *Registry {
	return &Registry{
		state:  st,
		tokens: make(map[thor.Address]*token.Token),
		pools:  make(map[thor.Address]*rewardpool.RewardPool),
	}
}

func (r *Registry) State() *state.State { return r.state }

// Token returns the token ledger at addr, binding it on first use.
func (r *Registry) Token(addr thor.Address) *token.Token {
	if t, ok := r.tokens[addr]; ok {
		return t
	}
	t := token.New(addr, r.state)
	r.tokens[addr] = t
	return t
}

// Ledger resolves only tokens bound through Token.
func (r *Registry) Ledger(addr thor.Address) (rewardpool.Ledger, bool) {
	t, ok := r.tokens[addr]
	if !ok {
		return nil, false
	}
	return t, true
}

// RewardPool returns the reward pool engine at addr, binding it on first use.
// Every caller shares one engine per address, and with it the reentrancy guard.
func (r *Registry) RewardPool(addr thor.Address) *rewardpool.RewardPool {
	if rp, ok := r.pools[addr]; ok {
		return rp
	}
	rp := rewardpool.New(addr, r.state, r.Ledger)
	r.pools[addr] = rp
	return rp
}
