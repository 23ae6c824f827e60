// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/rewardpool/thor"
)

// Address is a wrapper for storage and retrieval of an address, similar to an address state variable.
type Address struct {
	context *Context
	pos     thor.Bytes32
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (thor.Address, error) {
	raw, err := a.context.state.GetRawStorage(a.context.address, a.pos)
	if err != nil {
		return thor.Address{}, err
	}
	return thor.BytesToAddress(raw), nil
}

// Set stores the address, nil clears the slot.
func (a *Address) Set(addr *thor.Address) {
	var raw []byte
	if addr != nil && !addr.IsZero() {
		raw = addr.Bytes()
	}
	a.context.state.SetRawStorage(a.context.address, a.pos, raw)
}
