// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

// Uint256 is a wrapper for storage and retrieval of an unsigned integer, similar to a uint256 state variable.
type Uint256 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	value := new(big.Int)
	err := u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return errors.New("uint256: negative value")
	}
	if value.Sign() == 0 {
		u.context.state.SetRawStorage(u.context.address, u.pos, nil)
		return nil
	}
	return u.context.state.EncodeStorage(u.context.address, u.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (u *Uint256) Add(value *big.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(current.Add(current, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	if current.Cmp(value) < 0 {
		return errors.New("uint256: subtraction underflow")
	}
	return u.Set(current.Sub(current, value))
}
