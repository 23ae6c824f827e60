// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixedpoint implements the 256-bit unsigned arithmetic of reward accounting.
// Every operation fails instead of wrapping, and division truncates toward zero.
package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/builtin/reverts"
)

// Scale multiplies per-share accumulators so that small per-block rewards survive division by large stakes.
var Scale = big.NewInt(1e18)

func toU256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	if x.Sign() < 0 {
		return nil, reverts.ErrOverflow
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return v, nil
}

func operands(xs ...*big.Int) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(xs))
	for i, x := range xs {
		v, err := toU256(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Add returns x + y.
func Add(x, y *big.Int) (*big.Int, error) {
	ops, err := operands(x, y)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).AddOverflow(ops[0], ops[1])
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z.ToBig(), nil
}

// Sub returns x - y, failing when y > x.
func Sub(x, y *big.Int) (*big.Int, error) {
	ops, err := operands(x, y)
	if err != nil {
		return nil, err
	}
	z, underflow := new(uint256.Int).SubOverflow(ops[0], ops[1])
	if underflow {
		return nil, reverts.ErrOverflow
	}
	return z.ToBig(), nil
}

// Mul returns x * y.
func Mul(x, y *big.Int) (*big.Int, error) {
	ops, err := operands(x, y)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).MulOverflow(ops[0], ops[1])
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z.ToBig(), nil
}

// MulDiv returns floor(x * y / d). The product must fit in 256 bits.
func MulDiv(x, y, d *big.Int) (*big.Int, error) {
	ops, err := operands(x, y, d)
	if err != nil {
		return nil, err
	}
	if ops[2].IsZero() {
		return nil, reverts.ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulOverflow(ops[0], ops[1])
	if overflow {
		return nil, reverts.ErrOverflow
	}
	return z.Div(z, ops[2]).ToBig(), nil
}

// Share returns floor(amount * perShare / Scale), the reward owed to amount at a scaled per-share value.
func Share(amount, perShare *big.Int) (*big.Int, error) {
	return MulDiv(amount, perShare, Scale)
}

// PerShare returns floor(reward * Scale / staked).
func PerShare(reward, staked *big.Int) (*big.Int, error) {
	return MulDiv(reward, Scale, staked)
}
