// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/thor"
)

// Pool lists one deposit token and its accrual state.
type Pool struct {
	Token             thor.Address
	AllocWeight       uint32
	AccRewardPerShare *big.Int // reward per staked unit, scaled by fixedpoint.Scale
	LastRewardBlock   uint64
	TotalStaked       *big.Int
}

func (p *Pool) normalize() {
	if p.AccRewardPerShare == nil {
		p.AccRewardPerShare = new(big.Int)
	}
	if p.TotalStaked == nil {
		p.TotalStaked = new(big.Int)
	}
}

// IsEmpty returns whether the entry was never written.
func (p *Pool) IsEmpty() bool {
	return p.Token.IsZero()
}

// perShareDelta is the accumulator increase over [LastRewardBlock, block).
// An empty pool earns nothing for the interval; that share of emission is forfeited.
func (p *Pool) perShareDelta(w *window.Window, totalWeight uint64, block uint64) (*big.Int, error) {
	if block <= p.LastRewardBlock || p.TotalStaked.Sign() == 0 || totalWeight == 0 {
		return new(big.Int), nil
	}
	generated := w.Generated(p.LastRewardBlock, block)
	reward, err := fixedpoint.MulDiv(
		generated,
		new(big.Int).SetUint64(uint64(p.AllocWeight)),
		new(big.Int).SetUint64(totalWeight),
	)
	if err != nil {
		return nil, err
	}
	return fixedpoint.PerShare(reward, p.TotalStaked)
}

// Accrue brings the accumulator up to date as of block. It is idempotent and a no-op
// for blocks at or before LastRewardBlock.
func (p *Pool) Accrue(w *window.Window, totalWeight uint64, block uint64) error {
	p.normalize()
	if block <= p.LastRewardBlock {
		return nil
	}
	delta, err := p.perShareDelta(w, totalWeight, block)
	if err != nil {
		return err
	}
	acc, err := fixedpoint.Add(p.AccRewardPerShare, delta)
	if err != nil {
		return err
	}
	p.AccRewardPerShare = acc
	p.LastRewardBlock = block
	return nil
}

// Projected returns the accumulator Accrue would produce at block, without mutating the pool.
func (p *Pool) Projected(w *window.Window, totalWeight uint64, block uint64) (*big.Int, error) {
	p.normalize()
	delta, err := p.perShareDelta(w, totalWeight, block)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(p.AccRewardPerShare, delta)
}
