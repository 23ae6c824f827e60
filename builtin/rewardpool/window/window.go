// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package window

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/reverts"
)

// Status tells where a block sits relative to the window. It is informational only:
// deposits and withdrawals are accepted in every status.
type Status uint8

const (
	StatusNotStarted Status = iota
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Window is the block range [StartBlock, EndBlock) over which TotalRewards is emitted
// at a constant RewardPerBlock. It is immutable.
type Window struct {
	startBlock     uint64
	endBlock       uint64
	totalRewards   *big.Int
	rewardPerBlock *big.Int
}

// New creates a window. The per-block rate is floor(totalRewards / (end - start)) and
// the remainder is never emitted.
func New(startBlock, endBlock uint64, totalRewards *big.Int) (*Window, error) {
	if endBlock <= startBlock {
		return nil, reverts.ErrInvalidWindow
	}
	if totalRewards == nil || totalRewards.Sign() < 0 {
		return nil, reverts.ErrOverflow
	}
	blocks := new(big.Int).SetUint64(endBlock - startBlock)
	return &Window{
		startBlock:     startBlock,
		endBlock:       endBlock,
		totalRewards:   new(big.Int).Set(totalRewards),
		rewardPerBlock: new(big.Int).Quo(totalRewards, blocks),
	}, nil
}

func (w *Window) StartBlock() uint64 { return w.startBlock }

func (w *Window) EndBlock() uint64 { return w.endBlock }

func (w *Window) TotalRewards() *big.Int { return new(big.Int).Set(w.totalRewards) }

func (w *Window) RewardPerBlock() *big.Int { return new(big.Int).Set(w.rewardPerBlock) }

func (w *Window) clip(block uint64) uint64 {
	return min(max(block, w.startBlock), w.endBlock)
}

// Generated returns the reward emitted across [from, to) after clipping both bounds to the window.
// Generated(a, b) + Generated(b, c) == Generated(a, c) for a <= b <= c.
func (w *Window) Generated(from, to uint64) *big.Int {
	if from >= to || to <= w.startBlock || from >= w.endBlock {
		return new(big.Int)
	}
	blocks := new(big.Int).SetUint64(w.clip(to) - w.clip(from))
	return blocks.Mul(blocks, w.rewardPerBlock)
}

// Status reports whether block is before, inside or after the window.
func (w *Window) Status(block uint64) Status {
	switch {
	case block < w.startBlock:
		return StatusNotStarted
	case block < w.endBlock:
		return StatusActive
	default:
		return StatusEnded
	}
}
