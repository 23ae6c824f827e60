// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotStartBlock   = thor.BytesToBytes32([]byte("start-block"))
	slotEndBlock     = thor.BytesToBytes32([]byte("end-block"))
	slotTotalRewards = thor.BytesToBytes32([]byte("total-rewards"))
	slotRewardToken  = thor.BytesToBytes32([]byte("reward-token"))
)

// params holds the values fixed at initialization.
type params struct {
	startBlock   *solidity.Uint256
	endBlock     *solidity.Uint256
	totalRewards *solidity.Uint256
	rewardToken  *solidity.Address
}

func newParams(sctx *solidity.Context) *params {
	return &params{
		startBlock:   solidity.NewUint256(sctx, slotStartBlock),
		endBlock:     solidity.NewUint256(sctx, slotEndBlock),
		totalRewards: solidity.NewUint256(sctx, slotTotalRewards),
		rewardToken:  solidity.NewAddress(sctx, slotRewardToken),
	}
}

func (p *params) setWindow(w *window.Window) error {
	if err := p.startBlock.Set(new(big.Int).SetUint64(w.StartBlock())); err != nil {
		return err
	}
	if err := p.endBlock.Set(new(big.Int).SetUint64(w.EndBlock())); err != nil {
		return err
	}
	return p.totalRewards.Set(w.TotalRewards())
}

func (p *params) window() (*window.Window, error) {
	end, err := p.endBlock.Get()
	if err != nil {
		return nil, err
	}
	if end.Sign() == 0 {
		return nil, reverts.ErrNotInitialized
	}
	start, err := p.startBlock.Get()
	if err != nil {
		return nil, err
	}
	total, err := p.totalRewards.Get()
	if err != nil {
		return nil, err
	}
	return window.New(start.Uint64(), end.Uint64(), total)
}
