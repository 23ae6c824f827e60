// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/builtin/rewardpool/pool"
	"github.com/vechain/rewardpool/builtin/rewardpool/position"
	"github.com/vechain/rewardpool/thor"
)

type Window struct {
	RewardToken    thor.Address          `json:"rewardToken"`
	Operator       thor.Address          `json:"operator"`
	StartBlock     uint64                `json:"startBlock"`
	EndBlock       uint64                `json:"endBlock"`
	TotalRewards   *math.HexOrDecimal256 `json:"totalRewards"`
	RewardPerBlock *math.HexOrDecimal256 `json:"rewardPerBlock"`
	Status         string                `json:"status,omitempty"`
}

type Generated struct {
	From   uint64                `json:"from"`
	To     uint64                `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Pool struct {
	ID                uint32                `json:"id"`
	Token             thor.Address          `json:"token"`
	AllocWeight       uint32                `json:"allocWeight"`
	AccRewardPerShare *math.HexOrDecimal256 `json:"accRewardPerShare"`
	LastRewardBlock   uint64                `json:"lastRewardBlock"`
	TotalStaked       *math.HexOrDecimal256 `json:"totalStaked"`
}

type PoolList struct {
	TotalAllocWeight uint64  `json:"totalAllocWeight"`
	Pools            []*Pool `json:"pools"`
}

type User struct {
	Pool       uint32                `json:"pool"`
	Address    thor.Address          `json:"address"`
	Amount     *math.HexOrDecimal256 `json:"amount"`
	RewardDebt *math.HexOrDecimal256 `json:"rewardDebt"`
	Pending    *math.HexOrDecimal256 `json:"pending,omitempty"`
	Block      *uint64               `json:"block,omitempty"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func convertPool(pid uint32, p *pool.Pool) *Pool {
	return &Pool{
		ID:                pid,
		Token:             p.Token,
		AllocWeight:       p.AllocWeight,
		AccRewardPerShare: hexOrDecimal(p.AccRewardPerShare),
		LastRewardBlock:   p.LastRewardBlock,
		TotalStaked:       hexOrDecimal(p.TotalStaked),
	}
}

func convertUser(pid uint32, addr thor.Address, pos *position.Position) *User {
	return &User{
		Pool:       pid,
		Address:    addr,
		Amount:     hexOrDecimal(pos.Amount),
		RewardDebt: hexOrDecimal(pos.RewardDebt),
	}
}
