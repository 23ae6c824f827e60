// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package position keeps each depositor's stake and reward debt per pool.
package position

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var slotPositions = thor.BytesToBytes32([]byte("positions"))

// Position is a depositor's stake in one pool. RewardDebt is the share of the pool
// accumulator already accounted for, so Amount*acc/Scale - RewardDebt is what is owed.
type Position struct {
	Amount     *big.Int
	RewardDebt *big.Int
}

func (p *Position) normalize() {
	if p.Amount == nil {
		p.Amount = new(big.Int)
	}
	if p.RewardDebt == nil {
		p.RewardDebt = new(big.Int)
	}
}

// IsActive returns whether the position ever held stake.
func (p *Position) IsActive() bool {
	return p.Amount.Sign() > 0 || p.RewardDebt.Sign() > 0
}

// Pending returns the reward owed at the given accumulator value.
func (p *Position) Pending(accRewardPerShare *big.Int) (*big.Int, error) {
	accrued, err := fixedpoint.Share(p.Amount, accRewardPerShare)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Sub(accrued, p.RewardDebt)
}

// Settle marks everything owed at accRewardPerShare as paid.
func (p *Position) Settle(accRewardPerShare *big.Int) error {
	debt, err := fixedpoint.Share(p.Amount, accRewardPerShare)
	if err != nil {
		return err
	}
	p.RewardDebt = debt
	return nil
}

// Increase adds amount to the stake.
func (p *Position) Increase(amount *big.Int) error {
	v, err := fixedpoint.Add(p.Amount, amount)
	if err != nil {
		return err
	}
	p.Amount = v
	return nil
}

// Decrease removes amount from the stake, failing with ErrInsufficientStake when it exceeds it.
func (p *Position) Decrease(amount *big.Int) error {
	if p.Amount.Cmp(amount) < 0 {
		return reverts.ErrInsufficientStake
	}
	p.Amount = new(big.Int).Sub(p.Amount, amount)
	return nil
}

// Service stores positions keyed by pool and depositor.
type Service struct {
	positions *solidity.Mapping[thor.Bytes32, *Position]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		positions: solidity.NewMapping[thor.Bytes32, *Position](sctx, slotPositions),
	}
}

func positionKey(pid uint32, depositor thor.Address) thor.Bytes32 {
	return thor.Blake2b(thor.Uint64ToBytes32(uint64(pid)).Bytes(), depositor.Bytes())
}

// Get returns the position, a zero one when the depositor never staked in pid.
func (s *Service) Get(pid uint32, depositor thor.Address) (*Position, error) {
	p, err := s.positions.Get(positionKey(pid, depositor))
	if err != nil {
		return nil, errors.Wrapf(err, "get position %d/%v", pid, depositor)
	}
	p.normalize()
	return p, nil
}

func (s *Service) Set(pid uint32, depositor thor.Address, p *Position) error {
	if err := s.positions.Set(positionKey(pid, depositor), p); err != nil {
		return errors.Wrapf(err, "set position %d/%v", pid, depositor)
	}
	return nil
}
