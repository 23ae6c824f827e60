// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotPools       = thor.BytesToBytes32([]byte("pools"))
	slotPoolCount   = thor.BytesToBytes32([]byte("pool-count"))
	slotTotalWeight = thor.BytesToBytes32([]byte("total-alloc-weight"))
	slotTokenIndex  = thor.BytesToBytes32([]byte("pool-token-index"))
)

// Service is the ordered registry of pools. Pool ids are creation indexes and are never reused.
type Service struct {
	pools       *solidity.Mapping[thor.Bytes32, *Pool]
	tokenIndex  *solidity.Mapping[thor.Address, *big.Int] // token -> pid + 1
	count       *solidity.Uint256
	totalWeight *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		pools:       solidity.NewMapping[thor.Bytes32, *Pool](sctx, slotPools),
		tokenIndex:  solidity.NewMapping[thor.Address, *big.Int](sctx, slotTokenIndex),
		count:       solidity.NewUint256(sctx, slotPoolCount),
		totalWeight: solidity.NewUint256(sctx, slotTotalWeight),
	}
}

func poolKey(pid uint32) thor.Bytes32 {
	return thor.Uint64ToBytes32(uint64(pid))
}

// Len returns the number of listed pools.
func (s *Service) Len() (uint32, error) {
	n, err := s.count.Get()
	if err != nil {
		return 0, errors.Wrap(err, "pool count")
	}
	return uint32(n.Uint64()), nil
}

// TotalAllocWeight returns the sum of all pool weights.
func (s *Service) TotalAllocWeight() (uint64, error) {
	n, err := s.totalWeight.Get()
	if err != nil {
		return 0, errors.Wrap(err, "total alloc weight")
	}
	return n.Uint64(), nil
}

// Get returns the pool, or ErrInvalidPool when pid was never assigned.
func (s *Service) Get(pid uint32) (*Pool, error) {
	p, err := s.pools.Get(poolKey(pid))
	if err != nil {
		return nil, errors.Wrapf(err, "get pool %d", pid)
	}
	if p.IsEmpty() {
		return nil, reverts.ErrInvalidPool
	}
	p.normalize()
	return p, nil
}

// Update persists a pool previously returned by Get.
func (s *Service) Update(pid uint32, p *Pool) error {
	if err := s.pools.Set(poolKey(pid), p); err != nil {
		return errors.Wrapf(err, "set pool %d", pid)
	}
	return nil
}

// Lookup returns the pid listing token.
func (s *Service) Lookup(token thor.Address) (uint32, bool, error) {
	idx, err := s.tokenIndex.Get(token)
	if err != nil {
		return 0, false, errors.Wrap(err, "token index")
	}
	if idx.Sign() == 0 {
		return 0, false, nil
	}
	return uint32(idx.Uint64() - 1), true, nil
}

// Add appends a pool for token and returns its id.
func (s *Service) Add(token thor.Address, weight uint32, lastRewardBlock uint64) (uint32, error) {
	if token.IsZero() {
		return 0, reverts.ErrZeroAddress
	}
	if _, listed, err := s.Lookup(token); err != nil {
		return 0, err
	} else if listed {
		return 0, reverts.ErrDuplicatePool
	}

	pid, err := s.Len()
	if err != nil {
		return 0, err
	}
	p := &Pool{
		Token:             token,
		AllocWeight:       weight,
		AccRewardPerShare: new(big.Int),
		LastRewardBlock:   lastRewardBlock,
		TotalStaked:       new(big.Int),
	}
	if err := s.Update(pid, p); err != nil {
		return 0, err
	}
	if err := s.tokenIndex.Set(token, new(big.Int).SetUint64(uint64(pid)+1)); err != nil {
		return 0, errors.Wrap(err, "token index")
	}
	if err := s.count.Add(big.NewInt(1)); err != nil {
		return 0, err
	}
	if err := s.totalWeight.Add(new(big.Int).SetUint64(uint64(weight))); err != nil {
		return 0, err
	}
	return pid, nil
}

// SetWeight changes a pool's weight and the total weight. Past accrual is untouched.
func (s *Service) SetWeight(pid uint32, weight uint32) error {
	p, err := s.Get(pid)
	if err != nil {
		return err
	}
	if err := s.totalWeight.Sub(new(big.Int).SetUint64(uint64(p.AllocWeight))); err != nil {
		return err
	}
	if err := s.totalWeight.Add(new(big.Int).SetUint64(uint64(weight))); err != nil {
		return err
	}
	p.AllocWeight = weight
	return s.Update(pid, p)
}

// Accrue brings one pool up to block and persists it.
func (s *Service) Accrue(pid uint32, w *window.Window, block uint64) (*Pool, error) {
	p, err := s.Get(pid)
	if err != nil {
		return nil, err
	}
	total, err := s.TotalAllocWeight()
	if err != nil {
		return nil, err
	}
	if err := p.Accrue(w, total, block); err != nil {
		return nil, err
	}
	if err := s.Update(pid, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AccrueAll brings every pool up to block.
func (s *Service) AccrueAll(w *window.Window, block uint64) error {
	n, err := s.Len()
	if err != nil {
		return err
	}
	for pid := range n {
		if _, err := s.Accrue(pid, w, block); err != nil {
			return err
		}
	}
	return nil
}

// Projected returns the pool's accumulator as of block without writing anything.
func (s *Service) Projected(pid uint32, w *window.Window, block uint64) (*Pool, *big.Int, error) {
	p, err := s.Get(pid)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.TotalAllocWeight()
	if err != nil {
		return nil, nil, err
	}
	acc, err := p.Projected(w, total, block)
	if err != nil {
		return nil, nil, err
	}
	return p, acc, nil
}
