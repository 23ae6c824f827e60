// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewardpool distributes a fixed reward budget, emitted linearly over a block window,
// across weighted staking pools and, inside each pool, across depositors by stake.
package rewardpool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/operator"
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/pool"
	"github.com/vechain/rewardpool/builtin/rewardpool/position"
	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.New("pkg", "rewardpool")

// Ledger is the token surface the engine moves stake and reward through.
type Ledger interface {
	BalanceOf(addr thor.Address) (*big.Int, error)
	Transfer(from, to thor.Address, amount *big.Int) error
	TransferFrom(spender, from, to thor.Address, amount *big.Int) error
}

// LedgerResolver returns the ledger of a token address.
type LedgerResolver func(token thor.Address) (Ledger, bool)

// RewardPool is the engine bound to one contract address. Every mutating call is atomic:
// on error all storage writes made by it, token ledgers included, are reverted.
// A RewardPool is not safe for concurrent use.
type RewardPool struct {
	addr      thor.Address
	state     *state.State
	ledgers   LedgerResolver
	operator  *operator.Operator
	params    *params
	pools     *pool.Service
	positions *position.Service
	entered   bool
}

func New(addr thor.Address, st *state.State, ledgers LedgerResolver) *RewardPool {
	sctx := solidity.NewContext(addr, st)
	return &RewardPool{
		addr:      addr,
		state:     st,
		ledgers:   ledgers,
		operator:  operator.New(sctx),
		params:    newParams(sctx),
		pools:     pool.New(sctx),
		positions: position.New(sctx),
	}
}

func (rp *RewardPool) Address() thor.Address { return rp.addr }

// exec runs fn under a checkpoint and the reentrancy guard.
func (rp *RewardPool) exec(op string, fn func() error) error {
	if rp.entered {
		return reverts.ErrReentrant
	}
	rp.entered = true
	defer func() { rp.entered = false }()

	rev := rp.state.NewCheckpoint()
	if err := fn(); err != nil {
		rp.state.RevertTo(rev)
		logger.Warn("operation rejected", "op", op, "err", err)
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "status": "rejected"})
		return err
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "status": "ok"})
	return nil
}

func (rp *RewardPool) ledger(token thor.Address) (Ledger, error) {
	l, ok := rp.ledgers(token)
	if !ok {
		return nil, errors.Errorf("no ledger for token %v", token)
	}
	return l, nil
}

// Initialize binds the reward token and window and makes deployer the operator.
func (rp *RewardPool) Initialize(deployer, rewardToken thor.Address, w *window.Window) error {
	return rp.exec("initialize", func() error {
		if rewardToken.IsZero() {
			return reverts.ErrZeroAddress
		}
		if err := rp.operator.Init(deployer); err != nil {
			return err
		}
		if err := rp.params.setWindow(w); err != nil {
			return err
		}
		rp.params.rewardToken.Set(&rewardToken)
		logger.Info("reward pool initialized",
			"address", rp.addr,
			"rewardToken", rewardToken,
			"start", w.StartBlock(),
			"end", w.EndBlock(),
			"total", w.TotalRewards(),
		)
		return nil
	})
}

// Window returns the reward window, ErrNotInitialized before Initialize.
func (rp *RewardPool) Window() (*window.Window, error) {
	return rp.params.window()
}

func (rp *RewardPool) RewardToken() (thor.Address, error) {
	return rp.params.rewardToken.Get()
}

func (rp *RewardPool) Operator() (thor.Address, error) {
	return rp.operator.Get()
}

func (rp *RewardPool) StartBlock() (uint64, error) {
	w, err := rp.Window()
	if err != nil {
		return 0, err
	}
	return w.StartBlock(), nil
}

func (rp *RewardPool) EndBlock() (uint64, error) {
	w, err := rp.Window()
	if err != nil {
		return 0, err
	}
	return w.EndBlock(), nil
}

func (rp *RewardPool) TotalRewards() (*big.Int, error) {
	w, err := rp.Window()
	if err != nil {
		return nil, err
	}
	return w.TotalRewards(), nil
}

func (rp *RewardPool) RewardPerBlock() (*big.Int, error) {
	w, err := rp.Window()
	if err != nil {
		return nil, err
	}
	return w.RewardPerBlock(), nil
}

// GeneratedReward returns the reward emitted across [from, to).
func (rp *RewardPool) GeneratedReward(from, to uint64) (*big.Int, error) {
	w, err := rp.Window()
	if err != nil {
		return nil, err
	}
	return w.Generated(from, to), nil
}

func (rp *RewardPool) PoolLength() (uint32, error) {
	return rp.pools.Len()
}

func (rp *RewardPool) TotalAllocWeight() (uint64, error) {
	return rp.pools.TotalAllocWeight()
}

func (rp *RewardPool) PoolInfo(pid uint32) (*pool.Pool, error) {
	return rp.pools.Get(pid)
}

func (rp *RewardPool) UserInfo(pid uint32, depositor thor.Address) (*position.Position, error) {
	if _, err := rp.pools.Get(pid); err != nil {
		return nil, err
	}
	return rp.positions.Get(pid, depositor)
}

// PendingReward returns what depositor could harvest from pid at block. It writes nothing.
func (rp *RewardPool) PendingReward(block uint64, pid uint32, depositor thor.Address) (*big.Int, error) {
	w, err := rp.Window()
	if err != nil {
		return nil, err
	}
	_, acc, err := rp.pools.Projected(pid, w, block)
	if err != nil {
		return nil, err
	}
	pos, err := rp.positions.Get(pid, depositor)
	if err != nil {
		return nil, err
	}
	return pos.Pending(acc)
}
