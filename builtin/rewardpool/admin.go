// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/thor"
)

// Add lists token as a new pool and returns its id. Operator only.
// lastRewardBlock overrides where accrual starts; zero means as early as allowed,
// which is the window start before it opened and block afterwards.
func (rp *RewardPool) Add(caller thor.Address, block uint64, weight uint32, token thor.Address, withUpdate bool, lastRewardBlock uint64) (uint32, error) {
	var pid uint32
	err := rp.exec("add", func() error {
		if err := rp.operator.Require(caller); err != nil {
			return err
		}
		w, err := rp.Window()
		if err != nil {
			return err
		}
		if withUpdate {
			if err := rp.pools.AccrueAll(w, block); err != nil {
				return err
			}
		}
		if block < w.StartBlock() {
			lastRewardBlock = max(lastRewardBlock, w.StartBlock())
		} else {
			lastRewardBlock = max(lastRewardBlock, block)
		}
		pid, err = rp.pools.Add(token, weight, lastRewardBlock)
		if err != nil {
			return err
		}
		logger.Info("pool added", "pid", pid, "token", token, "weight", weight, "lastRewardBlock", lastRewardBlock)
		return nil
	})
	return pid, err
}

// Set changes the weight of pid. Accrual already recorded is kept; only the future rate moves.
func (rp *RewardPool) Set(caller thor.Address, block uint64, pid uint32, weight uint32, withUpdate bool) error {
	return rp.exec("set", func() error {
		if err := rp.operator.Require(caller); err != nil {
			return err
		}
		if withUpdate {
			w, err := rp.Window()
			if err != nil {
				return err
			}
			if err := rp.pools.AccrueAll(w, block); err != nil {
				return err
			}
		}
		if err := rp.pools.SetWeight(pid, weight); err != nil {
			return err
		}
		logger.Info("pool weight set", "pid", pid, "weight", weight)
		return nil
	})
}

// MassUpdate accrues every pool up to block.
func (rp *RewardPool) MassUpdate(block uint64) error {
	return rp.exec("massUpdate", func() error {
		w, err := rp.Window()
		if err != nil {
			return err
		}
		return rp.pools.AccrueAll(w, block)
	})
}

func (rp *RewardPool) TransferOperator(caller, next thor.Address) error {
	return rp.exec("transferOperator", func() error {
		return rp.operator.Transfer(caller, next)
	})
}

// GovernanceRecoverUnsupported sends amount of token held by the pool to to. Operator only.
// The reward token and listed pool tokens stay locked until thor.RecoverGracePeriod blocks
// after the window end.
func (rp *RewardPool) GovernanceRecoverUnsupported(caller thor.Address, block uint64, token thor.Address, amount *big.Int, to thor.Address) error {
	return rp.exec("recover", func() error {
		if err := rp.operator.Require(caller); err != nil {
			return err
		}
		w, err := rp.Window()
		if err != nil {
			return err
		}
		if block < w.EndBlock()+thor.RecoverGracePeriod {
			rewardToken, err := rp.RewardToken()
			if err != nil {
				return err
			}
			if token == rewardToken {
				return reverts.ErrRecoverForbidden
			}
			_, listed, err := rp.pools.Lookup(token)
			if err != nil {
				return err
			}
			if listed {
				return reverts.ErrRecoverForbidden
			}
		}
		ledger, err := rp.ledger(token)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(rp.addr, to, amount); err != nil {
			return err
		}
		logger.Info("token recovered", "token", token, "amount", amount, "to", to)
		return nil
	})
}
