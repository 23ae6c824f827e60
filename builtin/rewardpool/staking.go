// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math/big"
	"strconv"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/fixedpoint"
	"github.com/vechain/rewardpool/builtin/rewardpool/pool"
	"github.com/vechain/rewardpool/builtin/rewardpool/position"
	"github.com/vechain/rewardpool/thor"
)

// Deposit stakes amount of the pool token for depositor, paying out the reward pending
// on the existing stake first. A zero amount only harvests.
func (rp *RewardPool) Deposit(block uint64, pid uint32, depositor thor.Address, amount *big.Int) error {
	return rp.exec("deposit", func() error {
		if amount.Sign() < 0 {
			return reverts.ErrOverflow
		}
		p, pos, err := rp.accrue(block, pid, depositor)
		if err != nil {
			return err
		}
		pending := new(big.Int)
		if pos.Amount.Sign() > 0 {
			if pending, err = pos.Pending(p.AccRewardPerShare); err != nil {
				return err
			}
		}
		if err := pos.Increase(amount); err != nil {
			return err
		}
		staked, err := fixedpoint.Add(p.TotalStaked, amount)
		if err != nil {
			return err
		}
		p.TotalStaked = staked
		if err := rp.store(pid, depositor, p, pos); err != nil {
			return err
		}

		if err := rp.payReward(depositor, pending); err != nil {
			return err
		}
		if amount.Sign() > 0 {
			ledger, err := rp.ledger(p.Token)
			if err != nil {
				return err
			}
			if err := ledger.TransferFrom(rp.addr, depositor, rp.addr, amount); err != nil {
				return err
			}
		}
		logger.Debug("deposit", "block", block, "pid", pid, "depositor", depositor, "amount", amount, "reward", pending)
		return nil
	})
}

// Withdraw returns amount of stake to depositor together with the pending reward.
// Withdrawing more than the stake fails with ErrInsufficientStake and changes nothing.
func (rp *RewardPool) Withdraw(block uint64, pid uint32, depositor thor.Address, amount *big.Int) error {
	return rp.exec("withdraw", func() error {
		if amount.Sign() < 0 {
			return reverts.ErrOverflow
		}
		if _, err := rp.pools.Get(pid); err != nil {
			return err
		}
		staked, err := rp.positions.Get(pid, depositor)
		if err != nil {
			return err
		}
		if staked.Amount.Cmp(amount) < 0 {
			return reverts.ErrInsufficientStake
		}
		p, pos, err := rp.accrue(block, pid, depositor)
		if err != nil {
			return err
		}
		pending, err := pos.Pending(p.AccRewardPerShare)
		if err != nil {
			return err
		}
		if err := pos.Decrease(amount); err != nil {
			return err
		}
		p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)
		if err := rp.store(pid, depositor, p, pos); err != nil {
			return err
		}

		if err := rp.payReward(depositor, pending); err != nil {
			return err
		}
		if amount.Sign() > 0 {
			ledger, err := rp.ledger(p.Token)
			if err != nil {
				return err
			}
			if err := ledger.Transfer(rp.addr, depositor, amount); err != nil {
				return err
			}
		}
		logger.Debug("withdraw", "block", block, "pid", pid, "depositor", depositor, "amount", amount, "reward", pending)
		return nil
	})
}

// EmergencyWithdraw returns the whole stake of depositor without any reward.
// The pending reward is given up.
func (rp *RewardPool) EmergencyWithdraw(block uint64, pid uint32, depositor thor.Address) error {
	return rp.exec("emergencyWithdraw", func() error {
		p, err := rp.pools.Get(pid)
		if err != nil {
			return err
		}
		pos, err := rp.positions.Get(pid, depositor)
		if err != nil {
			return err
		}
		amount := pos.Amount
		p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)
		if err := rp.store(pid, depositor, p, &position.Position{Amount: new(big.Int), RewardDebt: new(big.Int)}); err != nil {
			return err
		}
		if amount.Sign() > 0 {
			ledger, err := rp.ledger(p.Token)
			if err != nil {
				return err
			}
			if err := ledger.Transfer(rp.addr, depositor, amount); err != nil {
				return err
			}
		}
		logger.Debug("emergency withdraw", "block", block, "pid", pid, "depositor", depositor, "amount", amount)
		return nil
	})
}

// accrue brings pid up to block and loads the depositor's position.
func (rp *RewardPool) accrue(block uint64, pid uint32, depositor thor.Address) (*pool.Pool, *position.Position, error) {
	w, err := rp.Window()
	if err != nil {
		return nil, nil, err
	}
	p, err := rp.pools.Accrue(pid, w, block)
	if err != nil {
		return nil, nil, err
	}
	metricBlock().Set(float64(block))
	pos, err := rp.positions.Get(pid, depositor)
	if err != nil {
		return nil, nil, err
	}
	return p, pos, nil
}

// store settles pos against the pool accumulator and writes both back.
func (rp *RewardPool) store(pid uint32, depositor thor.Address, p *pool.Pool, pos *position.Position) error {
	if err := pos.Settle(p.AccRewardPerShare); err != nil {
		return err
	}
	if err := rp.pools.Update(pid, p); err != nil {
		return err
	}
	if err := rp.positions.Set(pid, depositor, pos); err != nil {
		return err
	}
	metricStaked().SetWithLabel(tokenUnits(p.TotalStaked), map[string]string{"pid": strconv.FormatUint(uint64(pid), 10)})
	return nil
}

// payReward sends amount of the reward token to payee, capped at what the pool holds.
func (rp *RewardPool) payReward(payee thor.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	token, err := rp.RewardToken()
	if err != nil {
		return err
	}
	ledger, err := rp.ledger(token)
	if err != nil {
		return err
	}
	balance, err := ledger.BalanceOf(rp.addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		logger.Warn("reward balance short", "owed", amount, "balance", balance)
		amount = balance
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := ledger.Transfer(rp.addr, payee, amount); err != nil {
		return err
	}
	metricRewardPaid().Add(tokenUnits(amount))
	return nil
}
