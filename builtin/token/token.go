// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token ledger with an operator-gated supply.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/builtin/operator"
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	logger = log.New("pkg", "token")

	slotBalances    = thor.BytesToBytes32([]byte("balances"))
	slotAllowances  = thor.BytesToBytes32([]byte("allowances"))
	slotTotalSupply = thor.BytesToBytes32([]byte("total-supply"))
	slotDistributed = thor.BytesToBytes32([]byte("reward-distributed"))
)

// TransferHook is invoked after balances moved by Transfer or TransferFrom.
// An error fails the transfer and reverts it.
type TransferHook func(from, to thor.Address, amount *big.Int) error

// Token is a ledger living at address within the shared state.
type Token struct {
	addr        thor.Address
	state       *state.State
	operator    *operator.Operator
	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[thor.Bytes32, *big.Int]
	totalSupply *solidity.Uint256
	distributed *solidity.Uint256
	hook        TransferHook
}

func New(addr thor.Address, st *state.State) *Token {
	sctx := solidity.NewContext(addr, st)
	return &Token{
		addr:        addr,
		state:       st,
		operator:    operator.New(sctx),
		balances:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[thor.Bytes32, *big.Int](sctx, slotAllowances),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		distributed: solidity.NewUint256(sctx, slotDistributed),
	}
}

func (t *Token) Address() thor.Address { return t.addr }

// SetTransferHook installs h, nil removes it. The hook is not persisted.
func (t *Token) SetTransferHook(h TransferHook) { t.hook = h }

func (t *Token) atomic(fn func() error) error {
	rev := t.state.NewCheckpoint()
	if err := fn(); err != nil {
		t.state.RevertTo(rev)
		return err
	}
	return nil
}

// Deploy makes deployer the operator and mints initialSupply to it.
func (t *Token) Deploy(deployer thor.Address, initialSupply *big.Int) error {
	return t.atomic(func() error {
		if err := t.operator.Init(deployer); err != nil {
			return err
		}
		return t.mint(deployer, initialSupply)
	})
}

func (t *Token) Operator() (thor.Address, error) {
	return t.operator.Get()
}

func (t *Token) TransferOperator(caller, next thor.Address) error {
	return t.atomic(func() error {
		return t.operator.Transfer(caller, next)
	})
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func allowanceKey(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes())
}

func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

func (t *Token) Approve(owner, spender thor.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return reverts.ErrOverflow
	}
	return t.allowances.Set(allowanceKey(owner, spender), amount)
}

func (t *Token) move(from, to thor.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return reverts.ErrOverflow
	}
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, toBal.Add(toBal, amount)); err != nil {
		return err
	}
	logger.Debug("transfer", "token", t.addr, "from", from, "to", to, "amount", amount)
	if t.hook != nil {
		return t.hook(from, to, amount)
	}
	return nil
}

func (t *Token) spend(owner, spender thor.Address, amount *big.Int) error {
	allowance, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(math.MaxBig256) == 0 {
		return nil
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientAllowance
	}
	return t.allowances.Set(allowanceKey(owner, spender), allowance.Sub(allowance, amount))
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(from, to thor.Address, amount *big.Int) error {
	return t.atomic(func() error {
		return t.move(from, to, amount)
	})
}

// TransferFrom moves amount on behalf of from, spending spender's allowance.
// An allowance of 2^256-1 is never decreased.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *big.Int) error {
	return t.atomic(func() error {
		if err := t.spend(from, spender, amount); err != nil {
			return err
		}
		return t.move(from, to, amount)
	})
}

func (t *Token) mint(to thor.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return reverts.ErrOverflow
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	return t.balances.Set(to, bal.Add(bal, amount))
}

func (t *Token) burn(from thor.Address, amount *big.Int) error {
	bal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := t.balances.Set(from, bal.Sub(bal, amount)); err != nil {
		return err
	}
	return t.totalSupply.Sub(amount)
}

// Mint creates amount for to. Operator only.
func (t *Token) Mint(caller, to thor.Address, amount *big.Int) error {
	return t.atomic(func() error {
		if err := t.operator.Require(caller); err != nil {
			return err
		}
		return t.mint(to, amount)
	})
}

// Burn destroys amount of the operator's own balance.
func (t *Token) Burn(caller thor.Address, amount *big.Int) error {
	return t.atomic(func() error {
		if err := t.operator.Require(caller); err != nil {
			return err
		}
		return t.burn(caller, amount)
	})
}

// BurnFrom destroys amount of from's balance, spending the operator's allowance.
func (t *Token) BurnFrom(caller, from thor.Address, amount *big.Int) error {
	return t.atomic(func() error {
		if err := t.operator.Require(caller); err != nil {
			return err
		}
		if err := t.spend(from, caller, amount); err != nil {
			return err
		}
		return t.burn(from, amount)
	})
}

// Distributed reports whether the reward allocation was minted.
func (t *Token) Distributed() (bool, error) {
	v, err := t.distributed.Get()
	if err != nil {
		return false, err
	}
	return v.Sign() > 0, nil
}

// DistributeReward mints the reward allocation to pool. It succeeds once per token.
func (t *Token) DistributeReward(caller, pool thor.Address, allocation *big.Int) error {
	return t.atomic(func() error {
		if err := t.operator.Require(caller); err != nil {
			return err
		}
		done, err := t.Distributed()
		if err != nil {
			return err
		}
		if done {
			return reverts.ErrAlreadyDistributed
		}
		if err := t.distributed.Set(big.NewInt(1)); err != nil {
			return err
		}
		if err := t.mint(pool, allocation); err != nil {
			return err
		}
		logger.Info("reward distributed", "token", t.addr, "pool", pool, "amount", allocation)
		return nil
	})
}
