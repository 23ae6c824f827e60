// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewardpool/window"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

func TestRegistry(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	reg := NewRegistry(state.New(db))
	addr := thor.BytesToAddress([]byte("mee"))

	_, ok := reg.Ledger(addr)
	assert.False(t, ok)

	tok := reg.Token(addr)
	assert.Same(t, tok, reg.Token(addr))

	ledger, ok := reg.Ledger(addr)
	require.True(t, ok)
	assert.Equal(t, tok, ledger)
}

func TestRegistrySharedState(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	reg := NewRegistry(state.New(db))
	op := thor.BytesToAddress([]byte("operator"))
	mee := thor.BytesToAddress([]byte("mee"))
	poolAddr := thor.BytesToAddress([]byte("pool"))

	require.NoError(t, reg.Token(mee).Deploy(op, big.NewInt(0)))
	w, err := window.New(10, 20, big.NewInt(100))
	require.NoError(t, err)
	require.NoError(t, reg.RewardPool(poolAddr).Initialize(op, mee, w))
	require.NoError(t, reg.Token(mee).DistributeReward(op, poolAddr, big.NewInt(100)))

	_, err = reg.State().Commit()
	require.NoError(t, err)

	reopened := NewRegistry(state.New(db))
	bal, err := reopened.Token(mee).BalanceOf(poolAddr)
	require.NoError(t, err)
	assert.Equal(t, "100", bal.String())

	total, err := reopened.RewardPool(poolAddr).TotalRewards()
	require.NoError(t, err)
	assert.Equal(t, "100", total.String())
}

func TestRegistryRewardPoolGuard(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	reg := NewRegistry(state.New(db))
	op := thor.BytesToAddress([]byte("operator"))
	bob := thor.BytesToAddress([]byte("bob"))
	mee := thor.BytesToAddress([]byte("mee"))
	dai := thor.BytesToAddress([]byte("dai"))
	poolAddr := thor.BytesToAddress([]byte("pool"))

	assert.Same(t, reg.RewardPool(poolAddr), reg.RewardPool(poolAddr))

	require.NoError(t, reg.Token(mee).Deploy(op, big.NewInt(0)))
	require.NoError(t, reg.Token(dai).Deploy(op, thor.EtherOf(100)))
	require.NoError(t, reg.Token(dai).Transfer(op, bob, thor.EtherOf(100)))
	require.NoError(t, reg.Token(dai).Approve(bob, poolAddr, thor.EtherOf(100)))

	w, err := window.New(10, 288010, thor.EtherOf(100))
	require.NoError(t, err)
	require.NoError(t, reg.RewardPool(poolAddr).Initialize(op, mee, w))
	_, err = reg.RewardPool(poolAddr).Add(op, 6, 8000, dai, false, 0)
	require.NoError(t, err)

	var inner error
	reg.Token(dai).SetTransferHook(func(from, to thor.Address, amount *big.Int) error {
		if to == poolAddr {
			inner = reg.RewardPool(poolAddr).Deposit(12, 0, bob, big.NewInt(1))
		}
		return nil
	})
	require.NoError(t, reg.RewardPool(poolAddr).Deposit(12, 0, bob, thor.EtherOf(10)))
	assert.ErrorIs(t, inner, reverts.ErrReentrant)

	pos, err := reg.RewardPool(poolAddr).UserInfo(0, bob)
	require.NoError(t, err)
	assert.Equal(t, thor.EtherOf(10).String(), pos.Amount.String())
}
