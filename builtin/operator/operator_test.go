// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

func newOperator(t *testing.T) *Operator {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(thor.BytesToAddress([]byte("contract")), state.New(db)))
}

func TestOperator(t *testing.T) {
	alice := thor.BytesToAddress([]byte("alice"))
	bob := thor.BytesToAddress([]byte("bob"))
	op := newOperator(t)

	current, err := op.Get()
	require.NoError(t, err)
	assert.True(t, current.IsZero())
	assert.ErrorIs(t, op.Require(thor.Address{}), reverts.ErrUnauthorized)

	assert.ErrorIs(t, op.Init(thor.Address{}), reverts.ErrZeroAddress)
	require.NoError(t, op.Init(alice))
	assert.ErrorIs(t, op.Init(bob), reverts.ErrAlreadyInitialized)

	assert.NoError(t, op.Require(alice))
	assert.ErrorIs(t, op.Require(bob), reverts.ErrUnauthorized)

	assert.ErrorIs(t, op.Transfer(bob, bob), reverts.ErrUnauthorized)
	assert.ErrorIs(t, op.Transfer(alice, thor.Address{}), reverts.ErrZeroAddress)
	require.NoError(t, op.Transfer(alice, bob))

	current, err = op.Get()
	require.NoError(t, err)
	assert.Equal(t, bob, current)
	assert.ErrorIs(t, op.Require(alice), reverts.ErrUnauthorized)
}
