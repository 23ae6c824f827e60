// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deployment

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin"
	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/builtin/token"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.New("pkg", "deployment")

// Attach binds the network's tokens and returns its engine, without writing state.
func Attach(reg *builtin.Registry, n *Network) *rewardpool.RewardPool {
	reg.Token(n.RewardToken)
	for _, p := range n.Pools {
		reg.Token(p.Token)
	}
	return reg.RewardPool(n.RewardPool)
}

// ensureToken deploys the ledger at t with operator as its operator, unless it exists.
func ensureToken(t *token.Token, operator thor.Address) error {
	current, err := t.Operator()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return nil
	}
	if err := t.Deploy(operator, new(big.Int)); err != nil {
		return errors.WithMessagef(err, "deploy token %v", t.Address())
	}
	logger.Debug("token deployed", "address", t.Address(), "operator", operator)
	return nil
}

// Deploy replays the network setup at block: it deploys missing tokens, initializes the
// engine, funds it with the window budget, lists every pool and finally hands the
// operator role to the DAO. Nothing is written unless every step succeeds.
func Deploy(reg *builtin.Registry, n *Network, block uint64) (*rewardpool.RewardPool, error) {
	st := reg.State()
	rev := st.NewCheckpoint()

	rp, err := deploy(reg, n, block)
	if err != nil {
		st.RevertTo(rev)
		return nil, err
	}
	logger.Info("reward pool deployed",
		"network", n.Name,
		"address", rp.Address(),
		"start", n.Window.StartBlock(),
		"end", n.Window.EndBlock(),
		"pools", len(n.Pools),
	)
	return rp, nil
}

func deploy(reg *builtin.Registry, n *Network, block uint64) (*rewardpool.RewardPool, error) {
	rp := Attach(reg, n)

	if err := ensureToken(reg.Token(n.RewardToken), n.Operator); err != nil {
		return nil, err
	}
	for _, p := range n.Pools {
		if err := ensureToken(reg.Token(p.Token), n.Operator); err != nil {
			return nil, err
		}
	}

	if err := rp.Initialize(n.Operator, n.RewardToken, n.Window); err != nil {
		return nil, errors.WithMessage(err, "initialize reward pool")
	}
	if err := reg.Token(n.RewardToken).DistributeReward(n.Operator, rp.Address(), n.Window.TotalRewards()); err != nil {
		return nil, errors.WithMessage(err, "fund reward pool")
	}
	for _, p := range n.Pools {
		pid, err := rp.Add(n.Operator, block, p.Weight, p.Token, false, 0)
		if err != nil {
			return nil, errors.WithMessagef(err, "add pool %s", p.Name)
		}
		logger.Debug("pool listed", "name", p.Name, "pid", pid, "weight", p.Weight)
	}
	if !n.DAO.IsZero() && n.DAO != n.Operator {
		if err := rp.TransferOperator(n.Operator, n.DAO); err != nil {
			return nil, errors.WithMessage(err, "hand over operator")
		}
	}
	return rp, nil
}
