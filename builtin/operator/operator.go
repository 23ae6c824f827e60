// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operator

import (
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/thor"
)

var (
	logger       = log.New("pkg", "operator")
	slotOperator = thor.BytesToBytes32([]byte("operator"))
)

// Operator is the administrative capability of a contract.
// At most one address holds it; handing it over revokes the previous holder in the same call.
type Operator struct {
	contract thor.Address
	holder   *solidity.Address
}

func New(sctx *solidity.Context) *Operator {
	return &Operator{
		contract: sctx.Address(),
		holder:   solidity.NewAddress(sctx, slotOperator),
	}
}

// Get returns the current operator, zero when unset.
func (o *Operator) Get() (thor.Address, error) {
	return o.holder.Get()
}

// Init grants the capability to the deployer. It fails once an operator exists.
func (o *Operator) Init(operator thor.Address) error {
	if operator.IsZero() {
		return reverts.ErrZeroAddress
	}
	current, err := o.holder.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return reverts.ErrAlreadyInitialized
	}
	o.holder.Set(&operator)
	return nil
}

// Require fails with ErrUnauthorized unless caller holds the capability.
func (o *Operator) Require(caller thor.Address) error {
	current, err := o.holder.Get()
	if err != nil {
		return err
	}
	if current.IsZero() || current != caller {
		return reverts.ErrUnauthorized
	}
	return nil
}

// Transfer hands the capability from caller to next.
func (o *Operator) Transfer(caller, next thor.Address) error {
	if err := o.Require(caller); err != nil {
		return err
	}
	if next.IsZero() {
		return reverts.ErrZeroAddress
	}
	o.holder.Set(&next)
	logger.Info("operator transferred", "contract", o.contract, "from", caller, "to", next)
	return nil
}
