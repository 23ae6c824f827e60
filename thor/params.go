// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
)

// Constants of the chain the reward pools are deployed on.
const (
	BlockInterval uint64 = 3 // seconds between two consecutive blocks
	BlocksPerDay  uint64 = 24 * 60 * 60 / BlockInterval

	// RecoverGracePeriod is the number of blocks after the end of a reward window during
	// which reward and pool tokens cannot be swept by the operator.
	RecoverGracePeriod = BlocksPerDay * 90
)

// Ether is 1e18, the base unit of 18-decimals tokens.
var Ether = big.NewInt(1e18)

// EtherOf returns n * 1e18.
func EtherOf(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Ether)
}
