// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math/big"

	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/thor"
)

var (
	metricOperations = metrics.LazyLoadCounterVec("operations_count", []string{"op", "status"})
	metricStaked     = metrics.LazyLoadGaugeVec("pool_staked_tokens", []string{"pid"})
	metricRewardPaid = metrics.LazyLoadGauge("reward_paid_tokens")
	metricBlock      = metrics.LazyLoadGauge("block")
)

// tokenUnits converts an 18-decimals amount into whole tokens for reporting.
func tokenUnits(amount *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), new(big.Float).SetInt(thor.Ether)).Float64()
	return f
}
