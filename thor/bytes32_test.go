// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("pools"))
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000706f6f6c73", b.String())
	assert.False(t, b.IsZero())
	assert.True(t, Bytes32{}.IsZero())
	assert.Len(t, b.Bytes(), 32)

	// longer input is cropped from the left
	long := make([]byte, 40)
	long[39] = 1
	assert.Equal(t, Uint64ToBytes32(1), BytesToBytes32(long))
}

func TestUint64ToBytes32(t *testing.T) {
	assert.True(t, Uint64ToBytes32(0).IsZero())
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000001ff", Uint64ToBytes32(511).String())
	assert.NotEqual(t, Uint64ToBytes32(1), Uint64ToBytes32(256))
}
