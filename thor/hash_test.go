// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func BenchmarkBlake2b(b *testing.B) {
	data := make([]byte, 100)

	rng := rand.New(rand.NewPCG(1, 0)) //#nosec G404
	for i := range data {
		data[i] = byte(rng.Uint64())
	}
	b.Run("single", func(b *testing.B) {
		for b.Loop() {
			Blake2b(data)
		}
	})
	b.Run("split", func(b *testing.B) {
		for b.Loop() {
			Blake2b(data[:32], data[32:])
		}
	})
}

func TestBlake2b(t *testing.T) {
	single := Blake2b([]byte("multipledata"))
	assert.Equal(t, Bytes32(blake2b.Sum256([]byte("multipledata"))), single)

	// the parts are hashed as one concatenated input
	multi := Blake2b([]byte("multi"), []byte("ple"), []byte("data"))
	assert.Equal(t, single, multi)

	// pooled state is reset between calls
	assert.Equal(t, multi, Blake2b([]byte("multi"), []byte("ple"), []byte("data")))
	assert.NotEqual(t, single, Blake2b([]byte("other"), []byte("data")))
}
