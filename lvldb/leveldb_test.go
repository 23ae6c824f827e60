// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{CacheSize: 16, OpenFilesCacheCapacity: 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		require.NoError(t, db.Put([]byte("k"), []byte("v")))

		val, err := db.Get([]byte("k"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("v"), val)

		has, err := db.Has([]byte("k"))
		assert.NoError(t, err)
		assert.True(t, has)

		_, err = db.Get([]byte("missing"))
		assert.True(t, db.IsNotFound(err))

		require.NoError(t, db.Delete([]byte("k")))
		has, err = db.Has([]byte("k"))
		assert.NoError(t, err)
		assert.False(t, has)
	}
}

func TestLevelDBBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Delete([]byte("a")))
	assert.Equal(t, 3, bulk.Len())

	has, err := db.Has([]byte("b"))
	assert.NoError(t, err)
	assert.False(t, has, "bulk must not be visible before Write")

	require.NoError(t, bulk.Write())

	val, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), val)

	has, err = db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)
}
