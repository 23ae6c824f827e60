// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/rewardpool/stackedmap"
)

func newMap(src map[string]string) *stackedmap.StackedMap[string, string] {
	return stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})
}

func TestStackedMap(t *testing.T) {
	sm := newMap(map[string]string{"foo": "bar"})
	sm.Push()

	tests := []struct {
		f        func()
		depth    int
		putKey   string
		putValue string
		getKey   string
		want     string
	}{
		{func() {}, 1, "", "", "foo", "bar"},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", "baz"},
		{func() {}, 2, "foo", "baz1", "foo", "baz1"},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", "qux"},
		{func() { sm.Pop() }, 2, "", "", "foo", "baz1"},
		{func() { sm.Pop() }, 1, "", "", "foo", "bar"},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(t, test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		v, ok, err := sm.Get(test.getKey)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, test.want, v)
	}
}

func TestStackedMapPopTo(t *testing.T) {
	sm := newMap(map[string]string{})
	sm.Push()
	sm.Put("a", "1")

	rev := sm.Push()
	sm.Put("a", "2")
	sm.Put("a", "3")
	sm.Put("b", "x")
	sm.Push()
	sm.Put("b", "y")

	sm.PopTo(rev)
	assert.Equal(t, 1, sm.Depth())

	v, ok, _ := sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok, _ = sm.Get("b")
	assert.False(t, ok)
}

func TestStackedMapJournal(t *testing.T) {
	sm := newMap(map[string]string{})
	sm.Push()
	sm.Put("a", "1")
	sm.Push()
	sm.Put("b", "2")
	sm.Put("a", "3")

	var keys, values []string
	sm.Journal(func(k, v string) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []string{"1", "2", "3"}, values)

	var n int
	sm.Journal(func(string, string) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}
