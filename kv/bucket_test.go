// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func (m mem) Bulk() Bulk {
	return &memBulk{m: m}
}

type memBulk struct {
	m   mem
	ops []func()
}

func (b *memBulk) Put(k, v []byte) error {
	key, val := string(k), string(v)
	b.ops = append(b.ops, func() { b.m[key] = val })
	return nil
}

func (b *memBulk) Delete(k []byte) error {
	key := string(k)
	b.ops = append(b.ops, func() { delete(b.m, key) })
	return nil
}

func (b *memBulk) Len() int { return len(b.ops) }

func (b *memBulk) Write() error {
	for _, op := range b.ops {
		op()
	}
	b.ops = nil
	return nil
}

func TestBucketGet(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b    Bucket
		key  string
		want string
	}{
		{Bucket(""), "k1", "v1"},
		{Bucket(""), "k2", "v2"},
		{Bucket("k"), "k1", ""},
		{Bucket("k"), "1", "v1"},
		{Bucket("k"), "2", "v2"},
		{Bucket("k1"), "", "v1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.b)+"/"+tt.key, func(t *testing.T) {
			got, _ := tt.b.NewStore(m).Get([]byte(tt.key))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestBucketsAreDisjoint(t *testing.T) {
	m := mem{}
	dev := Bucket("dev/").NewStore(m)
	test := Bucket("test/").NewStore(m)

	require.NoError(t, dev.Put([]byte("k"), []byte("dev")))
	require.NoError(t, test.Put([]byte("k"), []byte("test")))

	v, err := dev.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "dev", string(v))

	require.NoError(t, test.Delete([]byte("k")))
	_, err = test.Get([]byte("k"))
	assert.True(t, test.IsNotFound(err))
	assert.Equal(t, mem{"dev/k": "dev"}, m)
}

func TestBucketStore(t *testing.T) {
	m := mem{}
	store := Bucket("s").NewStore(m)

	require.NoError(t, store.Put([]byte("a"), []byte("1")))
	assert.Equal(t, "1", m["sa"])

	has, err := store.Has([]byte("a"))
	assert.NoError(t, err)
	assert.True(t, has)

	_, err = store.Get([]byte("b"))
	assert.True(t, store.IsNotFound(err))

	bulk := store.Bulk()
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Delete([]byte("a")))
	assert.Equal(t, 2, bulk.Len())
	require.NoError(t, bulk.Write())

	assert.Equal(t, mem{"sb": "2"}, m)
}
