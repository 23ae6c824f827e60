// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket namespaces a store. Every key written through it is prefixed with the bucket name,
// so several reward pool deployments can share one database.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewStore returns the view of src restricted to b.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucket: b, src: src}
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.bucket.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.bucket.key(key)) }
func (s *bucketStore) Put(key, val []byte) error      { return s.src.Put(s.bucket.key(key), val) }
func (s *bucketStore) Delete(key []byte) error        { return s.src.Delete(s.bucket.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }

func (s *bucketStore) Bulk() Bulk {
	return &bucketBulk{bucket: s.bucket, Bulk: s.src.Bulk()}
}

type bucketBulk struct {
	Bulk
	bucket Bucket
}

func (b *bucketBulk) Put(key, val []byte) error { return b.Bulk.Put(b.bucket.key(key), val) }
func (b *bucketBulk) Delete(key []byte) error   { return b.Bulk.Delete(b.bucket.key(key)) }
