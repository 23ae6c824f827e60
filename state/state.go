// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/stackedmap"
	"github.com/vechain/rewardpool/thor"
)

const cacheSize = 4096

var logger = log.New("pkg", "state")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// State manages contract storage.
// It is not safe for concurrent use.
type State struct {
	store kv.Store
	cache *lru.Cache // committed values, keyed by storageKey
	sm    *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object backed by the given store.
func New(store kv.Store) *State {
	cache, _ := lru.New(cacheSize)
	s := &State{
		store: store,
		cache: cache,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.committed)
	// base level takes writes made outside of any checkpoint
	s.sm.Push()
}

// committed implements stackedmap.MapGetter.
func (s *State) committed(key storageKey) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]byte), true, nil
	}
	val, err := s.store.Get(key.bytes())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		val = nil
	}
	s.cache.Add(key, val)
	return val, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
// An unset key yields an empty value.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage set storage value in rlp raw. An empty value clears the key.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	// never drop the base level
	s.sm.PopTo(max(revision, 1))
}

// Commit flushes all changes since the last commit into the store in one bulk write.
// Outstanding checkpoints are invalidated. It returns the number of keys written.
func (s *State) Commit() (int, error) {
	latest := make(map[storageKey][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		latest[k] = v
		return true
	})

	bulk := s.store.Bulk()
	for k, v := range latest {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.bytes())
		} else {
			err = bulk.Put(k.bytes(), v)
		}
		if err != nil {
			return 0, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return 0, &Error{err}
	}
	for k, v := range latest {
		s.cache.Add(k, v)
	}
	s.reset()

	logger.Debug("state committed", "keys", len(latest))
	return len(latest), nil
}
