// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/liquid-staking/lsd/cache"
	"github.com/liquid-staking/lsd/kv"
	"github.com/liquid-staking/lsd/stackedmap"
	"github.com/liquid-staking/lsd/types"
)

// StorageBucket is the kv bucket holding contract storage.
const StorageBucket = kv.Bucket("s")

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

// storageKey addresses one slot of one contract.
type storageKey struct {
	addr types.Address
	key  types.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, types.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages contract storage.
type State struct {
	store  kv.Store
	cache  *cache.LRU[storageKey, []byte] // committed values, may be nil
	loads  *singleflight.Group            // shared by states of a stater, may be nil
	sm     *stackedmap.StackedMap[storageKey, []byte]
	onSave func(changes map[storageKey][]byte)
}

// New create state object reading committed values from store.
func New(store kv.Store) *State {
	return newState(StorageBucket.NewStore(store), nil, nil, nil)
}

func newState(
	store kv.Store,
	c *cache.LRU[storageKey, []byte],
	loads *singleflight.Group,
	onSave func(map[storageKey][]byte),
) *State {
	s := &State{
		store:  store,
		cache:  c,
		loads:  loads,
		onSave: onSave,
	}
	s.sm = stackedmap.New(s.loadStorage)
	return s
}

func (s *State) loadStorage(key storageKey) ([]byte, bool, error) {
	load := func(key storageKey) ([]byte, error) {
		if s.loads == nil {
			return kv.GetOrEmpty(s.store, key.dbKey())
		}
		dbKey := key.dbKey()
		v, err, _ := s.loads.Do(string(dbKey), func() (any, error) {
			return kv.GetOrEmpty(s.store, dbKey)
		})
		if err != nil {
			return nil, err
		}
		return v.([]byte), nil
	}

	var (
		val []byte
		err error
	)
	if s.cache != nil {
		val, err = s.cache.GetOrLoad(key, load)
	} else {
		val, err = load(key)
	}
	if err != nil {
		return nil, false, err
	}
	return val, len(val) > 0, nil
}

// GetRawStorage returns the raw value stored at the slot. Empty means unset.
func (s *State) GetRawStorage(addr types.Address, key types.Bytes32) ([]byte, error) {
	raw, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

// SetRawStorage sets the raw value of the slot. An empty value clears the slot.
func (s *State) SetRawStorage(addr types.Address, key types.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr types.Address, key types.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr types.Address, key types.Bytes32, dec func([]byte) error) error {
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
	s.sm.PopTo(revision)
}

// DiscardCheckpoint drops the checkpoint at revision, keeping every change made since.
// Changes can then only be reverted through an earlier checkpoint.
func (s *State) DiscardCheckpoint(revision int) {
	s.sm.MergeTo(revision)
}

// Stage collects the latest value of every slot written since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	s.sm.Journal(func(key storageKey, value []byte) bool {
		changes[key] = value
		return true
	})
	return newStage(s.store, changes, s.onSave)
}
