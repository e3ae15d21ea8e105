// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"golang.org/x/sync/singleflight"

	"github.com/liquid-staking/lsd/cache"
	"github.com/liquid-staking/lsd/kv"
)

// Stater is the state creator.
// States created by the same stater share a cache of committed storage values, and
// concurrent reads of the same missing slot hit the store once.
type Stater struct {
	store kv.Store
	cache *cache.LRU[storageKey, []byte]
	loads singleflight.Group
}

// NewStater create a new stater. cacheSize <= 0 disables the committed value cache.
func NewStater(store kv.Store, cacheSize int) (*Stater, error) {
	s := &Stater{store: StorageBucket.NewStore(store)}
	if cacheSize > 0 {
		c, err := cache.NewLRU[storageKey, []byte](cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = c
	}
	return s, nil
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache, &s.loads, s.onSave)
}

// CacheStats returns the committed value cache stats: whether the hit rate changed since the
// last call, hits and misses.
func (s *Stater) CacheStats() (bool, int64, int64) {
	if s.cache == nil {
		return false, 0, 0
	}
	return s.cache.Stats().Stats()
}

func (s *Stater) onSave(changes map[storageKey][]byte) {
	if s.cache == nil {
		return
	}
	for k, v := range changes {
		s.cache.Add(k, v)
	}
}
