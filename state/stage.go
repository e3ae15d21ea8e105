// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/liquid-staking/lsd/kv"
	"github.com/liquid-staking/lsd/types"
)

// Stage abstracts changes on the storage, which can be committed.
type Stage struct {
	store   kv.Store
	changes map[storageKey][]byte
	onSave  func(map[storageKey][]byte)
}

func newStage(store kv.Store, changes map[storageKey][]byte, onSave func(map[storageKey][]byte)) *Stage {
	return &Stage{store: store, changes: changes, onSave: onSave}
}

// Len returns count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes a digest of the change set, stable for identical changes.
func (s *Stage) Hash() types.Bytes32 {
	keys := make([][]byte, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k.dbKey())
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})

	data := make([][]byte, 0, len(keys)*2)
	for _, k := range keys {
		var sk storageKey
		copy(sk.addr[:], k[:types.AddressLength])
		copy(sk.key[:], k[types.AddressLength:])
		data = append(data, k, s.changes[sk])
	}
	return types.Blake2b(data...)
}

// Commit writes all changes into the store in one batch.
func (s *Stage) Commit() error {
	bulk := s.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.dbKey())
		} else {
			err = bulk.Put(k.dbKey(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage storage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit storage")
	}
	if s.onSave != nil {
		s.onSave(s.changes)
	}
	return nil
}
