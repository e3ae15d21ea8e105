// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	flag      atomic.Int32
}

func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Stats returns the hit and miss counters. The first return value reports whether the
// hit rate (in permille) moved since the previous call, so callers can log only on change.
func (cs *Stats) Stats() (bool, int64, int64) {
	hit := cs.hit.Load()
	miss := cs.miss.Load()

	flag := int32(cs.rate(hit, miss) * 1000)
	return cs.flag.Swap(flag) != flag, hit, miss
}

// HitRate returns hits / lookups, or 0 when nothing was looked up.
func (cs *Stats) HitRate() float64 {
	return cs.rate(cs.hit.Load(), cs.miss.Load())
}

func (cs *Stats) rate(hit, miss int64) float64 {
	if lookups := hit + miss; lookups > 0 {
		return float64(hit) / float64(lookups)
	}
	return 0
}
