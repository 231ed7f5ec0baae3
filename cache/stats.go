// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"fmt"
	"sync/atomic"
)

// Stats counts cache hits and misses. It is safe for concurrent use.
type Stats struct {
	hit, miss atomic.Int64
	flag      atomic.Int32
}

// Hit records a hit.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Stats returns the hit and miss counts, and whether the hit rate
// (in permille) changed since the previous call.
func (cs *Stats) Stats() (changed bool, hit int64, miss int64) {
	hit = cs.hit.Load()
	miss = cs.miss.Load()

	flag := int32(hitRate(hit, miss) * 1000)
	return cs.flag.Swap(flag) != flag, hit, miss
}

// LogContext returns the key/value pairs describing the current counts.
func (cs *Stats) LogContext() []any {
	hit, miss := cs.hit.Load(), cs.miss.Load()
	rate := "n/a"
	if hit+miss > 0 {
		rate = fmt.Sprintf("%.3f", hitRate(hit, miss))
	}
	return []any{"lookups", hit + miss, "hitrate", rate}
}

func hitRate(hit, miss int64) float64 {
	if lookups := hit + miss; lookups > 0 {
		return float64(hit) / float64(lookups)
	}
	return 0
}
