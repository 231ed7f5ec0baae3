// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/qianbin/directcache"
	"github.com/vechain/slotdb/cache"
)

const (
	absentMark  = byte(0)
	presentMark = byte(1)
)

// Cache caches committed values by key. It also remembers keys known to be absent.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	values      *directcache.Cache
	stats       cache.Stats
	lastLogTime atomic.Int64
}

// newCache creates a cache object with the given cache size.
// It returns nil if sizeMB is not positive.
func newCache(sizeMB int) *Cache {
	if sizeMB <= 0 {
		return nil
	}
	c := &Cache{
		values: directcache.New(sizeMB * 1024 * 1024),
	}
	c.lastLogTime.Store(time.Now().UnixNano())
	return c
}

// Get returns the cached value for the key.
// The second return value reports whether the key is cached at all.
// A cached absent key yields a nil value.
func (c *Cache) Get(key []byte) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	var (
		val   []byte
		found bool
	)
	if c.values.AdvGet(key, func(v []byte) {
		if len(v) == 0 {
			return
		}
		found = true
		if v[0] == presentMark {
			val = slices.Clone(v[1:])
		}
	}, false) && found {
		c.hit()
		return val, true
	}
	c.miss()
	return nil, false
}

// Set caches the value for the key. An empty value marks the key absent.
func (c *Cache) Set(key, val []byte) {
	if c == nil {
		return
	}
	if len(val) == 0 {
		_ = c.values.Set(key, []byte{absentMark})
		return
	}
	_ = c.values.AdvSet(key, len(val)+1, func(v []byte) {
		v[0] = presentMark
		copy(v[1:], val)
	})
}

func (c *Cache) hit() {
	c.stats.Hit()
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "hit"})
	c.log()
}

func (c *Cache) miss() {
	c.stats.Miss()
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "miss"})
	c.log()
}

func (c *Cache) log() {
	now := time.Now().UnixNano()
	last := c.lastLogTime.Swap(now)

	if now-last > int64(time.Second*20) {
		// log only when the hit rate changed, to avoid too many logs.
		if changed, _, _ := c.stats.Stats(); changed {
			logger.Info("slot cache stats", c.stats.LogContext()...)
		}
	} else {
		c.lastLogTime.CompareAndSwap(now, last)
	}
}
