// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/slotdb/thor"
)

func TestSstoreGas(t *testing.T) {
	tests := []struct {
		spec                     string
		original, current, value uint64
		cost                     uint64
		refund                   int64
	}{
		// istanbul
		{"istanbul", 0, 0, 0, 800, 0},
		{"istanbul", 0, 0, 1, 20000, 0},
		{"istanbul", 1, 1, 2, 5000, 0},
		{"istanbul", 1, 1, 0, 5000, 15000},
		{"istanbul", 1, 2, 3, 800, 0},
		{"istanbul", 1, 2, 0, 800, 15000},
		{"istanbul", 1, 2, 1, 800, 4200},
		{"istanbul", 1, 0, 2, 800, -15000},
		{"istanbul", 1, 0, 1, 800, -15000 + 4200},
		{"istanbul", 0, 1, 0, 800, 19200},
		{"istanbul", 0, 1, 2, 800, 0},
		// constantinople
		{"constantinople", 0, 0, 0, 200, 0},
		{"constantinople", 0, 0, 1, 20000, 0},
		{"constantinople", 1, 1, 2, 5000, 0},
		{"constantinople", 1, 1, 0, 5000, 15000},
		{"constantinople", 1, 2, 1, 200, 4800},
		{"constantinople", 1, 0, 2, 200, -15000},
		{"constantinople", 0, 1, 0, 200, 19800},
		// petersburg, no net metering
		{"petersburg", 0, 0, 1, 20000, 0},
		{"petersburg", 1, 1, 0, 5000, 15000},
		{"petersburg", 1, 1, 2, 5000, 0},
		{"petersburg", 0, 0, 0, 5000, 0},
		{"frontier", 1, 0, 2, 20000, 0},
		{"frontier", 1, 2, 2, 5000, 0},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%v/%d-%d-%d", tt.spec, tt.original, tt.current, tt.value)
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, DefaultOptions(), addrA)
			k := skey(addrA, 1)
			if tt.original != 0 {
				env.seed(t, map[StorageKey]thor.Bytes32{k: b32(tt.original)})
			}

			// a previous write in the same transaction
			env.get(t, k)
			if tt.current != tt.original {
				env.p.Set(k, b32(tt.current))
			}

			cost, refund, err := env.p.SstoreGas(thor.MustGetReleaseSpec(tt.spec), k, b32(tt.value), 100000)
			require.NoError(t, err)
			assert.Equal(t, tt.cost, cost)
			assert.Equal(t, tt.refund, refund)
		})
	}
}

func TestSstoreGasLoadsSlot(t *testing.T) {
	env := newTestEnv(t, DefaultOptions(), addrA)
	k := skey(addrA, 1)
	env.seed(t, map[StorageKey]thor.Bytes32{k: b32(1)})

	cost, refund, err := env.p.SstoreGas(istanbul, k, b32(0), 100000)
	require.NoError(t, err)
	assert.Equal(t, thor.SstoreResetGasEIP2200, cost)
	assert.Equal(t, int64(thor.SstoreClearsScheduleRefundEIP2200), refund)
	assert.Equal(t, 0, env.p.TakeSnapshot())
}

func TestSstoreSentry(t *testing.T) {
	env := newTestEnv(t, DefaultOptions(), addrA)
	k := skey(addrA, 1)

	_, _, err := env.p.SstoreGas(istanbul, k, b32(1), thor.SstoreSentryGasEIP2200)
	assert.ErrorIs(t, err, ErrSstoreSentry)
	// checked before the slot is touched
	assert.Equal(t, -1, env.p.TakeSnapshot())

	_, _, err = env.p.SstoreGas(istanbul, k, b32(1), thor.SstoreSentryGasEIP2200+1)
	assert.NoError(t, err)

	// no sentry before istanbul
	_, _, err = env.p.SstoreGas(thor.MustGetReleaseSpec("constantinople"), k, b32(1), 0)
	assert.NoError(t, err)
}
