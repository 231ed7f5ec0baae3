// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"context"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/slotdb/metrics"

	dto "github.com/prometheus/client_model/go"
)

func TestMain(m *testing.M) {
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}

// findMetric returns the sample of family name carrying the label pair, or the first one if label is empty.
func findMetric(t *testing.T, name, label, value string) *dto.Metric {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if label == "" {
				return m
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m
				}
			}
		}
	}
	return nil
}

func openTries(t *testing.T) float64 {
	m := findMetric(t, "slotdb_storage_open_tries", "", "")
	require.NotNil(t, m)
	return m.GetGauge().GetValue()
}

func contractWrites(t *testing.T) (uint64, float64) {
	m := findMetric(t, "slotdb_storage_contract_writes", "spec", "istanbul")
	if m == nil {
		return 0, 0
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestStorageMetrics(t *testing.T) {
	env := newTestEnv(t, Options{}, addrA, addrB)

	env.get(t, skey(addrA, 1))
	assert.Equal(t, float64(1), openTries(t))

	env.p.Set(skey(addrA, 2), b32(2))
	env.p.Set(skey(addrA, 3), b32(3))
	env.p.Set(skey(addrA, 3), b32(4))
	env.p.Set(skey(addrB, 1), b32(1))

	count, sum := contractWrites(t)
	require.NoError(t, env.p.Commit(istanbul))
	assert.Equal(t, float64(2), openTries(t))

	newCount, newSum := contractWrites(t)
	assert.Equal(t, count+2, newCount)
	assert.Equal(t, sum+3, newSum)

	for kind, want := range map[string]float64{"JustCache": 1, "Update": 3, "Destroy": 0} {
		m := findMetric(t, "slotdb_storage_round_keys", "kind", kind)
		require.NotNil(t, m, kind)
		assert.Equal(t, want, m.GetGauge().GetValue(), kind)
	}

	require.NoError(t, env.p.CommitTrees(context.Background()))
	assert.Equal(t, float64(0), openTries(t))

	env.get(t, skey(addrB, 1))
	assert.Equal(t, float64(1), openTries(t))
	env.p.Reset()
	assert.Equal(t, float64(0), openTries(t))
}
