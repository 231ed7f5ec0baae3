// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestProcessCollector(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process stats are read from procfs")
	}

	c := newProcessCollector()
	require.Equal(t, 3, testutil.CollectAndCount(c))

	InitializePrometheusMetrics()
	RegisterProcessCollector()
	// registered once
	RegisterProcessCollector()

	m := gather(t)
	require.Contains(t, m, "slotdb_process_resident_memory_bytes")
	require.Contains(t, m, "slotdb_process_cpu_seconds_total")
	require.Greater(t, m["slotdb_process_resident_memory_bytes"].Metric[0].GetGauge().GetValue(), float64(0))
}
