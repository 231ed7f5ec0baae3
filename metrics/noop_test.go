// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	require.False(t, Enabled())
	require.Nil(t, HTTPHandler())

	labels := map[string]string{"spec": "istanbul"}
	for i := range 10 {
		Counter("commits").Add(int64(i))
		CounterVec("commits_vec", []string{"spec"}).AddWithLabel(int64(i), labels)
		Gauge("open_tries").Set(int64(i))
		GaugeVec("open_tries_vec", []string{"spec"}).SetWithLabel(int64(i), labels)
		Histogram("log_size", BucketChangeLog).Observe(int64(i))
		HistogramVec("log_size_vec", []string{"spec"}, nil).ObserveWithLabels(int64(i), labels)
	}
}
