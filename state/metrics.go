// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/slotdb/metrics"

var (
	metricCommitCount    = metrics.LazyLoadCounterVec("storage_commit_count", []string{"spec"})
	metricRestoreCount   = metrics.LazyLoadCounter("storage_restore_count")
	metricTrieWriteCount = metrics.LazyLoadCounter("storage_trie_write_count")
	metricChangeLogSize  = metrics.LazyLoadHistogram("storage_change_log_size", metrics.BucketChangeLog)

	metricOpenTries      = metrics.LazyLoadGauge("storage_open_tries")
	metricRoundKeys      = metrics.LazyLoadGaugeVec("storage_round_keys", []string{"kind"})
	metricContractWrites = metrics.LazyLoadHistogramVec("storage_contract_writes", []string{"spec"}, metrics.BucketChangeLog)
)
