// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "github.com/ethereum/go-ethereum/params"

// Gas schedule of storage writes.
const (
	// before net gas metering
	SstoreSetGas    uint64 = params.SstoreSetGas
	SstoreResetGas  uint64 = params.SstoreResetGas
	SstoreClearGas  uint64 = params.SstoreClearGas
	SstoreRefundGas uint64 = params.SstoreRefundGas

	// EIP-1283
	NetSstoreNoopGas          uint64 = params.NetSstoreNoopGas
	NetSstoreInitGas          uint64 = params.NetSstoreInitGas
	NetSstoreCleanGas         uint64 = params.NetSstoreCleanGas
	NetSstoreDirtyGas         uint64 = params.NetSstoreDirtyGas
	NetSstoreClearRefund      uint64 = params.NetSstoreClearRefund
	NetSstoreResetRefund      uint64 = params.NetSstoreResetRefund
	NetSstoreResetClearRefund uint64 = params.NetSstoreResetClearRefund

	// EIP-2200
	SstoreSentryGasEIP2200            uint64 = params.SstoreSentryGasEIP2200
	SstoreSetGasEIP2200               uint64 = params.SstoreSetGasEIP2200
	SstoreResetGasEIP2200             uint64 = params.SstoreResetGasEIP2200
	SstoreClearsScheduleRefundEIP2200 uint64 = params.SstoreClearsScheduleRefundEIP2200
	SloadGasEIP2200                   uint64 = params.SloadGasEIP2200
)
