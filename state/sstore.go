// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/slotdb/thor"

// SstoreGas returns the gas cost and refund of writing value to the slot
// under the given release rules. It must be called before the write is Set,
// and loads the slot if not yet loaded in this round.
func (p *StorageProvider) SstoreGas(spec *thor.ReleaseSpec, key StorageKey, value thor.Bytes32, gasLeft uint64) (cost uint64, refund int64, err error) {
	if spec.IsEip2200Enabled && gasLeft <= thor.SstoreSentryGasEIP2200 {
		return 0, 0, ErrSstoreSentry
	}

	current, err := p.Get(key)
	if err != nil {
		return 0, 0, err
	}

	switch {
	case spec.IsEip2200Enabled:
		original, err := p.GetOriginal(key)
		if err != nil {
			return 0, 0, err
		}
		cost, refund = netSstoreGas(original, current, value, eip2200Schedule)
	case spec.IsEip1283Enabled:
		original, err := p.GetOriginal(key)
		if err != nil {
			return 0, 0, err
		}
		cost, refund = netSstoreGas(original, current, value, eip1283Schedule)
	default:
		switch {
		case current.IsZero() && !value.IsZero():
			cost = thor.SstoreSetGas
		case !current.IsZero() && value.IsZero():
			cost, refund = thor.SstoreClearGas, int64(thor.SstoreRefundGas)
		default:
			cost = thor.SstoreResetGas
		}
	}
	return cost, refund, nil
}

// netSstoreSchedule is the gas table of net metered SSTORE.
type netSstoreSchedule struct {
	noop, init, clean, dirty      uint64
	clearRefund                   uint64
	resetRefund, resetClearRefund uint64
}

var (
	eip1283Schedule = netSstoreSchedule{
		noop:             thor.NetSstoreNoopGas,
		init:             thor.NetSstoreInitGas,
		clean:            thor.NetSstoreCleanGas,
		dirty:            thor.NetSstoreDirtyGas,
		clearRefund:      thor.NetSstoreClearRefund,
		resetRefund:      thor.NetSstoreResetRefund,
		resetClearRefund: thor.NetSstoreResetClearRefund,
	}
	eip2200Schedule = netSstoreSchedule{
		noop:             thor.SloadGasEIP2200,
		init:             thor.SstoreSetGasEIP2200,
		clean:            thor.SstoreResetGasEIP2200,
		dirty:            thor.SloadGasEIP2200,
		clearRefund:      thor.SstoreClearsScheduleRefundEIP2200,
		resetRefund:      thor.SstoreResetGasEIP2200 - thor.SloadGasEIP2200,
		resetClearRefund: thor.SstoreSetGasEIP2200 - thor.SloadGasEIP2200,
	}
)

func netSstoreGas(original, current, value thor.Bytes32, s netSstoreSchedule) (cost uint64, refund int64) {
	if current == value {
		return s.noop, 0
	}
	if original == current {
		if original.IsZero() {
			return s.init, 0
		}
		if value.IsZero() {
			refund += int64(s.clearRefund)
		}
		return s.clean, refund
	}
	// dirty slot
	if !original.IsZero() {
		if current.IsZero() {
			refund -= int64(s.clearRefund)
		} else if value.IsZero() {
			refund += int64(s.clearRefund)
		}
	}
	if original == value {
		if original.IsZero() {
			refund += int64(s.resetClearRefund)
		} else {
			refund += int64(s.resetRefund)
		}
	}
	return s.dirty, refund
}
