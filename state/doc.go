// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state tracks contract storage during block execution.
// It follows the flow as bellow:
//
//	     Get / Set
//	         |
//	 [ change log ] <-> [ key index ] -- TakeSnapshot / Restore
//	         |
//	      Commit  (per transaction)
//	         |
//	[ storage tries ] -> [ account storage roots ]
//	         |
//	    CommitTrees  (per block)
//	         |
//	     [ muxdb ]
//
// The change log is append only within a round. Reads are logged too, so
// that a restore can drop the bookkeeping of reads made after the snapshot
// while keeping a sole read that established a key's baseline.
package state
