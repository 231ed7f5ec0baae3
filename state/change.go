// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/slotdb/thor"
)

// StorageKey identifies a storage slot of a contract.
type StorageKey struct {
	Address thor.Address
	Index   thor.Bytes32
}

func (k StorageKey) String() string {
	return fmt.Sprintf("%v[%v]", k.Address, k.Index.AbbrevString())
}

// ChangeKind is the kind of a change log entry.
type ChangeKind uint8

const (
	// JustCache records a value loaded from the trie.
	JustCache ChangeKind = iota
	// Update records a write.
	Update
	// Destroy is reserved for storage destruction.
	Destroy
)

func (k ChangeKind) String() string {
	switch k {
	case JustCache:
		return "JustCache"
	case Update:
		return "Update"
	case Destroy:
		return "Destroy"
	default:
		return fmt.Sprintf("ChangeKind(%d)", uint8(k))
	}
}

// Change is an entry of the change log.
type Change struct {
	Kind  ChangeKind
	Key   StorageKey
	Value thor.Bytes32
}

// stack holds the log positions of a key, most recent on top.
type stack []int

func (s *stack) push(pos int) {
	*s = append(*s, pos)
}

func (s *stack) pop() int {
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top
}

func (s stack) top() int {
	return s[len(s)-1]
}
