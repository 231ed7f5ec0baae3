// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

//go:generate mockgen -source interfaces.go -destination interfaces_mocks.go -package state

import (
	"github.com/vechain/slotdb/thor"
	"github.com/vechain/slotdb/trie"
)

// StorageTrie is the authenticated storage of one contract.
type StorageTrie interface {
	Get(index thor.Bytes32) (thor.Bytes32, error)
	Set(index, value thor.Bytes32) error
	// UpdateRootHash recomputes RootHash from pending writes.
	UpdateRootHash() error
	RootHash() thor.Bytes32
	// Commit persists pending writes.
	Commit() error
}

// TrieDatabase opens storage tries.
type TrieDatabase interface {
	OpenStorageTrie(addr thor.Address, root thor.Bytes32) (StorageTrie, error)
}

// AccountStateProvider keeps the storage root of each account.
type AccountStateProvider interface {
	AccountExists(addr thor.Address) (bool, error)
	GetStorageRoot(addr thor.Address) (thor.Bytes32, error)
	UpdateStorageRoot(addr thor.Address, root thor.Bytes32) error
}

type trieDatabase struct {
	db *trie.Database
}

// NewTrieDatabase adapts a trie.Database to TrieDatabase.
func NewTrieDatabase(db *trie.Database) TrieDatabase {
	return &trieDatabase{db}
}

func (d *trieDatabase) OpenStorageTrie(addr thor.Address, root thor.Bytes32) (StorageTrie, error) {
	st, err := d.db.OpenStorageTrie(addr, root)
	if err != nil {
		return nil, err
	}
	return st, nil
}
