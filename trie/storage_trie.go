// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"slices"

	ethtrie "github.com/ethereum/go-ethereum/trie"
	"github.com/pkg/errors"
	"github.com/vechain/slotdb/kv"
	"github.com/vechain/slotdb/thor"
)

// StorageTrie is a handle to the storage of one contract.
// Writes are buffered until Commit. It's not safe for concurrent use,
// but handles of different contracts may be used concurrently.
type StorageTrie struct {
	db   *Database
	addr thor.Address
	root thor.Bytes32
	gen  uint64

	// fresh is set when opened at the empty root while slots of an older
	// version are still persisted. They are invisible and removed on commit.
	fresh   bool
	dirty   map[thor.Bytes32]thor.Bytes32 // keccak(index) => value, since last commit
	pending map[thor.Bytes32]thor.Bytes32 // not yet applied to hashed
	hashed  *ethtrie.Trie                 // loaded on first root update
}

// Address returns the contract address.
func (t *StorageTrie) Address() thor.Address { return t.addr }

// Get returns the value at index, zero if unset.
func (t *StorageTrie) Get(index thor.Bytes32) (thor.Bytes32, error) {
	hk := thor.Keccak256(index[:])
	if v, ok := t.dirty[hk]; ok {
		return v, nil
	}
	if t.fresh {
		return thor.Bytes32{}, nil
	}
	return t.db.getLeaf(t.addr, hk)
}

// Set buffers a write. A zero value deletes the slot.
func (t *StorageTrie) Set(index, value thor.Bytes32) error {
	hk := thor.Keccak256(index[:])
	t.dirty[hk] = value
	t.pending[hk] = value
	return nil
}

// UpdateRootHash applies the writes made since the last call and rehashes
// the modified paths only.
func (t *StorageTrie) UpdateRootHash() error {
	if len(t.pending) == 0 {
		return nil
	}
	if t.hashed == nil {
		tr, err := t.loadHashed()
		if err != nil {
			return err
		}
		t.hashed = tr
	}

	for hk, v := range t.pending {
		// nil value deletes
		if err := t.hashed.Update(hk[:], encodeValue(v)); err != nil {
			return errors.Wrapf(err, "update storage of %v", t.addr)
		}
	}
	clear(t.pending)
	t.root = thor.Bytes32(t.hashed.Hash())
	return nil
}

// loadHashed returns the in-memory trie at the current root, taken over
// from the last committed handle or rebuilt from the persisted leaves.
func (t *StorageTrie) loadHashed() (*ethtrie.Trie, error) {
	if tr := t.db.takeHashed(t.addr, t.root); tr != nil {
		return tr, nil
	}
	tr := ethtrie.NewEmpty(nil)
	if t.fresh {
		return tr, nil
	}

	var (
		prefixLen = len(leafPrefix(t.addr))
		loadErr   error
		n         int
	)
	err := t.db.store.Iterate(leafRange(t.addr), func(pair kv.Pair) bool {
		if loadErr = tr.Update(slices.Clone(pair.Key()[prefixLen:]), slices.Clone(pair.Value())); loadErr != nil {
			return false
		}
		n++
		return true
	})
	if err == nil {
		err = loadErr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load storage of %v", t.addr)
	}
	if root := thor.Bytes32(tr.Hash()); root != t.root {
		return nil, errors.Errorf("storage of %v hashes to %v, want %v", t.addr, root, t.root)
	}
	logger.Debug("storage loaded", "addr", t.addr, "slots", n)
	return tr, nil
}

// RootHash returns the root computed by the last UpdateRootHash, or the opening root.
func (t *StorageTrie) RootHash() thor.Bytes32 { return t.root }

// Commit persists buffered writes together with the new root.
func (t *StorageTrie) Commit() error {
	if len(t.dirty) == 0 && !t.fresh {
		return nil
	}
	if err := t.UpdateRootHash(); err != nil {
		return err
	}

	var (
		bulk    = t.db.store.Bulk()
		evicted [][]byte
	)
	if t.fresh {
		err := t.db.store.Iterate(leafRange(t.addr), func(pair kv.Pair) bool {
			evicted = append(evicted, slices.Clone(pair.Key()))
			return true
		})
		if err != nil {
			return errors.Wrapf(err, "iterate storage of %v", t.addr)
		}
		for _, key := range evicted {
			if err := bulk.Delete(key); err != nil {
				return err
			}
		}
	}

	type write struct{ key, enc []byte }
	writes := make([]write, 0, len(t.dirty))
	for hk, v := range t.dirty {
		w := write{leafKey(t.addr, hk), encodeValue(v)}
		var err error
		if w.enc != nil {
			err = bulk.Put(w.key, w.enc)
		} else {
			err = bulk.Delete(w.key)
		}
		if err != nil {
			return err
		}
		writes = append(writes, w)
	}

	rec := rootRecord{root: t.root, gen: t.gen + 1}
	if err := bulk.Put(rootKey(t.addr), rec.encode()); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrapf(err, "commit storage of %v", t.addr)
	}

	for _, key := range evicted {
		t.db.cache.Set(key, nil)
	}
	for _, w := range writes {
		t.db.cache.Set(w.key, w.enc)
	}

	logger.Debug("storage committed",
		"addr", t.addr,
		"root", t.root.AbbrevString(),
		"writes", len(writes),
		"evicted", len(evicted),
		"gen", rec.gen)

	t.gen = rec.gen
	t.fresh = false
	t.dirty = make(map[thor.Bytes32]thor.Bytes32)
	if t.hashed != nil {
		t.db.putHashed(t.addr, t.root, t.hashed)
		t.hashed = nil
	}
	return nil
}

func (db *Database) getLeaf(addr thor.Address, hk thor.Bytes32) (thor.Bytes32, error) {
	key := leafKey(addr, hk)
	if enc, ok := db.cache.Get(key); ok {
		return decodeValue(enc)
	}

	enc, err := db.store.Get(key)
	if err != nil {
		if !db.store.IsNotFound(err) {
			return thor.Bytes32{}, errors.Wrapf(err, "read storage of %v", addr)
		}
		enc = nil
	}
	db.cache.Set(key, enc)
	return decodeValue(enc)
}
