// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package trie persists per-contract storage slots and computes their
// Ethereum compatible storage roots.
//
// Only the latest version of each contract's storage is kept. Leaves are
// stored flat under the contract address. Roots are computed over an
// in-memory trie which is rebuilt from the leaves once, then kept across
// commits and updated incrementally.
package trie

import (
	"github.com/ethereum/go-ethereum/rlp"
	ethtrie "github.com/ethereum/go-ethereum/trie"
	"github.com/pkg/errors"
	"github.com/qianbin/drlp"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vechain/slotdb/cache"
	"github.com/vechain/slotdb/kv"
	"github.com/vechain/slotdb/log"
	"github.com/vechain/slotdb/muxdb"
	"github.com/vechain/slotdb/thor"
)

const (
	storeName = "trie.storage"

	hashedCacheSize = 256

	leafSpace = byte('e') // leafSpace + addr + keccak(index) => rlp(value)
	rootSpace = byte('r') // rootSpace + addr => root + drlp(generation)
)

var logger = log.WithContext("pkg", "trie")

// ErrMissingRoot is returned when opening a storage trie at a root which is not the latest one.
var ErrMissingRoot = errors.New("missing storage root")

// Database opens storage tries on top of muxdb.
type Database struct {
	store  kv.Store
	cache  *muxdb.Cache
	hashed *cache.LRU[thor.Address, *hashedTrie]
}

// hashedTrie is a committed in-memory trie parked between handles.
type hashedTrie struct {
	root thor.Bytes32
	trie *ethtrie.Trie
}

// New creates a trie database.
func New(db *muxdb.MuxDB) *Database {
	hashed, _ := cache.NewLRU[thor.Address, *hashedTrie](hashedCacheSize)
	return &Database{
		store:  db.NewStore(storeName),
		cache:  db.Cache(),
		hashed: hashed,
	}
}

// takeHashed removes and returns the parked trie of addr if it's at root.
func (db *Database) takeHashed(addr thor.Address, root thor.Bytes32) *ethtrie.Trie {
	h, ok := db.hashed.Get(addr)
	if !ok || h.root != root {
		return nil
	}
	db.hashed.Remove(addr)
	return h.trie
}

func (db *Database) putHashed(addr thor.Address, root thor.Bytes32, tr *ethtrie.Trie) {
	db.hashed.Add(addr, &hashedTrie{root, tr})
}

// rootRecord is the latest committed root of a contract.
type rootRecord struct {
	root thor.Bytes32
	gen  uint64
}

func (r *rootRecord) encode() []byte {
	return drlp.AppendUint(append([]byte(nil), r.root[:]...), r.gen)
}

func (r *rootRecord) decode(data []byte) error {
	if len(data) < 32 {
		return errors.New("root record too short")
	}
	copy(r.root[:], data[:32])
	return rlp.DecodeBytes(data[32:], &r.gen)
}

func rootKey(addr thor.Address) []byte {
	return append([]byte{rootSpace}, addr[:]...)
}

func leafPrefix(addr thor.Address) []byte {
	return append([]byte{leafSpace}, addr[:]...)
}

func leafKey(addr thor.Address, hk thor.Bytes32) []byte {
	return append(leafPrefix(addr), hk[:]...)
}

func leafRange(addr thor.Address) kv.Range {
	r := util.BytesPrefix(leafPrefix(addr))
	return kv.Range{Start: r.Start, Limit: r.Limit}
}

func (db *Database) loadRoot(addr thor.Address) (rootRecord, error) {
	rec := rootRecord{root: thor.EmptyRoot}
	data, err := db.store.Get(rootKey(addr))
	if err != nil {
		if db.store.IsNotFound(err) {
			return rec, nil
		}
		return rec, errors.Wrap(err, "load root record")
	}
	if err := rec.decode(data); err != nil {
		return rec, errors.Wrapf(err, "decode root record of %v", addr)
	}
	return rec, nil
}

// LatestRoot returns the latest committed storage root of the contract,
// EmptyRoot if nothing was ever committed.
func (db *Database) LatestRoot(addr thor.Address) (thor.Bytes32, error) {
	rec, err := db.loadRoot(addr)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return rec.root, nil
}

// OpenStorageTrie opens the storage trie of addr at root.
// The empty root always succeeds and hides previously committed slots.
func (db *Database) OpenStorageTrie(addr thor.Address, root thor.Bytes32) (*StorageTrie, error) {
	rec, err := db.loadRoot(addr)
	if err != nil {
		return nil, err
	}

	if root.IsZero() || thor.IsEmptyRoot(root) {
		return &StorageTrie{
			db:      db,
			addr:    addr,
			root:    thor.EmptyRoot,
			gen:     rec.gen,
			fresh:   !thor.IsEmptyRoot(rec.root),
			dirty:   make(map[thor.Bytes32]thor.Bytes32),
			pending: make(map[thor.Bytes32]thor.Bytes32),
		}, nil
	}

	if root != rec.root {
		return nil, errors.Wrapf(ErrMissingRoot, "open %v at %v, latest %v", addr, root, rec.root)
	}
	return &StorageTrie{
		db:      db,
		addr:    addr,
		root:    root,
		gen:     rec.gen,
		dirty:   make(map[thor.Bytes32]thor.Bytes32),
		pending: make(map[thor.Bytes32]thor.Bytes32),
	}, nil
}
