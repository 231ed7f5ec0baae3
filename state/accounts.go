// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/slotdb/cache"
	"github.com/vechain/slotdb/kv"
	"github.com/vechain/slotdb/muxdb"
	"github.com/vechain/slotdb/thor"
)

const (
	accountsStoreName = "state.accounts"
	accountCacheSize  = 4096
)

// Account is the RLP encoded account record.
type Account struct {
	Nonce       uint64
	Balance     *big.Int
	CodeHash    []byte // hash of code
	StorageRoot []byte // root of the storage trie, empty for no storage
}

// IsEmpty returns if an account is empty.
// An empty account has zero nonce, zero balance and no code.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 &&
		(a.Balance == nil || a.Balance.Sign() == 0) &&
		len(a.CodeHash) == 0
}

func (a *Account) copy() *Account {
	cpy := *a
	if a.Balance != nil {
		cpy.Balance = new(big.Int).Set(a.Balance)
	}
	return &cpy
}

func (a *Account) storageRoot() thor.Bytes32 {
	if len(a.StorageRoot) == 0 {
		return thor.EmptyRoot
	}
	return thor.BytesToBytes32(a.StorageRoot)
}

// Accounts stores account records in muxdb. Writes are buffered until Commit.
// It implements AccountStateProvider.
type Accounts struct {
	store kv.Store
	cache *cache.LRU[thor.Address, *Account] // committed records, nil for absent
	dirty map[thor.Address]*Account          // nil for deleted
}

// NewAccounts creates the account store.
func NewAccounts(db *muxdb.MuxDB) *Accounts {
	c, _ := cache.NewLRU[thor.Address, *Account](accountCacheSize)
	return &Accounts{
		store: db.NewStore(accountsStoreName),
		cache: c,
		dirty: make(map[thor.Address]*Account),
	}
}

func (a *Accounts) load(addr thor.Address) (*Account, error) {
	if acc, ok := a.dirty[addr]; ok {
		return acc, nil
	}
	return a.cache.GetOrLoad(addr, func(addr thor.Address) (*Account, error) {
		data, err := a.store.Get(addr[:])
		if err != nil {
			if a.store.IsNotFound(err) {
				return nil, nil
			}
			return nil, &Error{errors.Wrapf(err, "load account %v", addr)}
		}
		var acc Account
		if err := rlp.DecodeBytes(data, &acc); err != nil {
			return nil, &Error{errors.Wrapf(err, "decode account %v", addr)}
		}
		return &acc, nil
	})
}

// Get returns a copy of the account, nil if absent.
func (a *Accounts) Get(addr thor.Address) (*Account, error) {
	acc, err := a.load(addr)
	if err != nil || acc == nil {
		return nil, err
	}
	return acc.copy(), nil
}

// Set buffers the account.
func (a *Accounts) Set(addr thor.Address, acc *Account) {
	a.dirty[addr] = acc.copy()
}

// Delete buffers removal of the account.
func (a *Accounts) Delete(addr thor.Address) {
	a.dirty[addr] = nil
}

// AccountExists returns whether the account exists.
func (a *Accounts) AccountExists(addr thor.Address) (bool, error) {
	acc, err := a.load(addr)
	if err != nil {
		return false, err
	}
	return acc != nil, nil
}

// GetStorageRoot returns the storage root of the account, EmptyRoot if absent.
func (a *Accounts) GetStorageRoot(addr thor.Address) (thor.Bytes32, error) {
	acc, err := a.load(addr)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if acc == nil {
		return thor.EmptyRoot, nil
	}
	return acc.storageRoot(), nil
}

// UpdateStorageRoot sets the storage root of an existing account.
func (a *Accounts) UpdateStorageRoot(addr thor.Address, root thor.Bytes32) error {
	acc, err := a.load(addr)
	if err != nil {
		return err
	}
	if acc == nil {
		return errors.Errorf("update storage root of missing account %v", addr)
	}
	cpy := acc.copy()
	if thor.IsEmptyRoot(root) {
		cpy.StorageRoot = nil
	} else {
		cpy.StorageRoot = root.Bytes()
	}
	a.dirty[addr] = cpy
	return nil
}

// PruneEmpty deletes the empty accounts among addrs. It returns the number deleted.
func (a *Accounts) PruneEmpty(addrs ...thor.Address) (int, error) {
	n := 0
	for _, addr := range addrs {
		acc, err := a.load(addr)
		if err != nil {
			return n, err
		}
		if acc != nil && acc.IsEmpty() {
			a.Delete(addr)
			n++
		}
	}
	return n, nil
}

// Commit persists buffered writes.
func (a *Accounts) Commit() error {
	if len(a.dirty) == 0 {
		return nil
	}
	bulk := a.store.Bulk()
	for addr, acc := range a.dirty {
		if acc == nil {
			if err := bulk.Delete(addr.Bytes()); err != nil {
				return err
			}
			continue
		}
		data, err := rlp.EncodeToBytes(acc)
		if err != nil {
			return errors.Wrapf(err, "encode account %v", addr)
		}
		if err := bulk.Put(addr.Bytes(), data); err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{errors.Wrap(err, "commit accounts")}
	}

	for addr, acc := range a.dirty {
		a.cache.Add(addr, acc)
	}
	clear(a.dirty)
	return nil
}

// Reset drops buffered writes.
func (a *Accounts) Reset() {
	clear(a.dirty)
}
