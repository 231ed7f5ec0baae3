// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/slotdb/muxdb"
	"github.com/vechain/slotdb/thor"
)

func TestAccount(t *testing.T) {
	assert.True(t, (&Account{}).IsEmpty())
	assert.True(t, (&Account{Balance: big.NewInt(0)}).IsEmpty())
	assert.False(t, (&Account{Nonce: 1}).IsEmpty())
	assert.False(t, (&Account{Balance: big.NewInt(1)}).IsEmpty())
	assert.False(t, (&Account{CodeHash: []byte{1}}).IsEmpty())

	acc := &Account{Balance: big.NewInt(10)}
	cpy := acc.copy()
	cpy.Balance.SetInt64(20)
	assert.Equal(t, int64(10), acc.Balance.Int64())

	assert.Equal(t, thor.EmptyRoot, acc.storageRoot())
}

func TestAccounts(t *testing.T) {
	db := muxdb.NewMem()
	defer db.Close()

	accounts := NewAccounts(db)
	addr := thor.BytesToAddress([]byte("acc"))

	acc, err := accounts.Get(addr)
	require.NoError(t, err)
	assert.Nil(t, acc)

	exists, err := accounts.AccountExists(addr)
	require.NoError(t, err)
	assert.False(t, exists)

	root, err := accounts.GetStorageRoot(addr)
	require.NoError(t, err)
	assert.Equal(t, thor.EmptyRoot, root)

	assert.Error(t, accounts.UpdateStorageRoot(addr, thor.Keccak256([]byte("root"))))

	accounts.Set(addr, &Account{Nonce: 1, Balance: big.NewInt(100)})
	exists, err = accounts.AccountExists(addr)
	require.NoError(t, err)
	assert.True(t, exists)

	newRoot := thor.Keccak256([]byte("root"))
	require.NoError(t, accounts.UpdateStorageRoot(addr, newRoot))
	root, err = accounts.GetStorageRoot(addr)
	require.NoError(t, err)
	assert.Equal(t, newRoot, root)

	require.NoError(t, accounts.Commit())

	// read back from the store
	fresh := NewAccounts(db)
	acc, err = fresh.Get(addr)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, uint64(1), acc.Nonce)
	assert.Equal(t, int64(100), acc.Balance.Int64())
	assert.Equal(t, newRoot.Bytes(), acc.StorageRoot)

	// empty root is stored as no root
	require.NoError(t, fresh.UpdateStorageRoot(addr, thor.EmptyRoot))
	acc, err = fresh.Get(addr)
	require.NoError(t, err)
	assert.Empty(t, acc.StorageRoot)

	fresh.Reset()
	root, err = fresh.GetStorageRoot(addr)
	require.NoError(t, err)
	assert.Equal(t, newRoot, root)

	fresh.Delete(addr)
	require.NoError(t, fresh.Commit())
	exists, err = NewAccounts(db).AccountExists(addr)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAccountsCache(t *testing.T) {
	db := muxdb.NewMem()
	defer db.Close()

	accounts := NewAccounts(db)
	addr := thor.BytesToAddress([]byte("acc"))

	accounts.Set(addr, &Account{Nonce: 1, Balance: big.NewInt(0)})
	require.NoError(t, accounts.Commit())

	for range 3 {
		exists, err := accounts.AccountExists(addr)
		require.NoError(t, err)
		assert.True(t, exists)
	}
	_, hit, miss := accounts.cache.Stats().Stats()
	assert.Equal(t, int64(3), hit)
	assert.Equal(t, int64(0), miss)

	// mutating a returned copy doesn't leak
	acc, err := accounts.Get(addr)
	require.NoError(t, err)
	acc.Nonce = 9
	acc, err = accounts.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acc.Nonce)
}

func TestPruneEmpty(t *testing.T) {
	db := muxdb.NewMem()
	defer db.Close()

	accounts := NewAccounts(db)
	empty := thor.BytesToAddress([]byte("empty"))
	contract := thor.BytesToAddress([]byte("contract"))
	missing := thor.BytesToAddress([]byte("missing"))

	accounts.Set(empty, &Account{Balance: big.NewInt(0)})
	accounts.Set(contract, &Account{Balance: big.NewInt(0), CodeHash: []byte{1}})

	n, err := accounts.PruneEmpty(empty, contract, missing)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exists, err := accounts.AccountExists(empty)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = accounts.AccountExists(contract)
	require.NoError(t, err)
	assert.True(t, exists)
}
