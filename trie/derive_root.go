// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	ethtrie "github.com/ethereum/go-ethereum/trie"
	"github.com/vechain/slotdb/thor"
)

// leaf is a hashed slot key with its encoded value.
type leaf struct {
	key []byte
	val []byte
}

// encodeValue returns the trie encoding of a slot value, nil for zero.
func encodeValue(v thor.Bytes32) []byte {
	if v.IsZero() {
		return nil
	}
	enc, _ := rlp.EncodeToBytes(v.TrimmedBytes())
	return enc
}

func decodeValue(enc []byte) (thor.Bytes32, error) {
	if len(enc) == 0 {
		return thor.Bytes32{}, nil
	}
	var b []byte
	if err := rlp.DecodeBytes(enc, &b); err != nil {
		return thor.Bytes32{}, err
	}
	return thor.BytesToBytes32(b), nil
}

// hashLeaves computes the root of leaves, which must be sorted by key.
func hashLeaves(leaves []leaf) (thor.Bytes32, error) {
	if len(leaves) == 0 {
		return thor.EmptyRoot, nil
	}
	st := ethtrie.NewStackTrie(nil)
	for _, l := range leaves {
		if err := st.Update(l.key, l.val); err != nil {
			return thor.Bytes32{}, err
		}
	}
	return thor.Bytes32(st.Hash()), nil
}

// DeriveStorageRoot computes the storage root of a complete slot set.
// Zero values are treated as absent.
func DeriveStorageRoot(slots map[thor.Bytes32]thor.Bytes32) thor.Bytes32 {
	leaves := make([]leaf, 0, len(slots))
	for index, v := range slots {
		if enc := encodeValue(v); enc != nil {
			hk := thor.Keccak256(index[:])
			leaves = append(leaves, leaf{hk[:], enc})
		}
	}
	slices.SortFunc(leaves, func(a, b leaf) int { return bytes.Compare(a.key, b.key) })

	root, err := hashLeaves(leaves)
	if err != nil {
		panic(err) // sorted unique keys never fail
	}
	return root
}
