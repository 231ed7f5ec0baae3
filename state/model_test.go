// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"context"
	"maps"
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
	"github.com/vechain/slotdb/thor"
	"github.com/vechain/slotdb/trie"
)

type opKind uint8

const (
	opGet opKind = iota
	opSet
	opSnapshot
	opRestore
	opCommit
	opCommitTrees
	numOpKinds
)

type randomOp struct {
	Kind  uint8
	Addr  uint8
	Index uint8
	Value uint8
}

// storageModel is the plain map semantics the provider must agree with.
type storageModel struct {
	slots     map[StorageKey]thor.Bytes32
	snapshots []modelSnapshot
}

type modelSnapshot struct {
	id    int
	slots map[StorageKey]thor.Bytes32
}

func TestRandomOpsAgainstModel(t *testing.T) {
	addrs := []thor.Address{addrA, addrB, thor.BytesToAddress([]byte("contract-c"))}

	for seed := int64(1); seed <= 30; seed++ {
		var ops []randomOp
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(50, 300).Fuzz(&ops)

		env := newTestEnv(t, Options{InitialCapacity: 8, CommitConcurrency: 2}, addrs...)
		model := &storageModel{slots: make(map[StorageKey]thor.Bytes32)}

		fail := func(step int, format string, args ...any) {
			t.Fatalf("seed %d step %d: "+format+"\nops: %s", append([]any{seed, step}, append(args, spew.Sdump(ops[:step+1]))...)...)
		}

		for step, op := range ops {
			k := StorageKey{addrs[int(op.Addr)%len(addrs)], b32(uint64(op.Index % 6))}
			switch opKind(op.Kind % uint8(numOpKinds)) {
			case opGet:
				v, err := env.p.Get(k)
				if err != nil {
					fail(step, "get: %v", err)
				}
				if v != model.slots[k] {
					fail(step, "get %v = %v, want %v", k, v, model.slots[k])
				}
			case opSet:
				v := b32(uint64(op.Value % 4))
				env.p.Set(k, v)
				model.slots[k] = v
			case opSnapshot:
				model.snapshots = append(model.snapshots, modelSnapshot{env.p.TakeSnapshot(), maps.Clone(model.slots)})
			case opRestore:
				if len(model.snapshots) == 0 {
					continue
				}
				// any open snapshot, popping the younger ones
				i := int(op.Value) % len(model.snapshots)
				snap := model.snapshots[i]
				model.snapshots = model.snapshots[:i]
				if err := env.p.Restore(snap.id); err != nil {
					fail(step, "restore %d: %v", snap.id, err)
				}
				model.slots = snap.slots
			case opCommit:
				if err := env.p.Commit(istanbul); err != nil {
					fail(step, "commit: %v", err)
				}
				model.snapshots = nil
			case opCommitTrees:
				if env.p.TakeSnapshot() >= 0 {
					// only at block boundaries
					continue
				}
				if err := env.p.CommitTrees(context.Background()); err != nil {
					fail(step, "commit trees: %v", err)
				}
			}
		}

		require.NoError(t, env.p.Commit(istanbul))
		require.NoError(t, env.p.CommitTrees(context.Background()))

		for _, addr := range addrs {
			want := make(map[thor.Bytes32]thor.Bytes32)
			for k, v := range model.slots {
				if k.Address == addr {
					want[k.Index] = v
				}
			}
			root, err := env.accounts.GetStorageRoot(addr)
			require.NoError(t, err)
			require.Equal(t, trie.DeriveStorageRoot(want), root, "seed %d addr %v", seed, addr)
		}
	}
}
