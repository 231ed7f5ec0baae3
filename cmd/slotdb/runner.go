// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/pkg/errors"
	"github.com/vechain/slotdb/muxdb"
	"github.com/vechain/slotdb/state"
	"github.com/vechain/slotdb/thor"
	"github.com/vechain/slotdb/trie"
)

type runner struct {
	spec     *thor.ReleaseSpec
	accounts *state.Accounts
	provider *state.StorageProvider
	out      io.Writer

	names map[thor.Address]string
}

func newRunner(db *muxdb.MuxDB, spec *thor.ReleaseSpec, out io.Writer) *runner {
	accounts := state.NewAccounts(db)
	return &runner{
		spec:     spec,
		accounts: accounts,
		provider: state.NewStorageProvider(state.NewTrieDatabase(trie.New(db)), accounts, state.DefaultOptions()),
		out:      out,
		names:    make(map[thor.Address]string),
	}
}

func (r *runner) contract(name string) (thor.Address, error) {
	addr, err := parseContract(name)
	if err != nil {
		return thor.Address{}, err
	}
	r.names[addr] = name
	return addr, nil
}

// createAccount creates the account unless it exists.
func (r *runner) createAccount(addr thor.Address, empty bool) error {
	exists, err := r.accounts.AccountExists(addr)
	if err != nil || exists {
		return err
	}
	acc := &state.Account{Balance: new(big.Int)}
	if !empty {
		acc.CodeHash = thor.Keccak256(addr[:]).Bytes()
	}
	r.accounts.Set(addr, acc)
	return nil
}

// Run executes all blocks of the scenario.
func (r *runner) Run(ctx context.Context, sc *Scenario) error {
	fmt.Fprintf(r.out, "spec %v\n", r.spec)

	for _, name := range sc.Contracts {
		addr, err := r.contract(name)
		if err != nil {
			return err
		}
		if err := r.createAccount(addr, false); err != nil {
			return err
		}
	}
	if err := r.accounts.Commit(); err != nil {
		return err
	}

	for bi, b := range sc.Blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		for ti, tx := range b.Txs {
			if err := r.execTx(bi, ti, &tx); err != nil {
				r.provider.Reset()
				r.accounts.Reset()
				return errors.Wrapf(err, "block %d tx %d", bi, ti)
			}
		}
		if err := r.commitBlock(ctx); err != nil {
			return errors.Wrapf(err, "block %d", bi)
		}
		if err := r.printRoots(bi); err != nil {
			return err
		}
	}
	return nil
}

// commitBlock persists the block. Everything buffered is dropped on failure.
func (r *runner) commitBlock(ctx context.Context) error {
	err := r.provider.CommitTrees(ctx)
	if err == nil {
		err = r.accounts.Commit()
	}
	if err != nil {
		r.provider.Reset()
		r.accounts.Reset()
	}
	return err
}

func (r *runner) execTx(bi, ti int, tx *Tx) error {
	var (
		gasLeft   = tx.Gas
		refund    int64
		snapshots = make(map[string]int)
		touched   []thor.Address
		reverted  = tx.Revert
	)
	if gasLeft == 0 {
		gasLeft = defaultTxGas
	}
	start := r.provider.TakeSnapshot()

	for oi, op := range tx.Ops {
		err := r.execOp(&op, snapshots, &touched, &gasLeft, &refund)
		if errors.Is(err, errOutOfGas) || errors.Is(err, state.ErrSstoreSentry) {
			logger.Debug("tx out of gas", "block", bi, "tx", ti, "op", oi, "err", err)
			reverted = true
			break
		}
		if err != nil {
			return errors.Wrapf(err, "op %d", oi)
		}
	}

	if reverted {
		if err := r.provider.Restore(start); err != nil {
			return err
		}
		refund = 0
	}
	if err := r.provider.Commit(r.spec); err != nil {
		return err
	}
	if r.spec.IsEip158Enabled && !reverted {
		pruned, err := r.accounts.PruneEmpty(touched...)
		if err != nil {
			return err
		}
		if pruned > 0 {
			logger.Debug("empty accounts pruned", "block", bi, "tx", ti, "count", pruned)
		}
	}

	status := "ok"
	if reverted {
		status = "reverted"
	}
	fmt.Fprintf(r.out, "block %d tx %d %v gasleft=%d refund=%d\n", bi, ti, status, gasLeft, refund)
	return nil
}

var errOutOfGas = errors.New("out of gas")

func (r *runner) execOp(op *Op, snapshots map[string]int, touched *[]thor.Address, gasLeft *uint64, refund *int64) error {
	switch op.Op {
	case "snapshot":
		snapshots[op.Label] = r.provider.TakeSnapshot()
		return nil
	case "restore":
		snap, ok := snapshots[op.Label]
		if !ok {
			return errors.Errorf("unknown snapshot %q", op.Label)
		}
		return r.provider.Restore(snap)
	}

	addr, err := r.contract(op.Contract)
	if err != nil {
		return err
	}
	*touched = append(*touched, addr)

	switch op.Op {
	case "destroy":
		r.provider.Destroy(addr)
		return nil
	case "kill":
		r.accounts.Delete(addr)
		return nil
	case "create":
		return r.createAccount(addr, op.Value == "empty")
	}

	slot, err := parseWord(op.Slot)
	if err != nil {
		return err
	}
	key := state.StorageKey{Address: addr, Index: slot}

	switch op.Op {
	case "get":
		v, err := r.provider.Get(key)
		if err != nil {
			return err
		}
		if op.Expect != "" {
			want, err := parseWord(op.Expect)
			if err != nil {
				return err
			}
			if v != want {
				return errors.Errorf("get %v: got %v, want %v", key, v, want)
			}
		}
		return nil
	case "set":
		value, err := parseWord(op.Value)
		if err != nil {
			return err
		}
		cost, ref, err := r.provider.SstoreGas(r.spec, key, value, *gasLeft)
		if err != nil {
			return err
		}
		if cost > *gasLeft {
			return errOutOfGas
		}
		*gasLeft -= cost
		*refund += ref
		r.provider.Set(key, value)
		return nil
	}
	return errors.Errorf("unknown op %q", op.Op)
}

func (r *runner) printRoots(bi int) error {
	addrs := make([]thor.Address, 0, len(r.names))
	for addr := range r.names {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b thor.Address) int { return slices.Compare(a[:], b[:]) })

	for _, addr := range addrs {
		exists, err := r.accounts.AccountExists(addr)
		if err != nil {
			return err
		}
		if !exists {
			fmt.Fprintf(r.out, "block %d %v <none>\n", bi, r.names[addr])
			continue
		}
		root, err := r.accounts.GetStorageRoot(addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "block %d %v %v\n", bi, r.names[addr], root)
	}
	return nil
}
