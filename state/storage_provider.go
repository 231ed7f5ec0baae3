// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"github.com/vechain/slotdb/log"
	"github.com/vechain/slotdb/thor"
	"golang.org/x/sync/errgroup"
)

var logger = log.WithContext("pkg", "state")

// Options optional parameters for StorageProvider.
type Options struct {
	// InitialCapacity is the preallocated size of the change log, and the
	// floor it shrinks to after each round.
	InitialCapacity int
	// CommitConcurrency bounds the number of tries persisted in parallel by CommitTrees.
	CommitConcurrency int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		InitialCapacity:   1024,
		CommitConcurrency: 4,
	}
}

// StorageProvider tracks contract storage slots within a block.
// It is not safe for concurrent use.
type StorageProvider struct {
	tries    TrieDatabase
	accounts AccountStateProvider
	opts     Options

	changes   []*Change
	index     map[StorageKey]*stack
	originals map[StorageKey]thor.Bytes32
	committed map[StorageKey]struct{}

	trieCache map[thor.Address]StorageTrie
}

// NewStorageProvider creates a storage provider.
func NewStorageProvider(tries TrieDatabase, accounts AccountStateProvider, opts Options) *StorageProvider {
	def := DefaultOptions()
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = def.InitialCapacity
	}
	if opts.CommitConcurrency <= 0 {
		opts.CommitConcurrency = def.CommitConcurrency
	}
	return &StorageProvider{
		tries:     tries,
		accounts:  accounts,
		opts:      opts,
		changes:   make([]*Change, 0, opts.InitialCapacity),
		index:     make(map[StorageKey]*stack),
		originals: make(map[StorageKey]thor.Bytes32),
		committed: make(map[StorageKey]struct{}),
		trieCache: make(map[thor.Address]StorageTrie),
	}
}

func (p *StorageProvider) position() int {
	return len(p.changes) - 1
}

func (p *StorageProvider) push(c *Change) {
	p.changes = append(p.changes, c)
	pos := p.position()
	if s, ok := p.index[c.Key]; ok {
		s.push(pos)
	} else {
		p.index[c.Key] = &stack{pos}
	}
}

// Get returns the current value of the slot.
// A slot not yet touched in this round is loaded from its trie and logged as a read.
func (p *StorageProvider) Get(key StorageKey) (thor.Bytes32, error) {
	if s, ok := p.index[key]; ok && len(*s) > 0 {
		return p.changes[s.top()].Value, nil
	}

	t, err := p.getTrie(key.Address)
	if err != nil {
		return thor.Bytes32{}, err
	}
	value, err := t.Get(key.Index)
	if err != nil {
		return thor.Bytes32{}, &Error{errors.Wrapf(err, "load %v", key)}
	}

	if _, ok := p.originals[key]; !ok {
		p.originals[key] = value
	}
	p.push(&Change{Kind: JustCache, Key: key, Value: value})
	return value, nil
}

// GetOriginal returns the value the slot had when first loaded in this round.
func (p *StorageProvider) GetOriginal(key StorageKey) (thor.Bytes32, error) {
	if v, ok := p.originals[key]; ok {
		return v, nil
	}
	return thor.Bytes32{}, errors.Wrapf(ErrInvalidState, "original of %v requested before load", key)
}

// Set writes the slot. Nothing reaches the trie before Commit.
func (p *StorageProvider) Set(key StorageKey, value thor.Bytes32) {
	p.push(&Change{Kind: Update, Key: key, Value: value})
}

// TakeSnapshot returns the current change log position, -1 if the log is empty.
func (p *StorageProvider) TakeSnapshot() int {
	return p.position()
}

// Restore reverts all changes logged after snapshot.
// A read which is the only live entry of its key survives, and is moved
// right after snapshot in the order met.
func (p *StorageProvider) Restore(snapshot int) error {
	pos := p.position()
	if snapshot > pos {
		return invalidState("restore to %d beyond position %d", snapshot, pos)
	}
	if snapshot < -1 {
		return invalidState("restore to negative snapshot %d", snapshot)
	}
	if snapshot == pos {
		return nil
	}
	metricRestoreCount().Add(1)

	var kept []*Change
	for i := pos; i > snapshot; i-- {
		c := p.changes[i]
		s, ok := p.index[c.Key]
		if !ok || len(*s) == 0 {
			return invalidState("no position of %v at %d", c.Key, i)
		}

		if len(*s) == 1 && c.Kind == JustCache {
			if got := s.pop(); got != i {
				return invalidState("position of %v is %d, want %d", c.Key, got, i)
			}
			kept = append(kept, c)
			continue
		}

		if got := s.pop(); got != i {
			return invalidState("position of %v is %d, want %d", c.Key, got, i)
		}
		if len(*s) == 0 {
			delete(p.index, c.Key)
		}
	}

	clear(p.changes[snapshot+1:])
	p.changes = p.changes[:snapshot+1]
	for _, c := range kept {
		p.push(c)
	}
	return nil
}

// getTrie returns the cached trie handle, opening it at the account's storage root if absent.
func (p *StorageProvider) getTrie(addr thor.Address) (StorageTrie, error) {
	if t, ok := p.trieCache[addr]; ok {
		return t, nil
	}
	root, err := p.accounts.GetStorageRoot(addr)
	if err != nil {
		return nil, &Error{errors.Wrapf(err, "storage root of %v", addr)}
	}
	t, err := p.tries.OpenStorageTrie(addr, root)
	if err != nil {
		return nil, &Error{errors.Wrapf(err, "open storage of %v", addr)}
	}
	p.trieCache[addr] = t
	metricOpenTries().Set(int64(len(p.trieCache)))
	return t, nil
}

// Commit writes the last value of every updated slot into its trie and
// pushes the new storage roots into the account state. The round is reset
// afterwards.
//
// All bookkeeping is verified before the first trie write, so a violation
// leaves every trie untouched.
func (p *StorageProvider) Commit(spec *thor.ReleaseSpec) error {
	pos := p.position()
	if pos < 0 {
		return nil
	}

	type write struct {
		trie  StorageTrie
		index thor.Bytes32
		value thor.Bytes32
	}
	var (
		writes  []write
		touched []thor.Address
		seen    = make(map[thor.Address]bool)
		perAddr = make(map[thor.Address]int64)
		kinds   = make(map[ChangeKind]int64)
	)
	for i := pos; i >= 0; i-- {
		c := p.changes[i]
		if c == nil {
			return invalidState("missing change at %d", i)
		}
		if _, ok := p.committed[c.Key]; ok {
			continue
		}
		p.committed[c.Key] = struct{}{}
		kinds[c.Kind]++

		s, ok := p.index[c.Key]
		if !ok || len(*s) == 0 {
			return invalidState("no position of %v at %d", c.Key, i)
		}
		if got := s.pop(); got != i {
			return invalidState("position of %v is %d, want %d", c.Key, got, i)
		}

		if c.Kind != Update {
			continue
		}
		t, err := p.getTrie(c.Key.Address)
		if err != nil {
			return err
		}
		writes = append(writes, write{t, c.Key.Index, c.Value})
		perAddr[c.Key.Address]++
		if !seen[c.Key.Address] {
			seen[c.Key.Address] = true
			touched = append(touched, c.Key.Address)
		}
	}

	for _, w := range writes {
		if err := w.trie.Set(w.index, w.value); err != nil {
			return &Error{errors.Wrap(err, "write storage")}
		}
	}

	for _, addr := range touched {
		exists, err := p.accounts.AccountExists(addr)
		if err != nil {
			return &Error{errors.Wrapf(err, "check account %v", addr)}
		}
		if !exists {
			// pruned as an empty account
			delete(p.trieCache, addr)
			logger.Debug("storage of missing account dropped", "addr", addr)
			continue
		}
		t := p.trieCache[addr]
		if err := t.UpdateRootHash(); err != nil {
			return &Error{errors.Wrapf(err, "update storage root of %v", addr)}
		}
		if err := p.accounts.UpdateStorageRoot(addr, t.RootHash()); err != nil {
			return &Error{errors.Wrapf(err, "set storage root of %v", addr)}
		}
	}

	specName := "unknown"
	if spec != nil {
		specName = spec.Name
	}
	metricCommitCount().AddWithLabel(1, map[string]string{"spec": specName})
	metricTrieWriteCount().Add(int64(len(writes)))
	metricChangeLogSize().Observe(int64(pos + 1))
	metricOpenTries().Set(int64(len(p.trieCache)))
	for _, kind := range []ChangeKind{JustCache, Update, Destroy} {
		metricRoundKeys().SetWithLabel(kinds[kind], map[string]string{"kind": kind.String()})
	}
	for _, addr := range touched {
		metricContractWrites().ObserveWithLabels(perAddr[addr], map[string]string{"spec": specName})
	}
	logger.Debug("storage round committed",
		"spec", specName,
		"changes", pos+1,
		"writes", len(writes),
		"contracts", len(touched))

	p.resetRound()
	return nil
}

// resetRound drops the per round structures, shrinking the change log toward its floor.
func (p *StorageProvider) resetRound() {
	if c := cap(p.changes); c > p.opts.InitialCapacity {
		p.changes = make([]*Change, 0, max(c/2, p.opts.InitialCapacity))
	} else {
		clear(p.changes)
		p.changes = p.changes[:0]
	}
	clear(p.index)
	clear(p.originals)
	clear(p.committed)
}

// Reset discards all uncommitted changes and the open trie handles.
func (p *StorageProvider) Reset() {
	p.resetRound()
	clear(p.trieCache)
	metricOpenTries().Set(0)
}

// CommitTrees persists all open trie handles and releases them.
func (p *StorageProvider) CommitTrees(ctx context.Context) error {
	addrs := make([]thor.Address, 0, len(p.trieCache))
	for addr := range p.trieCache {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b thor.Address) int { return slices.Compare(a[:], b[:]) })

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.CommitConcurrency)
	for _, addr := range addrs {
		t := p.trieCache[addr]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.Commit(); err != nil {
				return &Error{errors.Wrapf(err, "commit storage of %v", addr)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug("storage tries committed", "count", len(addrs))
	clear(p.trieCache)
	metricOpenTries().Set(0)
	return nil
}

// Destroy is a placeholder for wiping a contract's storage. It does nothing:
// reads after a destroy still see the storage as of before.
func (p *StorageProvider) Destroy(addr thor.Address) {}
