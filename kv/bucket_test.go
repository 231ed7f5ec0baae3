// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return err == errNotFound
}

func (m mem) Bulk() Bulk {
	pending := mem{}
	var deleted [][]byte
	return &struct {
		Putter
		EnableAutoFlushFunc
		WriteFunc
	}{
		&struct {
			PutFunc
			DeleteFunc
		}{
			pending.Put,
			func(k []byte) error {
				deleted = append(deleted, k)
				return nil
			},
		},
		func() {},
		func() error {
			for _, k := range deleted {
				delete(m, string(k))
			}
			for k, v := range pending {
				m[k] = v
			}
			return nil
		},
	}
}

type pair struct{ k, v []byte }

func (p pair) Key() []byte   { return p.k }
func (p pair) Value() []byte { return p.v }

func (m mem) Iterate(r Range, fn func(Pair) bool) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		kb := []byte(k)
		if bytes.Compare(kb, r.Start) >= 0 && (len(r.Limit) == 0 || bytes.Compare(kb, r.Limit) < 0) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn(pair{[]byte(k), []byte(m[k])}) {
			break
		}
	}
	return nil
}

func TestBucket_GetterGet(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b    Bucket
		key  string
		want string
	}{
		{Bucket(""), "k1", "v1"},
		{Bucket(""), "k2", "v2"},
		{Bucket("k"), "k1", ""},
		{Bucket("k"), "1", "v1"},
		{Bucket("k"), "2", "v2"},
		{Bucket("k1"), "", "v1"},
	}
	for _, tt := range tests {
		got, _ := tt.b.NewGetter(m).Get([]byte(tt.key))
		assert.Equal(t, tt.want, string(got))
	}
}

func TestBucket_GetterHas(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b    Bucket
		key  string
		want bool
	}{
		{Bucket(""), "k1", true},
		{Bucket("k"), "k1", false},
		{Bucket("k"), "1", true},
		{Bucket("k1"), "", true},
	}
	for _, tt := range tests {
		got, _ := tt.b.NewGetter(m).Has([]byte(tt.key))
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestBucket_Store(t *testing.T) {
	m := mem{"other": "x"}
	store := Bucket("s.").NewStore(m)

	require.NoError(t, store.Put([]byte("a"), []byte("1")))
	assert.Equal(t, "1", m["s.a"])

	_, err := store.Get([]byte("missing"))
	assert.True(t, store.IsNotFound(err))

	bulk := store.Bulk()
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Put([]byte("c"), []byte("3")))
	require.NoError(t, bulk.Delete([]byte("a")))
	_, ok := m["s.b"]
	assert.False(t, ok, "bulk should not be visible before write")
	require.NoError(t, bulk.Write())

	var keys []string
	require.NoError(t, store.Iterate(Range{}, func(p Pair) bool {
		keys = append(keys, string(p.Key())+"="+string(p.Value()))
		return true
	}))
	assert.Equal(t, []string{"b=2", "c=3"}, keys)

	keys = keys[:0]
	require.NoError(t, store.Iterate(Range{Start: []byte("c")}, func(p Pair) bool {
		keys = append(keys, string(p.Key()))
		return true
	}))
	assert.Equal(t, []string{"c"}, keys)

	require.NoError(t, store.Delete([]byte("c")))
	has, _ := store.Has([]byte("c"))
	assert.False(t, has)
	assert.Equal(t, "x", m["other"])
}
