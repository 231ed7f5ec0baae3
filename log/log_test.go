// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func captureRoot(t *testing.T, verbosity int) *bytes.Buffer {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	buf := &bytes.Buffer{}
	Init(buf, verbosity, true)
	return buf
}

func TestWithContext(t *testing.T) {
	// created before Init on purpose
	l := WithContext("pkg", "state")

	buf := captureRoot(t, 3)
	l.Info("committed", "changes", 3)

	out := buf.String()
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, `"pkg":"state"`)
	assert.Contains(t, out, `"changes":3`)

	buf.Reset()
	l.With("addr", "0x01").Warn("pruned")
	assert.Contains(t, buf.String(), `"addr":"0x01"`)
	assert.Contains(t, buf.String(), `"pkg":"state"`)
}

func TestVerbosity(t *testing.T) {
	l := WithContext("pkg", "test")
	buf := captureRoot(t, 2)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestTerminalInit(t *testing.T) {
	old := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(old) })

	buf := &bytes.Buffer{}
	Init(buf, 3, false)
	WithContext("pkg", "test").Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")
	assert.False(t, useColor(buf))
}
