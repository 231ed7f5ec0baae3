// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalUnmarshall(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var unmarshaledValue Bytes32
	err := json.Unmarshal([]byte(originalHex), &unmarshaledValue)
	assert.NoError(t, err)

	marshalVal, err := json.Marshal(unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))

	marshalPtr, err := json.Marshal(&unmarshaledValue)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalPtr))

	var nilPtr *Bytes32
	marshalNil, err := json.Marshal(nilPtr)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(marshalNil))

	marshalField, err := json.Marshal(struct{ Root Bytes32 }{unmarshaledValue})
	assert.NoError(t, err)
	assert.Equal(t, `{"Root":`+originalHex+`}`, string(marshalField))
}

func TestParseBytes32(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x0000000000000000000000000000000000000000000000000000000000000001", false},
		{"0000000000000000000000000000000000000000000000000000000000000001", false},
		{"0X0000000000000000000000000000000000000000000000000000000000000001", false},
		{"1x0000000000000000000000000000000000000000000000000000000000000001", true},
		{"0x01", true},
		{"0xzz00000000000000000000000000000000000000000000000000000000000001", true},
	}
	for _, tt := range tests {
		b, err := ParseBytes32(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, BytesToBytes32([]byte{1}), b)
	}
}

func TestTrimmedBytes(t *testing.T) {
	assert.Empty(t, Bytes32{}.TrimmedBytes())
	assert.Equal(t, []byte{1, 0}, BytesToBytes32([]byte{1, 0}).TrimmedBytes())
	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, BytesToBytes32([]byte{1}).IsZero())
}
