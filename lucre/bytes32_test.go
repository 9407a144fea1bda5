// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lucre

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32Codec(t *testing.T) {
	assert := assert.New(t)

	hex := "0x00000000000000000000000000000000000000000000000000006d6173746572"
	b32 := MustParseBytes32(hex)
	assert.Equal(hex, b32.String())
	assert.Equal(b32, BytesToBytes32(b32.Bytes()))

	// the prefix is optional
	assert.Equal(b32, MustParseBytes32(hex[2:]))

	_, err := ParseBytes32("0x123")
	assert.Error(err)
	_, err = ParseBytes32("zz" + hex[2:])
	assert.Error(err)
	assert.Panics(func() { MustParseBytes32("junk") })

	data, err := json.Marshal(&b32)
	assert.Nil(err)
	assert.Equal(`"`+hex+`"`, string(data))

	var decoded Bytes32
	assert.Nil(json.Unmarshal(data, &decoded))
	assert.Equal(b32, decoded)
}

func TestBytes32Bit(t *testing.T) {
	assert := assert.New(t)

	var b Bytes32
	assert.True(b.IsZero())
	for i := 0; i < 256; i++ {
		assert.Equal(byte(0), b.Bit(i))
	}

	b[0] = 0x80  // bit 0
	b[1] = 0x01  // bit 15
	b[31] = 0x01 // bit 255
	assert.Equal(byte(1), b.Bit(0))
	assert.Equal(byte(0), b.Bit(1))
	assert.Equal(byte(1), b.Bit(15))
	assert.Equal(byte(1), b.Bit(255))
	assert.False(b.IsZero())
}
