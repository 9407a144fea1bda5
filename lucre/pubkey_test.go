// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lucre

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicKeyCodec(t *testing.T) {
	assert := assert.New(t)

	hex := "0x0101000000000000000000000000000000000000000000000000000000000000"
	pk := MustParsePublicKey(hex)
	assert.Equal(hex, pk.String())
	assert.Equal(pk, BytesToPublicKey(pk.Bytes()))
	assert.False(pk.IsZero())

	assert.Equal(pk, MustParsePublicKey(hex[2:]))

	_, err := ParsePublicKey("0x01")
	assert.Error(err)
	assert.Panics(func() { MustParsePublicKey("junk") })

	data, err := json.Marshal(&pk)
	assert.Nil(err)
	assert.Equal(`"`+hex+`"`, string(data))

	var decoded PublicKey
	assert.Nil(json.Unmarshal(data, &decoded))
	assert.Equal(pk, decoded)
}

func TestBytesToPublicKeyPadding(t *testing.T) {
	assert := assert.New(t)

	// short input is left-extended
	pk := BytesToPublicKey([]byte{0xab})
	assert.Equal(byte(0xab), pk[31])
	assert.Equal(byte(0), pk[0])

	// long input is left-cropped
	long := make([]byte, 40)
	long[39] = 0xcd
	assert.Equal(byte(0xcd), BytesToPublicKey(long)[31])
}
