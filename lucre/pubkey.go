// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lucre

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

const (
	// PublicKeyLength length of public key in bytes.
	PublicKeyLength = 32
)

// PublicKey identifies an account. It is treated as an opaque 32-byte value;
// signature verification happens outside the ledger core.
type PublicKey [PublicKeyLength]byte

var (
	_ json.Marshaler   = (*PublicKey)(nil)
	_ json.Unmarshaler = (*PublicKey)(nil)
)

// String implements the stringer interface
func (p PublicKey) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// Bytes returns byte slice form of public key.
func (p PublicKey) Bytes() []byte {
	return p[:]
}

// IsZero returns if PublicKey has all zero bytes.
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// MarshalJSON implements json.Marshaler.
func (p *PublicKey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(hex)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePublicKey convert string presented public key into PublicKey type.
func ParsePublicKey(s string) (PublicKey, error) {
	if len(s) == PublicKeyLength*2 {
	} else if len(s) == PublicKeyLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return PublicKey{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return PublicKey{}, errors.New("invalid length")
	}

	var pk PublicKey
	_, err := hex.Decode(pk[:], []byte(s))
	if err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// MustParsePublicKey convert string presented public key into PublicKey type, panic on error.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// BytesToPublicKey converts bytes slice into public key.
// If b is larger than public key length, b will be cropped (from the left).
// If b is smaller than public key length, b will be extended (from the left).
func BytesToPublicKey(b []byte) PublicKey {
	return PublicKey(BytesToBytes32(b))
}
