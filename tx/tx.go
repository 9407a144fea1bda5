// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx defines the ledger transaction language: a closed set of four
// payload kinds dispatched by tag. New kinds extend the set; there is no
// open-ended subclassing.
package tx

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lucreledger/lucre/lucre"
)

// Payload kind tags. Part of the identifier derivation, never reordered.
const (
	KindCreateAccount byte = iota
	KindIssue
	KindTransfer
	KindApprove
)

// Payload is one of the four transaction payload kinds.
type Payload interface {
	// Kind returns the payload's kind tag.
	Kind() byte
}

// CreateAccount creates an account with the given name for the author.
type CreateAccount struct {
	Name string
}

// Issue issues Amount of new funds to the author's account.
type Issue struct {
	Amount uint64
	// Seed separates identifiers of otherwise identical transactions.
	Seed uint64
}

// Transfer holds Amount of the sender's funds in escrow for To, pending
// approval by Approver.
type Transfer struct {
	From     lucre.PublicKey
	To       lucre.PublicKey
	Approver lucre.PublicKey
	Amount   uint64
	// Seed separates identifiers of otherwise identical transactions.
	Seed uint64
}

// Approve releases the escrow held by the transfer transaction identified by
// TransferID to its receiver.
type Approve struct {
	TransferID lucre.Bytes32
	// Seed separates identifiers of otherwise identical transactions.
	Seed uint64
}

func (*CreateAccount) Kind() byte { return KindCreateAccount }
func (*Issue) Kind() byte         { return KindIssue }
func (*Transfer) Kind() byte      { return KindTransfer }
func (*Approve) Kind() byte       { return KindApprove }

// Transaction is an authenticated transaction: a payload plus the verified
// author public key. Signature checking happens before a Transaction is
// built; the ledger core never sees signatures.
type Transaction struct {
	author  lucre.PublicKey
	payload Payload

	cache struct {
		id atomic.Value
	}
}

// New creates a transaction.
func New(author lucre.PublicKey, payload Payload) *Transaction {
	return &Transaction{author: author, payload: payload}
}

// Author returns the verified author public key.
func (t *Transaction) Author() lucre.PublicKey {
	return t.author
}

// Payload returns the transaction payload.
func (t *Transaction) Payload() Payload {
	return t.payload
}

// ID returns the transaction identifier:
//
//	blake2b(kindTag ‖ author ‖ rlp(payload))
//
// Payload fields enter the digest in declaration order, so any encoding
// preserving field order reproduces the same identifiers.
func (t *Transaction) ID() lucre.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(lucre.Bytes32)
	}

	id := lucre.Blake2bFn(func(w io.Writer) {
		w.Write([]byte{t.payload.Kind()})
		w.Write(t.author.Bytes())
		rlp.Encode(w, t.payload)
	})
	t.cache.id.Store(id)
	return id
}
