// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package schema binds the authenticated indexes of the ledger and exposes the
// domain-level read/mutate operations used by transaction handlers.
//
// Three index families exist: accounts keyed by public key, pending transfers
// keyed by the originating transaction identifier, and one append-only history
// log per account whose digest is authenticated through the account record.
package schema

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/muxdb"
	"github.com/lucreledger/lucre/stackedmap"
	"github.com/lucreledger/lucre/trie"
)

// Roots holds the root digests of the authenticated indexes of a committed
// snapshot. A zero Roots denotes the empty ledger.
type Roots struct {
	Accounts  lucre.Bytes32
	Transfers lucre.Bytes32
}

// Fingerprint returns the per-index digests in their fixed, documented order:
// accounts trie root first, transfers trie root second. External verifiers
// recompute the aggregate the same way.
func (r Roots) Fingerprint() []lucre.Bytes32 {
	return []lucre.Bytes32{r.Accounts, r.Transfers}
}

// Error is the error caused by schema storage access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema: %v", e.cause)
}

// Schema is a mutable fork view over the ledger indexes at the given roots.
// Mutations are journaled in memory; nothing reaches the database until the
// fork is staged and committed. Dropping a Schema discards its mutations.
type Schema struct {
	db        *muxdb.MuxDB
	accounts  *trie.Trie
	transfers *trie.Trie

	accCache *stackedmap.StackedMap[lucre.PublicKey, *Account]
	trCache  *stackedmap.StackedMap[lucre.Bytes32, *PendingTransfer]
	hist     []historyEntry
}

type historyEntry struct {
	pubKey lucre.PublicKey
	index  uint64
	txID   lucre.Bytes32
}

// New creates a fork view bound to db at the given committed roots.
func New(db *muxdb.MuxDB, roots Roots) *Schema {
	s := &Schema{
		db:        db,
		accounts:  db.NewTrie(roots.Accounts),
		transfers: db.NewTrie(roots.Transfers),
	}
	s.accCache = stackedmap.New(s.loadAccount)
	s.accCache.Push()
	s.trCache = stackedmap.New(s.loadTransfer)
	s.trCache.Push()
	return s
}

func (s *Schema) loadAccount(pubKey lucre.PublicKey) (*Account, bool, error) {
	data, err := s.accounts.Get(pubKey.Bytes())
	if err != nil {
		return nil, false, &Error{err}
	}
	if len(data) == 0 {
		return nil, true, nil
	}
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		return nil, false, &Error{err}
	}
	return &acc, true, nil
}

func (s *Schema) loadTransfer(id lucre.Bytes32) (*PendingTransfer, bool, error) {
	data, err := s.transfers.Get(id.Bytes())
	if err != nil {
		return nil, false, &Error{err}
	}
	if len(data) == 0 {
		return nil, true, nil
	}
	var tr PendingTransfer
	if err := rlp.DecodeBytes(data, &tr); err != nil {
		return nil, false, &Error{err}
	}
	return &tr, true, nil
}

// Account returns the account stored under the given public key, or nil if
// there is none.
func (s *Schema) Account(pubKey lucre.PublicKey) (*Account, error) {
	acc, _, err := s.accCache.Get(pubKey)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	cpy := *acc
	return &cpy, nil
}

// PendingTransfer returns the pending transfer stored under the given
// transaction identifier, or nil if there is none.
func (s *Schema) PendingTransfer(id lucre.Bytes32) (*PendingTransfer, error) {
	tr, _, err := s.trCache.Get(id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, nil
	}
	cpy := *tr
	return &cpy, nil
}

// touch copies acc with its history advanced by one entry recording txID.
func (s *Schema) touch(acc *Account, txID lucre.Bytes32) *Account {
	cpy := *acc
	cpy.HistoryLen++
	s.hist = append(s.hist, historyEntry{cpy.PubKey, cpy.HistoryLen - 1, txID})
	return &cpy
}

// CreateAccount creates an account with the given name and starting balance.
// The account's history opens with a single entry recording txID.
func (s *Schema) CreateAccount(pubKey lucre.PublicKey, name string, balance uint64, txID lucre.Bytes32) {
	acc := s.touch(&Account{
		PubKey:  pubKey,
		Name:    name,
		Balance: balance,
	}, txID)
	s.accCache.Put(pubKey, acc)
}

// IncreaseBalance increases the account's spendable balance by amount.
func (s *Schema) IncreaseBalance(acc *Account, amount uint64, txID lucre.Bytes32) {
	upd := s.touch(acc, txID)
	upd.Balance += amount
	s.accCache.Put(upd.PubKey, upd)
}

// HoldForTransfer moves amount from the account's spendable balance into
// escrow and records the pending transfer under txID. The two balance moves
// fold into one recorded account update.
func (s *Schema) HoldForTransfer(acc *Account, amount uint64, txID lucre.Bytes32, transfer *PendingTransfer) {
	upd := s.touch(acc, txID)
	upd.Balance -= amount
	upd.RetainedAmount += amount
	s.accCache.Put(upd.PubKey, upd)
	s.trCache.Put(txID, transfer)
}

// DecreaseRetained releases amount from the account's escrow and consumes the
// pending transfer stored under transferID.
func (s *Schema) DecreaseRetained(acc *Account, amount uint64, txID, transferID lucre.Bytes32) {
	upd := s.touch(acc, txID)
	upd.RetainedAmount -= amount
	s.accCache.Put(upd.PubKey, upd)
	s.trCache.Put(transferID, nil)
}

// ProveAccount constructs a membership-or-absence proof for the given public
// key against the accounts trie digest.
func (s *Schema) ProveAccount(pubKey lucre.PublicKey) (*trie.Proof, error) {
	proof, err := s.accounts.Prove(pubKey.Bytes())
	if err != nil {
		return nil, &Error{err}
	}
	return proof, nil
}
