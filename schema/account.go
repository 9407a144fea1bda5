// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/lucreledger/lucre/lucre"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the accounts trie, keyed by public key.
type Account struct {
	PubKey lucre.PublicKey
	Name   string
	// Balance is the spendable amount.
	Balance uint64
	// RetainedAmount is held in pending escrow, disjoint from Balance.
	// It grows only by a transfer hold and shrinks only by the matching
	// approval, always by the full held amount.
	RetainedAmount uint64
	// HistoryLen counts mutations of this account. Every successful
	// account-touching operation increments it by exactly one.
	HistoryLen uint64
	// HistoryHash is the digest of the account's append-only mutation log.
	HistoryHash lucre.Bytes32
}
