// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/lucreledger/lucre/lucre"
)

// PendingTransfer is an in-flight escrow awaiting approval.
// RLP encoded objects are stored in the transfers trie, keyed by the
// identifier of the originating transfer transaction. The record is created
// when a transfer executes, removed when the matching approval executes, and
// never mutated otherwise.
type PendingTransfer struct {
	From     lucre.PublicKey
	To       lucre.PublicKey
	Approver lucre.PublicKey
	Amount   uint64
	// Seed is a client-chosen value separating identifiers of otherwise
	// identical transfers. The ledger never checks it.
	Seed uint64
}
