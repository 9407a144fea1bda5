// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/schema"
	"github.com/lucreledger/lucre/trie"
)

// Account for marshal account
type Account struct {
	PubKey         lucre.PublicKey `json:"pubKey"`
	Name           string          `json:"name"`
	Balance        uint64          `json:"balance"`
	RetainedAmount uint64          `json:"retainedAmount"`
	HistoryLen     uint64          `json:"historyLen"`
	HistoryHash    lucre.Bytes32   `json:"historyHash"`
}

func convertAccount(acc *schema.Account) *Account {
	return &Account{
		PubKey:         acc.PubKey,
		Name:           acc.Name,
		Balance:        acc.Balance,
		RetainedAmount: acc.RetainedAmount,
		HistoryLen:     acc.HistoryLen,
		HistoryHash:    acc.HistoryHash,
	}
}

// Proof for marshal membership/absence proof
type Proof struct {
	Siblings  []lucre.Bytes32 `json:"siblings"`
	LeafKey   lucre.Bytes32   `json:"leafKey"`
	LeafValue hexutil.Bytes   `json:"leafValue"`
}

func convertProof(proof *trie.Proof) *Proof {
	siblings := proof.Siblings
	if siblings == nil {
		siblings = []lucre.Bytes32{}
	}
	return &Proof{
		Siblings:  siblings,
		LeafKey:   proof.LeafKey,
		LeafValue: proof.LeafValue,
	}
}

// AccountProof couples the state fingerprint with the account proof.
type AccountProof struct {
	Fingerprint []lucre.Bytes32 `json:"fingerprint"`
	Proof       *Proof          `json:"proof"`
}
