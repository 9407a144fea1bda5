// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schema

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/qianbin/drlp"

	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/trie"
)

// Stage abstracts the journaled changes applied onto the index tries, ready to
// be committed.
type Stage struct {
	err error

	accounts  *trie.Trie
	transfers *trie.Trie
	histories []*trie.Trie
	commit    func() (Roots, error)
}

// Stage applies all journaled mutations onto the index tries and returns a
// Stage ready to hash or commit. History appends are replayed in mutation
// order onto each touched account's log trie, whose new digest is folded into
// the account record before the record is saved.
func (s *Schema) Stage() *Stage {
	stage := &Stage{
		accounts:  s.accounts,
		transfers: s.transfers,
	}

	// collect the final version of each touched account, preserving
	// first-touch order
	changed := make(map[lucre.PublicKey]*Account)
	var order []lucre.PublicKey
	s.accCache.Journal(func(pubKey lucre.PublicKey, acc *Account) bool {
		if _, ok := changed[pubKey]; !ok {
			order = append(order, pubKey)
		}
		changed[pubKey] = acc
		return true
	})

	// replay history appends
	histTries := make(map[lucre.PublicKey]*trie.Trie)
	var key []byte
	for _, entry := range s.hist {
		ht, ok := histTries[entry.pubKey]
		if !ok {
			ht = s.db.NewTrie(changed[entry.pubKey].HistoryHash)
			histTries[entry.pubKey] = ht
			stage.histories = append(stage.histories, ht)
		}
		key = drlp.AppendUint(key[:0], entry.index)
		if err := ht.Update(key, entry.txID.Bytes()); err != nil {
			return &Stage{err: err}
		}
	}

	// save account records with refreshed history digests
	for _, pubKey := range order {
		cpy := *changed[pubKey]
		if ht, ok := histTries[pubKey]; ok {
			historyHash, err := ht.Hash()
			if err != nil {
				return &Stage{err: err}
			}
			cpy.HistoryHash = historyHash
		}
		data, err := rlp.EncodeToBytes(&cpy)
		if err != nil {
			return &Stage{err: err}
		}
		if err := s.accounts.Update(pubKey.Bytes(), data); err != nil {
			return &Stage{err: err}
		}
	}

	// save/remove pending transfers
	var jerr error
	s.trCache.Journal(func(id lucre.Bytes32, tr *PendingTransfer) bool {
		if tr == nil {
			jerr = s.transfers.Update(id.Bytes(), nil)
			return jerr == nil
		}
		data, err := rlp.EncodeToBytes(tr)
		if err != nil {
			jerr = err
			return false
		}
		jerr = s.transfers.Update(id.Bytes(), data)
		return jerr == nil
	})
	if jerr != nil {
		return &Stage{err: jerr}
	}

	stage.commit = func() (Roots, error) {
		batch := s.db.NewBatch()
		w := s.db.TrieWriter(batch)
		for _, ht := range stage.histories {
			if _, err := ht.Commit(w); err != nil {
				return Roots{}, err
			}
		}
		accountsRoot, err := stage.accounts.Commit(w)
		if err != nil {
			return Roots{}, err
		}
		transfersRoot, err := stage.transfers.Commit(w)
		if err != nil {
			return Roots{}, err
		}
		if err := batch.Write(); err != nil {
			return Roots{}, err
		}
		return Roots{Accounts: accountsRoot, Transfers: transfersRoot}, nil
	}
	return stage
}

// Hash computes the roots the stage will commit to, without touching the
// database.
func (s *Stage) Hash() (Roots, error) {
	if s.err != nil {
		return Roots{}, s.err
	}
	accountsRoot, err := s.accounts.Hash()
	if err != nil {
		return Roots{}, err
	}
	transfersRoot, err := s.transfers.Hash()
	if err != nil {
		return Roots{}, err
	}
	return Roots{Accounts: accountsRoot, Transfers: transfersRoot}, nil
}

// Commit atomically persists all index mutations and returns the new roots.
func (s *Stage) Commit() (Roots, error) {
	if s.err != nil {
		return Roots{}, s.err
	}
	return s.commit()
}
