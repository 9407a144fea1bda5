// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"hash"
	"sync"

	"github.com/lucreledger/lucre/kv"
	"github.com/lucreledger/lucre/lucre"
)

// Digest rules:
//
//	empty:  zero Bytes32
//	leaf:   blake2b(0x00 ‖ keyHash ‖ blake2b(value))
//	branch: blake2b(0x01 ‖ leftDigest ‖ rightDigest)
var (
	leafPrefix   = []byte{kindLeaf}
	branchPrefix = []byte{kindBranch}
)

type hasher struct {
	sha hash.Hash
	db  *Database
}

// hashers live in a global pool.
var hasherPool = sync.Pool{
	New: func() any {
		return &hasher{sha: lucre.NewBlake2b()}
	},
}

func newHasher(db *Database) *hasher {
	h := hasherPool.Get().(*hasher)
	h.db = db
	return h
}

func returnHasherToPool(h *hasher) {
	h.db = nil
	hasherPool.Put(h)
}

func (h *hasher) sum(data ...[]byte) (b lucre.Bytes32) {
	h.sha.Reset()
	for _, d := range data {
		h.sha.Write(d)
	}
	h.sha.Sum(b[:0])
	return
}

func (h *hasher) hashLeaf(keyHash lucre.Bytes32, value []byte) lucre.Bytes32 {
	valueHash := h.sum(value)
	return h.sum(leafPrefix, keyHash.Bytes(), valueHash.Bytes())
}

func (h *hasher) hashBranch(left, right lucre.Bytes32) lucre.Bytes32 {
	return h.sum(branchPrefix, left.Bytes(), right.Bytes())
}

// hash computes the digest of n, caching it on the node.
// If w is not nil, every dirty node is also encoded and stored under its
// digest, and marked clean.
func (h *hasher) hash(n node, w kv.Putter) (lucre.Bytes32, error) {
	if n == nil {
		return lucre.Bytes32{}, nil
	}
	if hash, dirty := n.cache(); !hash.IsZero() && (!dirty || w == nil) {
		return hash, nil
	}

	switch n := n.(type) {
	case *leafNode:
		if n.flags.hash.IsZero() {
			n.flags.hash = h.hashLeaf(n.key, n.value)
		}
		if w != nil {
			if err := h.store(n, w); err != nil {
				return lucre.Bytes32{}, err
			}
			n.flags.dirty = false
		}
		return n.flags.hash, nil
	case *branchNode:
		left, err := h.hash(n.children[0], w)
		if err != nil {
			return lucre.Bytes32{}, err
		}
		right, err := h.hash(n.children[1], w)
		if err != nil {
			return lucre.Bytes32{}, err
		}
		if n.flags.hash.IsZero() {
			n.flags.hash = h.hashBranch(left, right)
		}
		if w != nil {
			if err := h.store(n, w); err != nil {
				return lucre.Bytes32{}, err
			}
			n.flags.dirty = false
		}
		return n.flags.hash, nil
	default: // refNode
		hash, _ := n.cache()
		return hash, nil
	}
}

func (h *hasher) store(n node, w kv.Putter) error {
	enc, err := encodeNode(n, h)
	if err != nil {
		return err
	}
	hash, _ := n.cache()
	if err := w.Put(hash.Bytes(), enc); err != nil {
		return err
	}
	if h.db != nil {
		h.db.cacheNode(hash, n)
	}
	return nil
}
