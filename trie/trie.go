// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/lucreledger/lucre/kv"
	"github.com/lucreledger/lucre/lucre"
)

// Trie is an authenticated key-value index.
//
// Keys are hashed with blake2b-256 before use, so key layout cannot influence
// the tree shape. The root digest is a pure function of content; identical
// put/remove histories yield identical digests regardless of operation order.
//
// A Trie instance is an in-memory overlay over nodes stored in db. Mutations
// stay in memory until Commit, so dropping an instance discards them. Branching
// a new overlay from a committed root is O(1).
type Trie struct {
	root node
	db   *Database
}

// New creates a trie with the given root. A zero root denotes an empty trie.
// Nodes beyond the in-memory overlay are lazily resolved from db.
func New(root lucre.Bytes32, db *Database) *Trie {
	if root.IsZero() {
		return &Trie{db: db}
	}
	return &Trie{root: &refNode{root}, db: db}
}

func (t *Trie) resolve(n node) (node, error) {
	if ref, ok := n.(*refNode); ok {
		return t.db.node(ref.hash)
	}
	return n, nil
}

// Get returns the value for key stored in the trie, or nil if key is absent.
func (t *Trie) Get(key []byte) ([]byte, error) {
	keyHash := lucre.Blake2b(key)
	n := t.root
	for depth := 0; ; {
		if n == nil {
			return nil, nil
		}
		switch x := n.(type) {
		case *leafNode:
			if x.key == keyHash {
				return x.value, nil
			}
			return nil, nil
		case *branchNode:
			n = x.children[keyHash.Bit(depth)]
			depth++
		case *refNode:
			resolved, err := t.db.node(x.hash)
			if err != nil {
				return nil, err
			}
			n = resolved
		}
	}
}

// Update associates key with value in the trie.
// An empty value removes the key.
func (t *Trie) Update(key, value []byte) error {
	keyHash := lucre.Blake2b(key)
	if len(value) == 0 {
		root, _, err := t.remove(t.root, keyHash, 0)
		if err != nil {
			return err
		}
		t.root = root
		return nil
	}
	root, err := t.insert(t.root, keyHash, value, 0)
	if err != nil {
		return err
	}
	t.root = root
	return nil
}

func (t *Trie) insert(n node, keyHash lucre.Bytes32, value []byte, depth int) (node, error) {
	if n == nil {
		return &leafNode{key: keyHash, value: value, flags: nodeFlag{dirty: true}}, nil
	}
	switch x := n.(type) {
	case *leafNode:
		if x.key == keyHash {
			return &leafNode{key: keyHash, value: value, flags: nodeFlag{dirty: true}}, nil
		}
		return t.fork(x, &leafNode{key: keyHash, value: value, flags: nodeFlag{dirty: true}}, depth), nil
	case *branchNode:
		bit := keyHash.Bit(depth)
		child, err := t.insert(x.children[bit], keyHash, value, depth+1)
		if err != nil {
			return nil, err
		}
		cpy := x.copy()
		cpy.children[bit] = child
		cpy.flags = nodeFlag{dirty: true}
		return cpy, nil
	default:
		resolved, err := t.resolve(n)
		if err != nil {
			return nil, err
		}
		return t.insert(resolved, keyHash, value, depth)
	}
}

// fork builds the branch chain separating two leaves whose key hashes agree
// on the first depth bits.
func (t *Trie) fork(a, b *leafNode, depth int) node {
	abit, bbit := a.key.Bit(depth), b.key.Bit(depth)
	branch := &branchNode{flags: nodeFlag{dirty: true}}
	if abit == bbit {
		branch.children[abit] = t.fork(a, b, depth+1)
	} else {
		branch.children[abit] = a
		branch.children[bbit] = b
	}
	return branch
}

func (t *Trie) remove(n node, keyHash lucre.Bytes32, depth int) (node, bool, error) {
	if n == nil {
		return nil, false, nil
	}
	switch x := n.(type) {
	case *leafNode:
		if x.key == keyHash {
			return nil, true, nil
		}
		return x, false, nil
	case *branchNode:
		bit := keyHash.Bit(depth)
		child, removed, err := t.remove(x.children[bit], keyHash, depth+1)
		if err != nil {
			return nil, false, err
		}
		if !removed {
			return x, false, nil
		}
		other := x.children[1-bit]
		if child == nil && other == nil {
			return nil, true, nil
		}
		// keep the shape canonical: a branch must never hold a lone leaf
		if child == nil {
			resolved, err := t.resolve(other)
			if err != nil {
				return nil, false, err
			}
			if leaf, ok := resolved.(*leafNode); ok {
				return leaf, true, nil
			}
		}
		if other == nil {
			if leaf, ok := child.(*leafNode); ok {
				return leaf, true, nil
			}
		}
		cpy := x.copy()
		cpy.children[bit] = child
		cpy.flags = nodeFlag{dirty: true}
		return cpy, true, nil
	default:
		resolved, err := t.resolve(n)
		if err != nil {
			return nil, false, err
		}
		return t.remove(resolved, keyHash, depth)
	}
}

// Hash returns the root digest of the trie.
// It does not write to the database.
func (t *Trie) Hash() (lucre.Bytes32, error) {
	h := newHasher(t.db)
	defer returnHasherToPool(h)
	return h.hash(t.root, nil)
}

// Commit writes all dirty nodes to w and returns the root digest.
// Nodes are stored under their digest, so commits of equal content are
// idempotent.
func (t *Trie) Commit(w kv.Putter) (lucre.Bytes32, error) {
	h := newHasher(t.db)
	defer returnHasherToPool(h)
	return h.hash(t.root, w)
}
