// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/lucre"
)

// Proof is evidence of a key's presence in, or absence from, a trie.
// It is verifiable against the root digest alone.
//
// Siblings holds the digests of the subtrees hanging off the lookup path, top
// down. The path terminates either at a leaf (LeafKey/LeafValue set) or at an
// empty subtree (both unset). A terminal leaf whose key hash differs from the
// proven key's hash is valid evidence of absence: the leaf occupies the only
// position the key could take.
type Proof struct {
	Siblings  []lucre.Bytes32
	LeafKey   lucre.Bytes32
	LeafValue []byte
}

// Prove constructs a proof of presence or absence for the given key.
func (t *Trie) Prove(key []byte) (*Proof, error) {
	h := newHasher(t.db)
	defer returnHasherToPool(h)

	keyHash := lucre.Blake2b(key)
	proof := &Proof{}
	n := t.root
	for depth := 0; ; {
		if n == nil {
			return proof, nil
		}
		switch x := n.(type) {
		case *leafNode:
			proof.LeafKey = x.key
			proof.LeafValue = x.value
			return proof, nil
		case *branchNode:
			bit := keyHash.Bit(depth)
			sibling, err := h.hash(x.children[1-bit], nil)
			if err != nil {
				return nil, err
			}
			proof.Siblings = append(proof.Siblings, sibling)
			n = x.children[bit]
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

// VerifyProof checks proof against the root digest.
// On success it returns the proven value for key, or nil if the proof shows
// the key absent. An error means the proof does not verify against root.
func VerifyProof(root lucre.Bytes32, key []byte, proof *Proof) ([]byte, error) {
	if len(proof.Siblings) > 8*32 {
		return nil, errors.New("proof: path too long")
	}
	keyHash := lucre.Blake2b(key)

	h := newHasher(nil)
	defer returnHasherToPool(h)

	var digest lucre.Bytes32
	switch {
	case proof.LeafValue == nil && proof.LeafKey.IsZero():
		// path ends at an empty subtree
	case proof.LeafValue == nil:
		return nil, errors.New("proof: leaf without value")
	default:
		digest = h.hashLeaf(proof.LeafKey, proof.LeafValue)
	}

	for i := len(proof.Siblings) - 1; i >= 0; i-- {
		if keyHash.Bit(i) == 0 {
			digest = h.hashBranch(digest, proof.Siblings[i])
		} else {
			digest = h.hashBranch(proof.Siblings[i], digest)
		}
	}

	if digest != root {
		return nil, errors.New("proof: digest mismatch")
	}
	if proof.LeafKey == keyHash {
		return proof.LeafValue, nil
	}
	return nil, nil
}
