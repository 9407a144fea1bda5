// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/lucre"
)

// The trie is a binary radix tree over blake2b-256 hashed keys. A leaf sits at
// the depth where its key hash diverges from all other key hashes, with
// single-child branch nodes filling the path in between. That shape is a pure
// function of the content, which makes the root digest deterministic across
// independently built instances.
type node interface {
	cache() (lucre.Bytes32, bool)
}

type (
	branchNode struct {
		children [2]node
		flags    nodeFlag
	}
	leafNode struct {
		key   lucre.Bytes32 // blake2b-256 of the raw key
		value []byte
		flags nodeFlag
	}
	// refNode refers to a stored node not yet loaded from db.
	refNode struct {
		hash lucre.Bytes32
	}
)

// nodeFlag contains caching-related metadata about a node.
type nodeFlag struct {
	hash  lucre.Bytes32 // cached hash of the node (zero if not computed)
	dirty bool          // whether the node has changes that must be written to the database
}

func (n *branchNode) cache() (lucre.Bytes32, bool) { return n.flags.hash, n.flags.dirty }
func (n *leafNode) cache() (lucre.Bytes32, bool)   { return n.flags.hash, n.flags.dirty }
func (n *refNode) cache() (lucre.Bytes32, bool)    { return n.hash, false }

func (n *branchNode) copy() *branchNode { cpy := *n; return &cpy }

const (
	kindLeaf   = 0x00
	kindBranch = 0x01
)

// encodeNode encodes a node for storage.
// Layout (RLP list of byte strings):
//
//	leaf:   [0x00, keyHash, value]
//	branch: [0x01, leftHash, rightHash]
//
// A zero child hash denotes an empty subtree.
func encodeNode(n node, h *hasher) ([]byte, error) {
	switch n := n.(type) {
	case *leafNode:
		return rlp.EncodeToBytes([][]byte{{kindLeaf}, n.key.Bytes(), n.value})
	case *branchNode:
		left, err := h.hash(n.children[0], nil)
		if err != nil {
			return nil, err
		}
		right, err := h.hash(n.children[1], nil)
		if err != nil {
			return nil, err
		}
		return rlp.EncodeToBytes([][]byte{{kindBranch}, left.Bytes(), right.Bytes()})
	}
	return nil, errors.New("unencodable node")
}

// decodeNode decodes a stored node.
func decodeNode(hash lucre.Bytes32, data []byte) (node, error) {
	var elems [][]byte
	if err := rlp.DecodeBytes(data, &elems); err != nil {
		return nil, errors.Wrap(err, "decode node")
	}
	if len(elems) != 3 || len(elems[0]) != 1 {
		return nil, errors.New("decode node: invalid layout")
	}
	switch elems[0][0] {
	case kindLeaf:
		if len(elems[1]) != 32 {
			return nil, errors.New("decode node: invalid leaf key")
		}
		return &leafNode{
			key:   lucre.BytesToBytes32(elems[1]),
			value: elems[2],
			flags: nodeFlag{hash: hash},
		}, nil
	case kindBranch:
		if len(elems[1]) != 32 || len(elems[2]) != 32 {
			return nil, errors.New("decode node: invalid branch child")
		}
		var children [2]node
		if left := lucre.BytesToBytes32(elems[1]); !left.IsZero() {
			children[0] = &refNode{left}
		}
		if right := lucre.BytesToBytes32(elems[2]); !right.IsZero() {
			children[1] = &refNode{right}
		}
		return &branchNode{
			children: children,
			flags:    nodeFlag{hash: hash},
		}, nil
	}
	return nil, errors.Errorf("decode node: unknown kind %#x", elems[0][0])
}
