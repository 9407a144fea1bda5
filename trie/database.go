// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/kv"
	"github.com/lucreledger/lucre/lucre"
)

const defaultCachedNodes = 65536

// Database resolves stored trie nodes, with a shared LRU read cache.
// Nodes are content addressed, so tries with different roots can share one
// Database instance.
type Database struct {
	store kv.Getter
	cache *lru.Cache
}

// NewDatabase creates a node database over the given store.
func NewDatabase(store kv.Getter) *Database {
	cache, _ := lru.New(defaultCachedNodes)
	return &Database{store: store, cache: cache}
}

// node resolves the node stored under the given hash.
func (db *Database) node(hash lucre.Bytes32) (node, error) {
	if cached, ok := db.cache.Get(hash); ok {
		return cached.(node), nil
	}
	enc, err := db.store.Get(hash.Bytes())
	if err != nil {
		if db.store.IsNotFound(err) {
			return nil, errors.Errorf("missing trie node %v", hash)
		}
		return nil, errors.Wrap(err, "resolve trie node")
	}
	n, err := decodeNode(hash, enc)
	if err != nil {
		return nil, err
	}
	db.cache.Add(hash, n)
	return n, nil
}

func (db *Database) cacheNode(hash lucre.Bytes32, n node) {
	db.cache.Add(hash, n)
}
