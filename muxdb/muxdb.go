// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package muxdb implements the ledger database, which muxes the authenticated
// tries and named plain buckets backed by a single underlying key-value store.
package muxdb

import (
	"github.com/lucreledger/lucre/kv"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/trie"
)

const (
	trieSpace   = "t" // the key space for trie nodes
	bucketSpace = "b" // the key space for named buckets
)

// Options optional parameters for MuxDB.
type Options struct {
	// CacheSize is the size of the read cache in MiB.
	CacheSize int
	// OpenFilesCacheCapacity is the capacity of open files caching for underlying database.
	OpenFilesCacheCapacity int
}

// MuxDB is the ledger database.
// Trie nodes of all authenticated indexes live in one content-addressed key
// space and share a node cache, so tries are distinguished by root alone.
type MuxDB struct {
	store  kv.GetPutCloser
	triedb *trie.Database
}

// Open opens or creates the DB at the given path.
func Open(path string, options *Options) (*MuxDB, error) {
	if options == nil {
		options = &Options{}
	}
	store, err := kv.New(path, kv.Options{
		CacheSize:              options.CacheSize,
		OpenFilesCacheCapacity: options.OpenFilesCacheCapacity,
	})
	if err != nil {
		return nil, err
	}
	return newMuxDB(store), nil
}

// OpenMem creates a memory-backed DB, for tests and ephemeral ledgers.
func OpenMem() (*MuxDB, error) {
	store, err := kv.NewMem()
	if err != nil {
		return nil, err
	}
	return newMuxDB(store), nil
}

func newMuxDB(store kv.GetPutCloser) *MuxDB {
	return &MuxDB{
		store:  store,
		triedb: trie.NewDatabase(kv.Bucket(trieSpace).NewGetPutter(store)),
	}
}

// NewTrie opens the trie rooted at root.
// A zero root opens an empty trie.
func (m *MuxDB) NewTrie(root lucre.Bytes32) *trie.Trie {
	return trie.New(root, m.triedb)
}

// NewBucket creates a named bucket over the store, for plain (non-trie) data.
func (m *MuxDB) NewBucket(name string) kv.GetPutter {
	return kv.Bucket(bucketSpace + name).NewGetPutter(m.store)
}

// NewBatch creates a batch over the store.
// Keys put via TrieWriter/BucketWriter target their key spaces.
func (m *MuxDB) NewBatch() kv.Batch {
	return m.store.NewBatch()
}

// TrieWriter returns a putter that writes trie nodes into the trie key space.
func (m *MuxDB) TrieWriter(b kv.Batch) kv.Putter {
	return kv.Bucket(trieSpace).NewPutter(b)
}

// BucketWriter returns a putter that writes into the named bucket's key space.
func (m *MuxDB) BucketWriter(b kv.Batch, name string) kv.Putter {
	return kv.Bucket(bucketSpace + name).NewPutter(b)
}

// Close closes the DB.
func (m *MuxDB) Close() error {
	return m.store.Close()
}
