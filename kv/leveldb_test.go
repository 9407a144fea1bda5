// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucreledger/lucre/kv"
)

func TestLevelDB(t *testing.T) {
	assert := assert.New(t)
	db, err := kv.NewMem()
	assert.Nil(err)
	defer db.Close()

	key := []byte("key")
	value := []byte("value")

	_, err = db.Get(key)
	assert.True(db.IsNotFound(err))

	assert.Nil(db.Put(key, value))

	got, err := db.Get(key)
	assert.Nil(err)
	assert.Equal(value, got)

	has, err := db.Has(key)
	assert.Nil(err)
	assert.True(has)

	assert.Nil(db.Delete(key))

	has, err = db.Has(key)
	assert.Nil(err)
	assert.False(has)
}

func TestLevelDBBatch(t *testing.T) {
	assert := assert.New(t)
	db, _ := kv.NewMem()
	defer db.Close()

	batch := db.NewBatch()
	assert.Nil(batch.Put([]byte("k1"), []byte("v1")))
	assert.Nil(batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(2, batch.Len())

	// nothing visible until the batch is written
	has, _ := db.Has([]byte("k1"))
	assert.False(has)

	assert.Nil(batch.Write())

	v1, err := db.Get([]byte("k1"))
	assert.Nil(err)
	assert.Equal([]byte("v1"), v1)
	v2, err := db.Get([]byte("k2"))
	assert.Nil(err)
	assert.Equal([]byte("v2"), v2)
}

func TestBucket(t *testing.T) {
	assert := assert.New(t)
	db, _ := kv.NewMem()
	defer db.Close()

	b1 := kv.Bucket("b1").NewGetPutter(db)
	b2 := kv.Bucket("b2").NewGetPutter(db)

	assert.Nil(b1.Put([]byte("key"), []byte("v1")))
	assert.Nil(b2.Put([]byte("key"), []byte("v2")))

	v, err := b1.Get([]byte("key"))
	assert.Nil(err)
	assert.Equal([]byte("v1"), v)

	v, err = b2.Get([]byte("key"))
	assert.Nil(err)
	assert.Equal([]byte("v2"), v)

	// the underlying store sees prefixed keys
	v, err = db.Get([]byte("b1key"))
	assert.Nil(err)
	assert.Equal([]byte("v1"), v)

	assert.Nil(b1.Delete([]byte("key")))
	_, err = b1.Get([]byte("key"))
	assert.True(b1.IsNotFound(err))

	v, err = b2.Get([]byte("key"))
	assert.Nil(err)
	assert.Equal([]byte("v2"), v)
}
