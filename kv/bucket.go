// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides logical bucket for kv store.
type Bucket string

type bucketGetPutter struct {
	b   Bucket
	src GetPutter
}

// NewGetPutter creates a bucket get-putter from the source get-putter.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucketGetPutter{b, src}
}

func (g *bucketGetPutter) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(g.b)+len(key)), g.b...), key...)
}

func (g *bucketGetPutter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.key(key))
}

func (g *bucketGetPutter) Has(key []byte) (bool, error) {
	return g.src.Has(g.key(key))
}

func (g *bucketGetPutter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

func (g *bucketGetPutter) Put(key, value []byte) error {
	return g.src.Put(g.key(key), value)
}

func (g *bucketGetPutter) Delete(key []byte) error {
	return g.src.Delete(g.key(key))
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(p.b)+len(key)), p.b...), key...)
}

func (p *bucketPutter) Put(key, value []byte) error {
	return p.src.Put(p.key(key), value)
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.src.Delete(p.key(key))
}
