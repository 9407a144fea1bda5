// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucreledger/lucre/api/accounts"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/muxdb"
	"github.com/lucreledger/lucre/runtime"
	"github.com/lucreledger/lucre/trie"
	"github.com/lucreledger/lucre/tx"
)

var alice = lucre.PublicKey{1}

func newTestServer(t *testing.T) (*httptest.Server, *runtime.Runtime) {
	db, err := muxdb.OpenMem()
	require.Nil(t, err)
	rt, err := runtime.New(db, runtime.DefaultConfig())
	require.Nil(t, err)

	out, err := rt.Apply(tx.New(alice, &tx.CreateAccount{Name: "alice"}))
	require.Nil(t, err)
	require.True(t, out.Success())

	router := mux.NewRouter()
	accounts.New(rt).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	t.Cleanup(func() { db.Close() })
	return ts, rt
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	res.Body.Close()
	return body, res.StatusCode
}

func TestGetAccount(t *testing.T) {
	assert := assert.New(t)
	ts, _ := newTestServer(t)

	body, status := httpGet(t, ts.URL+"/accounts/"+alice.String())
	assert.Equal(http.StatusOK, status)

	var acc accounts.Account
	assert.Nil(json.Unmarshal(body, &acc))
	assert.Equal(alice, acc.PubKey)
	assert.Equal("alice", acc.Name)
	assert.Equal(lucre.InitialBalance, acc.Balance)
	assert.Equal(uint64(0), acc.RetainedAmount)
	assert.Equal(uint64(1), acc.HistoryLen)
	assert.False(acc.HistoryHash.IsZero())
}

func TestGetAccountNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	_, status := httpGet(t, ts.URL+"/accounts/"+lucre.PublicKey{9}.String())
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetAccountBadKey(t *testing.T) {
	ts, _ := newTestServer(t)

	_, status := httpGet(t, ts.URL+"/accounts/invalid")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetAccountProof(t *testing.T) {
	assert := assert.New(t)
	ts, rt := newTestServer(t)

	body, status := httpGet(t, ts.URL+"/accounts/"+alice.String()+"/proof")
	assert.Equal(http.StatusOK, status)

	var ap accounts.AccountProof
	assert.Nil(json.Unmarshal(body, &ap))
	assert.Equal(rt.StateFingerprint(), ap.Fingerprint)

	// the proof verifies against the accounts digest alone
	data, err := trie.VerifyProof(ap.Fingerprint[0], alice.Bytes(), &trie.Proof{
		Siblings:  ap.Proof.Siblings,
		LeafKey:   ap.Proof.LeafKey,
		LeafValue: ap.Proof.LeafValue,
	})
	assert.Nil(err)
	assert.NotEmpty(data)

	// absence proof for an unknown key
	body, status = httpGet(t, ts.URL+"/accounts/"+lucre.PublicKey{9}.String()+"/proof")
	assert.Equal(http.StatusOK, status)
	assert.Nil(json.Unmarshal(body, &ap))

	data, err = trie.VerifyProof(ap.Fingerprint[0], lucre.PublicKey{9}.Bytes(), &trie.Proof{
		Siblings:  ap.Proof.Siblings,
		LeafKey:   ap.Proof.LeafKey,
		LeafValue: ap.Proof.LeafValue,
	})
	assert.Nil(err)
	assert.Nil(data)
}
