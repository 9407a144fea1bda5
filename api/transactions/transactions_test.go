// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucreledger/lucre/api/transactions"
	"github.com/lucreledger/lucre/api/utils"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/muxdb"
	"github.com/lucreledger/lucre/runtime"
)

var (
	alice = lucre.PublicKey{1}
	bob   = lucre.PublicKey{2}
	carol = lucre.PublicKey{3}
)

func newTestServer(t *testing.T) *httptest.Server {
	db, err := muxdb.OpenMem()
	require.Nil(t, err)
	rt, err := runtime.New(db, runtime.DefaultConfig())
	require.Nil(t, err)

	router := mux.NewRouter()
	transactions.New(rt).Mount(router, "/transactions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	t.Cleanup(func() { db.Close() })
	return ts
}

func httpPost(t *testing.T, url string, obj interface{}) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.Nil(t, err)
	res, err := http.Post(url, utils.JSONContentType, bytes.NewReader(data))
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	res.Body.Close()
	return body, res.StatusCode
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	res.Body.Close()
	return body, res.StatusCode
}

func submit(t *testing.T, ts *httptest.Server, obj interface{}) *transactions.Outcome {
	body, status := httpPost(t, ts.URL+"/transactions", obj)
	require.Equal(t, http.StatusOK, status, string(body))

	var out transactions.Outcome
	require.Nil(t, json.Unmarshal(body, &out))
	return &out
}

func TestSubmitTransaction(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	out := submit(t, ts, utils.M{"author": alice.String(), "type": "create-account", "name": "alice"})
	assert.True(out.Success)
	assert.False(out.ID.IsZero())
	assert.Nil(out.Code)

	// rejections surface the numeric code
	out = submit(t, ts, utils.M{"author": alice.String(), "type": "create-account", "name": "alice"})
	assert.False(out.Success)
	if assert.NotNil(out.Code) {
		assert.Equal(runtime.CodeAlreadyExists, *out.Code)
	}
	assert.NotEmpty(out.Description)
}

func TestSubmitTransferAndApprove(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	submit(t, ts, utils.M{"author": alice.String(), "type": "create-account", "name": "alice"})
	submit(t, ts, utils.M{"author": bob.String(), "type": "create-account", "name": "bob"})
	submit(t, ts, utils.M{"author": carol.String(), "type": "create-account", "name": "carol"})

	out := submit(t, ts, utils.M{
		"author":   alice.String(),
		"type":     "transfer",
		"from":     alice.String(),
		"to":       bob.String(),
		"approver": carol.String(),
		"amount":   10,
	})
	assert.True(out.Success)

	out = submit(t, ts, utils.M{
		"author":     carol.String(),
		"type":       "approve",
		"transferId": out.ID.String(),
	})
	assert.True(out.Success)
}

func TestSubmitInvalid(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	// unknown type
	_, status := httpPost(t, ts.URL+"/transactions", utils.M{"author": alice.String(), "type": "mint"})
	assert.Equal(http.StatusBadRequest, status)

	// missing author
	_, status = httpPost(t, ts.URL+"/transactions", utils.M{"type": "issue", "amount": 1})
	assert.Equal(http.StatusBadRequest, status)

	// transfer without parties
	_, status = httpPost(t, ts.URL+"/transactions", utils.M{"author": alice.String(), "type": "transfer", "amount": 1})
	assert.Equal(http.StatusBadRequest, status)

	// unknown field rejected by strict parsing
	_, status = httpPost(t, ts.URL+"/transactions", utils.M{"author": alice.String(), "type": "issue", "amount": 1, "bogus": true})
	assert.Equal(http.StatusBadRequest, status)
}

func TestGetReceipt(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	out := submit(t, ts, utils.M{"author": alice.String(), "type": "create-account", "name": "alice"})

	body, status := httpGet(t, ts.URL+"/transactions/"+out.ID.String()+"/receipt")
	assert.Equal(http.StatusOK, status)

	var got transactions.Outcome
	assert.Nil(json.Unmarshal(body, &got))
	assert.Equal(out.ID, got.ID)
	assert.True(got.Success)

	// never-applied transaction
	_, status = httpGet(t, ts.URL+"/transactions/"+lucre.Blake2b([]byte("nope")).String()+"/receipt")
	assert.Equal(http.StatusNotFound, status)

	// malformed id
	_, status = httpGet(t, ts.URL+"/transactions/xyz/receipt")
	assert.Equal(http.StatusBadRequest, status)
}
