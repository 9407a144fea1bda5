// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucreledger/lucre/api/state"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/muxdb"
	"github.com/lucreledger/lucre/runtime"
	"github.com/lucreledger/lucre/tx"
)

func TestGetFingerprint(t *testing.T) {
	assert := assert.New(t)

	db, err := muxdb.OpenMem()
	require.Nil(t, err)
	defer db.Close()
	rt, err := runtime.New(db, runtime.DefaultConfig())
	require.Nil(t, err)

	router := mux.NewRouter()
	state.New(rt).Mount(router, "/state")
	ts := httptest.NewServer(router)
	defer ts.Close()

	get := func() state.Fingerprint {
		res, err := http.Get(ts.URL + "/state")
		require.Nil(t, err)
		body, err := io.ReadAll(res.Body)
		require.Nil(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var fp state.Fingerprint
		require.Nil(t, json.Unmarshal(body, &fp))
		return fp
	}

	fp := get()
	assert.Len(fp.Fingerprint, 2)
	assert.True(fp.Fingerprint[0].IsZero())
	assert.True(fp.Fingerprint[1].IsZero())

	out, err := rt.Apply(tx.New(lucre.PublicKey{1}, &tx.CreateAccount{Name: "alice"}))
	require.Nil(t, err)
	require.True(t, out.Success())

	fp = get()
	assert.Equal(rt.StateFingerprint(), fp.Fingerprint)
	assert.False(fp.Fingerprint[0].IsZero())
}
