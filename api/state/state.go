// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lucreledger/lucre/api/utils"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/runtime"
)

type State struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *State {
	return &State{rt}
}

// Fingerprint for marshal state fingerprint
type Fingerprint struct {
	Fingerprint []lucre.Bytes32 `json:"fingerprint"`
}

func (s *State) handleGetFingerprint(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &Fingerprint{s.rt.StateFingerprint()})
}

func (s *State) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetFingerprint))
}
