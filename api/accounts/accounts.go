// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/api/utils"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/runtime"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	pubKey, err := lucre.ParsePublicKey(mux.Vars(req)["pubkey"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "pubkey"))
	}
	acc, err := a.rt.GetAccount(pubKey)
	if err != nil {
		return err
	}
	if acc == nil {
		return utils.NotFound(errors.New("account not found"))
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) handleGetAccountProof(w http.ResponseWriter, req *http.Request) error {
	pubKey, err := lucre.ParsePublicKey(mux.Vars(req)["pubkey"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "pubkey"))
	}
	fingerprint, proof, err := a.rt.GetAccountProof(pubKey)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &AccountProof{
		Fingerprint: fingerprint,
		Proof:       convertProof(proof),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{pubkey}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{pubkey}/proof").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccountProof))
}
