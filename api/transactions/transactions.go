// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/api/utils"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/runtime"
)

type Transactions struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Transactions {
	return &Transactions{rt}
}

func (t *Transactions) handleSubmitTransaction(w http.ResponseWriter, req *http.Request) error {
	var raw RawTransaction
	if err := utils.ParseJSON(req.Body, &raw); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := raw.toTransaction()
	if err != nil {
		return utils.BadRequest(err)
	}
	out, err := t.rt.Apply(trx)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertOutcome(out))
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := lucre.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	out, err := t.rt.Receipt(id)
	if err != nil {
		return err
	}
	if out == nil {
		return utils.NotFound(errors.New("receipt not found"))
	}
	return utils.WriteJSON(w, convertOutcome(out))
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(t.handleSubmitTransaction))
	sub.Path("/{id}/receipt").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(t.handleGetReceipt))
}
