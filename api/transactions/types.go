// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/runtime"
	"github.com/lucreledger/lucre/tx"
)

// transaction type names accepted on submission
const (
	typeCreateAccount = "create-account"
	typeIssue         = "issue"
	typeTransfer      = "transfer"
	typeApprove       = "approve"
)

// RawTransaction is a submitted transaction. Type selects the payload kind;
// only the fields of that kind are read.
type RawTransaction struct {
	Author lucre.PublicKey `json:"author"`
	Type   string          `json:"type"`

	Name       string           `json:"name,omitempty"`
	Amount     uint64           `json:"amount,omitempty"`
	Seed       uint64           `json:"seed,omitempty"`
	From       *lucre.PublicKey `json:"from,omitempty"`
	To         *lucre.PublicKey `json:"to,omitempty"`
	Approver   *lucre.PublicKey `json:"approver,omitempty"`
	TransferID *lucre.Bytes32   `json:"transferId,omitempty"`
}

func (r *RawTransaction) toTransaction() (*tx.Transaction, error) {
	if r.Author.IsZero() {
		return nil, errors.New("author: missing")
	}
	switch r.Type {
	case typeCreateAccount:
		return tx.New(r.Author, &tx.CreateAccount{Name: r.Name}), nil
	case typeIssue:
		return tx.New(r.Author, &tx.Issue{Amount: r.Amount, Seed: r.Seed}), nil
	case typeTransfer:
		if r.From == nil || r.To == nil || r.Approver == nil {
			return nil, errors.New("transfer: from, to and approver required")
		}
		return tx.New(r.Author, &tx.Transfer{
			From:     *r.From,
			To:       *r.To,
			Approver: *r.Approver,
			Amount:   r.Amount,
			Seed:     r.Seed,
		}), nil
	case typeApprove:
		if r.TransferID == nil {
			return nil, errors.New("approve: transferId required")
		}
		return tx.New(r.Author, &tx.Approve{TransferID: *r.TransferID, Seed: r.Seed}), nil
	}
	return nil, errors.Errorf("unknown transaction type %q", r.Type)
}

// Outcome for marshal outcome
type Outcome struct {
	ID          lucre.Bytes32 `json:"id"`
	Success     bool          `json:"success"`
	Code        *uint8        `json:"code,omitempty"`
	Description string        `json:"description,omitempty"`
}

func convertOutcome(out *runtime.Outcome) *Outcome {
	o := &Outcome{
		ID:      out.TxID,
		Success: out.Success(),
	}
	if out.Err != nil {
		code := out.Err.Code()
		o.Code = &code
		o.Description = out.Err.Error()
	}
	return o
}
