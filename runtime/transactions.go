// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/schema"
	"github.com/lucreledger/lucre/tx"
)

// execute dispatches the transaction to its handler against the fork view s.
// A returned *Error is a typed rejection; any other error is a storage fault.
func (rt *Runtime) execute(s *schema.Schema, trx *tx.Transaction) error {
	author := trx.Author()
	id := trx.ID()

	switch p := trx.Payload().(type) {
	case *tx.CreateAccount:
		return rt.executeCreateAccount(s, author, id, p)
	case *tx.Issue:
		return rt.executeIssue(s, author, id, p)
	case *tx.Transfer:
		return rt.executeTransfer(s, author, id, p)
	case *tx.Approve:
		return rt.executeApprove(s, author, id, p)
	default:
		return errors.Errorf("unknown payload kind %T", trx.Payload())
	}
}

func (rt *Runtime) executeCreateAccount(s *schema.Schema, author lucre.PublicKey, id lucre.Bytes32, p *tx.CreateAccount) error {
	acc, err := s.Account(author)
	if err != nil {
		return err
	}
	if acc != nil {
		return errAlreadyExists
	}
	s.CreateAccount(author, p.Name, rt.config.InitialBalance, id)
	return nil
}

func (rt *Runtime) executeIssue(s *schema.Schema, author lucre.PublicKey, id lucre.Bytes32, p *tx.Issue) error {
	acc, err := s.Account(author)
	if err != nil {
		return err
	}
	if acc == nil {
		return errSenderNotFound
	}
	s.IncreaseBalance(acc, p.Amount, id)
	return nil
}

func (rt *Runtime) executeTransfer(s *schema.Schema, author lucre.PublicKey, id lucre.Bytes32, p *tx.Transfer) error {
	if author != p.From {
		return errWrongSender
	}
	if p.From == p.To {
		return errSenderIsReceiver
	}
	if p.Approver == p.From {
		return errApproverIsSender
	}
	if p.Approver == p.To {
		return errApproverIsReceiver
	}

	sender, err := s.Account(p.From)
	if err != nil {
		return err
	}
	if sender == nil {
		return errSenderNotFound
	}
	receiver, err := s.Account(p.To)
	if err != nil {
		return err
	}
	if receiver == nil {
		return errReceiverNotFound
	}

	if sender.Balance < p.Amount {
		return errInsufficientFunds
	}

	s.HoldForTransfer(sender, p.Amount, id, &schema.PendingTransfer{
		From:     p.From,
		To:       p.To,
		Approver: p.Approver,
		Amount:   p.Amount,
		Seed:     p.Seed,
	})
	return nil
}

func (rt *Runtime) executeApprove(s *schema.Schema, author lucre.PublicKey, id lucre.Bytes32, p *tx.Approve) error {
	transfer, err := s.PendingTransfer(p.TransferID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return errTransferNotFound
	}

	if author != transfer.Approver {
		return errWrongApprover
	}

	sender, err := s.Account(transfer.From)
	if err != nil {
		return err
	}
	if sender == nil {
		return errSenderNotFound
	}
	receiver, err := s.Account(transfer.To)
	if err != nil {
		return err
	}
	if receiver == nil {
		return errReceiverNotFound
	}

	// guards against index corruption; the escrow invariant keeps retained
	// amounts covering held transfers
	if sender.RetainedAmount < transfer.Amount {
		return errInsufficientFunds
	}

	s.DecreaseRetained(sender, transfer.Amount, id, p.TransferID)
	s.IncreaseBalance(receiver, transfer.Amount, id)
	return nil
}
