// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

// Numeric error codes emitted by transaction execution. The values are a
// stable public contract; external collaborators surface them verbatim.
const (
	// CodeAlreadyExists the author's account already exists.
	// Emitted by CreateAccount.
	CodeAlreadyExists uint8 = iota

	// CodeSenderNotFound the sender's account doesn't exist. Also emitted
	// by Issue when the author has no account.
	CodeSenderNotFound

	// CodeReceiverNotFound the receiver's account doesn't exist.
	// Emitted by Transfer or Approve.
	CodeReceiverNotFound

	// CodeInsufficientFunds the sender lacks the balance (Transfer) or the
	// retained amount (Approve) to cover the transfer.
	CodeInsufficientFunds

	// CodeTransferNotFound no pending transfer exists under the referenced
	// identifier. Covers "never created", "already approved" and
	// "malicious reference" uniformly.
	CodeTransferNotFound

	// CodeWrongSender the author of a Transfer is not its `from` party.
	CodeWrongSender

	// CodeSenderIsReceiver a Transfer names the same account as sender and
	// receiver.
	CodeSenderIsReceiver

	// CodeApproverIsSender a Transfer names its sender as approver.
	CodeApproverIsSender

	// CodeApproverIsReceiver a Transfer names its receiver as approver.
	CodeApproverIsReceiver

	// CodeWrongApprover the author of an Approve is not the recorded
	// approver.
	CodeWrongApprover
)

// Error is a typed, numbered transaction failure.
// It aborts the transaction it occurred in with zero side effects and never
// affects committed state.
type Error struct {
	code uint8
	desc string
}

// Code returns the numeric error code.
func (e *Error) Code() uint8 {
	return e.code
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.desc
}

var (
	errAlreadyExists      = &Error{CodeAlreadyExists, "account already exists"}
	errSenderNotFound     = &Error{CodeSenderNotFound, "sender doesn't exist"}
	errReceiverNotFound   = &Error{CodeReceiverNotFound, "receiver doesn't exist"}
	errInsufficientFunds  = &Error{CodeInsufficientFunds, "insufficient funds amount"}
	errTransferNotFound   = &Error{CodeTransferNotFound, "transfer doesn't exist"}
	errWrongSender        = &Error{CodeWrongSender, "sender mismatches the author"}
	errSenderIsReceiver   = &Error{CodeSenderIsReceiver, "sender same as receiver"}
	errApproverIsSender   = &Error{CodeApproverIsSender, "approver same as sender"}
	errApproverIsReceiver = &Error{CodeApproverIsReceiver, "approver same as receiver"}
	errWrongApprover      = &Error{CodeWrongApprover, "approver mismatches the author"}
)
