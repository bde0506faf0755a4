package escrow

import (
	"github.com/iov-one/trust/errors"
)

var (
	// ErrAmountMismatch is returned when the funding value is not exactly
	// the deal amount.
	ErrAmountMismatch = errors.Register(17, "amount mismatch")

	// ErrAlreadyFunded is returned when funding a deal that holds or held
	// a balance.
	ErrAlreadyFunded = errors.Register(18, "already funded")

	// ErrNotFunded is returned when voting on a deal that holds no
	// balance, either because it was never funded or it is settled.
	ErrNotFunded = errors.Register(19, "not funded")

	// ErrTransferFailed is returned when moving the funds was declined.
	ErrTransferFailed = errors.Register(20, "transfer failed")

	// ErrAlreadyVoted is returned when a participant votes again.
	ErrAlreadyVoted = errors.Register(21, "already voted")
)
