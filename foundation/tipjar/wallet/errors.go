package wallet

import (
	"errors"
	"strings"
)

// Messages shown for transfer failures.
const (
	MsgInvalidAddress    = "Invalid recipient address."
	MsgRejected          = "Transaction rejected by user."
	MsgMemoTooLarge      = "Your message is too long (max ~200 chars). Please shorten it."
	MsgInsufficientFunds = "Insufficient funds for this tip."
	MsgFailed            = "Transaction failed."
)

// TransferError is returned when the wallet or the chain rejects or fails
// a transfer. Msg is safe to show to the user; Err carries the cause.
type TransferError struct {
	Msg string
	Err error
}

// Error implements the error interface.
func (te *TransferError) Error() string {
	return te.Msg
}

// Unwrap provides access to the underlying failure.
func (te *TransferError) Unwrap() error {
	return te.Err
}

// IsTransferError checks if an error of type TransferError exists.
func IsTransferError(err error) bool {
	var te *TransferError
	return errors.As(err, &te)
}

// TransferFailure maps a failure from the wallet or chain to a
// TransferError by matching known substrings of its message.
func TransferFailure(err error) *TransferError {
	var te *TransferError
	if errors.As(err, &te) {
		return te
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "invalid address"), strings.Contains(msg, "invalid public key"):
		return &TransferError{Msg: MsgInvalidAddress, Err: err}

	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "rejected the request"):
		return &TransferError{Msg: MsgRejected, Err: err}

	case strings.Contains(msg, "memo too large"), strings.Contains(msg, "oversized data"):
		return &TransferError{Msg: MsgMemoTooLarge, Err: err}

	case strings.Contains(msg, "insufficient funds"):
		return &TransferError{Msg: MsgInsufficientFunds, Err: err}
	}

	return &TransferError{Msg: MsgFailed, Err: err}
}
