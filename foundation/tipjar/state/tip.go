package state

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ardanlabs/tipjar/foundation/tipjar/aggregate"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
)

// MaxMessageLength is the longest message a tip may carry.
const MaxMessageLength = 200

// dateLayout is the display format stored with each tip.
const dateLayout = "1/2/2006, 3:04:05 PM"

// TipRequest represents a tip the user asked to send. Link tips come from
// a creator's tip link and carry its handle.
type TipRequest struct {
	To      string
	Amount  string
	Message string
	Handle  string
	Link    bool
}

// SendTip validates the request, submits the transfer through the wallet,
// waits for confirmation and records the tip. When only the recording
// fails, the confirmed record is returned along with a PersistenceError.
func (s *State) SendTip(ctx context.Context, req TipRequest) (database.TipRecord, error) {
	to := strings.TrimSpace(req.To)
	amountStr := strings.TrimSpace(req.Amount)
	message := strings.TrimSpace(req.Message)
	handle := strings.TrimSpace(req.Handle)

	if _, connected := s.wallet.Address(); !connected {
		return database.TipRecord{}, database.NewValidationError("wallet", "Please connect your wallet to send a tip.")
	}

	if to == "" || amountStr == "" {
		return database.TipRecord{}, database.NewValidationError("to", "Recipient address and amount are required.")
	}

	if !s.validAddress(to) {
		return database.TipRecord{}, database.NewValidationError("to", "Invalid recipient address.")
	}

	amount, err := wallet.ToBaseUnits(amountStr, s.decimals)
	if err != nil {
		return database.TipRecord{}, database.NewValidationError("amount", "Invalid tip amount. Amount must be a number greater than 0.")
	}

	if utf8.RuneCountInString(message) > MaxMessageLength {
		return database.TipRecord{}, database.NewValidationError("message", "Your message is too long (max ~200 chars). Please shorten it.")
	}

	senderCap := database.SenderCapDirect
	if req.Link {
		if handle == "" {
			return database.TipRecord{}, database.NewValidationError("handle", "Creator information or amount is missing.")
		}
		senderCap = database.SenderCapLink
	} else {
		handle = aggregate.DirectTipHandle
	}

	s.evHandler("state: SendTip: started: to[%s] amount[%s] base[%s]", to, amountStr, amount)

	sig, err := s.wallet.SendTransfer(ctx, to, amount, message)
	if err != nil {
		s.evHandler("state: SendTip: transfer: ERROR: %s", err)
		return database.TipRecord{}, wallet.TransferFailure(err)
	}

	if err := s.confirm(ctx, sig); err != nil {
		s.evHandler("state: SendTip: confirm: sig[%s]: ERROR: %s", sig, err)
		return database.TipRecord{}, wallet.TransferFailure(err)
	}

	rec := database.TipRecord{
		Handle:  handle,
		Address: to,
		Amount:  amountStr,
		Sig:     sig,
		Date:    s.now().Format(dateLayout),
		Message: message,
	}

	if err := s.db.AppendTip(rec, senderCap); err != nil {
		s.evHandler("state: SendTip: record: sig[%s]: ERROR: %s", sig, err)
		return rec, err
	}

	s.evHandler("state: SendTip: completed: sig[%s]", sig)

	return rec, nil
}

// confirm waits for the transfer under the configured timeout.
func (s *State) confirm(ctx context.Context, sig string) error {
	if s.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()
	}

	return s.wallet.Confirm(ctx, sig)
}
