// Package wallet defines what the tip jar needs from a wallet and a chain:
// a connected address, value transfers with an optional memo, and
// confirmation of submitted transfers.
package wallet

import (
	"context"
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Connector represents a connected wallet able to submit and confirm
// transfers. A submitted transfer can't be revoked; cancelling the context
// only stops waiting on it.
type Connector interface {
	Address() (string, bool)
	SendTransfer(ctx context.Context, to string, amount *big.Int, memo string) (string, error)
	Confirm(ctx context.Context, sig string) error
	Disconnect()
}

// ErrNotConnected is returned by a connector once it has been disconnected.
var ErrNotConnected = errors.New("wallet not connected")

// Bounds on a transfer amount. A value in base units must fit in 256 bits,
// which is at most 78 decimal digits.
const (
	MaxAmountBits   = 256
	MaxAmountDigits = 78
)

// ErrAmountRange is returned for an amount that can't fit in MaxAmountBits.
var ErrAmountRange = errors.New("amount is out of range")

// ToBaseUnits converts a decimal token amount into base units using the
// token's number of decimals. The amount must be greater than zero and
// representable in whole base units.
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return nil, errors.New("amount must be greater than 0")
	}

	// Check the scale before shifting so huge exponents are never expanded.
	exp := int64(d.Exponent()) + int64(decimals)
	if exp > MaxAmountDigits || exp < -MaxAmountDigits || d.Coefficient().BitLen() > MaxAmountBits {
		return nil, ErrAmountRange
	}

	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return nil, errors.New("amount has more precision than the token supports")
	}

	value := units.BigInt()
	if value.BitLen() > MaxAmountBits {
		return nil, ErrAmountRange
	}

	return value, nil
}
