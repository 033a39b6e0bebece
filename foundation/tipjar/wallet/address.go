package wallet

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// AddressValidator reports whether a string is a well formed address for
// the configured chain.
type AddressValidator func(address string) bool

// HexAddress validates a 0x prefixed, 20 byte hex encoded address.
func HexAddress(address string) bool {
	return common.IsHexAddress(address) && len(address) == 42
}

// Base58Address validates a base58 encoded 32 byte public key.
func Base58Address(address string) bool {
	b, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return len(b) == 32
}

// Validator returns the validator for the named address format.
func Validator(format string) (AddressValidator, bool) {
	switch format {
	case "hex":
		return HexAddress, true
	case "base58":
		return Base58Address, true
	}
	return nil, false
}
