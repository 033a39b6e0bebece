package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

// MaxMemoBytes is the largest memo the local connector will sign.
const MaxMemoBytes = 566

// transfer is the payload the local connector signs.
type transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Memo   string `json:"memo,omitempty"`
	Nonce  uint64 `json:"nonce"`
}

// Local is a connector that signs transfers with a local key and never
// broadcasts them. Signatures are base58 encoded and confirm once they
// recover to the local key. It serves offline runs and tests.
type Local struct {
	mu         sync.Mutex
	privateKey *ecdsa.PrivateKey
	address    string
	connected  bool
	nonce      uint64
	signed     map[string]common.Hash
}

// NewLocal constructs a connected local wallet for the private key.
func NewLocal(privateKey *ecdsa.PrivateKey) *Local {
	return &Local{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		connected:  true,
		signed:     make(map[string]common.Hash),
	}
}

// LoadLocal constructs a local wallet from an ECDSA key file.
func LoadLocal(path string) (*Local, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load private key: %w", err)
	}

	return NewLocal(privateKey), nil
}

// Address returns the wallet address while connected.
func (l *Local) Address() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.connected {
		return "", false
	}
	return l.address, true
}

// SendTransfer signs the transfer and returns its signature.
func (l *Local) SendTransfer(ctx context.Context, to string, amount *big.Int, memo string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.connected {
		return "", ErrNotConnected
	}

	if len(memo) > MaxMemoBytes {
		return "", fmt.Errorf("transaction memo too large: %d bytes", len(memo))
	}

	l.nonce++
	tx := transfer{
		From:   l.address,
		To:     to,
		Amount: amount.String(),
		Memo:   memo,
		Nonce:  l.nonce,
	}

	data, err := json.Marshal(tx)
	if err != nil {
		return "", err
	}

	digest := crypto.Keccak256Hash(data)
	sig, err := crypto.Sign(digest.Bytes(), l.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing transfer: %w", err)
	}

	encoded := base58.Encode(sig)
	l.signed[encoded] = digest

	return encoded, nil
}

// Confirm verifies the signature was produced by this wallet. A confirmed
// signature is forgotten, so it can only be confirmed once.
func (l *Local) Confirm(ctx context.Context, sig string) error {
	l.mu.Lock()
	digest, exists := l.signed[sig]
	l.mu.Unlock()

	if !exists {
		return fmt.Errorf("transaction %s not found", sig)
	}

	raw, err := base58.Decode(sig)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	pk, err := crypto.SigToPub(digest.Bytes(), raw)
	if err != nil {
		return fmt.Errorf("recovering signer: %w", err)
	}

	if crypto.PubkeyToAddress(*pk).Hex() != l.address {
		return fmt.Errorf("transaction %s signed by another key", sig)
	}

	l.mu.Lock()
	delete(l.signed, sig)
	l.mu.Unlock()

	return nil
}

// Disconnect stops the wallet from signing further transfers.
func (l *Local) Disconnect() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.connected = false
}
