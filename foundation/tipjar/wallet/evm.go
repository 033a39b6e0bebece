package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMConfig represents the settings for connecting to an EVM chain.
type EVMConfig struct {
	RPCURL       string
	KeyPath      string
	PollInterval time.Duration
}

// EVM is a connector that submits native value transfers to an EVM chain
// over JSON-RPC. The memo is carried in the transaction data.
type EVM struct {
	client       *ethclient.Client
	privateKey   *ecdsa.PrivateKey
	from         common.Address
	chainID      *big.Int
	pollInterval time.Duration

	mu        sync.RWMutex
	connected bool
}

// NewEVM dials the RPC endpoint and loads the signing key.
func NewEVM(ctx context.Context, cfg EVMConfig) (*EVM, error) {
	privateKey, err := crypto.LoadECDSA(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load private key: %w", err)
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc endpoint: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = time.Second
	}

	evm := EVM{
		client:       client,
		privateKey:   privateKey,
		from:         crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:      chainID,
		pollInterval: poll,
		connected:    true,
	}

	return &evm, nil
}

// Address returns the wallet address while connected.
func (e *EVM) Address() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.connected {
		return "", false
	}
	return e.from.Hex(), true
}

// SendTransfer signs and submits a dynamic fee transfer, returning the
// transaction hash.
func (e *EVM) SendTransfer(ctx context.Context, to string, amount *big.Int, memo string) (string, error) {
	if _, ok := e.Address(); !ok {
		return "", ErrNotConnected
	}

	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid address %q", to)
	}
	toAddr := common.HexToAddress(to)
	data := []byte(memo)

	nonce, err := e.client.PendingNonceAt(ctx, e.from)
	if err != nil {
		return "", fmt.Errorf("pending nonce: %w", err)
	}

	tipCap, err := e.client.SuggestGasTipCap(ctx)
	if err != nil {
		return "", fmt.Errorf("suggest gas tip: %w", err)
	}

	head, err := e.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("latest header: %w", err)
	}

	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := e.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  e.from,
		To:    &toAddr,
		Value: amount,
		Data:  data,
	})
	if err != nil {
		return "", fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   e.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &toAddr,
		Value:     amount,
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(e.chainID), e.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	if err := e.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	return signed.Hash().Hex(), nil
}

// Confirm waits for the transaction receipt and checks it succeeded. It
// returns when the context is done.
func (e *EVM) Confirm(ctx context.Context, sig string) error {
	hash := common.HexToHash(sig)

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := e.client.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted in block %d", sig, receipt.BlockNumber)
			}
			return nil

		case !errors.Is(err, ethereum.NotFound):
			return fmt.Errorf("transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for confirmation: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// Disconnect stops the wallet from submitting further transfers and
// releases the RPC client.
func (e *EVM) Disconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.connected {
		e.connected = false
		e.client.Close()
	}
}
