// Package state is the core API for the tip jar and implements all the
// business rules and processing: sending tips, saving profiles and
// deriving the leaderboard views.
package state

import (
	"errors"
	"time"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
)

// EventHandler defines a function that is called when events
// occur in the processing of tips.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the tip jar.
type Config struct {
	Storage        storage.Storage
	Wallet         wallet.Connector
	ValidAddress   wallet.AddressValidator
	Decimals       int32
	ConfirmTimeout time.Duration
	Notify         func(key string)
	EvHandler      EventHandler
}

// State manages the tip jar for the connected wallet.
type State struct {
	wallet         wallet.Connector
	validAddress   wallet.AddressValidator
	decimals       int32
	confirmTimeout time.Duration
	evHandler      EventHandler
	now            func() time.Time

	db *database.Database
}

// New constructs a new tip jar for use.
func New(cfg Config) (*State, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	if cfg.Wallet == nil {
		return nil, errors.New("wallet connector is required")
	}

	if cfg.ValidAddress == nil {
		return nil, errors.New("address validator is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	db := database.New(database.Config{
		Storage:   cfg.Storage,
		Notify:    cfg.Notify,
		EvHandler: ev,
	})

	state := State{
		wallet:         cfg.Wallet,
		validAddress:   cfg.ValidAddress,
		decimals:       cfg.Decimals,
		confirmTimeout: cfg.ConfirmTimeout,
		evHandler:      ev,
		now:            time.Now,
		db:             db,
	}

	return &state, nil
}

// Shutdown cleanly brings the tip jar down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	s.wallet.Disconnect()
	return s.db.Close()
}

// WalletStatus returns the connected address, if any.
func (s *State) WalletStatus() (string, bool) {
	return s.wallet.Address()
}

// Disconnect disconnects the wallet. Views remain available.
func (s *State) Disconnect() {
	s.evHandler("state: disconnect: wallet disconnected")
	s.wallet.Disconnect()
}
