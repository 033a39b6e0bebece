package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers"
	"github.com/ardanlabs/tipjar/business/sys/store"
	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/foundation/events"
	"github.com/ardanlabs/tipjar/foundation/logger"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("TIPJAR")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// This is all the configuration for the application and the default values.
	// Configuration values will be passed through the application as individual
	// values.
	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:90s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			CorsOrigin      string        `conf:"default:*"`
			LinkBase        string        `conf:"default:http://localhost:8080"`
		}
		Storage struct {
			Kind string `conf:"default:disk"`
			Path string `conf:"default:zdata/"`
		}
		Wallet struct {
			Connector      string        `conf:"default:local"`
			RPCURL         string        `conf:"default:http://localhost:8545"`
			KeyPath        string        `conf:"default:zdata/wallet.ecdsa"`
			Decimals       int32         `conf:"default:9"`
			AddressFormat  string        `conf:"default:hex"`
			ConfirmTimeout time.Duration `conf:"default:60s"`
		}
		Profiles struct {
			SeedFile string
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "tip jar node",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "TIPJAR"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Storage Support

	store, err := store.Open(cfg.Storage.Kind, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	log.Infow("startup", "status", "storage opened", "kind", cfg.Storage.Kind, "path", cfg.Storage.Path)

	// =========================================================================
	// Wallet Support

	validAddress, ok := wallet.Validator(cfg.Wallet.AddressFormat)
	if !ok {
		return fmt.Errorf("unknown address format %q", cfg.Wallet.AddressFormat)
	}

	conn, err := connectWallet(cfg.Wallet.Connector, cfg.Wallet.RPCURL, cfg.Wallet.KeyPath)
	if err != nil {
		return fmt.Errorf("connecting wallet: %w", err)
	}

	address, _ := conn.Address()
	log.Infow("startup", "status", "wallet connected", "connector", cfg.Wallet.Connector, "address", address)

	// =========================================================================
	// Tip Jar Support

	// The tip jar packages accept a function of this signature to allow the
	// application to log. Change notifications carry only the storage key
	// and are fanned out to any websocket client through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
	}

	state, err := state.New(state.Config{
		Storage:        store,
		Wallet:         conn,
		ValidAddress:   validAddress,
		Decimals:       cfg.Wallet.Decimals,
		ConfirmTimeout: cfg.Wallet.ConfirmTimeout,
		Notify:         evts.Send,
		EvHandler:      ev,
	})
	if err != nil {
		return err
	}
	defer state.Shutdown()

	if cfg.Profiles.SeedFile != "" {
		n, err := state.SeedProfiles(cfg.Profiles.SeedFile)
		if err != nil {
			return fmt.Errorf("seeding profiles: %w", err)
		}
		log.Infow("startup", "status", "profiles seeded", "count", n)
	}

	validator, err := validate.New(validAddress)
	if err != nil {
		return fmt.Errorf("constructing validator: %w", err)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, state)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux, err := handlers.PublicMux(handlers.MuxConfig{
		Shutdown:   shutdown,
		Log:        log,
		State:      state,
		Validate:   validator,
		Evts:       evts,
		CorsOrigin: cfg.Web.CorsOrigin,
		LinkBase:   cfg.Web.LinkBase,
	})
	if err != nil {
		return fmt.Errorf("constructing public mux: %w", err)
	}

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}

// connectWallet constructs the wallet connector for the configured kind.
func connectWallet(kind string, rpcURL string, keyPath string) (wallet.Connector, error) {
	switch kind {
	case "local":
		return wallet.LoadLocal(keyPath)
	case "evm":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return wallet.NewEVM(ctx, wallet.EVMConfig{
			RPCURL:  rpcURL,
			KeyPath: keyPath,
		})
	}

	return nil, fmt.Errorf("unknown wallet connector %q", kind)
}
