// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers/debug/checkgrp"
	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers/pagegrp"
	v1 "github.com/ardanlabs/tipjar/app/services/tipjar/handlers/v1"
	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/business/web/mid"
	"github.com/ardanlabs/tipjar/foundation/events"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown   chan os.Signal
	Log        *zap.SugaredLogger
	State      *state.State
	Validate   *validate.Validator
	Evts       *events.Events
	CorsOrigin string
	LinkBase   string
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) (http.Handler, error) {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors(cfg.CorsOrigin),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors(cfg.CorsOrigin))

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:      cfg.Log,
		State:    cfg.State,
		Validate: cfg.Validate,
		Evts:     cfg.Evts,
		LinkBase: cfg.LinkBase,
	})

	// Register the tipping page that shareable links open.
	pg, err := pagegrp.New(cfg.Log, cfg.State)
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}
	app.Handle(http.MethodGet, "", "/tipping-page", pg.Tipping)

	return app, nil
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service.
func DebugMux(build string, log *zap.SugaredLogger, st *state.State) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build:  build,
		Log:    log,
		Wallet: st.WalletStatus,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
