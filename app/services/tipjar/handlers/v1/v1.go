// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers/v1/profilegrp"
	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers/v1/streamgrp"
	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers/v1/tipgrp"
	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/foundation/events"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Validate *validate.Validator
	Evts     *events.Events
	LinkBase string
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	tgh := tipgrp.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Validate: cfg.Validate,
		LinkBase: cfg.LinkBase,
	}

	app.Handle(http.MethodGet, version, "/wallet", tgh.Wallet)
	app.Handle(http.MethodPost, version, "/wallet/disconnect", tgh.Disconnect)
	app.Handle(http.MethodPost, version, "/tips/send", tgh.Send)
	app.Handle(http.MethodGet, version, "/tips/recent", tgh.Recent)
	app.Handle(http.MethodGet, version, "/tips/stats", tgh.Stats)
	app.Handle(http.MethodGet, version, "/leaderboard", tgh.Leaderboard)
	app.Handle(http.MethodGet, version, "/leaderboard/spotlight", tgh.Spotlight)
	app.Handle(http.MethodGet, version, "/creators/:address/dashboard", tgh.Dashboard)
	app.Handle(http.MethodPost, version, "/links", tgh.Link)

	pgh := profilegrp.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Validate: cfg.Validate,
	}

	app.Handle(http.MethodGet, version, "/profiles/:address", pgh.Query)
	app.Handle(http.MethodPut, version, "/profiles", pgh.Save)

	sgh := streamgrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", sgh.Events)
	app.Handle(http.MethodGet, version, "/leaderboard/stream", sgh.Leaderboard)
}
