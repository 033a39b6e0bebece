// Package profilegrp maintains the group of handlers for creator profiles.
package profilegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/business/web/errs"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of profile endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Validate *validate.Validator
}

// Query returns the profile for the specified address.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	p, exists := h.State.QueryProfile(address)
	if !exists {
		return errs.NewTrusted(errors.New("profile not found"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, p, http.StatusOK)
}

// Save saves the profile for the node's connected wallet.
func (h Handlers) Save(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var up updateProfile
	if err := web.Decode(r, &up); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := h.Validate.Check(up); err != nil {
		return err
	}

	p, err := h.State.SaveProfile(up.DisplayName, up.Username, up.AvatarURL)
	if err != nil {
		return err
	}

	h.Log.Infow("save profile", "traceid", v.TraceID, "address", p.Address)

	return web.Respond(ctx, w, p, http.StatusOK)
}
