// Package tipgrp maintains the group of handlers for sending tips and
// reading the leaderboard.
package tipgrp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/business/web/errs"
	"github.com/ardanlabs/tipjar/business/web/metrics"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of tip endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Validate *validate.Validator
	LinkBase string
}

// Wallet returns the connection status of the node's wallet.
func (h Handlers) Wallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address, connected := h.State.WalletStatus()

	resp := walletStatus{
		Connected: connected,
		Address:   address,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Disconnect disconnects the node's wallet. The read views stay available.
func (h Handlers) Disconnect(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Disconnect()
	return web.Respond(ctx, w, walletStatus{}, http.StatusOK)
}

// Send submits a tip through the wallet and records it once confirmed.
func (h Handlers) Send(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nt newTip
	if err := web.Decode(r, &nt); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := h.Validate.Check(nt); err != nil {
		return err
	}

	h.Log.Infow("send tip", "traceid", v.TraceID, "to", nt.To, "amount", nt.Amount, "link", nt.Link)

	req := state.TipRequest{
		To:      nt.To,
		Amount:  nt.Amount,
		Message: nt.Message,
		Handle:  nt.Handle,
		Link:    nt.Link,
	}

	rec, err := h.State.SendTip(ctx, req)
	switch {
	case database.IsPersistenceError(err):
		h.Log.Errorw("send tip", "traceid", v.TraceID, "sig", rec.Sig, "ERROR", err)
		metrics.AddTips(ctx)

		resp := sentTip{
			Tip:     rec,
			Warning: "Tip sent, but it could not be saved to your history.",
		}
		return web.Respond(ctx, w, resp, http.StatusCreated)

	case err != nil:
		return err
	}

	metrics.AddTips(ctx)

	return web.Respond(ctx, w, sentTip{Tip: rec}, http.StatusCreated)
}

// Recent returns the tips sent from the node's wallet, newest first.
func (h Handlers) Recent(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RecentTips(), http.StatusOK)
}

// Stats returns the tipper statistics for the node's wallet.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.TipperStats(), http.StatusOK)
}

// Leaderboard returns the top creators by amount received.
func (h Handlers) Leaderboard(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Leaderboard(), http.StatusOK)
}

// Spotlight returns the top three creators by amount received.
func (h Handlers) Spotlight(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Spotlight(), http.StatusOK)
}

// Dashboard returns the summary of tips received by a creator.
func (h Handlers) Dashboard(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")
	return web.Respond(ctx, w, h.State.Dashboard(address), http.StatusOK)
}

// Link builds a shareable tipping page link for a creator.
func (h Handlers) Link(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nl newLink
	if err := web.Decode(r, &nl); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := h.Validate.Check(nl); err != nil {
		return err
	}

	url, err := h.State.TipLink(h.LinkBase, nl.Creator, nl.Address, nl.Amount, nl.Pfp)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, link{URL: url}, http.StatusOK)
}
