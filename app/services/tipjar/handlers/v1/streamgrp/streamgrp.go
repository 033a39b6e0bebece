// Package streamgrp maintains the group of websocket handlers that push
// change notifications and live views to clients.
package streamgrp

import (
	"context"
	"net/http"
	"time"

	"github.com/ardanlabs/tipjar/foundation/events"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of stream endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket that sends the key of every changed
// resource to the client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case key, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(key)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Leaderboard handles a web socket that pushes the leaderboard when the
// client connects and again every time the tips or a profile change.
func (h Handlers) Leaderboard(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	if err := c.WriteJSON(h.State.Leaderboard()); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case key, wd := <-ch:
			if !wd {
				return nil
			}

			if !affectsLeaderboard(key) {
				continue
			}

			h.Log.Infow("leaderboard stream", "traceid", v.TraceID, "key", key)

			if err := c.WriteJSON(h.State.Leaderboard()); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// affectsLeaderboard reports whether a change to the key can change the
// leaderboard. Profile changes update the creator handles.
func affectsLeaderboard(key string) bool {
	if key == database.GlobalKey {
		return true
	}

	_, isProfile := database.IsProfileKey(key)
	return isProfile
}
