// Package pagegrp serves the tipping page that shareable tip links open.
package pagegrp

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"go.uber.org/zap"
)

//go:embed tipping.html
var tippingHTML string

// Handlers manages the set of page endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	tmpl  *template.Template
}

// New parses the page templates.
func New(log *zap.SugaredLogger, st *state.State) (*Handlers, error) {
	tmpl, err := template.New("tipping").Parse(tippingHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing tipping page: %w", err)
	}

	h := Handlers{
		Log:   log,
		State: st,
		tmpl:  tmpl,
	}

	return &h, nil
}

// page is the data the tipping page renders.
type page struct {
	Creator   string
	Address   string
	Amount    string
	AvatarURL string
	Connected bool
}

// Tipping renders the tipping page for the creator named in the link.
func (h *Handlers) Tipping(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	_, connected := h.State.WalletStatus()

	p := page{
		Creator:   q.Get("creator"),
		Address:   q.Get("address"),
		Amount:    q.Get("amount"),
		AvatarURL: q.Get("pfp"),
		Connected: connected,
	}

	// The page shows the missing information message without a creator.
	if p.Address == "" || p.Amount == "" {
		p.Creator = ""
	}

	var b bytes.Buffer
	if err := h.tmpl.Execute(&b, p); err != nil {
		return fmt.Errorf("rendering tipping page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}
