package tipgrp

import (
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// newTip is what a client posts to send a tip.
type newTip struct {
	To      string `json:"to" validate:"required,address"`
	Amount  string `json:"amount" validate:"required"`
	Message string `json:"message"`
	Handle  string `json:"handle"`
	Link    bool   `json:"link"`
}

// sentTip is returned once a tip is confirmed. A warning is set when the
// tip was confirmed but could not be recorded.
type sentTip struct {
	Tip     database.TipRecord `json:"tip"`
	Warning string             `json:"warning,omitempty"`
}

type walletStatus struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// newLink is what a client posts to build a shareable tip link.
type newLink struct {
	Creator string `json:"creator" validate:"required"`
	Address string `json:"address" validate:"required,address"`
	Amount  string `json:"amount" validate:"required"`
	Pfp     string `json:"pfp" validate:"omitempty,url"`
}

type link struct {
	URL string `json:"url"`
}
