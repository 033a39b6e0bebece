package aggregate

import (
	"strings"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// DirectTipHandle is the placeholder handle recorded for transfers that
// were not sent through a creator's tip link.
const DirectTipHandle = "Direct Tip"

// ResolveHandle picks the display handle for the address. A profile's
// display name wins, then its username, then the handle recorded with the
// tip. Placeholder, raw address or blank handles are replaced with a
// generated "Creator (xxxx...)" label.
func ResolveHandle(address string, recordHandle string, profile database.CreatorProfile, hasProfile bool) string {
	handle := recordHandle
	if hasProfile {
		switch {
		case profile.DisplayName != "":
			handle = profile.DisplayName
		case profile.Username != "":
			handle = profile.Username
		}
	}

	if handle == DirectTipHandle || handle == address || strings.TrimSpace(handle) == "" {
		return PlaceholderHandle(address, 4)
	}

	return handle
}

// PlaceholderHandle generates the label shown for an address without a
// usable handle, using the first n characters of the address.
func PlaceholderHandle(address string, n int) string {
	return "Creator (" + prefix(address, n) + "...)"
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
