package state

import (
	"net/url"
	"strings"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
)

// TipLink builds the shareable tipping page link for a creator. The link
// carries the handle, address, default amount and optional avatar.
func (s *State) TipLink(base string, handle string, address string, amount string, avatarURL string) (string, error) {
	handle = strings.TrimSpace(handle)
	address = strings.TrimSpace(address)
	amount = strings.TrimSpace(amount)

	if handle == "" || address == "" || amount == "" {
		return "", database.NewValidationError("link", "All fields are required.")
	}

	if !s.validAddress(address) {
		return "", database.NewValidationError("address", "Invalid recipient address.")
	}

	if _, err := wallet.ToBaseUnits(amount, s.decimals); err != nil {
		return "", database.NewValidationError("amount", "Default tip amount must be > 0.")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", database.NewValidationError("base", "Invalid base url.")
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/tipping-page"

	q := url.Values{}
	q.Set("creator", handle)
	q.Set("address", address)
	q.Set("amount", amount)
	if avatarURL != "" {
		q.Set("pfp", avatarURL)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
