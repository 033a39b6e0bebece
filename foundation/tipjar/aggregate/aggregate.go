// Package aggregate folds tip records into the leaderboard, creator
// dashboard and tipper statistics views. Every function is pure: views are
// derived fresh from the full input on each call.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/shopspring/decimal"
)

// View sizes used by the service.
const (
	SpotlightSize   = 3
	LeaderboardSize = 10
	DashboardRecent = 10
)

// Lookup returns the profile configured for an address, if any.
type Lookup func(address string) (database.CreatorProfile, bool)

// Entry is the aggregated view of one recipient address.
type Entry struct {
	Address     string          `json:"address"`
	Handle      string          `json:"handle"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TipCount    int             `json:"tipCount"`
	AvatarURL   string          `json:"profilePictureUrl,omitempty"`
}

// ParseError is reported for a record whose amount is not a finite
// decimal number. Such records are skipped.
type ParseError struct {
	Amount string
	Err    error
}

// Error implements the error interface.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("parsing amount %q: %s", pe.Amount, pe.Err)
}

// Bounds on a persisted amount. They match the transfer limits of a 256 bit
// base unit value so every amount the wallet accepts also parses here.
const (
	maxAmountBits   = 256
	maxAmountDigits = 78
)

// errAmountRange is reported for amounts outside the bounds above.
var errAmountRange = errors.New("amount is out of range")

// ParseAmount converts a persisted amount into a decimal. Amounts whose
// scale or digits exceed a 256 bit value are rejected without expanding them.
func ParseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Decimal{}, &ParseError{Amount: amount, Err: err}
	}

	exp := d.Exponent()
	if exp > maxAmountDigits || exp < -maxAmountDigits || d.Coefficient().BitLen() > maxAmountBits {
		return decimal.Decimal{}, &ParseError{Amount: amount, Err: errAmountRange}
	}

	return d, nil
}

// =============================================================================

// Leaderboard folds the records into one entry per recipient, ranked by
// total amount descending and truncated to topN. A topN <= 0 keeps every
// entry. Records with an empty address or an unparseable amount are
// skipped. Equal totals keep the order their address was first seen.
//
// Display metadata is taken from the last record folded in for an address,
// so the result depends on record order.
func Leaderboard(records []database.TipRecord, lookup Lookup, topN int) []Entry {
	index := make(map[string]int)
	entries := []Entry{}

	for _, rec := range records {
		if rec.Address == "" {
			continue
		}

		amount, err := ParseAmount(rec.Amount)
		if err != nil {
			continue
		}

		var profile database.CreatorProfile
		var hasProfile bool
		if lookup != nil {
			profile, hasProfile = lookup(rec.Address)
		}

		handle := ResolveHandle(rec.Address, rec.Handle, profile, hasProfile)

		// Negative amounts only come from corrupt storage. They are folded in
		// as stored, so such a total can drop.
		i, exists := index[rec.Address]
		if !exists {
			index[rec.Address] = len(entries)
			entries = append(entries, Entry{
				Address:     rec.Address,
				Handle:      handle,
				TotalAmount: amount,
				TipCount:    1,
				AvatarURL:   profile.AvatarURL,
			})
			continue
		}

		entries[i].TotalAmount = entries[i].TotalAmount.Add(amount)
		entries[i].TipCount++
		entries[i].Handle = handle
		entries[i].AvatarURL = profile.AvatarURL
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalAmount.GreaterThan(entries[j].TotalAmount)
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	return entries
}

// Spotlight returns the top three recipients.
func Spotlight(records []database.TipRecord, lookup Lookup) []Entry {
	return Leaderboard(records, lookup, SpotlightSize)
}

// TopCreators returns the top ten recipients.
func TopCreators(records []database.TipRecord, lookup Lookup) []Entry {
	return Leaderboard(records, lookup, LeaderboardSize)
}

// =============================================================================

// Dashboard is the summary of tips received by one creator.
type Dashboard struct {
	Entry
	Recent []database.TipRecord `json:"recentTips"`
}

// CreatorDashboard summarizes the records received by the address. Every
// matching record is counted, and an unparseable amount adds zero to the
// total. Recent holds the latest received tips, oldest first.
func CreatorDashboard(address string, records []database.TipRecord, lookup Lookup) Dashboard {
	var profile database.CreatorProfile
	var hasProfile bool
	if lookup != nil {
		profile, hasProfile = lookup(address)
	}

	handle := PlaceholderHandle(address, 6)
	if hasProfile {
		switch {
		case profile.DisplayName != "":
			handle = profile.DisplayName
		case profile.Username != "":
			handle = profile.Username
		}
	}

	total := decimal.Zero
	var mine []database.TipRecord
	for _, rec := range records {
		if rec.Address != address {
			continue
		}
		mine = append(mine, rec)

		if amount, err := ParseAmount(rec.Amount); err == nil {
			total = total.Add(amount)
		}
	}

	recent := make([]database.TipRecord, 0, min(len(mine), DashboardRecent))
	for i := min(len(mine), DashboardRecent) - 1; i >= 0; i-- {
		recent = append(recent, mine[i])
	}

	return Dashboard{
		Entry: Entry{
			Address:     address,
			Handle:      handle,
			TotalAmount: total,
			TipCount:    len(mine),
			AvatarURL:   profile.AvatarURL,
		},
		Recent: recent,
	}
}

// =============================================================================

// TipperStats summarizes the tips sent from this wallet.
type TipperStats struct {
	TotalTipped    decimal.Decimal `json:"totalTipped"`
	TipCount       int             `json:"tipCount"`
	UniqueCreators int             `json:"uniqueCreatorsTipped"`
}

// Stats folds the sender list into tipper statistics. An unparseable
// amount adds zero to the total but still counts as a tip.
func Stats(records []database.TipRecord) TipperStats {
	total := decimal.Zero
	unique := make(map[string]struct{})

	for _, rec := range records {
		if amount, err := ParseAmount(rec.Amount); err == nil {
			total = total.Add(amount)
		}
		unique[rec.Address] = struct{}{}
	}

	return TipperStats{
		TotalTipped:    total,
		TipCount:       len(records),
		UniqueCreators: len(unique),
	}
}
