// Package commands contains the functionality for the admin commands.
package commands

import (
	"fmt"

	"github.com/ardanlabs/tipjar/foundation/tipjar/aggregate"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// Tips prints the tips stored in the sender or global list.
func Tips(list string, db *database.Database) error {
	key := database.GlobalKey
	switch list {
	case "", "global":
	case "sender":
		key = database.SenderKey
	default:
		return fmt.Errorf("unknown list %q", list)
	}

	for _, rec := range db.ReadTips(key) {
		fmt.Printf("%s  %-44s  %12s  %-20s  %s\n", rec.Date, rec.Address, rec.Amount, rec.Handle, rec.Sig)
	}

	return nil
}

// Leaderboard prints the top creators derived from the global list.
func Leaderboard(db *database.Database) error {
	board := aggregate.TopCreators(db.ReadTips(database.GlobalKey), db.Lookup)

	for i, e := range board {
		fmt.Printf("%2d. %-30s  %-44s  %s (%d tips)\n", i+1, e.Handle, e.Address, e.TotalAmount, e.TipCount)
	}

	return nil
}
