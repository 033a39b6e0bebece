package commands

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// Profile prints the profile stored for the address.
func Profile(address string, db *database.Database) error {
	if address == "" {
		return errors.New("address required")
	}

	p, exists := db.QueryProfile(address)
	if !exists {
		fmt.Println("no profile")
		return nil
	}

	fmt.Printf("Address: %s\nDisplay: %s\nUser:    %s\nAvatar:  %s\n", p.Address, p.DisplayName, p.Username, p.AvatarURL)

	return nil
}

// Seed saves the profiles in the seed file.
func Seed(path string, db *database.Database) error {
	if path == "" {
		return errors.New("seed file required")
	}

	n, err := db.SeedProfiles(path)
	if err != nil {
		return err
	}

	fmt.Printf("saved %d profiles\n", n)

	return nil
}
