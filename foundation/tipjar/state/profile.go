package state

import (
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
)

// SaveProfile saves the profile for the connected wallet. An avatar that
// is not provided keeps the one already stored.
func (s *State) SaveProfile(displayName string, username string, avatarURL string) (database.CreatorProfile, error) {
	address, connected := s.wallet.Address()
	if !connected {
		return database.CreatorProfile{}, database.NewValidationError("wallet", "Connect wallet.")
	}

	if avatarURL == "" {
		if current, exists := s.db.QueryProfile(address); exists {
			avatarURL = current.AvatarURL
		}
	}

	p := database.CreatorProfile{
		Address:     address,
		DisplayName: displayName,
		Username:    username,
		AvatarURL:   avatarURL,
	}

	if err := s.db.SaveProfile(p); err != nil {
		return database.CreatorProfile{}, err
	}

	saved, _ := s.db.QueryProfile(address)
	return saved, nil
}

// SeedProfiles loads creator profiles from a YAML file. Profiles that fail
// validation are skipped. It returns the number of profiles saved.
func (s *State) SeedProfiles(path string) (int, error) {
	return s.db.SeedProfiles(path)
}
