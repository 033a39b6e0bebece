package database

import "strings"

// CreatorProfile represents the display information a wallet owner
// configured for their address. There is at most one per address.
type CreatorProfile struct {
	Address     string `json:"solAddress" yaml:"address"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Username    string `json:"username,omitempty" yaml:"username"`
	AvatarURL   string `json:"profilePictureUrl,omitempty" yaml:"avatarUrl"`
}

// normalize trims every field and validates the profile can be stored.
func (p CreatorProfile) normalize() (CreatorProfile, error) {
	p.Address = strings.TrimSpace(p.Address)
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Username = strings.TrimSpace(p.Username)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)

	if p.Address == "" {
		return CreatorProfile{}, NewValidationError("address", "profile address is required")
	}

	if p.DisplayName == "" {
		return CreatorProfile{}, NewValidationError("displayName", "display name is required")
	}

	return p, nil
}

// ProfileKey returns the storage key for the profile of the address.
func ProfileKey(address string) string {
	return profilePrefix + address
}
