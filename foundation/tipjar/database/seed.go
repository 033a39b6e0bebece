package database

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the layout of a profile seed file.
type seedFile struct {
	Profiles []CreatorProfile `yaml:"profiles"`
}

// SeedProfiles loads creator profiles from a YAML file and saves each one.
// Profiles that fail validation are skipped. It returns the number of
// profiles saved.
func (db *Database) SeedProfiles(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	var saved int
	for _, p := range seed.Profiles {
		if err := db.SaveProfile(p); err != nil {
			if IsValidationError(err) {
				db.evHandler("database: SeedProfiles: address[%s]: skipped: %s", p.Address, err)
				continue
			}
			return saved, err
		}
		saved++
	}

	return saved, nil
}
