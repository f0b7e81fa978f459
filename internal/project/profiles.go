package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/slicecut/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.GCodeProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("custom profile %d has no name", i+1)
		}
	}
	return profiles, nil
}

// ResolveProfile returns the custom profile called name if there is one,
// otherwise the built-in profile of that name (Generic when unknown).
func ResolveProfile(custom []model.GCodeProfile, name string) model.GCodeProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return model.GetProfile(name)
}
