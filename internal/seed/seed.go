// Package seed provides the starter roster used when no roster is stored.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"amplify/internal/models"
)

//go:embed roster.yaml
var defaultRoster []byte

// namespace scopes the name-derived ids of seed entries.
var namespace = uuid.MustParse("6f1c2a4e-8d0b-4c7e-9a53-2b7e1d4f0c91")

type rosterFile struct {
	Influencers []models.Influencer `yaml:"influencers"`
}

// Default returns the built-in starter roster.
func Default() ([]models.Influencer, error) {
	return Parse(defaultRoster)
}

// Starter returns the roster to fall back on when the store holds none:
// nothing when seeding is disabled, otherwise the roster file at path or the
// built-in roster.
func Starter(disabled bool, path string) ([]models.Influencer, error) {
	if disabled {
		return nil, nil
	}
	return Load(path)
}

// Load returns the roster in the YAML file at path, or the built-in roster
// when path is empty.
func Load(path string) ([]models.Influencer, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML roster. Entries get ids derived from their name so
// the same file always yields the same ids, and unknown enumerated values
// fall back to their defaults. Names must therefore be present and unique.
func Parse(data []byte) ([]models.Influencer, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed roster: %w", err)
	}

	seen := make(map[uuid.UUID]int, len(f.Influencers))
	for i := range f.Influencers {
		inf := &f.Influencers[i]
		if strings.TrimSpace(inf.Name) == "" {
			return nil, fmt.Errorf("seed roster entry %d has no name", i+1)
		}
		inf.ID = uuid.NewSHA1(namespace, []byte(inf.Name))
		if first, dup := seen[inf.ID]; dup {
			return nil, fmt.Errorf("seed roster entries %d and %d share the name %q", first+1, i+1, inf.Name)
		}
		seen[inf.ID] = i
		inf.Platform, _ = models.ParsePlatform(string(inf.Platform))
		inf.Niche, _ = models.ParseNiche(string(inf.Niche))
		inf.Status, _ = models.ParseStatus(string(inf.Status))
		if inf.RecentContent == nil {
			inf.RecentContent = []string{}
		}
	}
	return f.Influencers, nil
}
