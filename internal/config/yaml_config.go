package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"amplify/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Hierarchical settings that are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Filters FiltersConfig `yaml:"filters"`
	Seed    SeedConfig    `yaml:"seed"`
}

// FiltersConfig overrides the default filter bounds used when a query does
// not specify them.
type FiltersConfig struct {
	FollowersMin  *int64   `yaml:"followers_min"`
	FollowersMax  *int64   `yaml:"followers_max"`
	EngagementMin *float64 `yaml:"engagement_min"`
	EngagementMax *float64 `yaml:"engagement_max"`
}

// SeedConfig points at an external starter roster.
type SeedConfig struct {
	File string `yaml:"file"` // YAML roster replacing the built-in one
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultFilters returns the filter defaults with any configured bounds
// applied. It is safe to call on a nil config.
func (c *YAMLConfig) DefaultFilters() models.Filters {
	f := models.DefaultFilters()
	if c == nil {
		return f
	}
	if v := c.Filters.FollowersMin; v != nil {
		f.FollowersMin = *v
	}
	if v := c.Filters.FollowersMax; v != nil {
		f.FollowersMax = *v
	}
	if v := c.Filters.EngagementMin; v != nil {
		f.EngagementMin = *v
	}
	if v := c.Filters.EngagementMax; v != nil {
		f.EngagementMax = *v
	}
	return f
}

// SeedFile returns the configured roster file, or "" for the built-in one.
func (c *YAMLConfig) SeedFile() string {
	if c == nil {
		return ""
	}
	return c.Seed.File
}
