package models

// Default filter bounds.
const (
	DefaultFollowersMin  int64   = 0
	DefaultFollowersMax  int64   = 10_000_000
	DefaultEngagementMin float64 = 0
	DefaultEngagementMax float64 = 15
)

// Filters is the roster discovery criteria. Empty platform and niche sets
// leave those dimensions unrestricted; empty strings leave country, language,
// status and search unconstrained. Range bounds are inclusive.
type Filters struct {
	Platforms     []Platform `json:"platforms" yaml:"platforms"`
	Niches        []Niche    `json:"niches" yaml:"niches"`
	FollowersMin  int64      `json:"followers_min" yaml:"followers_min"`
	FollowersMax  int64      `json:"followers_max" yaml:"followers_max"`
	EngagementMin float64    `json:"engagement_min" yaml:"engagement_min"`
	EngagementMax float64    `json:"engagement_max" yaml:"engagement_max"`
	Country       string     `json:"country" yaml:"country"`
	Language      string     `json:"language" yaml:"language"`
	Status        string     `json:"status" yaml:"status"`
	Search        string     `json:"search" yaml:"search"`
}

// DefaultFilters returns criteria that match every well-formed record.
func DefaultFilters() Filters {
	return Filters{
		FollowersMin:  DefaultFollowersMin,
		FollowersMax:  DefaultFollowersMax,
		EngagementMin: DefaultEngagementMin,
		EngagementMax: DefaultEngagementMax,
	}
}
