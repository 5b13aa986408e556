// Package filter derives roster views from a collection and a set of criteria.
// Every function is pure and recomputes from its input on each call.
package filter

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"amplify/internal/models"
)

// Apply returns the records that satisfy every clause of f, in input order.
func Apply(records []models.Influencer, f models.Filters) []models.Influencer {
	search := strings.ToLower(f.Search)
	out := make([]models.Influencer, 0, len(records))
	for i := range records {
		if matches(&records[i], f, search) {
			out = append(out, records[i])
		}
	}
	return out
}

// Matches reports whether inf satisfies every clause of f.
func Matches(inf *models.Influencer, f models.Filters) bool {
	return matches(inf, f, strings.ToLower(f.Search))
}

func matches(inf *models.Influencer, f models.Filters, search string) bool {
	if len(f.Platforms) > 0 && !slices.Contains(f.Platforms, inf.Platform) {
		return false
	}
	if len(f.Niches) > 0 && !slices.Contains(f.Niches, inf.Niche) {
		return false
	}
	if inf.Followers < f.FollowersMin || inf.Followers > f.FollowersMax {
		return false
	}
	if inf.EngagementRate < f.EngagementMin || inf.EngagementRate > f.EngagementMax {
		return false
	}
	if f.Country != "" && inf.Country != f.Country {
		return false
	}
	if f.Language != "" && inf.Language != f.Language {
		return false
	}
	if f.Status != "" && string(inf.Status) != f.Status {
		return false
	}
	if search != "" {
		if !strings.Contains(strings.ToLower(inf.Name), search) &&
			!strings.Contains(strings.ToLower(string(inf.Niche)), search) &&
			!strings.Contains(strings.ToLower(inf.ContactEmail), search) {
			return false
		}
	}
	return true
}

// Shortlisted returns the records with status Shortlisted.
func Shortlisted(records []models.Influencer) []models.Influencer {
	return where(records, (*models.Influencer).IsShortlisted)
}

// CampaignReady returns the records with status Planned or Confirmed.
func CampaignReady(records []models.Influencer) []models.Influencer {
	return where(records, (*models.Influencer).IsCampaignReady)
}

// IDs returns the ids of records in order.
func IDs(records []models.Influencer) []uuid.UUID {
	out := make([]uuid.UUID, len(records))
	for i := range records {
		out[i] = records[i].ID
	}
	return out
}

func where(records []models.Influencer, keep func(*models.Influencer) bool) []models.Influencer {
	out := make([]models.Influencer, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
