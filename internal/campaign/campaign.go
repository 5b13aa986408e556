// Package campaign builds campaigns from the roster and aggregates their
// metrics.
package campaign

import (
	"math"
	"time"

	"github.com/google/uuid"

	"amplify/internal/models"
)

// Lookup resolves an influencer id to a roster entry.
type Lookup func(id uuid.UUID) (*models.Influencer, bool)

// Index builds a Lookup over a snapshot of the roster.
func Index(all []models.Influencer) Lookup {
	byID := make(map[uuid.UUID]*models.Influencer, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	return func(id uuid.UUID) (*models.Influencer, bool) {
		inf, ok := byID[id]
		return inf, ok
	}
}

// ExpectedEngagement is the engagement estimate captured when an influencer
// is assigned to a campaign.
func ExpectedEngagement(avgViews int64, engagementRate float64) float64 {
	return math.Round(float64(avgViews) * engagementRate / 100)
}

// NewAssignment returns the default assignment of inf. A nil inf yields zero
// expected values.
func NewAssignment(id uuid.UUID, inf *models.Influencer) models.CampaignInfluencer {
	a := models.CampaignInfluencer{
		InfluencerID: id,
		Deliverable:  models.Deliverables[0],
	}
	if inf != nil {
		a.ExpectedViews = float64(inf.AvgViews)
		a.ExpectedEngagement = ExpectedEngagement(inf.AvgViews, inf.EngagementRate)
	}
	return a
}

// Create builds an unsaved campaign with one assignment per id, in order.
// Ids missing from all still get an assignment with zero expected values.
func Create(name string, ids []uuid.UUID, all []models.Influencer, now time.Time) models.Campaign {
	lookup := Index(all)
	c := models.Campaign{
		Name:        name,
		CreatedAt:   now,
		Influencers: make([]models.CampaignInfluencer, 0, len(ids)),
	}
	for _, id := range ids {
		inf, _ := lookup(id)
		c.Influencers = append(c.Influencers, NewAssignment(id, inf))
	}
	return c
}

// Summarize totals the assignments of c. Followers are counted only for
// influencers that still resolve; the stored expected values and cost of
// every assignment are always included.
func Summarize(c *models.Campaign, lookup Lookup) models.CampaignSummary {
	s := models.CampaignSummary{Count: len(c.Influencers)}
	for _, a := range c.Influencers {
		if inf, ok := lookup(a.InfluencerID); ok {
			s.TotalFollowers += inf.Followers
		}
		s.TotalImpressions += a.ExpectedViews
		s.TotalEngagement += a.ExpectedEngagement
		s.TotalCost += a.ProposedCost
	}
	return s
}

// Duplicate returns an unsaved copy of c with a suffixed name and a new
// creation time. Assignments are copied verbatim.
func Duplicate(c *models.Campaign, now time.Time) models.Campaign {
	out := c.Clone()
	out.ID = uuid.Nil
	out.Name = c.Name + models.DuplicateSuffix
	out.CreatedAt = now
	return out
}

// UpdateAssignment applies p to the assignment of influencerID in c. It
// reports false when c has no such assignment.
func UpdateAssignment(c *models.Campaign, influencerID uuid.UUID, p models.AssignmentPatch) bool {
	for i := range c.Influencers {
		if c.Influencers[i].InfluencerID == influencerID {
			p.Apply(&c.Influencers[i])
			return true
		}
	}
	return false
}
