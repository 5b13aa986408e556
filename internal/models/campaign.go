package models

import (
	"time"

	"github.com/google/uuid"
)

// Deliverable is a unit of sponsored content assignable within a campaign.
type Deliverable string

// Deliverable constants
const (
	DeliverableReel         Deliverable = "Reel"
	DeliverableStory        Deliverable = "Story"
	DeliverablePost         Deliverable = "Post"
	DeliverableCarousel     Deliverable = "Carousel"
	DeliverableYouTubeVideo Deliverable = "YouTube Video"
	DeliverableYouTubeShort Deliverable = "YouTube Short"
	DeliverableIntegration  Deliverable = "Integration"
)

// Deliverables lists every deliverable in display order. The first entry is
// the default for new assignments.
var Deliverables = []Deliverable{
	DeliverableReel, DeliverableStory, DeliverablePost, DeliverableCarousel,
	DeliverableYouTubeVideo, DeliverableYouTubeShort, DeliverableIntegration,
}

// DuplicateSuffix is appended to the name of a duplicated campaign.
const DuplicateSuffix = " (Copy)"

// Campaign groups influencer assignments under a name.
type Campaign struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	CreatedAt   time.Time            `json:"created_at"`
	Influencers []CampaignInfluencer `json:"influencers"`
}

// RecordID returns the campaign id.
func (c *Campaign) RecordID() uuid.UUID { return c.ID }

// SetRecordID assigns the campaign id.
func (c *Campaign) SetRecordID(id uuid.UUID) { c.ID = id }

// CampaignInfluencer is one assignment inside a campaign. ExpectedViews and
// ExpectedEngagement are captured when the assignment is created and are not
// re-derived from the influencer afterwards.
type CampaignInfluencer struct {
	InfluencerID       uuid.UUID   `json:"influencer_id"`
	Deliverable        Deliverable `json:"deliverable"`
	ProposedCost       float64     `json:"proposed_cost"`
	ExpectedViews      float64     `json:"expected_views"`
	ExpectedEngagement float64     `json:"expected_engagement"`
	Notes              string      `json:"notes"`
}

// CampaignPatch carries a partial campaign update.
type CampaignPatch struct {
	Name        *string               `json:"name"`
	Influencers *[]CampaignInfluencer `json:"influencers"`
}

// Apply overwrites the fields of c that are set on the patch.
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Influencers != nil {
		c.Influencers = append([]CampaignInfluencer(nil), (*p.Influencers)...)
	}
}

// AssignmentPatch carries a partial update to one campaign assignment.
type AssignmentPatch struct {
	Deliverable        *Deliverable `json:"deliverable"`
	ProposedCost       *float64     `json:"proposed_cost"`
	ExpectedViews      *float64     `json:"expected_views"`
	ExpectedEngagement *float64     `json:"expected_engagement"`
	Notes              *string      `json:"notes"`
}

// Apply overwrites the fields of ci that are set on the patch.
func (p AssignmentPatch) Apply(ci *CampaignInfluencer) {
	if p.Deliverable != nil {
		ci.Deliverable = *p.Deliverable
	}
	if p.ProposedCost != nil {
		ci.ProposedCost = *p.ProposedCost
	}
	if p.ExpectedViews != nil {
		ci.ExpectedViews = *p.ExpectedViews
	}
	if p.ExpectedEngagement != nil {
		ci.ExpectedEngagement = *p.ExpectedEngagement
	}
	if p.Notes != nil {
		ci.Notes = *p.Notes
	}
}

// ParseDeliverable maps s onto a known deliverable, falling back to the
// first entry of Deliverables.
func ParseDeliverable(s string) (Deliverable, bool) {
	for _, d := range Deliverables {
		if s == string(d) {
			return d, false
		}
	}
	return Deliverables[0], true
}

// CampaignSummary holds the aggregate metrics of a campaign.
type CampaignSummary struct {
	Count            int     `json:"count"`
	TotalFollowers   int64   `json:"total_followers"`
	TotalImpressions float64 `json:"total_impressions"`
	TotalEngagement  float64 `json:"total_engagement"`
	TotalCost        float64 `json:"total_cost"`
}

// Clone returns a copy that shares no slices with c.
func (c *Campaign) Clone() Campaign {
	out := *c
	out.Influencers = append([]CampaignInfluencer(nil), c.Influencers...)
	return out
}
