package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"amplify/internal/filter"
	"amplify/internal/models"
	"amplify/internal/repository"
)

// ErrNoAssignments is returned when an imported campaign has no row that
// matches the roster.
var ErrNoAssignments = errors.New("no campaign rows match the roster")

// Service persists campaigns built from the live roster.
type Service struct {
	campaigns   *repository.Campaigns
	influencers *repository.Influencers
	now         func() time.Time
}

// NewService creates a campaign service over the given repositories.
func NewService(campaigns *repository.Campaigns, influencers *repository.Influencers) *Service {
	return &Service{
		campaigns:   campaigns,
		influencers: influencers,
		now:         time.Now,
	}
}

// Create snapshots the given influencers into a new campaign. When ids is
// empty the current campaign-ready view is used.
func (s *Service) Create(ctx context.Context, name string, ids []uuid.UUID) (models.Campaign, error) {
	all := s.influencers.List()
	if len(ids) == 0 {
		ids = filter.IDs(filter.CampaignReady(all))
	}
	return s.campaigns.Add(ctx, Create(name, ids, all, s.now()))
}

// Duplicate stores a copy of the campaign with the given id.
func (s *Service) Duplicate(ctx context.Context, id uuid.UUID) (models.Campaign, error) {
	c, err := s.campaigns.Get(id)
	if err != nil {
		return models.Campaign{}, err
	}
	return s.campaigns.Add(ctx, Duplicate(&c, s.now()))
}

// UpdateAssignment patches one assignment of a campaign. It returns
// repository.ErrNotFound when either the campaign or the assignment is
// missing.
func (s *Service) UpdateAssignment(ctx context.Context, id, influencerID uuid.UUID, p models.AssignmentPatch) error {
	found := false
	ok, err := s.campaigns.Update(ctx, id, func(c *models.Campaign) {
		found = UpdateAssignment(c, influencerID, p)
	})
	if err != nil {
		return err
	}
	if !ok || !found {
		return fmt.Errorf("assignment %s in campaign %s: %w", influencerID, id, repository.ErrNotFound)
	}
	return nil
}

// Summary aggregates the campaign with the given id against the live roster.
func (s *Service) Summary(id uuid.UUID) (models.CampaignSummary, error) {
	c, err := s.campaigns.Get(id)
	if err != nil {
		return models.CampaignSummary{}, err
	}
	return Summarize(&c, Index(s.influencers.List())), nil
}

// Import stores a campaign built from parsed rows.
func (s *Service) Import(ctx context.Context, name string, assignments []models.CampaignInfluencer) (models.Campaign, error) {
	if len(assignments) == 0 {
		return models.Campaign{}, ErrNoAssignments
	}
	return s.campaigns.Add(ctx, models.Campaign{
		Name:        name,
		CreatedAt:   s.now(),
		Influencers: assignments,
	})
}

// Lookup returns a resolver over the current roster.
func (s *Service) Lookup() Lookup {
	return Index(s.influencers.List())
}

// Roster returns the current influencer roster.
func (s *Service) Roster() []models.Influencer {
	return s.influencers.List()
}
