package repository

import (
	"context"

	"amplify/internal/models"
	"amplify/internal/store"
)

// Concrete repositories.
type (
	Influencers        = Repository[models.Influencer, *models.Influencer]
	Campaigns          = Repository[models.Campaign, *models.Campaign]
	CreatorSubmissions = Repository[models.CreatorSubmission, *models.CreatorSubmission]
	AgencySubmissions  = Repository[models.AgencySubmission, *models.AgencySubmission]
)

// Set bundles the four collections of the application.
type Set struct {
	Influencers *Influencers
	Campaigns   *Campaigns
	Creators    *CreatorSubmissions
	Agencies    *AgencySubmissions
}

// Open loads every collection from s. Only the influencer roster falls back
// to seed; the other collections start empty.
func Open(ctx context.Context, s store.Store, seed []models.Influencer) (*Set, error) {
	influencers, err := Load[models.Influencer](ctx, s, store.KeyInfluencers, seed)
	if err != nil {
		return nil, err
	}
	campaigns, err := Load[models.Campaign](ctx, s, store.KeyCampaigns, nil)
	if err != nil {
		return nil, err
	}
	creators, err := Load[models.CreatorSubmission](ctx, s, store.KeyCreatorSubmissions, nil)
	if err != nil {
		return nil, err
	}
	agencies, err := Load[models.AgencySubmission](ctx, s, store.KeyAgencySubmissions, nil)
	if err != nil {
		return nil, err
	}

	return &Set{
		Influencers: influencers,
		Campaigns:   campaigns,
		Creators:    creators,
		Agencies:    agencies,
	}, nil
}
