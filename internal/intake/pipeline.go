// Package intake accepts public creator and agency applications and moves
// them through review.
package intake

import (
	"context"
	"fmt"
	"strings"

	"amplify/internal/models"
	"amplify/internal/repository"
)

// ToInfluencer maps a creator application onto a new roster entry.
func ToInfluencer(s *models.CreatorSubmission) models.Influencer {
	niche := models.DefaultNiche
	if len(s.Niches) > 0 {
		niche, _ = models.ParseNiche(string(s.Niches[0]))
	}

	url := s.YouTubeURL
	if url == "" {
		url = s.InstagramURL
	}

	return models.Influencer{
		Name:           s.Name,
		Platform:       s.PrimaryPlatform.Platform(),
		Niche:          niche,
		Followers:      s.Followers,
		AvgViews:       s.AvgViews,
		EngagementRate: s.EngagementRate,
		Country:        s.Country,
		Language:       s.Language,
		ContactEmail:   s.ContactEmail,
		Notes:          Notes(s.PriceRange, s.CollaborationFormats),
		Status:         models.StatusNotReviewed,
		Bio:            s.Bio,
		PlatformURL:    url,
		RecentContent:  []string{},
	}
}

// Notes renders the commercial terms of an application as roster notes.
func Notes(price models.PriceRange, formats []models.CollaborationFormat) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return fmt.Sprintf("Price: %s. Formats: %s", price, strings.Join(names, ", "))
}

// Approve marks sub as reviewed. A creator application is also added to
// roster and the new entry is returned; agencies never join the roster and
// yield nil. Approve does not check whether sub was already reviewed.
func Approve(ctx context.Context, sub models.Submission, roster *repository.Influencers) (*models.Influencer, error) {
	switch s := sub.(type) {
	case *models.CreatorSubmission:
		inf, err := roster.Add(ctx, ToInfluencer(s))
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to roster: %w", s.Name, err)
		}
		s.MarkReviewed()
		return &inf, nil
	case *models.AgencySubmission:
		s.MarkReviewed()
		return nil, nil
	default:
		panic(fmt.Sprintf("intake: unexpected submission %T", sub))
	}
}

// Reject marks sub as reviewed and has no other effect.
func Reject(sub models.Submission) {
	sub.MarkReviewed()
}
