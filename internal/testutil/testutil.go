// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"amplify/internal/models"
	"amplify/internal/repository"
	"amplify/internal/store"
)

// TestRepos opens every collection over a fresh in-memory store, with the
// roster seeded from seed. The store is returned for persistence checks.
func TestRepos(t *testing.T, seed ...models.Influencer) (*repository.Set, *store.Memory) {
	t.Helper()

	s := store.NewMemory()
	repos, err := repository.Open(context.Background(), s, seed)
	if err != nil {
		t.Fatalf("failed to open repositories: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return repos, s
}

// Influencer returns a well-formed roster entry with a random id. Fields
// can be overridden through opts.
func Influencer(name string, opts ...func(*models.Influencer)) models.Influencer {
	inf := models.Influencer{
		ID:             uuid.New(),
		Name:           name,
		Platform:       models.PlatformYouTube,
		Niche:          models.NicheTech,
		Followers:      100_000,
		AvgViews:       10_000,
		EngagementRate: 4.5,
		Country:        models.DefaultCountry,
		Language:       models.DefaultLanguage,
		Status:         models.StatusNotReviewed,
		RecentContent:  []string{},
	}
	for _, opt := range opts {
		opt(&inf)
	}
	return inf
}

// WithStatus sets the workflow status.
func WithStatus(s models.Status) func(*models.Influencer) {
	return func(inf *models.Influencer) { inf.Status = s }
}

// WithPlatform sets the platform.
func WithPlatform(p models.Platform) func(*models.Influencer) {
	return func(inf *models.Influencer) { inf.Platform = p }
}
