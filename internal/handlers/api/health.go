package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"amplify/internal/repository"
	"amplify/internal/store"
)

// HealthHandler reports whether the backing store is reachable.
type HealthHandler struct {
	store   store.Store
	repos   *repository.Set
	timeout time.Duration
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(s store.Store, repos *repository.Set) *HealthHandler {
	return &HealthHandler{store: s, repos: repos, timeout: 2 * time.Second}
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Store       string `json:"store"`
	Influencers int    `json:"influencers"`
	Campaigns   int    `json:"campaigns"`
	Submissions int    `json:"submissions"`
}

// Check reads one collection key from the store and reports record counts.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if _, err := h.store.Get(ctx, store.KeyInfluencers); err != nil {
		slog.Error("health check failed", "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "store unavailable")
	}

	return jsonSuccess(c, HealthResponse{
		Store:       "ok",
		Influencers: h.repos.Influencers.Len(),
		Campaigns:   h.repos.Campaigns.Len(),
		Submissions: h.repos.Creators.Len() + h.repos.Agencies.Len(),
	})
}
