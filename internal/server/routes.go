package server

import (
	"amplify/internal/campaign"
	"amplify/internal/handlers/api"
	"amplify/internal/intake"
	"amplify/internal/models"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/store"
)

// Deps are the collaborators the routes are served from.
type Deps struct {
	Store     store.Store
	Repos     *repository.Set
	Campaigns *campaign.Service
	Intake    *intake.Service
	Notifier  *notify.Notifier
	Feed      *notify.Feed
	Filters   models.Filters
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	influencerHandler := api.NewInfluencerHandler(d.Repos.Influencers, d.Filters, d.Notifier)
	campaignHandler := api.NewCampaignHandler(d.Repos.Campaigns, d.Campaigns, d.Notifier)
	submissionHandler := api.NewSubmissionHandler(d.Intake)
	notificationHandler := api.NewNotificationHandler(d.Feed)
	healthHandler := api.NewHealthHandler(d.Store, d.Repos)

	s.App.Get("/health", healthHandler.Check)

	v1 := s.App.Group("/api")

	// Roster
	v1.Get("/influencers", influencerHandler.List)
	v1.Post("/influencers", influencerHandler.Create)
	v1.Post("/influencers/search", influencerHandler.Search)
	v1.Get("/influencers/shortlist", influencerHandler.Shortlist)
	v1.Get("/influencers/campaign-ready", influencerHandler.CampaignReady)
	v1.Get("/influencers/export", influencerHandler.Export)
	v1.Post("/influencers/import", influencerHandler.Import)
	v1.Get("/influencers/:id", influencerHandler.Get)
	v1.Patch("/influencers/:id", influencerHandler.Update)
	v1.Delete("/influencers/:id", influencerHandler.Delete)

	// Campaigns
	v1.Get("/campaigns", campaignHandler.List)
	v1.Post("/campaigns", campaignHandler.Create)
	v1.Post("/campaigns/import", campaignHandler.Import)
	v1.Get("/campaigns/:id", campaignHandler.Get)
	v1.Patch("/campaigns/:id", campaignHandler.Update)
	v1.Delete("/campaigns/:id", campaignHandler.Delete)
	v1.Post("/campaigns/:id/duplicate", campaignHandler.Duplicate)
	v1.Get("/campaigns/:id/summary", campaignHandler.Summary)
	v1.Get("/campaigns/:id/export", campaignHandler.Export)
	v1.Patch("/campaigns/:id/influencers/:influencerID", campaignHandler.UpdateAssignment)

	// Public intake, rate limited separately
	signup := v1.Group("/signup", newLimiter(s.Cfg.SignupRateLimit))
	signup.Post("/creator", submissionHandler.SignupCreator)
	signup.Post("/agency", submissionHandler.SignupAgency)

	// Review inbox
	v1.Get("/submissions", submissionHandler.List)
	v1.Post("/submissions/:type/:id/approve", submissionHandler.Approve)
	v1.Post("/submissions/:type/:id/reject", submissionHandler.Reject)
	v1.Delete("/submissions/:type/:id", submissionHandler.Delete)

	v1.Get("/notifications", notificationHandler.List)
}
