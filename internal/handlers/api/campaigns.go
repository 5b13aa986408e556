package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"amplify/internal/campaign"
	"amplify/internal/export"
	"amplify/internal/metrics"
	"amplify/internal/models"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/validation"
)

// CampaignHandler handles campaign operations via JSON API.
type CampaignHandler struct {
	campaigns *repository.Campaigns
	service   *campaign.Service
	notifier  *notify.Notifier
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(campaigns *repository.Campaigns, service *campaign.Service, notifier *notify.Notifier) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, service: service, notifier: notifier}
}

// SummaryResponse pairs campaign totals with their display form.
type SummaryResponse struct {
	models.CampaignSummary
	Display map[string]string `json:"display"`
}

// List returns every campaign.
func (h *CampaignHandler) List(c fiber.Ctx) error {
	return jsonSuccess(c, h.campaigns.List())
}

// Create snapshots influencers into a new campaign. An empty influencer_ids
// list takes the campaign-ready view.
func (h *CampaignHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name          string      `json:"name"`
		InfluencerIDs []uuid.UUID `json:"influencer_ids"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, validation.MsgNameRequired)
	}

	camp, err := h.service.Create(c.Context(), body.Name, body.InfluencerIDs)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create campaign")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "data": camp})
}

// Get returns a single campaign by ID.
func (h *CampaignHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	camp, err := h.campaigns.Get(id)
	if err != nil {
		return campaignError(c, err)
	}

	return jsonSuccess(c, camp)
}

// Update renames a campaign or replaces its assignments.
func (h *CampaignHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	var patch models.CampaignPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return jsonError(c, fiber.StatusBadRequest, validation.MsgNameRequired)
	}

	ok, err := h.campaigns.Update(c.Context(), id, func(camp *models.Campaign) { patch.Apply(camp) })
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save campaign")
	}
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "campaign not found")
	}

	camp, _ := h.campaigns.Get(id)
	return jsonSuccess(c, camp)
}

// Delete removes a campaign.
func (h *CampaignHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	ok, err := h.campaigns.Delete(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete campaign")
	}
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "campaign not found")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}

// Duplicate stores a copy of a campaign under a new id.
func (h *CampaignHandler) Duplicate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	camp, err := h.service.Duplicate(c.Context(), id)
	if err != nil {
		return campaignError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "data": camp})
}

// UpdateAssignment edits one influencer's row inside a campaign.
func (h *CampaignHandler) UpdateAssignment(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}
	influencerID, err := uuid.Parse(c.Params("influencerID"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid influencer id")
	}

	var patch models.AssignmentPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if patch.Deliverable != nil {
		if _, usedDefault := models.ParseDeliverable(string(*patch.Deliverable)); usedDefault {
			return jsonError(c, fiber.StatusBadRequest, "unknown deliverable")
		}
	}

	if err := h.service.UpdateAssignment(c.Context(), id, influencerID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "assignment not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to save campaign")
	}

	camp, _ := h.campaigns.Get(id)
	return jsonSuccess(c, camp)
}

// Summary returns the aggregate metrics of a campaign.
func (h *CampaignHandler) Summary(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	sum, err := h.service.Summary(id)
	if err != nil {
		return campaignError(c, err)
	}

	return jsonSuccess(c, SummaryResponse{
		CampaignSummary: sum,
		Display: map[string]string{
			"total_followers":   export.FormatNumber(float64(sum.TotalFollowers)),
			"total_impressions": export.FormatNumber(sum.TotalImpressions),
			"total_engagement":  export.FormatNumber(sum.TotalEngagement),
			"total_cost":        export.FormatNumber(sum.TotalCost),
		},
	})
}

// Export returns a campaign as CSV.
func (h *CampaignHandler) Export(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign id")
	}

	camp, err := h.campaigns.Get(id)
	if err != nil {
		return campaignError(c, err)
	}

	filename := strings.ReplaceAll(camp.Name, " ", "-") + ".csv"
	return sendCSV(c, filename, export.Campaign(&camp, h.service.Lookup()))
}

// Import builds a campaign from a CSV body. Rows are matched to the roster
// by influencer name; the number of unmatched rows is reported back.
func (h *CampaignHandler) Import(c fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return jsonError(c, fiber.StatusBadRequest, validation.MsgNameRequired)
	}

	rows, err := export.ParseCampaign(bytes.NewReader(c.Body()), h.service.Roster())
	if err != nil {
		h.notifier.Failed(validation.MsgNoRows)
		return jsonError(c, fiber.StatusBadRequest, validation.MsgNoRows)
	}

	camp, err := h.service.Import(c.Context(), name, rows.Assignments)
	if errors.Is(err, campaign.ErrNoAssignments) {
		h.notifier.Failed(validation.MsgNoCampaignRows)
		return jsonError(c, fiber.StatusBadRequest, validation.MsgNoCampaignRows)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save campaign")
	}

	metrics.RecordImport("campaigns", len(rows.Assignments))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"campaign": camp, "unresolved": rows.Unresolved},
	})
}

func campaignError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "campaign not found")
	}
	return jsonError(c, fiber.StatusInternalServerError, "failed to fetch campaign")
}
