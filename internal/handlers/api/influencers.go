package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"amplify/internal/export"
	"amplify/internal/filter"
	"amplify/internal/metrics"
	"amplify/internal/models"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/validation"
)

// InfluencerHandler serves the roster via JSON API.
type InfluencerHandler struct {
	roster   *repository.Influencers
	defaults models.Filters
	notifier *notify.Notifier
}

// NewInfluencerHandler creates a new roster handler. defaults supplies the
// range bounds a query leaves unset.
func NewInfluencerHandler(roster *repository.Influencers, defaults models.Filters, notifier *notify.Notifier) *InfluencerHandler {
	return &InfluencerHandler{roster: roster, defaults: defaults, notifier: notifier}
}

// RosterResponse is a filtered view of the roster.
type RosterResponse struct {
	Total       int                 `json:"total"`
	Matched     int                 `json:"matched"`
	Influencers []models.Influencer `json:"influencers"`
}

// List returns the roster filtered by query parameters.
func (h *InfluencerHandler) List(c fiber.Ctx) error {
	f, err := h.filtersFromQuery(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.respondFiltered(c, f)
}

// Search returns the roster filtered by a JSON criteria body. Omitted range
// bounds take their defaults.
func (h *InfluencerHandler) Search(c fiber.Ctx) error {
	f := h.defaults
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := json.Unmarshal(c.Body(), &f); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	return h.respondFiltered(c, f)
}

func (h *InfluencerHandler) respondFiltered(c fiber.Ctx, f models.Filters) error {
	all := h.roster.List()
	matched := filter.Apply(all, f)
	return jsonSuccess(c, RosterResponse{Total: len(all), Matched: len(matched), Influencers: matched})
}

func (h *InfluencerHandler) filtersFromQuery(c fiber.Ctx) (models.Filters, error) {
	f := h.defaults
	for _, p := range splitList(c.Query("platforms")) {
		platform, usedDefault := models.ParsePlatform(p)
		if usedDefault {
			return f, errors.New("unknown platform " + strconv.Quote(p))
		}
		f.Platforms = append(f.Platforms, platform)
	}
	for _, n := range splitList(c.Query("niches")) {
		niche, usedDefault := models.ParseNiche(n)
		if usedDefault {
			return f, errors.New("unknown niche " + strconv.Quote(n))
		}
		f.Niches = append(f.Niches, niche)
	}

	var err error
	if f.FollowersMin, err = queryInt(c, "followers_min", f.FollowersMin); err != nil {
		return f, err
	}
	if f.FollowersMax, err = queryInt(c, "followers_max", f.FollowersMax); err != nil {
		return f, err
	}
	if f.EngagementMin, err = queryFloat(c, "engagement_min", f.EngagementMin); err != nil {
		return f, err
	}
	if f.EngagementMax, err = queryFloat(c, "engagement_max", f.EngagementMax); err != nil {
		return f, err
	}

	f.Country = c.Query("country")
	f.Language = c.Query("language")
	f.Status = c.Query("status")
	f.Search = c.Query("q")
	return f, nil
}

// Shortlist returns influencers with status Shortlisted.
func (h *InfluencerHandler) Shortlist(c fiber.Ctx) error {
	return jsonSuccess(c, filter.Shortlisted(h.roster.List()))
}

// CampaignReady returns influencers with status Planned or Confirmed.
func (h *InfluencerHandler) CampaignReady(c fiber.Ctx) error {
	return jsonSuccess(c, filter.CampaignReady(h.roster.List()))
}

// Get returns a single influencer by ID.
func (h *InfluencerHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid influencer id")
	}

	inf, err := h.roster.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "influencer not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch influencer")
	}

	return jsonSuccess(c, inf)
}

// Create adds an influencer to the roster.
func (h *InfluencerHandler) Create(c fiber.Ctx) error {
	var body models.Influencer
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateInfluencer(&body); !valid {
		h.notifier.Failed(msg)
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	body.Platform, _ = models.ParsePlatform(string(body.Platform))
	body.Niche, _ = models.ParseNiche(string(body.Niche))
	body.Status, _ = models.ParseStatus(string(body.Status))
	if body.RecentContent == nil {
		body.RecentContent = []string{}
	}

	inf, err := h.roster.Add(c.Context(), body)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save influencer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "data": inf})
}

// Update applies a partial update to an influencer.
func (h *InfluencerHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid influencer id")
	}

	var patch models.InfluencerPatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := checkPatch(&patch); msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	ok, err := h.roster.Update(c.Context(), id, func(inf *models.Influencer) { patch.Apply(inf) })
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save influencer")
	}
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "influencer not found")
	}

	inf, _ := h.roster.Get(id)
	return jsonSuccess(c, inf)
}

func checkPatch(p *models.InfluencerPatch) string {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return validation.MsgNameRequired
	}
	if p.Status != nil && !models.IsValidStatus(*p.Status) {
		return "unknown status " + strconv.Quote(string(*p.Status))
	}
	if p.Platform != nil {
		v, usedDefault := models.ParsePlatform(string(*p.Platform))
		if usedDefault {
			return "unknown platform " + strconv.Quote(string(*p.Platform))
		}
		*p.Platform = v
	}
	if p.Niche != nil {
		v, usedDefault := models.ParseNiche(string(*p.Niche))
		if usedDefault {
			return "unknown niche " + strconv.Quote(string(*p.Niche))
		}
		*p.Niche = v
	}
	for _, u := range []*string{p.PlatformURL, p.ProfilePhoto} {
		if u == nil {
			continue
		}
		if valid, msg := validation.ValidateOptionalURL(*u); !valid {
			return msg
		}
	}
	return ""
}

// Delete removes an influencer. Campaign assignments that reference it are
// left in place.
func (h *InfluencerHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid influencer id")
	}

	ok, err := h.roster.Delete(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete influencer")
	}
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "influencer not found")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}

// Export returns a roster view as CSV.
func (h *InfluencerHandler) Export(c fiber.Ctx) error {
	all := h.roster.List()
	records, filename := all, "influencer-database.csv"
	switch c.Query("view", "all") {
	case "all":
	case "shortlist":
		records, filename = filter.Shortlisted(all), "shortlisted-influencers.csv"
	case "campaign-ready":
		records, filename = filter.CampaignReady(all), "campaign-ready-influencers.csv"
	default:
		return jsonError(c, fiber.StatusBadRequest, "view must be all, shortlist or campaign-ready")
	}

	return sendCSV(c, filename, export.Influencers(records))
}

// Import adds every row of a CSV body to the roster in one batch.
func (h *InfluencerHandler) Import(c fiber.Ctx) error {
	records, err := export.ParseInfluencers(bytes.NewReader(c.Body()))
	if err != nil {
		h.notifier.Failed(validation.MsgNoRows)
		if errors.Is(err, export.ErrNoRows) {
			return jsonError(c, fiber.StatusBadRequest, validation.MsgNoRows)
		}
		return jsonError(c, fiber.StatusBadRequest, "invalid CSV")
	}

	added, err := h.roster.AddMany(c.Context(), records)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save influencers")
	}

	metrics.RecordImport("influencers", len(added))
	h.notifier.Imported(len(added))
	return jsonSuccess(c, fiber.Map{"imported": len(added), "influencers": added})
}

func sendCSV(c fiber.Ctx, filename, body string) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.SendString(body)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func queryInt(c fiber.Ctx, key string, fallback int64) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}

func queryFloat(c fiber.Ctx, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(key + " must be a number")
	}
	return v, nil
}
