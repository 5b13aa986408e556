package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"amplify/internal/intake"
	"amplify/internal/models"
	"amplify/internal/repository"
)

// SubmissionHandler handles public signups and their review.
type SubmissionHandler struct {
	intake *intake.Service
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(service *intake.Service) *SubmissionHandler {
	return &SubmissionHandler{intake: service}
}

// InboxResponse splits submissions into the two review tabs.
type InboxResponse struct {
	Pending  []models.Submission `json:"pending"`
	Reviewed []models.Submission `json:"reviewed"`
}

// SignupCreator stores a creator application.
func (h *SubmissionHandler) SignupCreator(c fiber.Ctx) error {
	var body models.CreatorSubmission
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sub, err := h.intake.SubmitCreator(c.Context(), body)
	if err != nil {
		return submissionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "data": sub})
}

// SignupAgency stores an agency application.
func (h *SubmissionHandler) SignupAgency(c fiber.Ctx) error {
	var body models.AgencySubmission
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sub, err := h.intake.SubmitAgency(c.Context(), body)
	if err != nil {
		return submissionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok", "data": sub})
}

// List returns the submission inbox, newest first. ?type= narrows it to
// creators or agencies.
func (h *SubmissionHandler) List(c fiber.Ctx) error {
	var kind models.SubmissionType
	if raw := c.Query("type"); raw != "" {
		k, ok := models.ParseSubmissionType(raw)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "type must be creator or agency")
		}
		kind = k
	}

	pending, reviewed := intake.Split(h.intake.Inbox(kind))
	resp := InboxResponse{Pending: pending, Reviewed: reviewed}
	if resp.Pending == nil {
		resp.Pending = []models.Submission{}
	}
	if resp.Reviewed == nil {
		resp.Reviewed = []models.Submission{}
	}
	return jsonSuccess(c, resp)
}

// Approve reviews a submission. Approved creators join the roster.
func (h *SubmissionHandler) Approve(c fiber.Ctx) error {
	kind, id, err := submissionRef(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	inf, err := h.intake.Approve(c.Context(), kind, id)
	if err != nil {
		return submissionError(c, err)
	}

	return jsonSuccess(c, fiber.Map{"id": id, "reviewed": true, "influencer": inf})
}

// Reject reviews a submission without adding anything to the roster.
func (h *SubmissionHandler) Reject(c fiber.Ctx) error {
	kind, id, err := submissionRef(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.intake.Reject(c.Context(), kind, id); err != nil {
		return submissionError(c, err)
	}

	return jsonSuccess(c, fiber.Map{"id": id, "reviewed": true})
}

// Delete removes a submission.
func (h *SubmissionHandler) Delete(c fiber.Ctx) error {
	kind, id, err := submissionRef(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ok, err := h.intake.Delete(c.Context(), kind, id)
	if err != nil {
		return submissionError(c, err)
	}
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "submission not found")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}

func submissionRef(c fiber.Ctx) (models.SubmissionType, uuid.UUID, error) {
	kind, ok := models.ParseSubmissionType(c.Params("type"))
	if !ok {
		return "", uuid.Nil, errors.New("type must be creator or agency")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", uuid.Nil, errors.New("invalid submission id")
	}
	return kind, id, nil
}

func submissionError(c fiber.Ctx, err error) error {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr):
		return jsonError(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, intake.ErrUnknownType):
		return jsonError(c, fiber.StatusBadRequest, "type must be creator or agency")
	case errors.Is(err, repository.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, intake.ErrAlreadyReviewed):
		return jsonError(c, fiber.StatusConflict, "submission already reviewed")
	}
	return jsonError(c, fiber.StatusInternalServerError, "failed to process submission")
}
