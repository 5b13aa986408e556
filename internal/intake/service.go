package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"amplify/internal/metrics"
	"amplify/internal/models"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/validation"
)

// Errors returned by Service.
var (
	ErrAlreadyReviewed = errors.New("submission already reviewed")
	ErrUnknownType     = errors.New("unknown submission type")
)

// ValidationError carries the operator-facing reason an application was
// refused.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Service stores applications and reviews them against the roster. Unlike
// Approve and Reject, its review methods refuse already-reviewed submissions.
// Reviews are serialized so a submission is reviewed at most once.
type Service struct {
	mu       sync.Mutex
	repos    *repository.Set
	notifier *notify.Notifier
	now      func() time.Time
}

// NewService creates an intake service. notifier may be nil.
func NewService(repos *repository.Set, notifier *notify.Notifier) *Service {
	return &Service{repos: repos, notifier: notifier, now: time.Now}
}

// SubmitCreator validates and stores a creator application as pending.
func (s *Service) SubmitCreator(ctx context.Context, sub models.CreatorSubmission) (models.CreatorSubmission, error) {
	if valid, msg := validation.ValidateCreator(&sub); !valid {
		s.notifier.Failed(msg)
		return models.CreatorSubmission{}, &ValidationError{Message: msg}
	}
	sub.SubmissionMeta = s.meta(models.SubmissionCreator)
	if sub.PriceRange == "" {
		sub.PriceRange = models.DefaultPriceRange
	}
	if sub.PrimaryPlatform == "" {
		sub.PrimaryPlatform = models.PrimaryYouTube
	}
	return s.repos.Creators.Add(ctx, sub)
}

// SubmitAgency validates and stores an agency application as pending.
func (s *Service) SubmitAgency(ctx context.Context, sub models.AgencySubmission) (models.AgencySubmission, error) {
	if valid, msg := validation.ValidateAgency(&sub); !valid {
		s.notifier.Failed(msg)
		return models.AgencySubmission{}, &ValidationError{Message: msg}
	}
	sub.SubmissionMeta = s.meta(models.SubmissionAgency)
	return s.repos.Agencies.Add(ctx, sub)
}

func (s *Service) meta(kind models.SubmissionType) models.SubmissionMeta {
	return models.SubmissionMeta{Type: kind, SubmittedOn: s.now()}
}

// Get returns the submission of the given type and id.
func (s *Service) Get(kind models.SubmissionType, id uuid.UUID) (models.Submission, error) {
	switch kind {
	case models.SubmissionCreator:
		sub, err := s.repos.Creators.Get(id)
		if err != nil {
			return nil, err
		}
		return &sub, nil
	case models.SubmissionAgency:
		sub, err := s.repos.Agencies.Get(id)
		if err != nil {
			return nil, err
		}
		return &sub, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
}

// Approve reviews a pending submission. Creators are added to the roster
// and the new entry is returned.
func (s *Service) Approve(ctx context.Context, kind models.SubmissionType, id uuid.UUID) (*models.Influencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.pending(kind, id)
	if err != nil {
		return nil, err
	}

	inf, err := Approve(ctx, sub, s.repos.Influencers)
	if err != nil {
		return nil, err
	}
	if err := s.markReviewed(ctx, sub); err != nil {
		// the submission stays pending, so the roster entry must go
		if inf != nil {
			if _, derr := s.repos.Influencers.Delete(ctx, inf.ID); derr != nil {
				slog.Error("failed to roll back approved influencer", "id", inf.ID, "error", derr)
			}
		}
		return nil, err
	}

	metrics.RecordReview(kind, metrics.OutcomeApproved)
	slog.Info("submission approved", "type", kind, "id", id, "name", sub.DisplayName())
	switch sub.(type) {
	case *models.CreatorSubmission:
		s.notifier.CreatorApproved(sub.DisplayName())
	case *models.AgencySubmission:
		s.notifier.AgencyApproved(sub.DisplayName())
	}
	return inf, nil
}

// Reject reviews a pending submission without touching the roster.
func (s *Service) Reject(ctx context.Context, kind models.SubmissionType, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.pending(kind, id)
	if err != nil {
		return err
	}

	Reject(sub)
	if err := s.markReviewed(ctx, sub); err != nil {
		return err
	}

	metrics.RecordReview(kind, metrics.OutcomeRejected)
	slog.Info("submission rejected", "type", kind, "id", id, "name", sub.DisplayName())
	s.notifier.Rejected(sub.DisplayName())
	return nil
}

func (s *Service) pending(kind models.SubmissionType, id uuid.UUID) (models.Submission, error) {
	sub, err := s.Get(kind, id)
	if err != nil {
		return nil, err
	}
	if sub.IsReviewed() {
		return nil, ErrAlreadyReviewed
	}
	return sub, nil
}

func (s *Service) markReviewed(ctx context.Context, sub models.Submission) error {
	var err error
	switch v := sub.(type) {
	case *models.CreatorSubmission:
		_, err = s.repos.Creators.Update(ctx, v.ID, func(c *models.CreatorSubmission) { c.MarkReviewed() })
	case *models.AgencySubmission:
		_, err = s.repos.Agencies.Update(ctx, v.ID, func(a *models.AgencySubmission) { a.MarkReviewed() })
	}
	if err != nil {
		return fmt.Errorf("failed to mark %s reviewed: %w", sub.RecordID(), err)
	}
	return nil
}

// Delete removes a submission. It reports false when none matched.
func (s *Service) Delete(ctx context.Context, kind models.SubmissionType, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.SubmissionCreator:
		return s.repos.Creators.Delete(ctx, id)
	case models.SubmissionAgency:
		return s.repos.Agencies.Delete(ctx, id)
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownType, kind)
}

// Inbox returns creator and agency submissions merged, newest first. An
// empty kind includes both types.
func (s *Service) Inbox(kind models.SubmissionType) []models.Submission {
	var out []models.Submission
	if kind == "" || kind == models.SubmissionCreator {
		creators := s.repos.Creators.List()
		for i := range creators {
			out = append(out, &creators[i])
		}
	}
	if kind == "" || kind == models.SubmissionAgency {
		agencies := s.repos.Agencies.List()
		for i := range agencies {
			out = append(out, &agencies[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt().After(out[j].SubmittedAt())
	})
	return out
}

// Split partitions subs into pending and reviewed, keeping order.
func Split(subs []models.Submission) (pending, reviewed []models.Submission) {
	for _, sub := range subs {
		if sub.IsReviewed() {
			reviewed = append(reviewed, sub)
		} else {
			pending = append(pending, sub)
		}
	}
	return pending, reviewed
}
