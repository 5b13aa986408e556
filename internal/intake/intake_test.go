package intake

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"amplify/internal/models"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/store"
)

func openRepos(t *testing.T) *repository.Set {
	t.Helper()
	repos, err := repository.Open(context.Background(), store.NewMemory(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repos
}

func creator() models.CreatorSubmission {
	return models.CreatorSubmission{
		Name:                 "Asha Rao",
		PrimaryPlatform:      models.PrimaryBoth,
		YouTubeURL:           "https://youtube.com/@asha",
		InstagramURL:         "https://instagram.com/asha",
		Niches:               []models.Niche{models.NicheFashion, models.NicheTech},
		Followers:            120000,
		AvgViews:             30000,
		EngagementRate:       5.5,
		Country:              "India",
		AudienceCountry:      "India",
		Language:             "Hindi",
		ContactEmail:         "asha@example.com",
		CollaborationFormats: []models.CollaborationFormat{"Reels", "Stories"},
		PriceRange:           "₹15,000 – ₹50,000",
		Bio:                  "Style and gadgets",
	}
}

func TestToInfluencer(t *testing.T) {
	s := creator()
	got := ToInfluencer(&s)
	want := models.Influencer{
		Name:           "Asha Rao",
		Platform:       models.PlatformYouTube,
		Niche:          models.NicheFashion,
		Followers:      120000,
		AvgViews:       30000,
		EngagementRate: 5.5,
		Country:        "India",
		Language:       "Hindi",
		ContactEmail:   "asha@example.com",
		Notes:          "Price: ₹15,000 – ₹50,000. Formats: Reels, Stories",
		Status:         models.StatusNotReviewed,
		Bio:            "Style and gadgets",
		PlatformURL:    "https://youtube.com/@asha",
		RecentContent:  []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToInfluencer() mismatch (-want +got):\n%s", diff)
	}
}

func TestToInfluencer_Defaults(t *testing.T) {
	s := models.CreatorSubmission{
		Name:            "Ig Only",
		PrimaryPlatform: models.PrimaryInstagram,
		InstagramURL:    "https://instagram.com/ig",
	}
	got := ToInfluencer(&s)
	if got.Niche != models.NicheTech {
		t.Errorf("Niche = %q, want Tech", got.Niche)
	}
	if got.Platform != models.PlatformInstagram {
		t.Errorf("Platform = %q, want Instagram", got.Platform)
	}
	if got.PlatformURL != "https://instagram.com/ig" {
		t.Errorf("PlatformURL = %q", got.PlatformURL)
	}
	if got.Notes != "Price: . Formats: " {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestToInfluencer_UnknownNicheFallsBack(t *testing.T) {
	s := creator()
	s.Niches = []models.Niche{"cooking", models.NicheFood}
	if got := ToInfluencer(&s); got.Niche != models.DefaultNiche {
		t.Errorf("Niche = %q, want %q", got.Niche, models.DefaultNiche)
	}

	s.Niches = []models.Niche{"fitness"}
	if got := ToInfluencer(&s); got.Niche != models.NicheFitness {
		t.Errorf("Niche = %q, want Fitness", got.Niche)
	}
}

func TestApprove_CreatorJoinsRoster(t *testing.T) {
	repos := openRepos(t)
	s := creator()

	inf, err := Approve(context.Background(), &s, repos.Influencers)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if inf == nil || inf.ID == uuid.Nil {
		t.Fatalf("Approve returned %+v, want stored influencer", inf)
	}
	if !s.Reviewed {
		t.Error("submission not marked reviewed")
	}
	if list := repos.Influencers.List(); len(list) != 1 || list[0].Niche != models.NicheFashion {
		t.Errorf("roster = %+v", list)
	}
}

func TestApprove_AgencyNeverJoinsRoster(t *testing.T) {
	repos := openRepos(t)
	a := models.AgencySubmission{AgencyName: "Bright Talent"}

	inf, err := Approve(context.Background(), &a, repos.Influencers)
	if err != nil || inf != nil {
		t.Fatalf("Approve(agency) = (%v, %v), want (nil, nil)", inf, err)
	}
	if !a.Reviewed {
		t.Error("agency not marked reviewed")
	}
	if repos.Influencers.Len() != 0 {
		t.Error("agency added to roster")
	}
}

// Approve does not consult the reviewed flag, so a second call repeats the
// roster insert.
func TestApprove_DoesNotGuardRepeatCalls(t *testing.T) {
	repos := openRepos(t)
	s := creator()
	ctx := context.Background()

	Approve(ctx, &s, repos.Influencers)
	Approve(ctx, &s, repos.Influencers)
	if repos.Influencers.Len() != 2 {
		t.Errorf("roster size = %d after two approvals, want 2", repos.Influencers.Len())
	}
}

func TestReject(t *testing.T) {
	s := creator()
	Reject(&s)
	if !s.Reviewed {
		t.Error("Reject did not mark reviewed")
	}
}

type feedRecorder struct{ got []notify.Notification }

func (f *feedRecorder) Notify(n notify.Notification) { f.got = append(f.got, n) }

func newService(t *testing.T) (*Service, *repository.Set, *feedRecorder) {
	t.Helper()
	repos := openRepos(t)
	rec := &feedRecorder{}
	svc := NewService(repos, notify.New(rec))
	return svc, repos, rec
}

func TestService_SubmitCreator(t *testing.T) {
	svc, repos, rec := newService(t)
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	in := creator()
	in.PriceRange = ""
	in.Reviewed = true // ignored
	got, err := svc.SubmitCreator(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitCreator: %v", err)
	}
	if got.ID == uuid.Nil || got.Type != models.SubmissionCreator || got.Reviewed || !got.SubmittedOn.Equal(at) {
		t.Errorf("meta = %+v", got.SubmissionMeta)
	}
	if got.PriceRange != models.DefaultPriceRange {
		t.Errorf("PriceRange = %q, want default", got.PriceRange)
	}
	if repos.Creators.Len() != 1 || len(rec.got) != 0 {
		t.Errorf("stored=%d notifications=%d", repos.Creators.Len(), len(rec.got))
	}
}

func TestService_SubmitValidation(t *testing.T) {
	svc, repos, rec := newService(t)
	ctx := context.Background()

	_, err := svc.SubmitCreator(ctx, models.CreatorSubmission{Name: "No Email"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "Name and email are required" {
		t.Errorf("SubmitCreator err = %v", err)
	}

	_, err = svc.SubmitAgency(ctx, models.AgencySubmission{ContactEmail: "x@y.z"})
	if !errors.As(err, &verr) || verr.Message != "Agency name and contact email are required" {
		t.Errorf("SubmitAgency err = %v", err)
	}

	if repos.Creators.Len()+repos.Agencies.Len() != 0 {
		t.Error("invalid submissions were stored")
	}
	if len(rec.got) != 2 || rec.got[0].Severity != notify.SeverityDestructive {
		t.Errorf("notifications = %+v", rec.got)
	}
}

func TestService_ApproveCreator(t *testing.T) {
	svc, repos, rec := newService(t)
	ctx := context.Background()
	sub, _ := svc.SubmitCreator(ctx, creator())

	inf, err := svc.Approve(ctx, models.SubmissionCreator, sub.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if inf.Niche != models.NicheFashion || inf.Status != models.StatusNotReviewed {
		t.Errorf("influencer = %+v", inf)
	}

	stored, _ := repos.Creators.Get(sub.ID)
	if !stored.Reviewed {
		t.Error("reviewed flag not persisted")
	}

	want := []notify.Notification{{Title: "Approved", Description: "Asha Rao added to influencer database", Severity: notify.SeverityDefault}}
	if diff := cmp.Diff(want, rec.got, cmpopts.IgnoreFields(notify.Notification{}, "At")); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.Approve(ctx, models.SubmissionCreator, sub.ID); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("second Approve err = %v, want ErrAlreadyReviewed", err)
	}
	if repos.Influencers.Len() != 1 {
		t.Errorf("roster size = %d, want 1", repos.Influencers.Len())
	}
}

func TestService_ApproveAgencyAndReject(t *testing.T) {
	svc, repos, rec := newService(t)
	ctx := context.Background()
	agency, _ := svc.SubmitAgency(ctx, models.AgencySubmission{AgencyName: "Bright Talent", ContactEmail: "hi@bright.io"})
	c, _ := svc.SubmitCreator(ctx, creator())

	inf, err := svc.Approve(ctx, models.SubmissionAgency, agency.ID)
	if err != nil || inf != nil {
		t.Fatalf("Approve(agency) = (%v, %v)", inf, err)
	}
	if err := svc.Reject(ctx, models.SubmissionCreator, c.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if err := svc.Reject(ctx, models.SubmissionCreator, c.ID); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("second Reject err = %v, want ErrAlreadyReviewed", err)
	}

	if repos.Influencers.Len() != 0 {
		t.Error("roster changed")
	}
	got := []string{rec.got[0].Description, rec.got[1].Description}
	want := []string{"Bright Talent agency application approved", "Asha Rao's submission was rejected"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestService_UnknownAndMissing(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Approve(ctx, "brand", uuid.New()); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type err = %v", err)
	}
	if err := svc.Reject(ctx, models.SubmissionAgency, uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing id err = %v", err)
	}
}

func TestService_InboxAndDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Hour) }

	c1, _ := svc.SubmitCreator(ctx, creator())
	a1, _ := svc.SubmitAgency(ctx, models.AgencySubmission{AgencyName: "First", ContactEmail: "a@a.a"})
	c2, _ := svc.SubmitCreator(ctx, creator())
	svc.Reject(ctx, models.SubmissionCreator, c1.ID)

	ids := func(subs []models.Submission) []uuid.UUID {
		out := make([]uuid.UUID, len(subs))
		for i, s := range subs {
			out[i] = s.RecordID()
		}
		return out
	}

	all := svc.Inbox("")
	if diff := cmp.Diff([]uuid.UUID{c2.ID, a1.ID, c1.ID}, ids(all)); diff != "" {
		t.Errorf("Inbox order mismatch (-want +got):\n%s", diff)
	}
	if got := ids(svc.Inbox(models.SubmissionAgency)); len(got) != 1 || got[0] != a1.ID {
		t.Errorf("agency inbox = %v", got)
	}

	pending, reviewed := Split(all)
	if len(pending) != 2 || len(reviewed) != 1 || reviewed[0].RecordID() != c1.ID {
		t.Errorf("Split = %v / %v", ids(pending), ids(reviewed))
	}

	ok, err := svc.Delete(ctx, models.SubmissionAgency, a1.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v)", ok, err)
	}
	if len(svc.Inbox("")) != 2 {
		t.Error("deleted submission still in inbox")
	}
}

func TestService_SubmitCreatorUnknownNiche(t *testing.T) {
	svc, repos, _ := newService(t)

	in := creator()
	in.Niches = []models.Niche{"Cooking"}
	_, err := svc.SubmitCreator(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "Unknown niche" {
		t.Fatalf("SubmitCreator err = %v", err)
	}
	if repos.Creators.Len() != 0 {
		t.Error("submission with unknown niche was stored")
	}
}

// slowStore delays every write and can be told to fail writes to one key.
type slowStore struct {
	*store.Memory
	delay   time.Duration
	failKey atomic.Value
}

func (s *slowStore) Set(ctx context.Context, key string, value []byte) error {
	time.Sleep(s.delay)
	if k, _ := s.failKey.Load().(string); k == key {
		return errors.New("disk full")
	}
	return s.Memory.Set(ctx, key, value)
}

func newSlowService(t *testing.T, delay time.Duration) (*Service, *repository.Set, *slowStore) {
	t.Helper()
	st := &slowStore{Memory: store.NewMemory(), delay: delay}
	repos, err := repository.Open(context.Background(), st, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewService(repos, notify.New(&feedRecorder{})), repos, st
}

func TestService_ConcurrentApproveAddsOnce(t *testing.T) {
	svc, repos, _ := newSlowService(t, 5*time.Millisecond)
	ctx := context.Background()
	sub, err := svc.SubmitCreator(ctx, creator())
	if err != nil {
		t.Fatalf("SubmitCreator: %v", err)
	}

	var (
		wg       sync.WaitGroup
		approved atomic.Int32
		refused  atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(ctx, models.SubmissionCreator, sub.ID)
			switch {
			case err == nil:
				approved.Add(1)
			case errors.Is(err, ErrAlreadyReviewed):
				refused.Add(1)
			default:
				t.Errorf("Approve: %v", err)
			}
		}()
	}
	wg.Wait()

	if approved.Load() != 1 || refused.Load() != 9 {
		t.Errorf("approved=%d refused=%d, want 1 and 9", approved.Load(), refused.Load())
	}
	if n := repos.Influencers.Len(); n != 1 {
		t.Errorf("roster size = %d, want 1", n)
	}
}

func TestService_ApproveRollsBackWhenReviewNotSaved(t *testing.T) {
	svc, repos, st := newSlowService(t, 0)
	ctx := context.Background()
	sub, err := svc.SubmitCreator(ctx, creator())
	if err != nil {
		t.Fatalf("SubmitCreator: %v", err)
	}

	st.failKey.Store(store.KeyCreatorSubmissions)
	if _, err := svc.Approve(ctx, models.SubmissionCreator, sub.ID); err == nil {
		t.Fatal("Approve succeeded with a failing store")
	}
	if n := repos.Influencers.Len(); n != 0 {
		t.Errorf("roster size = %d after failed approval, want 0", n)
	}

	st.failKey.Store("")
	if _, err := svc.Approve(ctx, models.SubmissionCreator, sub.ID); err != nil {
		t.Fatalf("retry Approve: %v", err)
	}
	if n := repos.Influencers.Len(); n != 1 {
		t.Errorf("roster size = %d after retry, want 1", n)
	}
}
