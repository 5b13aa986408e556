package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionType tags the variant of a submission.
type SubmissionType string

// Submission type constants
const (
	SubmissionCreator SubmissionType = "creator"
	SubmissionAgency  SubmissionType = "agency"
)

// ParseSubmissionType validates a submission type tag.
func ParseSubmissionType(s string) (SubmissionType, bool) {
	switch SubmissionType(s) {
	case SubmissionCreator, SubmissionAgency:
		return SubmissionType(s), true
	}
	return "", false
}

// PrimaryPlatform is the platform a creator or agency declares at intake.
type PrimaryPlatform string

// PrimaryPlatform constants
const (
	PrimaryYouTube   PrimaryPlatform = "YouTube"
	PrimaryInstagram PrimaryPlatform = "Instagram"
	PrimaryBoth      PrimaryPlatform = "Both"
)

// PrimaryPlatforms lists the intake platform choices.
var PrimaryPlatforms = []PrimaryPlatform{PrimaryYouTube, PrimaryInstagram, PrimaryBoth}

// Platform resolves the declared platform to a roster platform. "Both"
// resolves to YouTube.
func (p PrimaryPlatform) Platform() Platform {
	if p == PrimaryInstagram {
		return PlatformInstagram
	}
	return PlatformYouTube
}

// PriceRange is one of the fixed creator price bands.
type PriceRange string

// PriceRanges lists the six price bands, cheapest first.
var PriceRanges = []PriceRange{
	"Under ₹5,000",
	"₹5,000 – ₹15,000",
	"₹15,000 – ₹50,000",
	"₹50,000 – ₹1,00,000",
	"₹1,00,000 – ₹3,00,000",
	"₹3,00,000+",
}

// DefaultPriceRange is preselected on the intake form.
const DefaultPriceRange PriceRange = "₹5,000 – ₹15,000"

// CollaborationFormat is a kind of collaboration a creator is open to.
type CollaborationFormat string

// CollaborationFormats lists the collaboration formats offered at intake.
var CollaborationFormats = []CollaborationFormat{
	"Reels", "Stories", "Static Posts", "YouTube Videos", "YouTube Shorts",
	"Brand Integrations", "Live Sessions", "Event Appearances",
}

// CreatorCountOptions lists the agency roster size buckets.
var CreatorCountOptions = []string{"1–10", "11–50", "51–200", "200+"}

// Submission is implemented by *CreatorSubmission and *AgencySubmission only.
type Submission interface {
	RecordID() uuid.UUID
	Kind() SubmissionType
	SubmittedAt() time.Time
	IsReviewed() bool
	MarkReviewed()
	DisplayName() string
	Email() string
	isSubmission()
}

// SubmissionMeta holds the fields shared by every submission variant.
type SubmissionMeta struct {
	ID          uuid.UUID      `json:"id"`
	Type        SubmissionType `json:"type"`
	SubmittedOn time.Time      `json:"submitted_at"`
	Reviewed    bool           `json:"reviewed"`
}

// RecordID returns the submission id.
func (m *SubmissionMeta) RecordID() uuid.UUID { return m.ID }

// SetRecordID assigns the submission id.
func (m *SubmissionMeta) SetRecordID(id uuid.UUID) { m.ID = id }

// Kind returns the variant tag.
func (m *SubmissionMeta) Kind() SubmissionType { return m.Type }

// SubmittedAt returns the intake timestamp.
func (m *SubmissionMeta) SubmittedAt() time.Time { return m.SubmittedOn }

// IsReviewed reports whether the submission was approved or rejected.
func (m *SubmissionMeta) IsReviewed() bool { return m.Reviewed }

// MarkReviewed flips the reviewed flag. It never flips back.
func (m *SubmissionMeta) MarkReviewed() { m.Reviewed = true }

func (m *SubmissionMeta) isSubmission() {}

// CreatorSubmission is an application from an individual creator.
type CreatorSubmission struct {
	SubmissionMeta
	Name                 string                `json:"name"`
	PrimaryPlatform      PrimaryPlatform       `json:"primary_platform"`
	YouTubeURL           string                `json:"youtube_url"`
	InstagramURL         string                `json:"instagram_url"`
	Niches               []Niche               `json:"niches"`
	Followers            int64                 `json:"followers"`
	AvgViews             int64                 `json:"avg_views"`
	EngagementRate       float64               `json:"engagement_rate"`
	Country              string                `json:"country"`
	AudienceCountry      string                `json:"audience_country"`
	Language             string                `json:"language"`
	ContactEmail         string                `json:"email"`
	Phone                string                `json:"phone"`
	CollaborationFormats []CollaborationFormat `json:"collaboration_formats"`
	PriceRange           PriceRange            `json:"price_range"`
	Bio                  string                `json:"bio"`
	ConsentContact       bool                  `json:"consent_contact"`
}

// DisplayName returns the creator name.
func (s *CreatorSubmission) DisplayName() string { return s.Name }

// Email returns the creator contact email.
func (s *CreatorSubmission) Email() string { return s.ContactEmail }

// AgencySubmission is an application from a talent agency.
type AgencySubmission struct {
	SubmissionMeta
	AgencyName       string          `json:"agency_name"`
	Website          string          `json:"website"`
	Country          string          `json:"country"`
	PrimaryMarkets   string          `json:"primary_markets"`
	NichesCovered    []Niche         `json:"niches_covered"`
	CreatorCount     string          `json:"creator_count"`
	PlatformsCovered PrimaryPlatform `json:"platforms_covered"`
	ContactPerson    string          `json:"contact_person"`
	ContactEmail     string          `json:"contact_email"`
	Phone            string          `json:"phone"`
	NotableBrands    string          `json:"notable_brands"`
	RosterLink       string          `json:"roster_link"`
	Notes            string          `json:"notes"`
	ConsentContact   bool            `json:"consent_contact"`
}

// DisplayName returns the agency name.
func (s *AgencySubmission) DisplayName() string { return s.AgencyName }

// Email returns the agency contact email.
func (s *AgencySubmission) Email() string { return s.ContactEmail }

// Clone returns a copy that shares no slices with s.
func (s *CreatorSubmission) Clone() CreatorSubmission {
	out := *s
	out.Niches = append([]Niche(nil), s.Niches...)
	out.CollaborationFormats = append([]CollaborationFormat(nil), s.CollaborationFormats...)
	return out
}

// Clone returns a copy that shares no slices with s.
func (s *AgencySubmission) Clone() AgencySubmission {
	out := *s
	out.NichesCovered = append([]Niche(nil), s.NichesCovered...)
	return out
}
