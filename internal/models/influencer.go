package models

import (
	"strings"

	"github.com/google/uuid"
)

// Platform is the social network an influencer publishes on.
type Platform string

// Platform constants
const (
	PlatformYouTube   Platform = "YouTube"
	PlatformInstagram Platform = "Instagram"
)

// Platforms lists every platform in display order.
var Platforms = []Platform{PlatformYouTube, PlatformInstagram}

// Niche is the fixed content category of an influencer or submission.
type Niche string

// Niche constants
const (
	NicheFashion   Niche = "Fashion"
	NicheTech      Niche = "Tech"
	NicheFitness   Niche = "Fitness"
	NicheFood      Niche = "Food"
	NicheGaming    Niche = "Gaming"
	NicheBeauty    Niche = "Beauty"
	NicheEducation Niche = "Education"
	NicheTravel    Niche = "Travel"
	NicheLifestyle Niche = "Lifestyle"
	NicheMusic     Niche = "Music"
)

// Niches lists every niche in display order.
var Niches = []Niche{
	NicheFashion, NicheTech, NicheFitness, NicheFood, NicheGaming,
	NicheBeauty, NicheEducation, NicheTravel, NicheLifestyle, NicheMusic,
}

// Status is a flat workflow label. Any status may be assigned from any other.
type Status string

// Status constants
const (
	StatusNotReviewed Status = "Not Reviewed"
	StatusShortlisted Status = "Shortlisted"
	StatusPlanned     Status = "Planned"
	StatusContacted   Status = "Contacted"
	StatusConfirmed   Status = "Confirmed"
	StatusRejected    Status = "Rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusNotReviewed, StatusShortlisted, StatusPlanned,
	StatusContacted, StatusConfirmed, StatusRejected,
}

// Fallbacks used when a value is missing or unrecognised.
const (
	DefaultPlatform = PlatformYouTube
	DefaultNiche    = NicheTech
	DefaultCountry  = "India"
	DefaultLanguage = "English"
	DefaultStatus   = StatusNotReviewed
)

// Countries offered by the intake and filter surfaces.
var Countries = []string{
	"United States", "United Kingdom", "India", "Brazil", "Germany", "France", "Japan", "South Korea",
	"Australia", "Canada", "Mexico", "Spain", "Italy", "Indonesia", "Nigeria",
}

// Languages offered by the intake and filter surfaces.
var Languages = []string{
	"English", "Spanish", "Portuguese", "Hindi", "French", "German", "Japanese", "Korean", "Italian", "Indonesian",
}

// Influencer is a roster entry.
type Influencer struct {
	ID             uuid.UUID `json:"id" yaml:"-"`
	Name           string    `json:"name" yaml:"name"`
	Platform       Platform  `json:"platform" yaml:"platform"`
	Niche          Niche     `json:"niche" yaml:"niche"`
	Followers      int64     `json:"followers" yaml:"followers"`
	AvgViews       int64     `json:"avg_views" yaml:"avg_views"` // avg views for YouTube, avg reach for Instagram
	EngagementRate float64   `json:"engagement_rate" yaml:"engagement_rate"`
	Country        string    `json:"country" yaml:"country"`
	Language       string    `json:"language" yaml:"language"`
	ContactEmail   string    `json:"contact_email" yaml:"contact_email"`
	Notes          string    `json:"notes" yaml:"notes"`
	Bio            string    `json:"bio" yaml:"bio"`
	ProfilePhoto   string    `json:"profile_photo" yaml:"profile_photo"`
	PlatformURL    string    `json:"platform_url" yaml:"platform_url"`
	Status         Status    `json:"status" yaml:"status"`
	RecentContent  []string  `json:"recent_content" yaml:"recent_content"`
}

// RecordID returns the influencer id.
func (i *Influencer) RecordID() uuid.UUID { return i.ID }

// SetRecordID assigns the influencer id.
func (i *Influencer) SetRecordID(id uuid.UUID) { i.ID = id }

// IsShortlisted reports whether the influencer belongs to the shortlist view.
func (i *Influencer) IsShortlisted() bool {
	return i.Status == StatusShortlisted
}

// IsCampaignReady reports whether the influencer belongs to the campaign-ready view.
func (i *Influencer) IsCampaignReady() bool {
	return i.Status == StatusPlanned || i.Status == StatusConfirmed
}

// InfluencerPatch carries a partial update. Nil fields are left untouched.
type InfluencerPatch struct {
	Name           *string   `json:"name"`
	Platform       *Platform `json:"platform"`
	Niche          *Niche    `json:"niche"`
	Followers      *int64    `json:"followers"`
	AvgViews       *int64    `json:"avg_views"`
	EngagementRate *float64  `json:"engagement_rate"`
	Country        *string   `json:"country"`
	Language       *string   `json:"language"`
	ContactEmail   *string   `json:"contact_email"`
	Notes          *string   `json:"notes"`
	Bio            *string   `json:"bio"`
	ProfilePhoto   *string   `json:"profile_photo"`
	PlatformURL    *string   `json:"platform_url"`
	Status         *Status   `json:"status"`
	RecentContent  *[]string `json:"recent_content"`
}

// Apply overwrites the fields of inf that are set on the patch.
func (p InfluencerPatch) Apply(inf *Influencer) {
	if p.Name != nil {
		inf.Name = *p.Name
	}
	if p.Platform != nil {
		inf.Platform = *p.Platform
	}
	if p.Niche != nil {
		inf.Niche = *p.Niche
	}
	if p.Followers != nil {
		inf.Followers = *p.Followers
	}
	if p.AvgViews != nil {
		inf.AvgViews = *p.AvgViews
	}
	if p.EngagementRate != nil {
		inf.EngagementRate = *p.EngagementRate
	}
	if p.Country != nil {
		inf.Country = *p.Country
	}
	if p.Language != nil {
		inf.Language = *p.Language
	}
	if p.ContactEmail != nil {
		inf.ContactEmail = *p.ContactEmail
	}
	if p.Notes != nil {
		inf.Notes = *p.Notes
	}
	if p.Bio != nil {
		inf.Bio = *p.Bio
	}
	if p.ProfilePhoto != nil {
		inf.ProfilePhoto = *p.ProfilePhoto
	}
	if p.PlatformURL != nil {
		inf.PlatformURL = *p.PlatformURL
	}
	if p.Status != nil {
		inf.Status = *p.Status
	}
	if p.RecentContent != nil {
		inf.RecentContent = append([]string(nil), (*p.RecentContent)...)
	}
}

// ParsePlatform maps s onto a known platform. The second result is true when
// s was empty or unrecognised and DefaultPlatform was returned instead.
func ParsePlatform(s string) (Platform, bool) {
	for _, p := range Platforms {
		if strings.EqualFold(s, string(p)) {
			return p, false
		}
	}
	return DefaultPlatform, true
}

// ParseNiche maps s onto a known niche, falling back to DefaultNiche.
func ParseNiche(s string) (Niche, bool) {
	for _, n := range Niches {
		if strings.EqualFold(s, string(n)) {
			return n, false
		}
	}
	return DefaultNiche, true
}

// ParseStatus maps s onto a known status, falling back to DefaultStatus.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, false
		}
	}
	return DefaultStatus, true
}

// IsValidStatus reports whether s is one of the six statuses, exactly.
func IsValidStatus(s Status) bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with i.
func (i *Influencer) Clone() Influencer {
	out := *i
	out.RecentContent = append([]string(nil), i.RecentContent...)
	return out
}
