package validation

import (
	"net/url"
	"strings"

	"amplify/internal/models"
)

// Messages returned to the operator when intake or import input is rejected.
const (
	MsgCreatorRequired = "Name and email are required"
	MsgAgencyRequired  = "Agency name and contact email are required"
	MsgNameRequired    = "Name is required"
	MsgNoRows          = "No valid rows found in CSV"
	MsgNoCampaignRows  = "No rows in CSV match an influencer on the roster"
	MsgInvalidNiche    = "Unknown niche"
	MsgInvalidPrice    = "Unknown price range"
	MsgInvalidFormat   = "Unknown collaboration format"
	MsgInvalidPlatform = "Unknown primary platform"
	MsgInvalidCount    = "Unknown creator count"
)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateOptionalURL accepts an empty string and otherwise applies ValidateURL.
func ValidateOptionalURL(urlStr string) (bool, string) {
	if strings.TrimSpace(urlStr) == "" {
		return true, ""
	}
	return ValidateURL(urlStr)
}

// ValidateCreator checks the required fields of a creator application and
// the scheme of its profile links.
func ValidateCreator(s *models.CreatorSubmission) (bool, string) {
	if blank(s.Name) || blank(s.ContactEmail) {
		return false, MsgCreatorRequired
	}
	if valid, msg := validateChoices(s.PrimaryPlatform, s.Niches); !valid {
		return false, msg
	}
	if s.PriceRange != "" && !oneOf(s.PriceRange, models.PriceRanges) {
		return false, MsgInvalidPrice
	}
	for _, f := range s.CollaborationFormats {
		if !oneOf(f, models.CollaborationFormats) {
			return false, MsgInvalidFormat
		}
	}
	return validateURLs(s.YouTubeURL, s.InstagramURL)
}

// ValidateAgency checks the required fields of an agency application and
// the scheme of its links.
func ValidateAgency(s *models.AgencySubmission) (bool, string) {
	if blank(s.AgencyName) || blank(s.ContactEmail) {
		return false, MsgAgencyRequired
	}
	if valid, msg := validateChoices(s.PlatformsCovered, s.NichesCovered); !valid {
		return false, msg
	}
	if s.CreatorCount != "" && !oneOf(s.CreatorCount, models.CreatorCountOptions) {
		return false, MsgInvalidCount
	}
	return validateURLs(s.Website, s.RosterLink)
}

// ValidateInfluencer checks a manually added roster entry.
func ValidateInfluencer(inf *models.Influencer) (bool, string) {
	if blank(inf.Name) {
		return false, MsgNameRequired
	}
	return validateURLs(inf.PlatformURL, inf.ProfilePhoto)
}

// validateChoices checks the fixed-choice fields shared by both application
// forms. An empty platform is allowed and defaulted later.
func validateChoices(platform models.PrimaryPlatform, niches []models.Niche) (bool, string) {
	if platform != "" && !oneOf(platform, models.PrimaryPlatforms) {
		return false, MsgInvalidPlatform
	}
	for _, n := range niches {
		if !oneOf(n, models.Niches) {
			return false, MsgInvalidNiche
		}
	}
	return true, ""
}

func oneOf[T comparable](v T, options []T) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func validateURLs(urls ...string) (bool, string) {
	for _, u := range urls {
		if valid, msg := ValidateOptionalURL(u); !valid {
			return false, msg
		}
	}
	return true, ""
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
