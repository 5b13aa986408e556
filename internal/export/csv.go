// Package export converts rosters and campaigns to and from comma-separated
// text.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"amplify/internal/models"
	"amplify/internal/validation"
)

// ErrNoRows is returned when an import holds a header but no data rows.
var ErrNoRows = errors.New(validation.MsgNoRows)

// Column headers, in file order.
var (
	InfluencerHeader = []string{
		"Name", "Platform", "Niche", "Followers", "Avg Views/Reach", "Engagement Rate",
		"Country", "Language", "Email", "Status", "Notes",
	}
	CampaignHeader = []string{
		"Influencer", "Platform", "Followers", "Deliverable", "Cost (₹)",
		"Expected Views", "Expected Engagement", "Notes",
	}
)

// UnknownInfluencer labels campaign rows whose influencer no longer exists.
const UnknownInfluencer = "Unknown"

// Influencers renders records as CSV. Notes are always quoted; other fields
// are quoted only when they contain a comma, quote or line break.
func Influencers(records []models.Influencer) string {
	var b strings.Builder
	writeRow(&b, InfluencerHeader, -1)
	for i := range records {
		r := &records[i]
		b.WriteByte('\n')
		writeRow(&b, []string{
			r.Name,
			string(r.Platform),
			string(r.Niche),
			strconv.FormatInt(r.Followers, 10),
			strconv.FormatInt(r.AvgViews, 10),
			formatFloat(r.EngagementRate) + "%",
			r.Country,
			r.Language,
			r.ContactEmail,
			string(r.Status),
			r.Notes,
		}, len(InfluencerHeader)-1)
	}
	return b.String()
}

// Campaign renders the assignments of c as CSV, resolving influencers
// through lookup. Unresolved rows keep their stored values and show the
// influencer as Unknown.
func Campaign(c *models.Campaign, lookup func(uuid.UUID) (*models.Influencer, bool)) string {
	var b strings.Builder
	writeRow(&b, CampaignHeader, -1)
	for _, a := range c.Influencers {
		name, platform, followers := UnknownInfluencer, "", int64(0)
		if inf, ok := lookup(a.InfluencerID); ok {
			name, platform, followers = inf.Name, string(inf.Platform), inf.Followers
		}
		b.WriteByte('\n')
		writeRow(&b, []string{
			name,
			platform,
			strconv.FormatInt(followers, 10),
			string(a.Deliverable),
			formatFloat(a.ProposedCost),
			formatFloat(a.ExpectedViews),
			formatFloat(a.ExpectedEngagement),
			a.Notes,
		}, len(CampaignHeader)-1)
	}
	return b.String()
}

// writeRow writes fields separated by commas. The field at forceQuote is
// always quoted.
func writeRow(b *strings.Builder, fields []string, forceQuote int) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if i == forceQuote || strings.ContainsAny(f, ",\"\r\n") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
			continue
		}
		b.WriteString(f)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseInfluencers reads roster rows from CSV text. The first non-blank line
// is the header and is skipped. Missing or unparsable numbers become 0 and
// missing or unknown enumerated values fall back to their defaults. It
// returns ErrNoRows when no data rows remain.
func ParseInfluencers(r io.Reader) ([]models.Influencer, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	out := make([]models.Influencer, 0, len(rows))
	for _, cols := range rows {
		platform, _ := models.ParsePlatform(col(cols, 1))
		niche, _ := models.ParseNiche(col(cols, 2))
		status, _ := models.ParseStatus(col(cols, 9))
		out = append(out, models.Influencer{
			Name:           orDefault(col(cols, 0), UnknownInfluencer),
			Platform:       platform,
			Niche:          niche,
			Followers:      ParseInt(col(cols, 3)),
			AvgViews:       ParseInt(col(cols, 4)),
			EngagementRate: ParseFloat(col(cols, 5)),
			Country:        orDefault(col(cols, 6), models.DefaultCountry),
			Language:       orDefault(col(cols, 7), models.DefaultLanguage),
			ContactEmail:   col(cols, 8),
			Status:         status,
			Notes:          col(cols, 10),
			RecentContent:  []string{},
		})
	}
	return out, nil
}

// CampaignRows is the result of parsing a campaign export.
type CampaignRows struct {
	Assignments []models.CampaignInfluencer
	// Unresolved counts rows whose influencer name matched no roster entry.
	Unresolved int
}

// ParseCampaign reads assignment rows from a campaign export, resolving the
// Influencer column to roster ids by case-insensitive name. Rows that do not
// resolve are skipped and counted.
func ParseCampaign(r io.Reader, roster []models.Influencer) (CampaignRows, error) {
	rows, err := readRows(r)
	if err != nil {
		return CampaignRows{}, err
	}

	byName := make(map[string]uuid.UUID, len(roster))
	for i := len(roster) - 1; i >= 0; i-- {
		// earlier entries win on duplicate names
		byName[strings.ToLower(roster[i].Name)] = roster[i].ID
	}

	var out CampaignRows
	for _, cols := range rows {
		id, ok := byName[strings.ToLower(col(cols, 0))]
		if !ok {
			out.Unresolved++
			continue
		}
		deliverable, _ := models.ParseDeliverable(col(cols, 3))
		out.Assignments = append(out.Assignments, models.CampaignInfluencer{
			InfluencerID:       id,
			Deliverable:        deliverable,
			ProposedCost:       ParseFloat(col(cols, 4)),
			ExpectedViews:      ParseFloat(col(cols, 5)),
			ExpectedEngagement: ParseFloat(col(cols, 6)),
			Notes:              col(cols, 7),
		})
	}
	return out, nil
}

// readRows returns the non-blank data rows after the header.
func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	if len(rows) < 2 {
		return nil, ErrNoRows
	}
	return rows[1:], nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func col(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ParseInt reads the leading integer of s, ignoring anything after it, and
// returns 0 when s does not start with a number.
func ParseInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat reads the leading decimal number of s, so "4.5%" yields 4.5,
// and returns 0 when s does not start with a number.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	num := strings.TrimSuffix(s[:end], ".")
	if len(num) <= start || num[start:] == "." {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return v
}
