package models

import "testing"

func TestInfluencer_IsShortlisted(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"shortlisted", StatusShortlisted, true},
		{"not reviewed", StatusNotReviewed, false},
		{"planned", StatusPlanned, false},
		{"empty status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inf := &Influencer{Status: tt.status}
			if got := inf.IsShortlisted(); got != tt.expected {
				t.Errorf("IsShortlisted() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInfluencer_IsCampaignReady(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"planned", StatusPlanned, true},
		{"confirmed", StatusConfirmed, true},
		{"contacted", StatusContacted, false},
		{"shortlisted", StatusShortlisted, false},
		{"rejected", StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inf := &Influencer{Status: tt.status}
			if got := inf.IsCampaignReady(); got != tt.expected {
				t.Errorf("IsCampaignReady() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in          string
		want        Platform
		usedDefault bool
	}{
		{"YouTube", PlatformYouTube, false},
		{"Instagram", PlatformInstagram, false},
		{"instagram", PlatformInstagram, false},
		{"", PlatformYouTube, true},
		{"TikTok", PlatformYouTube, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, usedDefault := ParsePlatform(tt.in)
			if got != tt.want || usedDefault != tt.usedDefault {
				t.Errorf("ParsePlatform(%q) = (%q, %v), want (%q, %v)", tt.in, got, usedDefault, tt.want, tt.usedDefault)
			}
		})
	}
}

func TestParseNicheAndStatus(t *testing.T) {
	if n, d := ParseNiche("Gaming"); n != NicheGaming || d {
		t.Errorf("ParseNiche(Gaming) = (%q, %v)", n, d)
	}
	if n, d := ParseNiche("Crypto"); n != NicheTech || !d {
		t.Errorf("ParseNiche(Crypto) = (%q, %v), want fallback Tech", n, d)
	}
	if s, d := ParseStatus("Not Reviewed"); s != StatusNotReviewed || d {
		t.Errorf("ParseStatus(Not Reviewed) = (%q, %v)", s, d)
	}
	if s, d := ParseStatus(""); s != StatusNotReviewed || !d {
		t.Errorf("ParseStatus(\"\") = (%q, %v), want fallback", s, d)
	}
}

func TestInfluencerPatch_Apply(t *testing.T) {
	inf := &Influencer{Name: "Asha", Followers: 10, Status: StatusNotReviewed, Notes: "keep"}
	name := "Asha K"
	status := StatusRejected
	InfluencerPatch{Name: &name, Status: &status}.Apply(inf)

	if inf.Name != "Asha K" {
		t.Errorf("Name = %q, want %q", inf.Name, "Asha K")
	}
	if inf.Status != StatusRejected {
		t.Errorf("Status = %q, want %q", inf.Status, StatusRejected)
	}
	if inf.Followers != 10 || inf.Notes != "keep" {
		t.Errorf("untouched fields changed: %+v", inf)
	}
}

func TestPrimaryPlatform_Platform(t *testing.T) {
	tests := []struct {
		in   PrimaryPlatform
		want Platform
	}{
		{PrimaryYouTube, PlatformYouTube},
		{PrimaryInstagram, PlatformInstagram},
		{PrimaryBoth, PlatformYouTube},
	}
	for _, tt := range tests {
		if got := tt.in.Platform(); got != tt.want {
			t.Errorf("%q.Platform() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnumerationSizes(t *testing.T) {
	if len(Niches) != 10 {
		t.Errorf("len(Niches) = %d, want 10", len(Niches))
	}
	if len(Statuses) != 6 {
		t.Errorf("len(Statuses) = %d, want 6", len(Statuses))
	}
	if len(Deliverables) != 7 {
		t.Errorf("len(Deliverables) = %d, want 7", len(Deliverables))
	}
	if Deliverables[0] != DeliverableReel {
		t.Errorf("Deliverables[0] = %q, want %q", Deliverables[0], DeliverableReel)
	}
	if len(PriceRanges) != 6 {
		t.Errorf("len(PriceRanges) = %d, want 6", len(PriceRanges))
	}
}
