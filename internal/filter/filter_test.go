package filter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"amplify/internal/models"
	"amplify/internal/repository"
	"amplify/internal/store"
)

func roster() []models.Influencer {
	return []models.Influencer{
		{Name: "Priya Tech", Platform: models.PlatformYouTube, Niche: models.NicheTech, Followers: 250_000, EngagementRate: 4.2, Country: "India", Language: "Hindi", ContactEmail: "priya@example.com", Status: models.StatusShortlisted},
		{Name: "Lena Looks", Platform: models.PlatformInstagram, Niche: models.NicheFashion, Followers: 80_000, EngagementRate: 6.5, Country: "Germany", Language: "German", ContactEmail: "lena@studio.de", Status: models.StatusPlanned},
		{Name: "Chef Marco", Platform: models.PlatformYouTube, Niche: models.NicheFood, Followers: 1_200_000, EngagementRate: 2.1, Country: "Italy", Language: "Italian", ContactEmail: "marco@cucina.it", Status: models.StatusConfirmed},
		{Name: "Zed Gamer", Platform: models.PlatformYouTube, Niche: models.NicheGaming, Followers: 10_000_000, EngagementRate: 15, Country: "United States", Language: "English", ContactEmail: "zed@play.gg", Status: models.StatusNotReviewed},
		{Name: "Ana Fit", Platform: models.PlatformInstagram, Niche: models.NicheFitness, Followers: 0, EngagementRate: 0, Country: "Brazil", Language: "Portuguese", ContactEmail: "ana@fit.br", Status: models.StatusRejected},
	}
}

func names(records []models.Influencer) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].Name
	}
	return out
}

func TestApply(t *testing.T) {
	withDefaults := func(fn func(*models.Filters)) models.Filters {
		f := models.DefaultFilters()
		fn(&f)
		return f
	}

	tests := []struct {
		name    string
		filters models.Filters
		want    []string
	}{
		{
			name:    "defaults match everything",
			filters: models.DefaultFilters(),
			want:    []string{"Priya Tech", "Lena Looks", "Chef Marco", "Zed Gamer", "Ana Fit"},
		},
		{
			name:    "platform set",
			filters: withDefaults(func(f *models.Filters) { f.Platforms = []models.Platform{models.PlatformInstagram} }),
			want:    []string{"Lena Looks", "Ana Fit"},
		},
		{
			name:    "niche set",
			filters: withDefaults(func(f *models.Filters) { f.Niches = []models.Niche{models.NicheTech, models.NicheFood} }),
			want:    []string{"Priya Tech", "Chef Marco"},
		},
		{
			name: "follower range is inclusive",
			filters: withDefaults(func(f *models.Filters) {
				f.FollowersMin = 80_000
				f.FollowersMax = 1_200_000
			}),
			want: []string{"Priya Tech", "Lena Looks", "Chef Marco"},
		},
		{
			name: "engagement range is inclusive",
			filters: withDefaults(func(f *models.Filters) {
				f.EngagementMin = 4.2
				f.EngagementMax = 6.5
			}),
			want: []string{"Priya Tech", "Lena Looks"},
		},
		{
			name:    "country",
			filters: withDefaults(func(f *models.Filters) { f.Country = "India" }),
			want:    []string{"Priya Tech"},
		},
		{
			name:    "language",
			filters: withDefaults(func(f *models.Filters) { f.Language = "German" }),
			want:    []string{"Lena Looks"},
		},
		{
			name:    "status",
			filters: withDefaults(func(f *models.Filters) { f.Status = string(models.StatusConfirmed) }),
			want:    []string{"Chef Marco"},
		},
		{
			name:    "search matches name case-insensitively",
			filters: withDefaults(func(f *models.Filters) { f.Search = "CHEF" }),
			want:    []string{"Chef Marco"},
		},
		{
			name:    "search matches niche",
			filters: withDefaults(func(f *models.Filters) { f.Search = "fitness" }),
			want:    []string{"Ana Fit"},
		},
		{
			name:    "search matches email",
			filters: withDefaults(func(f *models.Filters) { f.Search = "studio.de" }),
			want:    []string{"Lena Looks"},
		},
		{
			name: "clauses combine with AND",
			filters: withDefaults(func(f *models.Filters) {
				f.Platforms = []models.Platform{models.PlatformYouTube}
				f.FollowersMax = 1_000_000
			}),
			want: []string{"Priya Tech"},
		},
		{
			name:    "nothing matches",
			filters: withDefaults(func(f *models.Filters) { f.Search = "nobody" }),
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(roster(), tt.filters))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_EmptySetsDoNotExclude(t *testing.T) {
	f := models.DefaultFilters()
	f.Platforms = []models.Platform{}
	f.Niches = nil
	if got := Apply(roster(), f); len(got) != len(roster()) {
		t.Errorf("empty platform/niche sets returned %d records, want %d", len(got), len(roster()))
	}
}

// Each record is in the result exactly when it passes every clause on its own.
func TestApply_EqualsConjunctionOfClauses(t *testing.T) {
	criteria := []models.Filters{}
	for _, platforms := range [][]models.Platform{nil, {models.PlatformYouTube}} {
		for _, country := range []string{"", "India", "Brazil"} {
			for _, search := range []string{"", "a", "gaming"} {
				f := models.DefaultFilters()
				f.Platforms = platforms
				f.Country = country
				f.Search = search
				f.FollowersMin = 50_000
				criteria = append(criteria, f)
			}
		}
	}

	for _, f := range criteria {
		result := map[string]bool{}
		for _, inf := range Apply(roster(), f) {
			result[inf.Name] = true
		}

		for _, inf := range roster() {
			want := true
			for _, clause := range singleClauses(f) {
				if !Matches(&inf, clause) {
					want = false
				}
			}
			if result[inf.Name] != want {
				t.Errorf("filters %+v: %s in result = %v, clauses say %v", f, inf.Name, result[inf.Name], want)
			}
		}
	}
}

// singleClauses splits f into criteria that each constrain one dimension.
func singleClauses(f models.Filters) []models.Filters {
	base := func() models.Filters {
		d := models.DefaultFilters()
		d.FollowersMin, d.FollowersMax = -1<<62, 1<<62
		d.EngagementMin, d.EngagementMax = -1e18, 1e18
		return d
	}
	var out []models.Filters
	c := base()
	c.Platforms = f.Platforms
	out = append(out, c)
	c = base()
	c.Niches = f.Niches
	out = append(out, c)
	c = base()
	c.FollowersMin, c.FollowersMax = f.FollowersMin, f.FollowersMax
	out = append(out, c)
	c = base()
	c.EngagementMin, c.EngagementMax = f.EngagementMin, f.EngagementMax
	out = append(out, c)
	c = base()
	c.Country = f.Country
	out = append(out, c)
	c = base()
	c.Language = f.Language
	out = append(out, c)
	c = base()
	c.Status = f.Status
	out = append(out, c)
	c = base()
	c.Search = f.Search
	out = append(out, c)
	return out
}

func TestDerivedViews(t *testing.T) {
	if diff := cmp.Diff([]string{"Priya Tech"}, names(Shortlisted(roster()))); diff != "" {
		t.Errorf("Shortlisted() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Lena Looks", "Chef Marco"}, names(CampaignReady(roster()))); diff != "" {
		t.Errorf("CampaignReady() mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivedViews_FollowRepositoryMutations(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.Load[models.Influencer](ctx, store.NewMemory(), store.KeyInfluencers, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	added, err := repo.AddMany(ctx, roster())
	if err != nil {
		t.Fatalf("AddMany: %v", err)
	}

	// Zed moves onto the shortlist, Lena drops out of campaign-ready
	shortlisted := models.StatusShortlisted
	repo.Update(ctx, added[3].ID, func(inf *models.Influencer) {
		models.InfluencerPatch{Status: &shortlisted}.Apply(inf)
	})
	repo.Delete(ctx, added[1].ID)

	if diff := cmp.Diff([]string{"Priya Tech", "Zed Gamer"}, names(Shortlisted(repo.List()))); diff != "" {
		t.Errorf("Shortlisted after mutation (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Chef Marco"}, names(CampaignReady(repo.List()))); diff != "" {
		t.Errorf("CampaignReady after mutation (-want +got):\n%s", diff)
	}
}

func TestIDs(t *testing.T) {
	ctx := context.Background()
	repo, _ := repository.Load[models.Influencer](ctx, store.NewMemory(), store.KeyInfluencers, nil)
	added, _ := repo.AddMany(ctx, roster()[:2])

	ids := IDs(repo.List())
	if len(ids) != 2 || ids[0] != added[0].ID || ids[1] != added[1].ID {
		t.Errorf("IDs() = %v", ids)
	}
}
