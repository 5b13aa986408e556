package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"amplify/internal/models"
	"amplify/internal/store"
)

// failingStore accepts reads and rejects every write.
type failingStore struct{ *store.Memory }

func (f *failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func seedRoster() []models.Influencer {
	return []models.Influencer{
		{ID: uuid.New(), Name: "Seed One", Status: models.StatusNotReviewed},
		{ID: uuid.New(), Name: "Seed Two", Status: models.StatusShortlisted},
	}
}

func loadInfluencers(t *testing.T, s store.Store, seed []models.Influencer) *Influencers {
	t.Helper()
	r, err := Load[models.Influencer](context.Background(), s, store.KeyInfluencers, seed)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

func storedInfluencers(t *testing.T, s store.Store) []models.Influencer {
	t.Helper()
	raw, err := s.Get(context.Background(), store.KeyInfluencers)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var out []models.Influencer
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("stored payload is not a collection: %v", err)
	}
	return out
}

func TestLoad_EmptyStoreUsesSeed(t *testing.T) {
	s := store.NewMemory()
	r := loadInfluencers(t, s, seedRoster())

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if raw, _ := s.Get(context.Background(), store.KeyInfluencers); raw != nil {
		t.Errorf("seed should not be persisted before the first mutation")
	}
}

func TestLoad_CorruptStoreUsesSeed(t *testing.T) {
	s := store.NewMemory()
	s.Set(context.Background(), store.KeyInfluencers, []byte(`{"broken":`))

	r := loadInfluencers(t, s, seedRoster())
	if got := r.List(); len(got) != 2 || got[0].Name != "Seed One" {
		t.Errorf("List() = %+v, want seed roster", got)
	}
}

func TestLoad_StoredCollectionWins(t *testing.T) {
	s := store.NewMemory()
	stored := []models.Influencer{{ID: uuid.New(), Name: "Persisted"}}
	data, _ := json.Marshal(stored)
	s.Set(context.Background(), store.KeyInfluencers, data)

	r := loadInfluencers(t, s, seedRoster())
	got := r.List()
	if len(got) != 1 || got[0].Name != "Persisted" {
		t.Errorf("List() = %+v, want persisted collection", got)
	}
}

func TestLoad_OtherCollectionsStartEmpty(t *testing.T) {
	set, err := Open(context.Background(), store.NewMemory(), seedRoster())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if set.Influencers.Len() != 2 {
		t.Errorf("Influencers.Len() = %d, want 2", set.Influencers.Len())
	}
	if set.Campaigns.Len() != 0 || set.Creators.Len() != 0 || set.Agencies.Len() != 0 {
		t.Errorf("campaigns/submissions should start empty")
	}
}

func TestAdd_PrependsAndPersists(t *testing.T) {
	s := store.NewMemory()
	r := loadInfluencers(t, s, seedRoster())

	added, err := r.Add(context.Background(), models.Influencer{Name: "Fresh"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == uuid.Nil {
		t.Fatal("Add did not assign an id")
	}

	list := r.List()
	if list[0].ID != added.ID {
		t.Errorf("new record not first: %+v", list[0])
	}

	persisted := storedInfluencers(t, s)
	if len(persisted) != 3 || persisted[0].Name != "Fresh" {
		t.Errorf("persisted = %+v, want full collection with Fresh first", persisted)
	}
}

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	r := loadInfluencers(t, store.NewMemory(), nil)
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 50; i++ {
		rec, err := r.Add(context.Background(), models.Influencer{Name: "x"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %s", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestAddMany_KeepsBatchOrder(t *testing.T) {
	r := loadInfluencers(t, store.NewMemory(), seedRoster())
	batch := []models.Influencer{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	added, err := r.AddMany(context.Background(), batch)
	if err != nil {
		t.Fatalf("AddMany: %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("len(added) = %d, want 3", len(added))
	}

	list := r.List()
	want := []string{"A", "B", "C", "Seed One", "Seed Two"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
	if batch[0].ID != uuid.Nil {
		t.Errorf("AddMany mutated the caller's slice")
	}
}

func TestUpdate(t *testing.T) {
	s := store.NewMemory()
	seed := seedRoster()
	r := loadInfluencers(t, s, seed)
	ctx := context.Background()

	status := models.StatusPlanned
	ok, err := r.Update(ctx, seed[0].ID, func(inf *models.Influencer) {
		models.InfluencerPatch{Status: &status}.Apply(inf)
		inf.ID = uuid.New() // ignored
	})
	if err != nil || !ok {
		t.Fatalf("Update = (%v, %v), want (true, nil)", ok, err)
	}

	got, err := r.Get(seed[0].ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Status != models.StatusPlanned || got.Name != "Seed One" {
		t.Errorf("got %+v, want status Planned with name kept", got)
	}
	if persisted := storedInfluencers(t, s); persisted[0].Status != models.StatusPlanned {
		t.Errorf("update not persisted: %+v", persisted[0])
	}
}

func TestUpdate_MissingIsNoop(t *testing.T) {
	s := store.NewMemory()
	r := loadInfluencers(t, s, seedRoster())

	called := false
	ok, err := r.Update(context.Background(), uuid.New(), func(*models.Influencer) { called = true })
	if err != nil || ok {
		t.Errorf("Update(missing) = (%v, %v), want (false, nil)", ok, err)
	}
	if called {
		t.Error("mutator called for missing id")
	}
	if raw, _ := s.Get(context.Background(), store.KeyInfluencers); raw != nil {
		t.Error("no-op update should not persist")
	}
}

func TestDelete(t *testing.T) {
	seed := seedRoster()
	r := loadInfluencers(t, store.NewMemory(), seed)
	ctx := context.Background()

	ok, err := r.Delete(ctx, seed[1].ID)
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v)", ok, err)
	}
	if _, err := r.Get(seed[1].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}

	ok, err = r.Delete(ctx, seed[1].ID)
	if err != nil || ok {
		t.Errorf("second Delete = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestMutation_StoreFailureLeavesStateUnchanged(t *testing.T) {
	seed := seedRoster()
	r := loadInfluencers(t, &failingStore{Memory: store.NewMemory()}, seed)
	ctx := context.Background()

	if _, err := r.Add(ctx, models.Influencer{Name: "Lost"}); err == nil {
		t.Error("Add should surface store failure")
	}
	if _, err := r.Delete(ctx, seed[0].ID); err == nil {
		t.Error("Delete should surface store failure")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d after failed writes, want 2", r.Len())
	}
}

func TestList_ReturnsIndependentCopies(t *testing.T) {
	r := loadInfluencers(t, store.NewMemory(), nil)
	rec, _ := r.Add(context.Background(), models.Influencer{Name: "Copy", RecentContent: []string{"a"}})

	list := r.List()
	list[0].Name = "mutated"
	list[0].RecentContent[0] = "mutated"

	got, _ := r.Get(rec.ID)
	if got.Name != "Copy" || got.RecentContent[0] != "a" {
		t.Errorf("List leaked internal state: %+v", got)
	}
}
