package wardrobe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"wardrobe/internal/api"
	"wardrobe/internal/models"
)

// fakeBackend routes the handful of wardrobe endpoints the store exercises
// and counts the requests it sees.
type fakeBackend struct {
	mux      *http.ServeMux
	requests int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{mux: http.NewServeMux()}
}

func (f *fakeBackend) handle(pattern string, fn http.HandlerFunc) {
	f.mux.HandleFunc(pattern, fn)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&f.requests, 1)
	f.mux.ServeHTTP(w, r)
}

func TestFetchUserOutfitsPopulatesBothCollections(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/outfits/user/u1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"o1","name":"weekend","items":[{"id":"i1","imagePath":"/img/tee.png"}]}]`))
	})
	backend.handle("/clothing/user/u1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"i1","name":"tee","category":"tops","colour":"white"},{"id":"i2","name":"jeans","category":"bottoms","colour":"blue"}]`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	store.FetchUserOutfits(context.Background(), "u1")

	items, outfits := store.Counts()
	if items != 2 || outfits != 1 {
		t.Errorf("Expected 2 items and 1 outfit, got %d and %d", items, outfits)
	}

	// The preview image falls back to the first embedded item.
	got := store.Outfits()
	if got[0].Image != "/img/tee.png" {
		t.Errorf("Expected preview image from first item, got %q", got[0].Image)
	}
}

func TestFetchFailureKeepsStaleCollection(t *testing.T) {
	backend := newFakeBackend()
	var failOutfits atomic.Bool
	backend.handle("/outfits/user/u1", func(w http.ResponseWriter, r *http.Request) {
		if failOutfits.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id":"o1","name":"weekend"}]`))
	})
	backend.handle("/clothing/user/u1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"i1","name":"tee","category":"tops","colour":"white"}]`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	store.FetchUserOutfits(context.Background(), "u1")

	failOutfits.Store(true)
	store.FetchUserOutfits(context.Background(), "u1")

	items, outfits := store.Counts()
	if outfits != 1 {
		t.Errorf("Expected stale outfits to survive a failed refresh, got %d", outfits)
	}
	if items != 1 {
		t.Errorf("Expected items refresh to succeed independently, got %d", items)
	}
}

func TestStaleResponseDoesNotOverwriteNewer(t *testing.T) {
	store := New(api.NewClient("http://localhost:0"))

	// A newer fetch's items land first; the older response must be dropped.
	store.applyItems(2, []models.ClothingItem{{ID: "new"}})
	store.applyItems(1, []models.ClothingItem{{ID: "old"}})

	items := store.Items()
	if len(items) != 1 || items[0].ID != "new" {
		t.Errorf("Expected newer items to win, got %+v", items)
	}

	store.applyOutfits(2, []models.Outfit{{ID: "new"}})
	store.applyOutfits(1, []models.Outfit{{ID: "old"}})

	outfits := store.Outfits()
	if len(outfits) != 1 || outfits[0].ID != "new" {
		t.Errorf("Expected newer outfits to win, got %+v", outfits)
	}
}

func TestAddClothingItemAppendsSavedCopy(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/clothing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"assigned-1","name":"tee","category":"tops","colour":"white"}`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))

	saved, err := store.AddClothingItem(context.Background(), models.ClothingItem{
		Name: "tee", Category: models.CategoryTops, Colour: "white",
	})
	if err != nil {
		t.Fatal("AddClothingItem failed:", err)
	}
	if saved.ID != "assigned-1" {
		t.Errorf("Expected backend-assigned id, got %q", saved.ID)
	}

	items := store.Items()
	if len(items) != 1 || items[0].ID != "assigned-1" {
		t.Errorf("Expected saved copy in collection, got %+v", items)
	}
}

func TestAddClothingItemFailureLeavesCollection(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/clothing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))

	if _, err := store.AddClothingItem(context.Background(), models.ClothingItem{Name: "tee"}); err == nil {
		t.Fatal("Expected error from failed add")
	}
	if len(store.Items()) != 0 {
		t.Error("Expected no optimistic append on failure")
	}
}

func TestRemoveClothingItem(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/clothing/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	store.applyItems(1, []models.ClothingItem{{ID: "i1"}, {ID: "i2"}})

	if err := store.RemoveClothingItem(context.Background(), "i1"); err != nil {
		t.Fatal("RemoveClothingItem failed:", err)
	}

	items := store.Items()
	if len(items) != 1 || items[0].ID != "i2" {
		t.Errorf("Expected only i2 to remain, got %+v", items)
	}

	// Removing an id the backend accepts but the collection lacks is fine.
	if err := store.RemoveClothingItem(context.Background(), "ghost"); err != nil {
		t.Fatal("RemoveClothingItem failed:", err)
	}
	if len(store.Items()) != 1 {
		t.Error("Expected collection unchanged for unknown id")
	}
}

func TestSaveOutfitRequiresUser(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))

	_, err := store.SaveOutfit(context.Background(), "", "weekend", []models.ClothingItem{{ID: "i1"}})
	if !errors.Is(err, ErrNoUser) {
		t.Fatalf("Expected ErrNoUser, got %v", err)
	}
	if n := atomic.LoadInt64(&backend.requests); n != 0 {
		t.Errorf("Expected no network call without a user, saw %d requests", n)
	}
}

func TestSaveOutfitAppendsNormalizedCopy(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/outfits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"o1","name":"weekend","items":[{"id":"i1","imagePath":"/img/jacket.png"},{"id":"i2","imagePath":"/img/tee.png"}]}`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))

	saved, err := store.SaveOutfit(context.Background(), "u1", "weekend", []models.ClothingItem{{ID: "i1"}, {ID: "i2"}})
	if err != nil {
		t.Fatal("SaveOutfit failed:", err)
	}
	if saved.Image != "/img/jacket.png" {
		t.Errorf("Expected preview image from first item, got %q", saved.Image)
	}

	outfits := store.Outfits()
	if len(outfits) != 1 || outfits[0].ID != "o1" {
		t.Errorf("Expected saved outfit in collection, got %+v", outfits)
	}
}

func TestDeleteOutfitOnlyRemovesOnSuccess(t *testing.T) {
	backend := newFakeBackend()
	var fail atomic.Bool
	backend.handle("/outfits/", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	store.applyOutfits(1, []models.Outfit{{ID: "o1"}, {ID: "o2"}})

	fail.Store(true)
	if err := store.DeleteOutfit(context.Background(), "o1"); err == nil {
		t.Fatal("Expected error from failed delete")
	}
	if _, outfits := store.Counts(); outfits != 2 {
		t.Errorf("Expected collection untouched on failure, got %d outfits", outfits)
	}

	fail.Store(false)
	if err := store.DeleteOutfit(context.Background(), "o1"); err != nil {
		t.Fatal("DeleteOutfit failed:", err)
	}
	outfits := store.Outfits()
	if len(outfits) != 1 || outfits[0].ID != "o2" {
		t.Errorf("Expected only o2 to remain, got %+v", outfits)
	}
}

func TestSuggestOutfitRequiresUser(t *testing.T) {
	store := New(api.NewClient("http://localhost:0"))
	if _, err := store.SuggestOutfit(context.Background(), ""); !errors.Is(err, ErrNoUser) {
		t.Errorf("Expected ErrNoUser, got %v", err)
	}
}

func TestSuggestOutfitRejectsNonArray(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/ai/suggest-outfit/u1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"try later"}`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	_, err := store.SuggestOutfit(context.Background(), "u1")
	if !errors.Is(err, api.ErrNotSuggestion) {
		t.Errorf("Expected ErrNotSuggestion, got %v", err)
	}
}

func TestMarkWornAppendsHistory(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/history", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"h1","outfit":{"id":"o1","name":"weekend"},"wornOn":"2026-09-01"}`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))

	entry, err := store.MarkWorn(context.Background(), models.Outfit{ID: "o1"}, "2026-09-01")
	if err != nil {
		t.Fatal("MarkWorn failed:", err)
	}
	if entry.WornOn != "2026-09-01" {
		t.Errorf("Expected worn date to round-trip, got %q", entry.WornOn)
	}

	history := store.History()
	if len(history) != 1 || history[0].ID != "h1" {
		t.Errorf("Expected entry in history, got %+v", history)
	}
}

func TestRecentOutfits(t *testing.T) {
	store := New(api.NewClient("http://localhost:0"))
	store.applyOutfits(1, []models.Outfit{{ID: "o1"}, {ID: "o2"}, {ID: "o3"}, {ID: "o4"}})

	recent := store.RecentOutfits(3)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 outfits, got %d", len(recent))
	}
	if recent[0].ID != "o2" || recent[2].ID != "o4" {
		t.Errorf("Expected the most recent outfits, got %+v", recent)
	}

	if got := store.RecentOutfits(10); len(got) != 4 {
		t.Errorf("Expected all 4 outfits when n exceeds the collection, got %d", len(got))
	}
}

func TestFilterItems(t *testing.T) {
	store := New(api.NewClient("http://localhost:0"))
	store.applyItems(1, []models.ClothingItem{
		{ID: "i1", Name: "White Tee", Brand: "Plain", Colour: "white", Category: models.CategoryTops},
		{ID: "i2", Name: "Denim Jacket", Brand: "Blue Co", Colour: "blue", Category: models.CategoryOuterwear},
		{ID: "i3", Name: "Sneakers", Brand: "Runner", Colour: "white", Category: models.CategoryShoes},
	})

	if got := store.FilterItems("", "all"); len(got) != 3 {
		t.Errorf("Expected all items for empty filter, got %d", len(got))
	}
	if got := store.FilterItems("", "shoes"); len(got) != 1 || got[0].ID != "i3" {
		t.Errorf("Expected only shoes, got %+v", got)
	}
	if got := store.FilterItems("white", ""); len(got) != 2 {
		t.Errorf("Expected 2 matches on colour/name, got %d", len(got))
	}
	if got := store.FilterItems("BLUE", "outerwear"); len(got) != 1 || got[0].ID != "i2" {
		t.Errorf("Expected case-insensitive brand match, got %+v", got)
	}
	if got := store.FilterItems("velvet", ""); len(got) != 0 {
		t.Errorf("Expected no matches, got %+v", got)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	store := New(api.NewClient("http://localhost:0"))
	store.applyItems(1, []models.ClothingItem{{ID: "i1", Name: "tee"}})

	items := store.Items()
	items[0].Name = "mutated"

	if store.Items()[0].Name != "tee" {
		t.Error("Expected Items to return a copy")
	}
}

func TestFetchUserOutfitsHitsBothEndpoints(t *testing.T) {
	backend := newFakeBackend()
	var outfitCalls, itemCalls atomic.Int64
	backend.handle("/outfits/user/", func(w http.ResponseWriter, r *http.Request) {
		outfitCalls.Add(1)
		w.Write([]byte(`[]`))
	})
	backend.handle("/clothing/user/", func(w http.ResponseWriter, r *http.Request) {
		itemCalls.Add(1)
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(backend)
	defer server.Close()

	store := New(api.NewClient(server.URL))
	store.FetchUserOutfits(context.Background(), "u1")

	if outfitCalls.Load() != 1 || itemCalls.Load() != 1 {
		t.Errorf("Expected one request per collection, got %d and %d", outfitCalls.Load(), itemCalls.Load())
	}
}
