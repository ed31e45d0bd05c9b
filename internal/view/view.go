package view

import (
	"wardrobe/internal/storage"
)

// View selects which top-level screen renders. There is no navigation
// stack; the browser's own history is the only back button.
type View string

const (
	Dashboard     View = "dashboard"
	Closet        View = "closet"
	OutfitCreator View = "outfit-creator"
	SavedOutfits  View = "saved-outfits"
)

// Parse maps a stored value to a View. Unknown or empty values land on the
// dashboard.
func Parse(s string) View {
	switch View(s) {
	case Dashboard, Closet, OutfitCreator, SavedOutfits:
		return View(s)
	}
	return Dashboard
}

// Router persists the current view selection while a user session is
// active. Without a session the selection is cleared, so a fresh login
// always starts on the dashboard.
type Router struct {
	kv storage.KV
}

func NewRouter(kv storage.KV) *Router {
	return &Router{kv: kv}
}

// Current returns the persisted view. When no session is active the stored
// selection is dropped and the dashboard is returned.
func (r *Router) Current(sessionActive bool) View {
	if !sessionActive {
		_ = r.kv.Delete(storage.KeyCurrentView)
		return Dashboard
	}

	value, ok, err := r.kv.Get(storage.KeyCurrentView)
	if err != nil || !ok {
		return Dashboard
	}
	return Parse(value)
}

// Navigate records a view change. Selections are only remembered while a
// session is active.
func (r *Router) Navigate(v View, sessionActive bool) error {
	if !sessionActive {
		return nil
	}
	return r.kv.Set(storage.KeyCurrentView, string(Parse(string(v))))
}
