package wardrobe

import (
	"context"
	"errors"
	"strings"
	"sync"

	"wardrobe/internal/api"
	"wardrobe/internal/logger"
	"wardrobe/internal/models"
)

// ErrNoUser is returned when an operation that needs a logged-in user is
// called without one.
var ErrNoUser = errors.New("no logged-in user")

// Store holds the in-memory copies of a user's clothing items and outfits.
// Each fetch replaces a collection wholesale; each write round-trips to the
// backend first and mutates memory only on success, so there is never a
// partial state to roll back.
type Store struct {
	client *api.Client

	mu      sync.RWMutex
	items   []models.ClothingItem
	outfits []models.Outfit
	history []models.OutfitHistory

	// Fetches are stamped with an issue number and a response only applies
	// if nothing newer already did: last request wins, not last response.
	fetchIssued   uint64
	itemsApplied  uint64
	outfitApplied uint64
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

// FetchUserOutfits refreshes both collections with two independent
// requests. A failed request is logged and leaves its collection unchanged,
// stale but available.
func (s *Store) FetchUserOutfits(ctx context.Context, userID string) {
	s.mu.Lock()
	s.fetchIssued++
	gen := s.fetchIssued
	s.mu.Unlock()

	outfits, err := s.client.ListOutfits(ctx, userID)
	if err != nil {
		logger.Warn("Failed to fetch outfits", "userId", userID, "error", err)
	} else {
		s.applyOutfits(gen, outfits)
	}

	items, err := s.client.ListClothingItems(ctx, userID)
	if err != nil {
		logger.Warn("Failed to fetch clothing items", "userId", userID, "error", err)
	} else {
		s.applyItems(gen, items)
	}
}

func (s *Store) applyOutfits(gen uint64, outfits []models.Outfit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.outfitApplied {
		return
	}
	s.outfitApplied = gen
	s.outfits = normalizeOutfits(outfits)
}

func (s *Store) applyItems(gen uint64, items []models.ClothingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.itemsApplied {
		return
	}
	s.itemsApplied = gen
	s.items = items
}

// AddClothingItem posts a new item and appends the backend's copy, which
// carries the assigned id. On failure the collection is untouched; nothing
// was added optimistically.
func (s *Store) AddClothingItem(ctx context.Context, item models.ClothingItem) (*models.ClothingItem, error) {
	saved, err := s.client.AddClothingItem(ctx, item)
	if err != nil {
		logger.Warn("Failed to add clothing item", "userId", item.UserID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, *saved)
	s.mu.Unlock()
	return saved, nil
}

// RemoveClothingItem deletes by id and filters the item out of memory on
// success. Outfits that embed the item keep their copies; the backend owns
// referential integrity.
func (s *Store) RemoveClothingItem(ctx context.Context, id string) error {
	if err := s.client.DeleteClothingItem(ctx, id); err != nil {
		logger.Warn("Failed to remove clothing item", "itemId", id, "error", err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	return nil
}

// SaveOutfit posts the composition's item ids and appends the backend's
// resolved outfit. A missing user id fails before any network call.
func (s *Store) SaveOutfit(ctx context.Context, userID, name string, items []models.ClothingItem) (*models.Outfit, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	saved, err := s.client.CreateOutfit(ctx, name, userID, ids)
	if err != nil {
		logger.Warn("Failed to save outfit", "userId", userID, "error", err)
		return nil, err
	}

	normalized := normalizeOutfit(*saved)
	s.mu.Lock()
	s.outfits = append(s.outfits, normalized)
	s.mu.Unlock()
	return &normalized, nil
}

// DeleteOutfit removes an outfit, dropping it from memory only on a
// successful response.
func (s *Store) DeleteOutfit(ctx context.Context, id string) error {
	if err := s.client.DeleteOutfit(ctx, id); err != nil {
		logger.Warn("Failed to delete outfit", "outfitId", id, "error", err)
		return err
	}

	s.mu.Lock()
	kept := s.outfits[:0]
	for _, outfit := range s.outfits {
		if outfit.ID != id {
			kept = append(kept, outfit)
		}
	}
	s.outfits = kept
	s.mu.Unlock()
	return nil
}

// SuggestOutfit fetches an AI-composed outfit. The client already rejects
// anything that is not a proper item list, so callers can replace their
// composition with the result as-is.
func (s *Store) SuggestOutfit(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return s.client.SuggestOutfit(ctx, userID)
}

// MarkWorn records that an outfit was worn on a date and appends the entry
// on success.
func (s *Store) MarkWorn(ctx context.Context, outfit models.Outfit, wornOn string) (*models.OutfitHistory, error) {
	entry := models.OutfitHistory{
		Outfit: &models.Outfit{ID: outfit.ID},
		WornOn: wornOn,
	}
	saved, err := s.client.RecordWear(ctx, entry)
	if err != nil {
		logger.Warn("Failed to record wear", "outfitId", outfit.ID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.history = append(s.history, *saved)
	s.mu.Unlock()
	return saved, nil
}

// FetchHistory replaces the wear history wholesale, same failure policy as
// the collection fetches.
func (s *Store) FetchHistory(ctx context.Context, userID string) {
	entries, err := s.client.ListOutfitHistory(ctx, userID)
	if err != nil {
		logger.Warn("Failed to fetch outfit history", "userId", userID, "error", err)
		return
	}

	s.mu.Lock()
	s.history = entries
	s.mu.Unlock()
}

// Items returns a copy of the clothing collection.
func (s *Store) Items() []models.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClothingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Outfits returns a copy of the outfit collection.
func (s *Store) Outfits() []models.Outfit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Outfit, len(s.outfits))
	copy(out, s.outfits)
	return out
}

// History returns a copy of the wear history.
func (s *Store) History() []models.OutfitHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OutfitHistory, len(s.history))
	copy(out, s.history)
	return out
}

// Counts reports collection sizes for the dashboard.
func (s *Store) Counts() (items, outfits int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), len(s.outfits)
}

// RecentOutfits returns up to n of the most recently appended outfits.
func (s *Store) RecentOutfits(n int) []models.Outfit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.outfits) {
		n = len(s.outfits)
	}
	out := make([]models.Outfit, n)
	copy(out, s.outfits[len(s.outfits)-n:])
	return out
}

// FilterItems narrows the collection by a case-insensitive search across
// name, brand and colour, and by category. Category "all" or "" matches
// everything.
func (s *Store) FilterItems(query, category string) []models.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.ClothingItem
	for _, item := range s.items {
		if category != "" && category != "all" && string(item.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Brand), q) &&
			!strings.Contains(strings.ToLower(item.Colour), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// normalizeOutfit fills the preview image from the first embedded item when
// the backend left it empty.
func normalizeOutfit(o models.Outfit) models.Outfit {
	if o.Image == "" && len(o.Items) > 0 {
		o.Image = o.Items[0].ImagePath
	}
	return o
}

func normalizeOutfits(outfits []models.Outfit) []models.Outfit {
	for i := range outfits {
		outfits[i] = normalizeOutfit(outfits[i])
	}
	return outfits
}
