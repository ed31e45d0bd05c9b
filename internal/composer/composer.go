package composer

import (
	"encoding/json"
	"errors"
	"sync"

	"wardrobe/internal/models"
)

// ErrInvalidPayload means a drag payload did not decode into a wearable
// item. The drop surface treats it as a no-op rather than an error the user
// sees.
var ErrInvalidPayload = errors.New("invalid drag payload")

// Composer is the single composition target for building an outfit: one
// slot per category, a later drop of the same category evicts the earlier
// item.
type Composer struct {
	mu    sync.Mutex
	slots map[models.Category]models.ClothingItem
}

func New() *Composer {
	return &Composer{
		slots: make(map[models.Category]models.ClothingItem),
	}
}

// Assign places an item into its category slot, replacing whatever that
// category already held.
func (c *Composer) Assign(item models.ClothingItem) error {
	if item.ID == "" || !item.Category.Valid() {
		return ErrInvalidPayload
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[item.Category] = item
	return nil
}

// AssignPayload decodes a serialized drag payload and assigns the item. A
// payload that fails to decode or validate returns ErrInvalidPayload and
// leaves the composition unchanged.
func (c *Composer) AssignPayload(payload []byte) (models.ClothingItem, error) {
	var item models.ClothingItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return models.ClothingItem{}, ErrInvalidPayload
	}
	if err := c.Assign(item); err != nil {
		return models.ClothingItem{}, err
	}
	return item, nil
}

// Remove clears the slot holding the item with the given id. Removing an
// id that is not assigned does nothing.
func (c *Composer) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for category, item := range c.slots {
		if item.ID == itemID {
			delete(c.slots, category)
			return
		}
	}
}

// Clear empties every slot.
func (c *Composer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[models.Category]models.ClothingItem)
}

// Replace swaps the whole composition for the given items, used when an AI
// suggestion arrives. Items are applied in order, so a duplicate category
// keeps the later item, same as sequential drops.
func (c *Composer) Replace(items []models.ClothingItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[models.Category]models.ClothingItem)
	for _, item := range items {
		if item.ID == "" || !item.Category.Valid() {
			continue
		}
		c.slots[item.Category] = item
	}
}

// Items returns the assigned items in canonical category order, top layer
// first.
func (c *Composer) Items() []models.ClothingItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.ClothingItem, 0, len(c.slots))
	for _, category := range models.CategoryOrder {
		if item, ok := c.slots[category]; ok {
			items = append(items, item)
		}
	}
	return items
}

// Get returns the item assigned to a category, if any.
func (c *Composer) Get(category models.Category) (models.ClothingItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.slots[category]
	return item, ok
}

// Len reports how many slots are filled.
func (c *Composer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}
