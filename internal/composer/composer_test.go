package composer

import (
	"errors"
	"testing"

	"wardrobe/internal/models"
)

func item(id string, category models.Category) models.ClothingItem {
	return models.ClothingItem{
		ID:       id,
		Name:     "item " + id,
		Category: category,
		Colour:   "black",
	}
}

func TestAssignFillsSlot(t *testing.T) {
	c := New()

	if err := c.Assign(item("1", models.CategoryTops)); err != nil {
		t.Fatal("Failed to assign item:", err)
	}

	got, ok := c.Get(models.CategoryTops)
	if !ok {
		t.Fatal("Expected tops slot to be filled")
	}
	if got.ID != "1" {
		t.Errorf("Expected item 1, got %s", got.ID)
	}
}

func TestAssignSameCategoryEvicts(t *testing.T) {
	c := New()

	if err := c.Assign(item("1", models.CategoryShoes)); err != nil {
		t.Fatal("Failed to assign item:", err)
	}
	if err := c.Assign(item("2", models.CategoryShoes)); err != nil {
		t.Fatal("Failed to assign item:", err)
	}

	if c.Len() != 1 {
		t.Errorf("Expected 1 filled slot, got %d", c.Len())
	}
	got, _ := c.Get(models.CategoryShoes)
	if got.ID != "2" {
		t.Errorf("Expected later drop to win, got item %s", got.ID)
	}
}

func TestAssignRejectsInvalidItems(t *testing.T) {
	c := New()

	if err := c.Assign(item("", models.CategoryTops)); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload for empty id, got %v", err)
	}
	if err := c.Assign(item("1", models.Category("hats"))); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload for unknown category, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected composition unchanged, got %d slots", c.Len())
	}
}

func TestAssignPayload(t *testing.T) {
	c := New()

	dropped, err := c.AssignPayload([]byte(`{"id":"7","name":"denim jacket","category":"outerwear","colour":"blue"}`))
	if err != nil {
		t.Fatal("Failed to assign payload:", err)
	}
	if dropped.ID != "7" {
		t.Errorf("Expected item 7, got %s", dropped.ID)
	}
	if _, ok := c.Get(models.CategoryOuterwear); !ok {
		t.Error("Expected outerwear slot to be filled")
	}
}

func TestAssignPayloadGarbageIsNoOp(t *testing.T) {
	c := New()
	c.Assign(item("1", models.CategoryTops))

	payloads := [][]byte{
		[]byte("not json at all"),
		[]byte(`{"id":"","category":"tops"}`),
		[]byte(`{"id":"2","category":"spaceships"}`),
		[]byte(`[]`),
	}
	for _, payload := range payloads {
		if _, err := c.AssignPayload(payload); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("Expected ErrInvalidPayload for %q, got %v", payload, err)
		}
	}

	if c.Len() != 1 {
		t.Errorf("Expected composition unchanged, got %d slots", c.Len())
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Assign(item("1", models.CategoryTops))
	c.Assign(item("2", models.CategoryBottoms))

	c.Remove("1")

	if c.Len() != 1 {
		t.Fatalf("Expected 1 slot after removal, got %d", c.Len())
	}
	if _, ok := c.Get(models.CategoryTops); ok {
		t.Error("Expected tops slot to be empty")
	}

	// Removing an id that is not assigned does nothing.
	c.Remove("1")
	if c.Len() != 1 {
		t.Errorf("Expected repeat removal to be a no-op, got %d slots", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Assign(item("1", models.CategoryTops))
	c.Assign(item("2", models.CategoryShoes))

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty composition, got %d slots", c.Len())
	}
}

func TestReplaceKeepsLaterDuplicate(t *testing.T) {
	c := New()
	c.Assign(item("old", models.CategoryAccessories))

	c.Replace([]models.ClothingItem{
		item("1", models.CategoryTops),
		item("2", models.CategoryTops),
		item("3", models.CategoryShoes),
		item("", models.CategoryBottoms),
	})

	if c.Len() != 2 {
		t.Fatalf("Expected 2 slots, got %d", c.Len())
	}
	got, _ := c.Get(models.CategoryTops)
	if got.ID != "2" {
		t.Errorf("Expected later duplicate to win, got item %s", got.ID)
	}
	if _, ok := c.Get(models.CategoryAccessories); ok {
		t.Error("Expected previous composition to be discarded")
	}
}

func TestItemsInCanonicalOrder(t *testing.T) {
	c := New()
	c.Assign(item("s", models.CategoryShoes))
	c.Assign(item("o", models.CategoryOuterwear))
	c.Assign(item("b", models.CategoryBottoms))

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	want := []string{"o", "b", "s"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("Expected item %s at position %d, got %s", id, i, items[i].ID)
		}
	}
}
