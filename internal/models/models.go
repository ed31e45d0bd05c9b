package models

import (
	"time"
)

// Category is the closed set of clothing categories. Layout placement in the
// outfit preview depends on these exact values, so nothing else is accepted.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryOuterwear   Category = "outerwear"
)

// CategoryOrder is the display order used for outfit previews and saved
// outfit cards, top layer first.
var CategoryOrder = []Category{
	CategoryOuterwear,
	CategoryTops,
	CategoryBottoms,
	CategoryShoes,
	CategoryAccessories,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories, CategoryOuterwear:
		return true
	}
	return false
}

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ClothingItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Colour    string   `json:"colour"`
	ImagePath string   `json:"imagePath"`
	Brand     string   `json:"brand,omitempty"`
	Season    string   `json:"season,omitempty"`
	UserID    string   `json:"userId,omitempty"`
}

// Outfit items are embedded copies returned by the backend at save time, not
// live references. A clothing item deleted later keeps appearing here.
type Outfit struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Items     []ClothingItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	Image     string         `json:"image,omitempty"`
}

type OutfitHistory struct {
	ID     string  `json:"id,omitempty"`
	Outfit *Outfit `json:"outfit,omitempty"`
	WornOn string  `json:"wornOn"`
}

// BrowserSession identifies one browser's local state (its key-value store,
// wardrobe collections and composition). It exists before login; the
// authenticated user is a value stored inside it.
type BrowserSession struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
