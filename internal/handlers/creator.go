package handlers

import (
	"errors"
	"net/http"
	"strings"

	"wardrobe/internal/api"
	"wardrobe/internal/composer"
	"wardrobe/internal/logger"
	"wardrobe/internal/models"
	"wardrobe/internal/wardrobe"

	"github.com/gin-gonic/gin"
)

func handleCreator(c *gin.Context) {
	st := state(c)

	selected := st.Composer.Items()
	assigned := make(map[string]bool, len(selected))
	for _, item := range selected {
		assigned[item.ID] = true
	}

	// Items already on the composition stay out of the pick list.
	var available []models.ClothingItem
	for _, item := range st.Wardrobe.FilterItems(c.Query("q"), c.DefaultQuery("category", "all")) {
		if !assigned[item.ID] {
			available = append(available, item)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"composition": selected,
		"available":   available,
	})
}

// handleDrop accepts the serialized item a drag-and-drop handed over. A
// payload that does not validate is dropped without any user-visible
// failure, so the response is the composition either way.
func handleDrop(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	st := state(c)
	if _, err := st.Composer.AssignPayload(payload); err != nil {
		if errors.Is(err, composer.ErrInvalidPayload) {
			logger.Debug("Ignoring invalid drop payload")
		}
	}

	c.JSON(http.StatusOK, gin.H{"composition": st.Composer.Items()})
}

func handleRemoveFromComposition(c *gin.Context) {
	st := state(c)
	st.Composer.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"composition": st.Composer.Items()})
}

func handleClearComposition(c *gin.Context) {
	st := state(c)
	st.Composer.Clear()
	c.JSON(http.StatusOK, gin.H{"composition": st.Composer.Items()})
}

// handleSurpriseMe asks the AI for a full outfit. Only a well-formed item
// list replaces the composition; every failure keeps it untouched and
// raises exactly one error toast.
func handleSurpriseMe(c *gin.Context) {
	st := state(c)

	userID := st.Session.UserID()
	if userID == "" {
		st.Toasts.Error("Missing user ID. Please login again.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user ID"})
		return
	}

	items, err := st.Wardrobe.SuggestOutfit(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, api.ErrNotSuggestion) {
			st.Toasts.Error("AI returned an invalid outfit.")
		} else {
			st.Toasts.Error("AI failed to generate outfit")
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Suggestion unavailable"})
		return
	}

	st.Composer.Replace(items)
	c.JSON(http.StatusOK, gin.H{"composition": st.Composer.Items()})
}

func handleSaveOutfit(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter an outfit name"})
		return
	}

	st := state(c)
	items := st.Composer.Items()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to save"})
		return
	}

	saved, err := st.Wardrobe.SaveOutfit(c.Request.Context(), st.Session.UserID(), req.Name, items)
	if err != nil {
		if errors.Is(err, wardrobe.ErrNoUser) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No logged-in user found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error saving outfit"})
		return
	}

	st.Composer.Clear()
	c.JSON(http.StatusCreated, saved)
}
