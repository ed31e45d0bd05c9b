package handlers

import (
	"net/http"
	"time"

	"wardrobe/internal/models"

	"github.com/gin-gonic/gin"
)

func handleDashboard(c *gin.Context) {
	st := state(c)
	items, outfits := st.Wardrobe.Counts()
	c.JSON(http.StatusOK, gin.H{
		"itemCount":     items,
		"outfitCount":   outfits,
		"recentOutfits": st.Wardrobe.RecentOutfits(3),
	})
}

func handleSavedOutfits(c *gin.Context) {
	st := state(c)
	// The saved-outfits screen refetches on entry.
	st.Wardrobe.FetchUserOutfits(c.Request.Context(), st.Session.UserID())
	c.JSON(http.StatusOK, gin.H{"outfits": st.Wardrobe.Outfits()})
}

func handleDeleteOutfit(c *gin.Context) {
	st := state(c)
	if err := st.Wardrobe.DeleteOutfit(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete outfit"})
		return
	}
	c.Status(http.StatusNoContent)
}

func handleMarkWorn(c *gin.Context) {
	var req struct {
		WornOn string `json:"wornOn"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.WornOn == "" {
		req.WornOn = time.Now().Format("2006-01-02")
	}

	st := state(c)
	outfitID := c.Param("id")

	var target *models.Outfit
	for _, outfit := range st.Wardrobe.Outfits() {
		if outfit.ID == outfitID {
			o := outfit
			target = &o
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Outfit not found"})
		return
	}

	entry, err := st.Wardrobe.MarkWorn(c.Request.Context(), *target, req.WornOn)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to record wear"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func handleHistory(c *gin.Context) {
	st := state(c)
	st.Wardrobe.FetchHistory(c.Request.Context(), st.Session.UserID())
	c.JSON(http.StatusOK, gin.H{"history": st.Wardrobe.History()})
}
