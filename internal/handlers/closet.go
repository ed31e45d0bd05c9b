package handlers

import (
	"net/http"
	"strings"

	"wardrobe/internal/api"
	"wardrobe/internal/models"

	"github.com/gin-gonic/gin"
)

func handleCloset(c *gin.Context) {
	st := state(c)
	items := st.Wardrobe.FilterItems(c.Query("q"), c.DefaultQuery("category", "all"))
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func handleAddItem(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		Category  string `json:"category"`
		Colour    string `json:"colour"`
		ImagePath string `json:"imagePath"`
		Brand     string `json:"brand"`
		Season    string `json:"season"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	// Required fields are checked before anything goes over the wire.
	if req.Name == "" || req.Colour == "" || req.ImagePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields"})
		return
	}

	category := models.Category(req.Category)
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	if req.Season == "" {
		req.Season = "summer"
	}

	st := state(c)
	item := models.ClothingItem{
		Name:      req.Name,
		Category:  category,
		Colour:    req.Colour,
		ImagePath: req.ImagePath,
		Brand:     req.Brand,
		Season:    req.Season,
		UserID:    st.Session.UserID(),
	}

	saved, err := st.Wardrobe.AddClothingItem(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error adding item"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func handleRemoveItem(c *gin.Context) {
	st := state(c)
	if err := st.Wardrobe.RemoveClothingItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to remove item"})
		return
	}
	c.Status(http.StatusNoContent)
}

func handleUploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	client := c.MustGet("api_client").(*api.Client)
	url, err := client.UploadImage(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
