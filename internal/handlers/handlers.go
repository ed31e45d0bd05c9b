package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"wardrobe/internal/api"
	"wardrobe/internal/app"
	"wardrobe/internal/config"
	"wardrobe/internal/middleware"
	"wardrobe/internal/view"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, mgr *app.Manager, client *api.Client, db *sql.DB, cfg *config.Config) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.BrowserSession(db, cfg, mgr.Drop))
	r.Use(addStateContext(mgr))
	r.Use(addClientContext(client))

	r.POST("/login", middleware.AuthRateLimit(cfg), handleLogin)
	r.POST("/signup", middleware.AuthRateLimit(cfg), handleSignup)
	r.POST("/logout", handleLogout(mgr))
	r.GET("/session", handleSession)

	r.GET("/view", handleCurrentView)
	r.PUT("/view", handleNavigate)
	r.GET("/toasts", handleToasts)
	r.DELETE("/toasts/:id", handleDismissToast)

	protected := r.Group("/")
	protected.Use(authRequired())
	{
		protected.GET("/dashboard", handleDashboard)

		protected.GET("/closet", handleCloset)
		protected.POST("/closet/items", handleAddItem)
		protected.DELETE("/closet/items/:id", handleRemoveItem)

		protected.POST("/images/upload", handleUploadImage)

		protected.GET("/creator", handleCreator)
		protected.POST("/creator/drop", handleDrop)
		protected.DELETE("/creator/items/:id", handleRemoveFromComposition)
		protected.POST("/creator/clear", handleClearComposition)
		protected.POST("/creator/surprise", handleSurpriseMe)
		protected.POST("/creator/save", handleSaveOutfit)

		protected.GET("/outfits", handleSavedOutfits)
		protected.DELETE("/outfits/:id", handleDeleteOutfit)
		protected.POST("/outfits/:id/worn", handleMarkWorn)
		protected.GET("/history", handleHistory)
	}
}

func addStateContext(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.MustGet("session_id").(string)
		c.Set("state", mgr.State(sessionID))
		c.Next()
	}
}

func addClientContext(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("api_client", client)
		c.Next()
	}
}

func state(c *gin.Context) *app.State {
	return c.MustGet("state").(*app.State)
}

func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if state(c).Session.User() == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func handleSession(c *gin.Context) {
	st := state(c)
	user := st.Session.User()
	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"view": st.Views.Current(user != nil),
	})
}

func handleCurrentView(c *gin.Context) {
	st := state(c)
	c.JSON(http.StatusOK, gin.H{
		"view": st.Views.Current(st.Session.User() != nil),
	})
}

func handleNavigate(c *gin.Context) {
	var req struct {
		View string `json:"view"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	st := state(c)
	active := st.Session.User() != nil
	if err := st.Views.Navigate(view.Parse(req.View), active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remember view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": st.Views.Current(active)})
}

func handleToasts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"toasts": state(c).Toasts.Visible()})
}

func handleDismissToast(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toast id"})
		return
	}
	state(c).Toasts.Dismiss(id)
	c.Status(http.StatusNoContent)
}
