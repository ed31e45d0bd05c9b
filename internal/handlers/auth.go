package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"wardrobe/internal/app"
	"wardrobe/internal/session"

	"github.com/gin-gonic/gin"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	st := state(c)
	user, err := st.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed. Please try again."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "An error occurred. Please try again."})
		return
	}

	// The screens refresh both collections as soon as a user is known.
	st.Wardrobe.FetchUserOutfits(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"view": st.Views.Current(true),
	})
}

func handleSignup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}
	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address"})
		return
	}

	st := state(c)
	user, err := st.Session.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed. Please try again."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "An error occurred. Please try again."})
		return
	}

	st.Wardrobe.FetchUserOutfits(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"view": st.Views.Current(true),
	})
}

// handleLogout clears the stored user and drops the whole per-session
// state, so a later login on the same browser session starts with an empty
// composition, toast queue and collections.
func handleLogout(mgr *app.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state(c).Session.Logout()
		mgr.Drop(c.MustGet("session_id").(string))
		c.Status(http.StatusNoContent)
	}
}
