package main

import (
	"log"

	"wardrobe/internal/api"
	"wardrobe/internal/app"
	"wardrobe/internal/config"
	"wardrobe/internal/handlers"
	"wardrobe/internal/logger"
	"wardrobe/internal/middleware"
	"wardrobe/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	db, err := storage.Initialize(cfg.LocalStorePath)
	if err != nil {
		log.Fatal("Failed to initialize local store:", err)
	}
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := storage.CleanupExpiredSessions(db); err != nil {
		logger.Warn("Failed to cleanup expired sessions", "error", err)
	}

	client := api.NewClient(cfg.WardrobeAPIURL)
	mgr := app.NewManager(client, db)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, mgr, client, db, cfg)

	log.Printf("Server starting on port %s, backend at %s", cfg.Port, cfg.WardrobeAPIURL)
	log.Fatal(r.Run(":" + cfg.Port))
}
