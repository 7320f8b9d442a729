// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/api/routes"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/s3"
	"asset-hub-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Local .env overrides, ignored when absent
	_ = godotenv.Load()

	// 2. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Connect to MongoDB
	ctx := context.Background()
	mongoDB, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(ctx)

	// 4. Make sure the bootstrap admin exists
	if err := database.SeedAdmin(ctx, mongoDB.DB, cfg.Admin, logger); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	if err := database.SeedLocations(ctx, mongoDB.DB, logger); err != nil {
		log.Fatalf("Failed to seed hub locations: %v", err)
	}

	// 5. Token manager and S3 uploader
	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}
	uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	}

	// 6. WebSocket hub for dashboard notifications
	wsHub := socket.NewHub(logger)

	// 7. Wire everything into the router
	router := routes.SetupRouter(mongoDB, tokens, uploader, wsHub, cfg, logger)

	// 8. Start server
	logger.Info("starting API server", slog.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
