// server/internal/database/seeder.go
package database

import (
	"context"
	"log/slog"
	"time"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin ensures the bootstrap admin account exists. Without it a fresh
// deployment has nobody who can create other users.
func SeedAdmin(ctx context.Context, db *mongo.Database, cfg config.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("admin credentials not configured, seeding skipped")
		return nil
	}

	users := db.Collection(CollectionUsers)

	count, err := users.CountDocuments(ctx, bson.M{"email": cfg.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("admin account already exists, seeding skipped")
		return nil
	}

	logger.Info("admin account not found, seeding", slog.String("email", cfg.Email))
	hashedPassword, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	now := NormalizeTime(time.Now())
	admin := models.User{
		Email:     cfg.Email,
		Name:      "Administrator",
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		Hub:       models.Hubs[0],
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		return err
	}

	logger.Info("admin account seeded")
	return nil
}

// SeedLocations populates one location document per regional hub when the
// collection is empty, so asset counters have somewhere to live.
func SeedLocations(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	locations := db.Collection(CollectionLocations)

	count, err := locations.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("locations collection empty, seeding hubs")
	now := NormalizeTime(time.Now())
	for _, hub := range models.Hubs {
		doc := models.Location{
			Name:      hub,
			Type:      models.LocationTypeHub,
			Status:    models.LocationStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := locations.InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	logger.Info("hub locations seeded", slog.Int("count", len(models.Hubs)))
	return nil
}
