// server/internal/models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location types and statuses.
const (
	LocationTypeHQ     = "hq"
	LocationTypeHub    = "hub"
	LocationTypeBranch = "branch"
	LocationTypeSite   = "site"

	LocationStatusActive      = "active"
	LocationStatusMaintenance = "maintenance"
	LocationStatusOffline     = "offline"
)

type Location struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type" json:"type"`
	Status      string             `bson:"status" json:"status"`
	Address     string             `bson:"address" json:"address"`
	TotalAssets int64              `bson:"totalAssets" json:"totalAssets"` // Never negative
	Contact     ContactInfo        `bson:"contact" json:"contact"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidLocationType reports whether t is a known location type.
func IsValidLocationType(t string) bool {
	switch t {
	case LocationTypeHQ, LocationTypeHub, LocationTypeBranch, LocationTypeSite:
		return true
	}
	return false
}
