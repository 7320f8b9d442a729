// server/internal/models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset statuses.
const (
	AssetStatusAvailable   = "available"
	AssetStatusAssigned    = "assigned"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

// AssetCategories is the closed category enum.
var AssetCategories = []string{
	"laptop", "desktop", "monitor", "printer", "projector",
	"tablet", "phone", "networking", "furniture", "other",
}

// AssetTypes is the broader classification used by reporting.
var AssetTypes = []string{"electronics", "furniture", "equipment", "other"}

// AssetConditions in decreasing order of quality.
var AssetConditions = []string{"excellent", "good", "fair", "poor"}

type Asset struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetCode    string             `bson:"assetCode" json:"assetCode"` // Sequential, e.g. "ASSET-001"
	Name         string             `bson:"name" json:"name"`
	Category     string             `bson:"category" json:"category"`
	Type         string             `bson:"type" json:"type"`
	Status       string             `bson:"status" json:"status"`
	Location     string             `bson:"location" json:"location"` // One of the fixed hubs
	SerialNumber string             `bson:"serialNumber" json:"serialNumber"`
	Manufacturer string             `bson:"manufacturer" json:"manufacturer"`
	PurchaseDate time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	Value        float64            `bson:"value" json:"value"` // ZAR, must be > 0
	AssignedTo   string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedDate *time.Time         `bson:"assignedDate,omitempty" json:"assignedDate,omitempty"`
	Condition    string             `bson:"condition" json:"condition"`
	ImageURL     string             `bson:"imageURL,omitempty" json:"imageURL,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidAssetStatus reports whether s is a known asset status.
func IsValidAssetStatus(s string) bool {
	switch s {
	case AssetStatusAvailable, AssetStatusAssigned, AssetStatusMaintenance, AssetStatusRetired:
		return true
	}
	return false
}

// IsValidCategory reports whether c belongs to the closed category enum.
func IsValidCategory(c string) bool {
	for _, v := range AssetCategories {
		if v == c {
			return true
		}
	}
	return false
}
