// server/internal/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is the audit record created when an asset is allocated to a
// user. It is immutable after creation except for recording the return.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID    primitive.ObjectID `bson:"assetID" json:"assetID"`
	AssetCode  string             `bson:"assetCode" json:"assetCode"`
	UserID     primitive.ObjectID `bson:"userID" json:"userID"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
	ReturnedAt *time.Time         `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
	Condition  string             `bson:"condition" json:"condition"` // Condition at hand-over
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
