// server/internal/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is a user's petition for an asset. Approval triggers the normal
// assignment flow; rejection only records the decision.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID     primitive.ObjectID `bson:"assetID" json:"assetID"`
	RequesterID primitive.ObjectID `bson:"requesterID" json:"requesterID"`
	Reason      string             `bson:"reason" json:"reason"`
	Status      string             `bson:"status" json:"status"`
	DecidedBy   string             `bson:"decidedBy,omitempty" json:"decidedBy,omitempty"`
	DecidedAt   *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
