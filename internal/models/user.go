// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical user roles. Earlier deployments carried two divergent role
// enumerations; legacy values are normalized at the boundary, see NormalizeRole.
const (
	RoleAdmin       = "admin"
	RoleFacilitator = "facilitator"
	RoleUser        = "user"
)

// User matches the document in the users collection.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	Name             string             `bson:"name" json:"name"`
	Password         string             `bson:"password" json:"-"` // bcrypt hash
	Role             string             `bson:"role" json:"role"`
	Department       string             `bson:"department" json:"department"`
	Phone            string             `bson:"phone" json:"phone"` // Canonical +27 form
	Hub              string             `bson:"hub" json:"hub"`
	Active           bool               `bson:"active" json:"active"`
	ResetToken       string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time         `bson:"resetTokenExpiry,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeRole maps legacy role values onto the canonical enum.
// "manager" comes from a retired parallel user model.
func NormalizeRole(role string) string {
	switch role {
	case "manager":
		return RoleFacilitator
	case RoleAdmin, RoleFacilitator, RoleUser:
		return role
	}
	return ""
}
