// server/internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"

	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	Users       *database.Repository[models.User]
	Assignments *database.Repository[models.Assignment]
}

// ListUsers returns all users, optionally filtered by role or hub.
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := bson.M{}
	if role := c.Query("role"); role != "" {
		filters["role"] = models.NormalizeRole(role)
	}
	if hub := c.Query("hub"); hub != "" {
		filters["hub"] = hub
	}

	users, err := h.Users.QueryMultiple(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Hub        *string `json:"hub"`
	Active     *bool   `json:"active"`
}

// UpdateUser merges the supplied profile fields. Phone numbers are
// normalized to the canonical +27 form before the write.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fieldErrors []string
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		role := models.NormalizeRole(*req.Role)
		if role == "" {
			fieldErrors = append(fieldErrors, "role must be one of: admin, facilitator, user")
		} else {
			fields["role"] = role
		}
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Phone != nil {
		result := validation.ValidatePhone(*req.Phone)
		if !result.Valid {
			fieldErrors = append(fieldErrors, result.Message)
		} else {
			fields["phone"] = result.Normalized
		}
	}
	if req.Hub != nil {
		if !models.IsValidHub(*req.Hub) {
			fieldErrors = append(fieldErrors, "hub is not one of the known hubs")
		} else {
			fields["hub"] = *req.Hub
		}
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.Users.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes a user account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetUserAssignments returns the assignment history for one user.
func (h *UserHandler) GetUserAssignments(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	assignments, err := h.Assignments.QueryByField(c.Request.Context(), "userID", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}
