// server/internal/api/handlers/assignment_handler.go
package handlers

import (
	"net/http"

	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentHandler struct {
	Assignments *database.Repository[models.Assignment]
}

// ListAssignments returns assignment records newest first. open=true
// restricts the result to assignments without a recorded return.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("open") == "true" {
		open, err := h.Assignments.QueryMultiple(ctx, bson.M{"returnedAt": bson.M{"$exists": false}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
			return
		}
		c.JSON(http.StatusOK, open)
		return
	}

	assignments, err := h.Assignments.QueryWithOrder(ctx, "assignedAt", true, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GetAssetHistory returns the full assignment history for one asset.
func (h *AssignmentHandler) GetAssetHistory(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	history, err := h.Assignments.QueryByField(c.Request.Context(), "assetID", assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assignment history"})
		return
	}
	c.JSON(http.StatusOK, history)
}
