// server/internal/api/handlers/request_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"asset-hub-api-server/internal/api/middleware"
	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestHandler struct {
	Requests    *database.Repository[models.Request]
	Assets      *database.Repository[models.Asset]
	Assignments *database.Repository[models.Assignment]
	Locations   *database.Repository[models.Location]
	Hub         *socket.Hub
}

type CreateRequestRequest struct {
	AssetID string `json:"assetID" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// CreateRequest files an asset request for the authenticated user.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}
	requesterID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return
	}

	ctx := c.Request.Context()

	asset, err := h.Assets.GetByID(ctx, assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	request := models.Request{
		AssetID:     assetID,
		RequesterID: requesterID,
		Reason:      req.Reason,
		Status:      models.RequestStatusPending,
	}
	id, err := h.Requests.Create(ctx, request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}
	request.ID = id

	c.JSON(http.StatusCreated, request)
}

// ListRequests returns all requests, optionally filtered by status.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	filters := bson.M{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	requests, err := h.Requests.QueryMultiple(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ListMyRequests returns the authenticated user's own requests.
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	requesterID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return
	}

	requests, err := h.Requests.QueryByField(c.Request.Context(), "requesterID", requesterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveRequest approves a pending request and performs the assignment
// flow for the requested asset. Approval fails without side effects when
// the asset is no longer available.
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	ctx := c.Request.Context()

	request, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return
	}
	if request == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if request.Status != models.RequestStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request has already been decided"})
		return
	}

	asset, err := h.Assets.GetByID(ctx, request.AssetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requested asset no longer exists"})
		return
	}

	now := database.NormalizeTime(time.Now())
	if err := claimAsset(ctx, h.Assets.Collection(), request.AssetID, request.RequesterID.Hex(), now); err != nil {
		if errors.Is(err, errAssetNotAvailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Asset is not available for assignment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign asset"})
		return
	}

	assignment := models.Assignment{
		AssetID:    request.AssetID,
		AssetCode:  asset.AssetCode,
		UserID:     request.RequesterID,
		AssignedAt: now,
		Condition:  asset.Condition,
		Notes:      "Assigned via request approval",
	}
	if _, err := h.Assignments.Create(ctx, assignment); err != nil {
		middleware.Logger(c).Error("asset assigned but assignment record failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset was assigned but the assignment record could not be written"})
		return
	}

	_, err = h.Locations.Collection().UpdateOne(ctx,
		bson.M{"name": asset.Location},
		bson.M{"$inc": bson.M{"totalAssets": 1}})
	if err != nil {
		middleware.Logger(c).Warn("failed to bump location asset counter", "location", asset.Location, "error", err)
	}

	decidedBy := c.GetString(middleware.ContextEmail)
	err = h.Requests.Update(ctx, id, bson.M{
		"status":    models.RequestStatusApproved,
		"decidedBy": decidedBy,
		"decidedAt": now,
	})
	if err != nil {
		middleware.Logger(c).Error("assignment done but request status update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assignment completed but the request could not be updated"})
		return
	}

	h.Hub.Broadcast(socket.Event{
		Type:      "asset.assigned",
		Payload:   gin.H{"assetID": request.AssetID.Hex(), "assetCode": asset.AssetCode, "userID": request.RequesterID.Hex()},
		Timestamp: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"status": "success", "assetCode": asset.AssetCode})
}

// RejectRequest records a rejection without touching the asset.
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	ctx := c.Request.Context()

	request, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return
	}
	if request == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if request.Status != models.RequestStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request has already been decided"})
		return
	}

	now := database.NormalizeTime(time.Now())
	fields := bson.M{
		"status":    models.RequestStatusRejected,
		"decidedBy": c.GetString(middleware.ContextEmail),
		"decidedAt": now,
	}
	if err := h.Requests.Update(ctx, id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
