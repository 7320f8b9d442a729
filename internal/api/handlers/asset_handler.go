// server/internal/api/handlers/asset_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"asset-hub-api-server/internal/api/middleware"
	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/s3"
	"asset-hub-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssetHandler struct {
	Assets      *database.Repository[models.Asset]
	Assignments *database.Repository[models.Assignment]
	Locations   *database.Repository[models.Location]
	Users       *database.Repository[models.User]
	Hub         *socket.Hub
	Uploader    *s3.Uploader
}

const assetCodePrefix = "ASSET-"

// nextAssetCode scans existing codes for the highest numeric suffix and
// returns the next sequential code, e.g. ASSET-014 -> ASSET-015. With no
// prior assets the first code is ASSET-001.
func nextAssetCode(assets []models.Asset) string {
	max := 0
	for _, a := range assets {
		suffix, found := strings.CutPrefix(a.AssetCode, assetCodePrefix)
		if !found {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= max {
			continue
		}
		max = n
	}
	return fmt.Sprintf("%s%03d", assetCodePrefix, max+1)
}

type CreateAssetRequest struct {
	Name         string    `json:"name" binding:"required"`
	Category     string    `json:"category" binding:"required"`
	Type         string    `json:"type" binding:"required,oneof=electronics furniture equipment other"`
	Location     string    `json:"location" binding:"required"`
	SerialNumber string    `json:"serialNumber"`
	Manufacturer string    `json:"manufacturer"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Value        float64   `json:"value" binding:"required"`
	Condition    string    `json:"condition" binding:"omitempty,oneof=excellent good fair poor"`
}

// CreateAsset stores a new asset with the next sequential asset code.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Asset value must be greater than zero"})
		return
	}
	if !models.IsValidHub(req.Location) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is not one of the known hubs"})
		return
	}
	if !models.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown asset category"})
		return
	}

	ctx := c.Request.Context()

	existing, err := h.Assets.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read existing assets"})
		return
	}

	condition := req.Condition
	if condition == "" {
		condition = "good"
	}

	asset := models.Asset{
		AssetCode:    nextAssetCode(existing),
		Name:         req.Name,
		Category:     req.Category,
		Type:         req.Type,
		Status:       models.AssetStatusAvailable,
		Location:     req.Location,
		SerialNumber: req.SerialNumber,
		Manufacturer: req.Manufacturer,
		PurchaseDate: req.PurchaseDate,
		Value:        req.Value,
		Condition:    condition,
	}

	id, err := h.Assets.Create(ctx, asset)
	if err != nil {
		middleware.Logger(c).Error("failed to create asset", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}
	asset.ID = id

	h.Hub.Broadcast(socket.Event{Type: "asset.created", Payload: asset, Timestamp: time.Now()})

	c.JSON(http.StatusCreated, asset)
}

// ListAssets returns assets, paginated when pageSize is supplied, otherwise
// filtered by the optional status/category/location query parameters.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	ctx := c.Request.Context()

	if pageSizeParam := c.Query("pageSize"); pageSizeParam != "" {
		pageSize, err := strconv.ParseInt(pageSizeParam, 10, 64)
		if err != nil || pageSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be a positive integer"})
			return
		}
		var cursor *database.PageCursor
		if token := c.Query("cursor"); token != "" {
			decoded, err := database.DecodeCursor(token)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page cursor"})
				return
			}
			cursor = &decoded
		}
		page, err := h.Assets.Paginate(ctx, pageSize, cursor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	filters := bson.M{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	if location := c.Query("location"); location != "" {
		filters["location"] = location
	}

	assets, err := h.Assets.QueryMultiple(ctx, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query assets"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAsset returns a single asset by ID.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.Assets.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}
	c.JSON(http.StatusOK, asset)
}

type UpdateAssetRequest struct {
	Name         *string    `json:"name"`
	Category     *string    `json:"category"`
	Type         *string    `json:"type" binding:"omitempty,oneof=electronics furniture equipment other"`
	Status       *string    `json:"status"`
	Location     *string    `json:"location"`
	SerialNumber *string    `json:"serialNumber"`
	Manufacturer *string    `json:"manufacturer"`
	PurchaseDate *time.Time `json:"purchaseDate"`
	Value        *float64   `json:"value"`
	Condition    *string    `json:"condition" binding:"omitempty,oneof=excellent good fair poor"`
}

// UpdateAsset merges the supplied fields into the asset.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown asset category"})
			return
		}
		fields["category"] = *req.Category
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Status != nil {
		if !models.IsValidAssetStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown asset status"})
			return
		}
		fields["status"] = *req.Status
	}
	if req.Location != nil {
		if !models.IsValidHub(*req.Location) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Location is not one of the known hubs"})
			return
		}
		fields["location"] = *req.Location
	}
	if req.SerialNumber != nil {
		fields["serialNumber"] = *req.SerialNumber
	}
	if req.Manufacturer != nil {
		fields["manufacturer"] = *req.Manufacturer
	}
	if req.PurchaseDate != nil {
		fields["purchaseDate"] = *req.PurchaseDate
	}
	if req.Value != nil {
		if *req.Value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Asset value must be greater than zero"})
			return
		}
		fields["value"] = *req.Value
	}
	if req.Condition != nil {
		fields["condition"] = *req.Condition
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.Assets.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

// DeleteAsset removes the asset unconditionally.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := h.Assets.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

type AssignAssetRequest struct {
	UserID    string `json:"userID" binding:"required"`
	Condition string `json:"condition" binding:"omitempty,oneof=excellent good fair poor"`
	Notes     string `json:"notes"`
}

// AssignAsset allocates an available asset to a user. The status transition
// is a conditional update filtered on the current status, so two concurrent
// assignment attempts cannot both succeed. Exactly one assignment record is
// written for the winning attempt.
func (h *AssetHandler) AssignAsset(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil || !user.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee does not exist or is inactive"})
		return
	}

	asset, err := h.Assets.GetByID(ctx, assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	now := database.NormalizeTime(time.Now())
	if err := claimAsset(ctx, h.Assets.Collection(), assetID, req.UserID, now); err != nil {
		if errors.Is(err, errAssetNotAvailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Asset is not available for assignment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign asset"})
		return
	}

	condition := req.Condition
	if condition == "" {
		condition = asset.Condition
	}
	assignment := models.Assignment{
		AssetID:    assetID,
		AssetCode:  asset.AssetCode,
		UserID:     userID,
		AssignedAt: now,
		Condition:  condition,
		Notes:      req.Notes,
	}
	assignmentID, err := h.Assignments.Create(ctx, assignment)
	if err != nil {
		middleware.Logger(c).Error("asset assigned but assignment record failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset was assigned but the assignment record could not be written"})
		return
	}

	// Keep the hub counter in step with the assignment.
	_, err = h.Locations.Collection().UpdateOne(ctx,
		bson.M{"name": asset.Location},
		bson.M{"$inc": bson.M{"totalAssets": 1}})
	if err != nil {
		middleware.Logger(c).Warn("failed to bump location asset counter", "location", asset.Location, "error", err)
	}

	h.Hub.Broadcast(socket.Event{
		Type:      "asset.assigned",
		Payload:   gin.H{"assetID": assetID.Hex(), "assetCode": asset.AssetCode, "userID": req.UserID},
		Timestamp: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"assignmentID": assignmentID.Hex(),
		"assetCode":    asset.AssetCode,
	})
}

type ReturnAssetRequest struct {
	Condition string `json:"condition" binding:"omitempty,oneof=excellent good fair poor"`
}

// ReturnAsset frees an assigned asset and records the return on its open
// assignment record.
func (h *AssetHandler) ReturnAsset(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req ReturnAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	now := database.NormalizeTime(time.Now())
	if err := releaseAsset(ctx, h.Assets.Collection(), assetID, req.Condition, now); err != nil {
		if errors.Is(err, errAssetNotAssigned) {
			c.JSON(http.StatusConflict, gin.H{"error": "Asset is not currently assigned"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return asset"})
		return
	}

	// Close the open assignment record.
	open, err := h.Assignments.QueryMultiple(ctx, bson.M{
		"assetID":    assetID,
		"returnedAt": bson.M{"$exists": false},
	})
	if err != nil {
		middleware.Logger(c).Error("failed to look up open assignment", "error", err)
	}
	for _, a := range open {
		fields := bson.M{"returnedAt": now}
		if req.Condition != "" {
			fields["condition"] = req.Condition
		}
		if err := h.Assignments.Update(ctx, a.ID, fields); err != nil {
			middleware.Logger(c).Error("failed to close assignment record", "assignment", a.ID.Hex(), "error", err)
		}
	}

	// Never let the counter go negative, even if it has drifted.
	_, err = h.Locations.Collection().UpdateOne(ctx,
		bson.M{"name": asset.Location, "totalAssets": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"totalAssets": -1}})
	if err != nil {
		middleware.Logger(c).Warn("failed to decrement location asset counter", "location", asset.Location, "error", err)
	}

	h.Hub.Broadcast(socket.Event{
		Type:      "asset.returned",
		Payload:   gin.H{"assetID": assetID.Hex(), "assetCode": asset.AssetCode},
		Timestamp: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"status": "success", "assetCode": asset.AssetCode})
}

// UploadPhoto stores an asset image in S3 and saves the public URL on the
// asset document.
func (h *AssetHandler) UploadPhoto(c *gin.Context) {
	assetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
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

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A photo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("assets/%s/%s%s", assetID.Hex(), uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.Uploader.UploadFile(ctx, file, objectKey, contentType)
	if err != nil {
		middleware.Logger(c).Error("failed to upload asset photo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	if err := h.Assets.Update(ctx, assetID, bson.M{"imageURL": url}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo uploaded but asset could not be updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageURL": url})
}
