// server/internal/api/handlers/location_handler.go
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

type LocationHandler struct {
	Locations *database.Repository[models.Location]
}

type ContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type CreateLocationRequest struct {
	Name    string         `json:"name" binding:"required"`
	Type    string         `json:"type" binding:"required,oneof=hq hub branch site"`
	Status  string         `json:"status" binding:"omitempty,oneof=active maintenance offline"`
	Address string         `json:"address" binding:"required"`
	Contact ContactRequest `json:"contact" binding:"required"`
}

// CreateLocation stores a new location.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phoneResult := validation.ValidatePhone(req.Contact.Phone)
	if !phoneResult.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": phoneResult.Message})
		return
	}

	ctx := c.Request.Context()

	// One document per location name.
	count, err := h.Locations.CountByField(ctx, "name", req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for location"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Location with this name already exists"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.LocationStatusActive
	}

	location := models.Location{
		Name:    req.Name,
		Type:    req.Type,
		Status:  status,
		Address: req.Address,
		Contact: models.ContactInfo{
			Name:  req.Contact.Name,
			Email: req.Contact.Email,
			Phone: phoneResult.Normalized,
		},
	}

	id, err := h.Locations.Create(ctx, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}
	location.ID = id

	c.JSON(http.StatusCreated, location)
}

// ListLocations returns every location.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.Locations.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation returns one location by ID.
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	location, err := h.Locations.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve location"})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

type UpdateLocationRequest struct {
	Name    *string         `json:"name"`
	Type    *string         `json:"type" binding:"omitempty,oneof=hq hub branch site"`
	Status  *string         `json:"status" binding:"omitempty,oneof=active maintenance offline"`
	Address *string         `json:"address"`
	Contact *ContactRequest `json:"contact"`
}

// UpdateLocation merges the supplied fields into the location.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Contact != nil {
		phoneResult := validation.ValidatePhone(req.Contact.Phone)
		if !phoneResult.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": phoneResult.Message})
			return
		}
		fields["contact"] = models.ContactInfo{
			Name:  req.Contact.Name,
			Email: req.Contact.Email,
			Phone: phoneResult.Normalized,
		}
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.Locations.Update(c.Request.Context(), id, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"})
}

// DeleteLocation removes a location.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.Locations.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
