// server/internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/stats"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the reporting endpoints. Statistics are always
// recomputed from a fresh scan of the asset collection, never cached.
type DashboardHandler struct {
	Assets *database.Repository[models.Asset]
}

// GetStats returns the main dashboard summary.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	assets, err := h.Assets.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read assets"})
		return
	}

	c.JSON(http.StatusOK, stats.ComputeDashboardStats(assets, time.Now()))
}

// GetStatsByLocation returns per-location breakdowns, optionally limited
// to a comma-separated list of locations.
func (h *DashboardHandler) GetStatsByLocation(c *gin.Context) {
	assets, err := h.Assets.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read assets"})
		return
	}

	var locations []string
	if param := c.Query("locations"); param != "" {
		for _, l := range strings.Split(param, ",") {
			if trimmed := strings.TrimSpace(l); trimmed != "" {
				locations = append(locations, trimmed)
			}
		}
	}

	c.JSON(http.StatusOK, stats.ComputeAssetsByLocation(assets, locations))
}

// GetConditionStats returns the condition distributions.
func (h *DashboardHandler) GetConditionStats(c *gin.Context) {
	assets, err := h.Assets.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read assets"})
		return
	}

	c.JSON(http.StatusOK, stats.ComputeConditionStats(assets))
}
