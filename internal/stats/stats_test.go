// server/internal/stats/stats_test.go
package stats_test

import (
	"testing"
	"time"

	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func asset(code, category, typ, status, location, condition string, createdAt time.Time) models.Asset {
	return models.Asset{
		AssetCode: code,
		Name:      code,
		Category:  category,
		Type:      typ,
		Status:    status,
		Location:  location,
		Condition: condition,
		Value:     1000,
		CreatedAt: createdAt,
	}
}

func TestComputeDashboardStatsCounts(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old),
		asset("ASSET-002", "laptop", "electronics", models.AssetStatusAvailable, "Durban", "good", old),
		asset("ASSET-003", "monitor", "electronics", models.AssetStatusAvailable, "Tshwane", "fair", old),
		asset("ASSET-004", "desk", "furniture", models.AssetStatusAssigned, "Cape Town", "good", old),
		asset("ASSET-005", "printer", "electronics", models.AssetStatusAssigned, "Tshwane", "poor", old),
		asset("ASSET-006", "laptop", "electronics", models.AssetStatusMaintenance, "Durban", "poor", old),
	}

	s := stats.ComputeDashboardStats(assets, now)

	assert.Equal(t, 6, s.TotalAssets)
	assert.Equal(t, 3, s.AvailableAssets)
	assert.Equal(t, 2, s.AssignedAssets)
	assert.Equal(t, 1, s.MaintenanceAssets)
}

func TestComputeDashboardStatsFirstSeenOrder(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "monitor", "electronics", models.AssetStatusAvailable, "Durban", "good", old),
		asset("ASSET-002", "laptop", "electronics", models.AssetStatusAssigned, "Tshwane", "good", old),
		asset("ASSET-003", "monitor", "furniture", models.AssetStatusAvailable, "Tshwane", "good", old),
	}

	s := stats.ComputeDashboardStats(assets, now)

	// Grouping order is first-encounter order, never alphabetical.
	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, stats.NameCount{Name: "monitor", Count: 2}, s.ByCategory[0])
	assert.Equal(t, stats.NameCount{Name: "laptop", Count: 1}, s.ByCategory[1])

	require.Len(t, s.ByLocation, 2)
	assert.Equal(t, "Durban", s.ByLocation[0].Name)
	assert.Equal(t, "Tshwane", s.ByLocation[1].Name)
}

func TestComputeDashboardStatsMissingValues(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	blank := models.Asset{Status: models.AssetStatusAvailable, CreatedAt: old}
	full := asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old)

	s := stats.ComputeDashboardStats([]models.Asset{blank, full}, now)

	// Missing category/type/location drop the asset from that grouping only.
	assert.Equal(t, 2, s.TotalAssets)
	assert.Equal(t, 2, s.AvailableAssets)
	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, 1, s.ByCategory[0].Count)
	require.Len(t, s.ByLocation, 1)
}

func TestComputeDashboardStatsRecentAssets(t *testing.T) {
	var assets []models.Asset
	// Eight assets inside the window, one per day, oldest first.
	for i := 8; i >= 1; i-- {
		assets = append(assets, asset("ASSET-00"+string(rune('0'+i)), "laptop", "electronics",
			models.AssetStatusAvailable, "Tshwane", "good", now.Add(-time.Duration(i)*24*time.Hour)))
	}
	// One outside the 30-day window.
	assets = append(assets, asset("ASSET-OLD", "laptop", "electronics",
		models.AssetStatusAvailable, "Tshwane", "good", now.Add(-31*24*time.Hour)))

	s := stats.ComputeDashboardStats(assets, now)

	require.Len(t, s.RecentAssets, 5)
	for i := 1; i < len(s.RecentAssets); i++ {
		assert.False(t, s.RecentAssets[i].CreatedAt.After(s.RecentAssets[i-1].CreatedAt),
			"recent assets must be sorted by creation time descending")
	}
	for _, a := range s.RecentAssets {
		assert.NotEqual(t, "ASSET-OLD", a.AssetCode)
	}
	assert.Equal(t, now.Add(-24*time.Hour), s.RecentAssets[0].CreatedAt)
}

func TestComputeDashboardStatsEmptySnapshot(t *testing.T) {
	s := stats.ComputeDashboardStats(nil, now)

	assert.Zero(t, s.TotalAssets)
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.RecentAssets)
	assert.NotNil(t, s.RecentAssets)
}

func TestComputeAssetsByLocation(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old),
		asset("ASSET-002", "laptop", "electronics", models.AssetStatusAssigned, "Tshwane", "good", old),
		asset("ASSET-003", "desk", "furniture", models.AssetStatusAvailable, "Durban", "good", old),
		{Status: models.AssetStatusAvailable, Type: "equipment", CreatedAt: old},
	}

	result := stats.ComputeAssetsByLocation(assets, nil)

	require.Contains(t, result, "Tshwane")
	require.Contains(t, result, "Durban")
	require.Contains(t, result, stats.UnassignedLocation)

	tshwane := result["Tshwane"]
	assert.Equal(t, 2, tshwane.Total)
	assert.Equal(t, 1, tshwane.ByStatus[models.AssetStatusAvailable])
	assert.Equal(t, 1, tshwane.ByStatus[models.AssetStatusAssigned])
	assert.Equal(t, 2, tshwane.ByType["electronics"])

	assert.Equal(t, 1, result[stats.UnassignedLocation].Total)
}

func TestComputeAssetsByLocationFiltered(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old),
		asset("ASSET-002", "desk", "furniture", models.AssetStatusAvailable, "Durban", "good", old),
	}

	result := stats.ComputeAssetsByLocation(assets, []string{"Durban"})

	assert.NotContains(t, result, "Tshwane")
	require.Contains(t, result, "Durban")
	assert.Equal(t, 1, result["Durban"].Total)
}

func TestComputeConditionStats(t *testing.T) {
	old := now.Add(-60 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old),
		asset("ASSET-002", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "poor", old),
		{Status: models.AssetStatusAvailable, Type: "furniture", CreatedAt: old},
	}

	s := stats.ComputeConditionStats(assets)

	require.Len(t, s.Overall, 3)
	assert.Equal(t, stats.NameCount{Name: "good", Count: 1}, s.Overall[0])
	assert.Equal(t, stats.NameCount{Name: "poor", Count: 1}, s.Overall[1])
	assert.Equal(t, stats.NameCount{Name: stats.UnknownCondition, Count: 1}, s.Overall[2])

	assert.Equal(t, 1, s.ByType["electronics"]["good"])
	assert.Equal(t, 1, s.ByType["electronics"]["poor"])
	assert.Equal(t, 1, s.ByType["furniture"][stats.UnknownCondition])
}

func TestComputeDashboardStatsDeterministic(t *testing.T) {
	old := now.Add(-10 * 24 * time.Hour)
	assets := []models.Asset{
		asset("ASSET-001", "laptop", "electronics", models.AssetStatusAvailable, "Tshwane", "good", old),
		asset("ASSET-002", "monitor", "electronics", models.AssetStatusAssigned, "Durban", "fair", old),
	}

	first := stats.ComputeDashboardStats(assets, now)
	second := stats.ComputeDashboardStats(assets, now)
	assert.Equal(t, first, second)
}
