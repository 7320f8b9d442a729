// server/internal/api/handlers/asset_code_test.go
package handlers

import (
	"testing"

	"asset-hub-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNextAssetCode(t *testing.T) {
	assert.Equal(t, "ASSET-001", nextAssetCode(nil))

	assets := []models.Asset{
		{AssetCode: "ASSET-003"},
		{AssetCode: "ASSET-014"},
		{AssetCode: "ASSET-007"},
	}
	assert.Equal(t, "ASSET-015", nextAssetCode(assets))
}

func TestNextAssetCodeIgnoresMalformedCodes(t *testing.T) {
	assets := []models.Asset{
		{AssetCode: "ASSET-002"},
		{AssetCode: "LEGACY-999"},
		{AssetCode: "ASSET-xyz"},
		{AssetCode: ""},
	}
	assert.Equal(t, "ASSET-003", nextAssetCode(assets))
}

func TestNextAssetCodeBeyondThreeDigits(t *testing.T) {
	assets := []models.Asset{{AssetCode: "ASSET-999"}}
	assert.Equal(t, "ASSET-1000", nextAssetCode(assets))

	assets = []models.Asset{{AssetCode: "ASSET-1000"}}
	assert.Equal(t, "ASSET-1001", nextAssetCode(assets))
}
