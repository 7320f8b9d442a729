// server/internal/api/handlers/asset_transitions_test.go
package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"asset-hub-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeAssetCollection honours the conditional-update contract: the update is
// applied only when the stored status matches the filter's status.
type fakeAssetCollection struct {
	mu      sync.Mutex
	status  string
	lastSet bson.M
	writes  int
}

func (f *fakeAssetCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wantStatus := filter.(bson.M)["status"].(string)
	if f.status != wantStatus {
		return &mongo.UpdateResult{}, nil
	}

	set := update.(bson.M)["$set"].(bson.M)
	f.status = set["status"].(string)
	f.lastSet = set
	f.writes++
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func TestClaimAssetFromAvailable(t *testing.T) {
	assets := &fakeAssetCollection{status: models.AssetStatusAvailable}
	now := time.Now()

	err := claimAsset(context.Background(), assets, primitive.NewObjectID(), "user-1", now)

	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusAssigned, assets.status)
	assert.Equal(t, "user-1", assets.lastSet["assignedTo"])
	assert.Equal(t, now, assets.lastSet["assignedDate"])
}

func TestClaimAssetRejectsNonAvailable(t *testing.T) {
	for _, status := range []string{
		models.AssetStatusAssigned,
		models.AssetStatusMaintenance,
		models.AssetStatusRetired,
	} {
		assets := &fakeAssetCollection{status: status}

		err := claimAsset(context.Background(), assets, primitive.NewObjectID(), "user-1", time.Now())

		assert.ErrorIs(t, err, errAssetNotAvailable, "status %q", status)
		assert.Equal(t, status, assets.status, "a failed claim must not mutate the asset")
		assert.Zero(t, assets.writes)
	}
}

// Two simultaneous claims race on the same asset: exactly one wins, and only
// the winner goes on to write an assignment record.
func TestConcurrentClaimsSingleWinner(t *testing.T) {
	assets := &fakeAssetCollection{status: models.AssetStatusAvailable}
	assetID := primitive.NewObjectID()

	var recordsMu sync.Mutex
	var records []models.Assignment

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := primitive.NewObjectID()
			now := time.Now()
			if err := claimAsset(context.Background(), assets, assetID, userID.Hex(), now); err != nil {
				return
			}
			recordsMu.Lock()
			records = append(records, models.Assignment{
				AssetID:    assetID,
				UserID:     userID,
				AssignedAt: now,
			})
			recordsMu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Len(t, records, 1)
	assert.Equal(t, 1, assets.writes)
	assert.Equal(t, models.AssetStatusAssigned, assets.status)
}

func TestReleaseAssetFromAssigned(t *testing.T) {
	assets := &fakeAssetCollection{status: models.AssetStatusAssigned}

	err := releaseAsset(context.Background(), assets, primitive.NewObjectID(), "fair", time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusAvailable, assets.status)
	assert.Equal(t, "fair", assets.lastSet["condition"])
}

func TestReleaseAssetRejectsUnassigned(t *testing.T) {
	assets := &fakeAssetCollection{status: models.AssetStatusAvailable}

	err := releaseAsset(context.Background(), assets, primitive.NewObjectID(), "", time.Now())

	assert.ErrorIs(t, err, errAssetNotAssigned)
	assert.Equal(t, models.AssetStatusAvailable, assets.status)
	assert.Zero(t, assets.writes)
}

func TestReleaseAssetKeepsConditionWhenOmitted(t *testing.T) {
	assets := &fakeAssetCollection{status: models.AssetStatusAssigned}

	err := releaseAsset(context.Background(), assets, primitive.NewObjectID(), "", time.Now())

	require.NoError(t, err)
	_, hasCondition := assets.lastSet["condition"]
	assert.False(t, hasCondition)
}
