// server/internal/api/handlers/asset_transitions.go
package handlers

import (
	"context"
	"errors"
	"time"

	"asset-hub-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errAssetNotAvailable = errors.New("asset is not available for assignment")
	errAssetNotAssigned  = errors.New("asset is not currently assigned")
)

// assetUpdater is the slice of *mongo.Collection the status transitions need.
type assetUpdater interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// claimAsset flips an available asset to assigned in one conditional update.
// The filter matches only the available status, so concurrent claims have
// exactly one winner; a losing claim writes nothing and gets
// errAssetNotAvailable back.
func claimAsset(ctx context.Context, assets assetUpdater, assetID primitive.ObjectID, userID string, now time.Time) error {
	res, err := assets.UpdateOne(ctx,
		bson.M{"_id": assetID, "status": models.AssetStatusAvailable},
		bson.M{"$set": bson.M{
			"status":       models.AssetStatusAssigned,
			"assignedTo":   userID,
			"assignedDate": now,
			"updatedAt":    now,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errAssetNotAvailable
	}
	return nil
}

// releaseAsset flips an assigned asset back to available, clearing the
// assignee fields and optionally recording the returned condition.
func releaseAsset(ctx context.Context, assets assetUpdater, assetID primitive.ObjectID, condition string, now time.Time) error {
	set := bson.M{
		"status":    models.AssetStatusAvailable,
		"updatedAt": now,
	}
	if condition != "" {
		set["condition"] = condition
	}

	res, err := assets.UpdateOne(ctx,
		bson.M{"_id": assetID, "status": models.AssetStatusAssigned},
		bson.M{
			"$set":   set,
			"$unset": bson.M{"assignedTo": "", "assignedDate": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errAssetNotAssigned
	}
	return nil
}
