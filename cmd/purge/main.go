// server/cmd/purge/main.go
//
// One-shot operator utility: removes every document from the assets and
// locations collections in batches. Not part of the API runtime.
package main

import (
	"context"
	"flag"
	"log"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/database"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 20

func main() {
	confirm := flag.Bool("yes", false, "actually delete; without this flag nothing happens")
	flag.Parse()

	if !*confirm {
		log.Fatal("Refusing to purge without the -yes flag")
	}

	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	ctx := context.Background()
	mongoDB, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(ctx)

	for _, name := range []string{database.CollectionAssets, database.CollectionLocations} {
		deleted, err := purgeCollection(ctx, mongoDB.DB.Collection(name))
		if err != nil {
			log.Fatalf("Failed to purge %s: %v", name, err)
		}
		log.Printf("Purged %d documents from %s", deleted, name)
	}
}

// purgeCollection deletes documents in fixed-size batches so a failure
// partway through loses at most one batch of progress.
func purgeCollection(ctx context.Context, coll *mongo.Collection) (int64, error) {
	var total int64
	for {
		cursor, err := coll.Find(ctx, bson.M{},
			options.Find().SetLimit(batchSize).SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return total, err
		}

		var docs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &docs); err != nil {
			return total, err
		}
		if len(docs) == 0 {
			return total, nil
		}

		ids := make([]primitive.ObjectID, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
		res, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return total, err
		}
		total += res.DeletedCount
	}
}
