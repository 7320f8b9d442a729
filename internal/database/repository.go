// server/internal/database/repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides collection-agnostic CRUD and query primitives shared
// by every entity type. Creation and update timestamps are stamped here so
// no handler writes them by hand, and all reads come back with times in the
// store's canonical precision (see NormalizeTime).
type Repository[T any] struct {
	coll *mongo.Collection
}

// NewRepository binds a typed repository to a named collection.
func NewRepository[T any](db *mongo.Database, collection string) *Repository[T] {
	return &Repository[T]{coll: db.Collection(collection)}
}

// Collection exposes the raw collection for operations the generic surface
// does not cover (conditional updates, counters).
func (r *Repository[T]) Collection() *mongo.Collection {
	return r.coll
}

// NormalizeTime converts t to the representation the store round-trips:
// UTC at millisecond precision. Writing normalized times means a document
// read back compares equal to what was written.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// GetAll returns every document in the collection. No ordering guarantee.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{}, nil)
}

// GetByID returns the document or (nil, nil) when it does not exist.
// Only transport failures produce an error.
func (r *Repository[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

// Create inserts doc, stamping createdAt and updatedAt, and returns the
// generated identifier.
func (r *Repository[T]) Create(ctx context.Context, doc T) (primitive.ObjectID, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to encode document: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to decode document fields: %w", err)
	}

	now := NormalizeTime(time.Now())
	fields["createdAt"] = now
	fields["updatedAt"] = now

	res, err := r.coll.InsertOne(ctx, fields)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert document: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid, nil
}

// Update merges fields into the existing document and refreshes updatedAt.
// Missing documents follow the store's own update semantics (no-op).
func (r *Repository[T]) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	set := bson.M{"updatedAt": NormalizeTime(time.Now())}
	for k, v := range fields {
		// Identity and creation time are immutable.
		if k == "_id" || k == "createdAt" {
			continue
		}
		set[k] = v
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

// Delete removes the document unconditionally.
func (r *Repository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// QueryByField returns all documents where field equals value.
func (r *Repository[T]) QueryByField(ctx context.Context, field string, value interface{}) ([]T, error) {
	return r.find(ctx, bson.M{field: value}, nil)
}

// QueryMultiple returns all documents matching every filter. Values may be
// plain equality matches or operator documents (e.g. bson.M{"$in": ...}).
func (r *Repository[T]) QueryMultiple(ctx context.Context, filters bson.M) ([]T, error) {
	if filters == nil {
		filters = bson.M{}
	}
	return r.find(ctx, filters, nil)
}

// QueryWithOrder returns documents ordered by field. limit <= 0 means
// unbounded.
func (r *Repository[T]) QueryWithOrder(ctx context.Context, field string, descending bool, limit int64) ([]T, error) {
	dir := 1
	if descending {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, opts)
}

// Count returns the collection cardinality.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// CountByField returns the number of documents where field equals value.
func (r *Repository[T]) CountByField(ctx context.Context, field string, value interface{}) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{field: value})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// CreateBatch inserts docs one at a time. There is no atomicity: a failure
// partway through leaves the earlier inserts committed, and the returned
// IDs cover exactly the committed prefix.
func (r *Repository[T]) CreateBatch(ctx context.Context, docs []T) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(docs))
	for i, doc := range docs {
		id, err := r.Create(ctx, doc)
		if err != nil {
			return ids, fmt.Errorf("batch insert failed at item %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BatchUpdate pairs a document ID with the fields to merge into it.
type BatchUpdate struct {
	ID     primitive.ObjectID
	Fields bson.M
}

// UpdateBatch applies updates sequentially with the same non-atomic
// semantics as CreateBatch.
func (r *Repository[T]) UpdateBatch(ctx context.Context, updates []BatchUpdate) error {
	for i, u := range updates {
		if err := r.Update(ctx, u.ID, u.Fields); err != nil {
			return fmt.Errorf("batch update failed at item %d: %w", i, err)
		}
	}
	return nil
}

// DeleteBatch removes documents sequentially with the same non-atomic
// semantics as CreateBatch.
func (r *Repository[T]) DeleteBatch(ctx context.Context, ids []primitive.ObjectID) error {
	for i, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return fmt.Errorf("batch delete failed at item %d: %w", i, err)
		}
	}
	return nil
}

func (r *Repository[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}
