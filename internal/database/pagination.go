// server/internal/database/pagination.go
package database

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageCursor marks the position after the last document of a page. The
// (createdAt, _id) pair gives a total order even when several documents
// share a creation time.
type PageCursor struct {
	CreatedAt time.Time
	ID        primitive.ObjectID
}

// Encode renders the cursor as an opaque continuation token.
func (c PageCursor) Encode() string {
	raw := fmt.Sprintf("%d:%s", c.CreatedAt.UnixMilli(), c.ID.Hex())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by Encode.
func DecodeCursor(token string) (PageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return PageCursor{}, fmt.Errorf("malformed page cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return PageCursor{}, fmt.Errorf("malformed page cursor")
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return PageCursor{}, fmt.Errorf("malformed page cursor timestamp: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return PageCursor{}, fmt.Errorf("malformed page cursor ID: %w", err)
	}
	return PageCursor{CreatedAt: time.UnixMilli(millis).UTC(), ID: id}, nil
}

// Page is one slice of a collection ordered by creation time descending.
// HasMore is heuristic: true whenever the page came back full, so the final
// page of a collection whose size is a multiple of the page size reports
// HasMore with an empty follow-up page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Paginate returns one page ordered by createdAt descending, starting after
// cursor when one is supplied. Repeated calls with the returned cursor
// traverse the collection exactly once, assuming no concurrent writes.
func (r *Repository[T]) Paginate(ctx context.Context, pageSize int64, cursor *PageCursor) (*Page[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	filter := bson.M{}
	if cursor != nil {
		filter = bson.M{"$or": []bson.M{
			{"createdAt": bson.M{"$lt": cursor.CreatedAt}},
			{"createdAt": cursor.CreatedAt, "_id": bson.M{"$lt": cursor.ID}},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(pageSize)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	defer cur.Close(ctx)

	page := &Page[T]{Items: []T{}}
	var last bson.Raw
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode page item: %w", err)
		}
		page.Items = append(page.Items, item)
		last = append(bson.Raw(nil), cur.Current...)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate page: %w", err)
	}

	if int64(len(page.Items)) == pageSize && last != nil {
		id, ok := last.Lookup("_id").ObjectIDOK()
		if !ok {
			return nil, fmt.Errorf("page item missing object ID")
		}
		createdAt, ok := last.Lookup("createdAt").TimeOK()
		if !ok {
			return nil, fmt.Errorf("page item missing createdAt")
		}
		next := PageCursor{CreatedAt: createdAt, ID: id}
		page.NextCursor = next.Encode()
		page.HasMore = true
	}

	return page, nil
}
