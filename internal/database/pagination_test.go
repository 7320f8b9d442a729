// server/internal/database/pagination_test.go
package database_test

import (
	"testing"
	"time"

	"asset-hub-api-server/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPageCursorRoundTrip(t *testing.T) {
	original := database.PageCursor{
		CreatedAt: database.NormalizeTime(time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)),
		ID:        primitive.NewObjectID(),
	}

	decoded, err := database.DecodeCursor(original.Encode())
	require.NoError(t, err)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, token := range []string{
		"",
		"not base64 !!!",
		"bm90LWEtY3Vyc29y",     // decodes but has no separator
		"MTIzNDU2Nzg5MDpub3Bl", // timestamp ok, ID is not hex
	} {
		_, err := database.DecodeCursor(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func TestNormalizeTime(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	input := time.Date(2026, 8, 15, 11, 30, 0, 123456789, loc)

	normalized := database.NormalizeTime(input)

	assert.Equal(t, time.UTC, normalized.Location())
	assert.Equal(t, 9, normalized.Hour())
	assert.Equal(t, 123000000, normalized.Nanosecond(), "precision beyond milliseconds is dropped")

	// Normalizing twice is a no-op, so written values compare equal on read.
	assert.True(t, normalized.Equal(database.NormalizeTime(normalized)))
}
