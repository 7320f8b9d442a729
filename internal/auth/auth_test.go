// server/internal/auth/auth_test.go
package auth_test

import (
	"testing"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", hash)

	assert.True(t, auth.CheckPasswordHash("Str0ng!pass", hash))
	assert.False(t, auth.CheckPasswordHash("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := auth.NewTokenManager(config.JWTConfig{Secret: "test-secret", Expiration: "1h"})
	require.NoError(t, err)

	user := models.User{
		ID:    primitive.NewObjectID(),
		Email: "a@mlab.co.za",
		Role:  models.RoleFacilitator,
		Hub:   "Durban",
	}

	token, err := tm.Generate(user)
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleFacilitator, claims.Role)
	assert.Equal(t, "Durban", claims.Hub)
}

func TestTokenRejectedByOtherSecret(t *testing.T) {
	tm, err := auth.NewTokenManager(config.JWTConfig{Secret: "secret-one", Expiration: "1h"})
	require.NoError(t, err)
	other, err := auth.NewTokenManager(config.JWTConfig{Secret: "secret-two", Expiration: "1h"})
	require.NoError(t, err)

	token, err := tm.Generate(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm, err := auth.NewTokenManager(config.JWTConfig{Secret: "test-secret", Expiration: "-1h"})
	require.NoError(t, err)

	token, err := tm.Generate(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestTokenManagerConfig(t *testing.T) {
	_, err := auth.NewTokenManager(config.JWTConfig{Secret: "", Expiration: "1h"})
	assert.Error(t, err)

	_, err = auth.NewTokenManager(config.JWTConfig{Secret: "s", Expiration: "soon"})
	assert.Error(t, err)
}
