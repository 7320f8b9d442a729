// server/internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleFacilitator, NormalizeRole("facilitator"))
	assert.Equal(t, RoleUser, NormalizeRole("user"))

	// Legacy value from the retired parallel user model.
	assert.Equal(t, RoleFacilitator, NormalizeRole("manager"))

	assert.Empty(t, NormalizeRole("superuser"))
	assert.Empty(t, NormalizeRole(""))
}

func TestIsValidHub(t *testing.T) {
	for _, hub := range Hubs {
		assert.True(t, IsValidHub(hub))
	}
	assert.False(t, IsValidHub("Johannesburg"))
	assert.False(t, IsValidHub(""))
}
