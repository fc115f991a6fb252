package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()
	roleID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, roleID, "Sam Tech", "Sam.Tech", "Sam@Example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, roleID, user.RoleID)
		assert.Equal(t, "sam.tech", user.UserName)
		assert.Equal(t, "sam@example.com", user.Email)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.True(t, user.IsActive())
		assert.True(t, user.VerifyPassword("password123"))
		assert.False(t, user.VerifyPassword("password124"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, roleID, "Sam", "sam", "sam@example.com", "short")
		assert.ErrorContains(t, err, "at least 8 characters")
	})

	t.Run("rejects invalid user name", func(t *testing.T) {
		_, err := NewUser(tenantID, roleID, "Sam", "s m", "sam@example.com", "password123")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, roleID, "Sam", "sam", "not-an-email", "password123")
		assert.ErrorContains(t, err, "Email")
	})

	t.Run("requires role", func(t *testing.T) {
		_, err := NewUser(tenantID, uuid.Nil, "Sam", "sam", "sam@example.com", "password123")
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), uuid.New(), "Sam", "sam", "sam@example.com", "password123")
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("wrong-password", "newpassword1"))
	require.NoError(t, user.ChangePassword("password123", "newpassword1"))
	assert.True(t, user.VerifyPassword("newpassword1"))
}

func TestUser_SetStatus(t *testing.T) {
	user, err := NewUser(uuid.New(), uuid.New(), "Sam", "sam", "sam@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, user.SetStatus(UserStatusInactive))
	assert.False(t, user.IsActive())
	assert.Error(t, user.SetStatus("archived"))
}
