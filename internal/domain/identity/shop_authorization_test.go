package identity

import (
	"errors"
	"testing"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T, tenantID uuid.UUID) *Shop {
	t.Helper()
	shop, err := NewShop(tenantID, uuid.New(), "Main Street")
	require.NoError(t, err)
	return shop
}

func newTestUser(t *testing.T, tenantID uuid.UUID) *User {
	t.Helper()
	user, err := NewUser(tenantID, uuid.New(), "Alex", "alex", "alex@example.com", "password123")
	require.NoError(t, err)
	return user
}

func TestAuthorizeShopLogin_ShopManager(t *testing.T) {
	tenantID := uuid.New()
	role := &Role{Name: RoleShopManager}

	t.Run("denied in same tenant without managed shop or grant", func(t *testing.T) {
		shop := newTestShop(t, tenantID)
		user := newTestUser(t, tenantID)

		err := AuthorizeShopLogin(user, role, shop, false)

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrForbidden))
		assert.Equal(t, ShopManagerDeniedMessage, err.Error())
	})

	t.Run("denied when managing a different shop", func(t *testing.T) {
		shop := newTestShop(t, tenantID)
		user := newTestUser(t, tenantID)
		other := uuid.New()
		user.AssignManagedShop(&other)

		err := AuthorizeShopLogin(user, role, shop, false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("allowed for managed shop", func(t *testing.T) {
		shop := newTestShop(t, tenantID)
		user := newTestUser(t, tenantID)
		user.AssignManagedShop(&shop.ID)

		assert.NoError(t, AuthorizeShopLogin(user, role, shop, false))
	})

	t.Run("allowed with explicit access in another tenant", func(t *testing.T) {
		shop := newTestShop(t, uuid.New())
		user := newTestUser(t, tenantID)

		assert.NoError(t, AuthorizeShopLogin(user, role, shop, true))
	})

	t.Run("owning the shop is not enough", func(t *testing.T) {
		shop := newTestShop(t, uuid.New())
		user := newTestUser(t, tenantID)
		shop.OwnerID = user.ID

		err := AuthorizeShopLogin(user, role, shop, false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestAuthorizeShopLogin_OtherRoles(t *testing.T) {
	tenantID := uuid.New()
	role := &Role{Name: RoleTechnician}

	t.Run("allowed in same tenant", func(t *testing.T) {
		shop := newTestShop(t, tenantID)
		user := newTestUser(t, tenantID)

		assert.NoError(t, AuthorizeShopLogin(user, role, shop, false))
	})

	t.Run("allowed as owner across tenants", func(t *testing.T) {
		shop := newTestShop(t, uuid.New())
		user := newTestUser(t, tenantID)
		shop.OwnerID = user.ID

		assert.NoError(t, AuthorizeShopLogin(user, role, shop, false))
	})

	t.Run("allowed with explicit access across tenants", func(t *testing.T) {
		shop := newTestShop(t, uuid.New())
		user := newTestUser(t, tenantID)

		assert.NoError(t, AuthorizeShopLogin(user, role, shop, true))
	})

	t.Run("denied across tenants without ownership or grant", func(t *testing.T) {
		shop := newTestShop(t, uuid.New())
		user := newTestUser(t, tenantID)

		err := AuthorizeShopLogin(user, role, shop, false)
		require.Error(t, err)
		assert.Equal(t, ShopDeniedMessage, err.Error())
	})
}

func TestAuthorizeShopLogin_OrphanedRole(t *testing.T) {
	tenantID := uuid.New()
	err := AuthorizeShopLogin(newTestUser(t, tenantID), nil, newTestShop(t, tenantID), true)

	assert.ErrorIs(t, err, ErrRoleNotFound)
}
