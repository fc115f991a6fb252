package persistence

import (
	"testing"

	"github.com/circtek/backend/internal/domain/currency"
	"github.com/circtek/backend/internal/domain/identity"
	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, tenantID uuid.UUID, userName, email string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(tenantID, uuid.New(), "Test User", userName, email, "password123")
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	tenantID := uuid.New()
	ctx := tenantCtx(tenantID)

	u := newTestUser(t, tenantID, "Jane.Doe", "Jane@Example.com")
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", found.UserName)
	assert.Equal(t, "jane@example.com", found.Email)
	assert.True(t, found.VerifyPassword("password123"))

	_, err = repo.FindByID(tenantCtx(uuid.New()), u.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.FindByIDUnscoped(tenantCtx(uuid.New()), u.ID)
	assert.NoError(t, err)

	byName, err := repo.FindByIdentifier(ctx, "  JANE.DOE ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	byEmail, err := repo.FindByIdentifier(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	_, err = repo.FindByIdentifier(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUserRepository_UniqueAcrossTenants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	tenantID, otherTenant := uuid.New(), uuid.New()
	ctx := tenantCtx(tenantID)

	u := newTestUser(t, tenantID, "operator", "operator@example.com")
	require.NoError(t, repo.Create(ctx, u))

	err := repo.Create(tenantCtx(otherTenant), newTestUser(t, otherTenant, "operator", "other@example.com"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	err = repo.Create(tenantCtx(otherTenant), newTestUser(t, otherTenant, "other", "operator@example.com"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	exists, err := repo.ExistsByUserName(ctx, "OPERATOR", nil)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByUserName(ctx, "operator", &u.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "Operator@Example.com", nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	tenantID := uuid.New()
	ctx := tenantCtx(tenantID)

	u := newTestUser(t, tenantID, "tech-1", "tech1@example.com")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, u.Rename("Bench Technician"))
	require.NoError(t, u.SetStatus(identity.UserStatusInactive))
	require.NoError(t, repo.Update(ctx, u))

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bench Technician", found.Name)
	assert.Equal(t, identity.UserStatusInactive, found.Status)

	assert.ErrorIs(t, repo.Update(tenantCtx(uuid.New()), u), shared.ErrNotFound)

	inactive := identity.UserStatusInactive
	users, total, err := repo.FindAll(ctx, identity.UserFilter{Filter: shared.DefaultFilter(), Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, u.ID, users[0].ID)
}

func TestUserRepository_DeleteRemovesGrantsAndPreference(t *testing.T) {
	db := setupTestDB(t)
	users := NewGormUserRepository(db)
	shops := NewGormShopRepository(db)
	symbols := NewGormCurrencySymbolRepository(db)
	prefs := NewGormCurrencyPreferenceRepository(db)
	tenantID := uuid.New()
	ctx := tenantCtx(tenantID)

	u := newTestUser(t, tenantID, "leaver", "leaver@example.com")
	require.NoError(t, users.Create(ctx, u))

	shop, err := identity.NewShop(tenantID, uuid.New(), "Front Desk")
	require.NoError(t, err)
	require.NoError(t, shops.Create(ctx, shop))
	require.NoError(t, shops.GrantAccess(ctx, identity.NewShopAccess(shop, u.ID)))

	eur, err := currency.NewSymbol(tenantID, "EUR", "€", "")
	require.NoError(t, err)
	require.NoError(t, symbols.Save(ctx, eur))
	pref, err := currency.NewPreference(tenantID, u.ID, eur)
	require.NoError(t, err)
	require.NoError(t, prefs.Save(ctx, pref))

	assert.ErrorIs(t, users.Delete(tenantCtx(uuid.New()), u.ID), shared.ErrNotFound)
	require.NoError(t, users.Delete(ctx, u.ID))

	has, err := shops.HasAccess(ctx, shop.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, has)
	_, err = prefs.FindByUser(ctx, tenantID, u.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
