package tenant

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type testModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"size:100"`
}

func (testModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func tenantContext(tenantID string) context.Context {
	return logger.WithTenantID(context.Background(), tenantID)
}

func TestTenantDB_WithContext(t *testing.T) {
	t.Run("scopes query to the context tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE name = \$1 AND "test_models"."tenant_id" = \$2`).
			WithArgs("x", tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		var rows []testModel
		err := NewTenantDB(db).WithContext(tenantContext(tenantID.String())).
			Where("name = ?", "x").Find(&rows).Error
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors when tenant is missing", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		var rows []testModel
		err := NewTenantDB(db).WithContext(context.Background()).Find(&rows).Error
		assert.ErrorIs(t, err, ErrTenantIDRequired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors on malformed tenant", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		var rows []testModel
		err := NewTenantDB(db).WithContext(tenantContext("not-a-uuid")).Find(&rows).Error
		assert.ErrorIs(t, err, ErrInvalidTenantID)
	})

	t.Run("cross tenant context is not filtered", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models"$`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		ctx := WithCrossTenant(tenantContext(uuid.NewString()))
		var rows []testModel
		require.NoError(t, NewTenantDB(db).WithContext(ctx).Find(&rows).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("optional scope lets tenantless queries through", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models"$`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

		var rows []testModel
		require.NoError(t, NewTenantDB(db).Optional().WithContext(context.Background()).Find(&rows).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTenantDB_Transaction(t *testing.T) {
	t.Run("refuses to start without tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		err := NewTenantDB(db).Transaction(context.Background(), func(tx *gorm.DB) error { return nil })
		assert.ErrorIs(t, err, ErrTenantIDRequired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies scope inside the transaction", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		tenantID := uuid.New()
		ctx := tenantContext(tenantID.String())
		tdb := NewTenantDB(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "test_models" SET "name"=\$1 WHERE id = \$2 AND "test_models"."tenant_id" = \$3`).
			WithArgs("renamed", sqlmock.AnyArg(), tenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tdb.Transaction(ctx, func(tx *gorm.DB) error {
			return tx.Model(&testModel{}).Scopes(tdb.ScopeFor(ctx)).
				Where("id = ?", uuid.New()).Update("name", "renamed").Error
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrossTenantMarker(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsCrossTenant(ctx))
	assert.True(t, IsCrossTenant(WithCrossTenant(ctx)))
}
