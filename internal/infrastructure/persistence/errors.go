package persistence

import (
	"errors"
	"fmt"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errConcurrentModification is returned when a versioned update finds the
// row already moved past the version the aggregate was loaded at.
var errConcurrentModification = shared.NewDomainError("CONFLICT", "The record has been modified by another request")

// missingOrStale explains a versioned write that matched no row: the row is
// either gone or at another version.
func missingOrStale(tx *gorm.DB, model any, scope func(*gorm.DB) *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(model).Scopes(scope).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate("check record", err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return errConcurrentModification
}

// translate maps GORM errors onto domain errors. Anything unrecognised is
// wrapped with the operation name.
func translate(op string, err error) error {
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInUse
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
