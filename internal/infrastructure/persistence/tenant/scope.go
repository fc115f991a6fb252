// Package tenant provides multi-tenant database scoping for GORM.
//
// The tenant ID is read from the request context (set by the JWT
// middleware) and applied as a tenant_id condition on every scoped query.
// Requests made by a super_admin carry a cross-tenant marker and are left
// unfiltered.
//
// Usage:
//
//	db := tenant.NewTenantDB(gormDB)
//	db.WithContext(ctx).Find(&stock) // WHERE "stock"."tenant_id" = '...'
package tenant

import (
	"context"
	"errors"

	"github.com/circtek/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

type crossTenantKey struct{}

// WithCrossTenant marks ctx as allowed to read and write every tenant's rows
func WithCrossTenant(ctx context.Context) context.Context {
	return context.WithValue(ctx, crossTenantKey{}, true)
}

// IsCrossTenant reports whether ctx bypasses tenant scoping
func IsCrossTenant(ctx context.Context) bool {
	v, _ := ctx.Value(crossTenantKey{}).(bool)
	return v
}

// Scope filters the current table by tenant ID
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "tenant_id"},
			Value:  tenantID,
		})
	}
}

// TenantDB wraps GORM DB with automatic tenant scoping
type TenantDB struct {
	db       *gorm.DB
	required bool
}

// NewTenantDB creates a TenantDB that rejects queries without a tenant
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db, required: true}
}

// DB returns the underlying GORM DB without tenant scoping.
// Only for global tables (tenants, roles) and pre-authentication lookups.
func (t *TenantDB) DB() *gorm.DB {
	return t.db
}

// WithContext returns a GORM DB bound to ctx and scoped to its tenant
func (t *TenantDB) WithContext(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx).Scopes(t.ScopeFor(ctx))
}

// ScopeFor returns the tenant scope for ctx so it can be applied inside a
// transaction. A missing or malformed tenant makes the query fail.
func (t *TenantDB) ScopeFor(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	if IsCrossTenant(ctx) {
		return func(db *gorm.DB) *gorm.DB { return db }
	}

	raw := logger.GetTenantID(ctx)
	if raw == "" {
		if !t.required {
			return func(db *gorm.DB) *gorm.DB { return db }
		}
		return failWith(ErrTenantIDRequired)
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return failWith(ErrInvalidTenantID)
	}
	return Scope(tenantID)
}

func failWith(err error) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		_ = db.AddError(err)
		return db
	}
}

// Transaction runs fn in a transaction bound to ctx. The tx passed to fn is
// not scoped; apply ScopeFor(ctx) on tenant tables.
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if !IsCrossTenant(ctx) && t.required && logger.GetTenantID(ctx) == "" {
		return ErrTenantIDRequired
	}
	return t.db.WithContext(ctx).Transaction(fn)
}

// Optional returns a copy that lets queries without a tenant through
// unfiltered. Used by system tooling that passes explicit tenant filters.
func (t *TenantDB) Optional() *TenantDB {
	return &TenantDB{db: t.db, required: false}
}
