package models

import (
	"github.com/circtek/backend/internal/domain/currency"
	"github.com/google/uuid"
)

// CurrencySymbolModel maps currency_symbols. The single-default rule is
// enforced by a partial unique index in the SQL migration.
type CurrencySymbolModel struct {
	AggregateModel
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_currency_symbols_tenant_code,priority:1"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	Code      string     `gorm:"type:varchar(3);not null;uniqueIndex:idx_currency_symbols_tenant_code,priority:2"`
	Symbol    string     `gorm:"type:varchar(10);not null"`
	Name      string     `gorm:"type:varchar(100)"`
	IsDefault bool       `gorm:"not null;default:false"`
	IsActive  bool       `gorm:"not null;default:true"`
}

func (CurrencySymbolModel) TableName() string {
	return "currency_symbols"
}

func (m *CurrencySymbolModel) ToDomain() *currency.Symbol {
	return &currency.Symbol{
		TenantAggregateRoot: m.toTenantAggregate(m.TenantID, m.CreatedBy),
		Code:                m.Code,
		Symbol:              m.Symbol,
		Name:                m.Name,
		IsDefault:           m.IsDefault,
		IsActive:            m.IsActive,
	}
}

func CurrencySymbolModelFromDomain(s *currency.Symbol) *CurrencySymbolModel {
	m := &CurrencySymbolModel{
		TenantID:  s.TenantID,
		CreatedBy: s.CreatedBy,
		Code:      s.Code,
		Symbol:    s.Symbol,
		Name:      s.Name,
		IsDefault: s.IsDefault,
		IsActive:  s.IsActive,
	}
	m.fromAggregate(s.BaseAggregateRoot)
	return m
}

// CurrencyPreferenceModel maps user_currency_preferences
type CurrencyPreferenceModel struct {
	BaseModel
	TenantID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_currency_pref,priority:1"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_currency_pref,priority:2"`
	CurrencySymbolID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (CurrencyPreferenceModel) TableName() string {
	return "user_currency_preferences"
}

func (m *CurrencyPreferenceModel) ToDomain() *currency.Preference {
	return &currency.Preference{
		BaseEntity:       m.toEntity(),
		TenantID:         m.TenantID,
		UserID:           m.UserID,
		CurrencySymbolID: m.CurrencySymbolID,
	}
}

func CurrencyPreferenceModelFromDomain(p *currency.Preference) *CurrencyPreferenceModel {
	m := &CurrencyPreferenceModel{
		TenantID:         p.TenantID,
		UserID:           p.UserID,
		CurrencySymbolID: p.CurrencySymbolID,
	}
	m.fromEntity(p.BaseEntity)
	return m
}
