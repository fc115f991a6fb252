// Package models contains GORM persistence models that map to database
// tables. They are kept apart from domain entities so the domain layer stays
// free of ORM tags; each model converts with ToDomain and a
// <Name>ModelFromDomain constructor.
//
// Files:
//   - base.go: shared columns (id, timestamps, version, tenant_id)
//   - identity.go: tenants, roles, users, shops, user_shop_access
//   - currency.go: currency_symbols, user_currency_preferences
//   - inventory.go: warehouses, stock, device_events
//   - repair.go: repairs, repair_items
//   - procurement.go: purchases, purchase_items
package models
