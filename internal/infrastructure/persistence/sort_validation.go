package persistence

import (
	"strings"

	"github.com/circtek/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if it is whitelisted, else defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

var (
	commonSortFields = map[string]bool{"created_at": true, "updated_at": true}

	userSortFields = withCommon("name", "user_name", "email", "status", "last_login_at")
	nameSortFields = withCommon("name", "status")

	currencySymbolSortFields = withCommon("code", "name", "is_default", "is_active")

	stockSortFields       = withCommon("sku", "quantity", "warehouse_id", "is_part")
	deviceEventSortFields = map[string]bool{"created_at": true, "event_type": true, "device_id": true}

	repairSortFields   = withCommon("device_id", "status", "completed_at")
	purchaseSortFields = withCommon("purchase_order_no", "supplier_name", "status", "expected_delivery_date")
)

func withCommon(fields ...string) map[string]bool {
	out := make(map[string]bool, len(fields)+len(commonSortFields))
	for k := range commonSortFields {
		out[k] = true
	}
	for _, f := range fields {
		out[f] = true
	}
	return out
}

// paginate applies whitelisted ordering and page bounds from filter
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.
		Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// likePattern builds a case-insensitive LIKE pattern for search terms
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(replacer.Replace(strings.TrimSpace(search))) + "%"
}
