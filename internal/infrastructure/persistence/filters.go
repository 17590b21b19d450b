package persistence

import (
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// applySearch adds a case-insensitive substring match across the given
// columns. An empty search term leaves the query untouched.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conditions[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(conditions, " OR "), args...)
}

// applyActive narrows to the active flag when the filter sets one
func applyActive(query *gorm.DB, isActive *bool) *gorm.DB {
	if isActive == nil {
		return query
	}
	return query.Where("is_active = ?", *isActive)
}

// applySort orders by a whitelisted column. Unknown columns fall back
// to created_at.
func applySort(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPagination slices the query to the filter's page
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
