package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Per-entity sort whitelists. Sort fields arrive from query strings and
// are interpolated into ORDER BY, so anything outside the whitelist
// falls back to created_at.

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"full_name":     true,
	"status":        true,
	"last_login_at": true,
}

// RoleSortFields contains allowed sort fields for roles
var RoleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// BranchSortFields contains allowed sort fields for branches
var BranchSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"is_active":  true,
}

// AgentSortFields contains allowed sort fields for agents
var AgentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"branch_id":  true,
	"is_active":  true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"document_no": true,
	"phone":       true,
	"is_active":   true,
}

// CitySortFields contains allowed sort fields for cities
var CitySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"province":   true,
}

// CourierSortFields contains allowed sort fields for couriers
var CourierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"service_code": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"category":   true,
	"is_active":  true,
}

// PlanSortFields contains allowed sort fields for plans
var PlanSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"code":            true,
	"name":            true,
	"product_id":      true,
	"premium":         true,
	"cover_amount":    true,
	"duration_months": true,
	"is_active":       true,
}

// CouponSortFields contains allowed sort fields for coupons
var CouponSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"type":        true,
	"valid_from":  true,
	"valid_until": true,
	"redemptions": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_no":     true,
	"policy_no":    true,
	"client_id":    true,
	"agent_id":     true,
	"status":       true,
	"premium":      true,
	"total":        true,
	"approved_at":  true,
	"issued_at":    true,
	"delivered_at": true,
}
