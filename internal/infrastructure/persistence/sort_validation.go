package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist.
// Returns defaultField if the input is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// orderClause builds a safe ORDER BY clause, falling back to fallback when the
// requested field is not allowed. The primary key breaks ties so paging is stable.
func orderClause(field, dir string, allowed map[string]bool, fallback string) string {
	f := ValidateSortField(field, allowed, "")
	if f == "" {
		return fallback
	}
	clause := f + " " + ValidateSortOrder(dir)
	if f != "id" {
		clause += ", id ASC"
	}
	return clause
}

// TagSortFields contains allowed sort fields for tags
var TagSortFields = map[string]bool{
	"id":    true,
	"label": true,
}

// CollectionSortFields contains allowed sort fields for collections
var CollectionSortFields = map[string]bool{
	"id":    true,
	"title": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"title":       true,
	"unit_price":  true,
	"last_update": true,
	"inventory":   true,
}

// PromotionSortFields contains allowed sort fields for promotions
var PromotionSortFields = map[string]bool{
	"id":          true,
	"description": true,
	"discount":    true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"membership": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"placed_at":      true,
	"payment_status": true,
}
