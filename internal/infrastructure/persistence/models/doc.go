// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model carries ToDomain and
// FromDomain mappers and repositories only ever read or write models.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - tagging.go: tags, content types and tagged items
//   - catalog.go: collections, promotions, products, reviews
//   - partner.go: customers, addresses
//   - trade.go: orders, order items, carts, cart items
package models
