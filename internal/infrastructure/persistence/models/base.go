package models

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// BaseModel provides the auto-increment primary key shared by all tables.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
}

// AllModels lists every model in dependency order, for AutoMigrate in
// development and tests. Production schemas come from the SQL migrations.
func AllModels() []any {
	return []any{
		&ContentTypeModel{},
		&TagModel{},
		&TaggedItemModel{},
		&CollectionModel{},
		&PromotionModel{},
		&ProductModel{},
		&ProductPromotionModel{},
		&ReviewModel{},
		&CustomerModel{},
		&AddressModel{},
		&OrderModel{},
		&OrderItemModel{},
		&CartModel{},
		&CartItemModel{},
	}
}
