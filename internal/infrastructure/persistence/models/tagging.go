package models

import (
	"github.com/storefront/backend/internal/domain/tagging"
)

// TagModel is the persistence model for the Tag domain entity.
type TagModel struct {
	BaseModel
	Label string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag entity.
func (m *TagModel) ToDomain() *tagging.Tag {
	return &tagging.Tag{
		BaseEntity: m.BaseModel.ToDomain(),
		Label:      m.Label,
	}
}

// FromDomain populates the persistence model from a domain Tag entity.
func (m *TagModel) FromDomain(t *tagging.Tag) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Label = t.Label
}

// TagModelFromDomain creates a new persistence model from a domain Tag entity.
func TagModelFromDomain(t *tagging.Tag) *TagModel {
	m := &TagModel{}
	m.FromDomain(t)
	return m
}

// ContentTypeModel is the persisted kind descriptor. (app_label, model) is unique.
type ContentTypeModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	AppLabel string `gorm:"type:varchar(100);not null;uniqueIndex:idx_content_type_natural_key,priority:1"`
	Model    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_content_type_natural_key,priority:2"`
}

// TableName returns the table name for GORM
func (ContentTypeModel) TableName() string {
	return "content_types"
}

// ToDomain converts the persistence model to a domain ContentType.
func (m *ContentTypeModel) ToDomain() *tagging.ContentType {
	return &tagging.ContentType{
		ID:       m.ID,
		AppLabel: m.AppLabel,
		Model:    m.Model,
	}
}

// TaggedItemModel is the persistence model for a tag association.
// object_id is a weak reference; there is no foreign key to the target table.
type TaggedItemModel struct {
	BaseModel
	TagID         uint64            `gorm:"not null;index"`
	Tag           *TagModel         `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	ContentTypeID uint64            `gorm:"not null;index:idx_tagged_item_target,priority:1"`
	ContentType   *ContentTypeModel `gorm:"foreignKey:ContentTypeID;constraint:OnDelete:CASCADE"`
	ObjectID      uint64            `gorm:"not null;index:idx_tagged_item_target,priority:2"`
}

// TableName returns the table name for GORM
func (TaggedItemModel) TableName() string {
	return "tagged_items"
}

// ToDomain converts the persistence model to a domain TaggedItem.
// Tag and ContentType are set only when they were loaded.
func (m *TaggedItemModel) ToDomain() *tagging.TaggedItem {
	item := &tagging.TaggedItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		TagID:         m.TagID,
		ContentTypeID: m.ContentTypeID,
		ObjectID:      m.ObjectID,
	}
	if m.Tag != nil && m.Tag.ID != 0 {
		item.Tag = m.Tag.ToDomain()
	}
	if m.ContentType != nil && m.ContentType.ID != 0 {
		item.ContentType = m.ContentType.ToDomain()
	}
	return item
}

// FromDomain populates the persistence model from a domain TaggedItem.
// Associations are left empty so GORM does not upsert them.
func (m *TaggedItemModel) FromDomain(i *tagging.TaggedItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.TagID = i.TagID
	m.ContentTypeID = i.ContentTypeID
	m.ObjectID = i.ObjectID
}

// TaggedItemModelFromDomain creates a new persistence model from a domain TaggedItem.
func TaggedItemModelFromDomain(i *tagging.TaggedItem) *TaggedItemModel {
	m := &TaggedItemModel{}
	m.FromDomain(i)
	return m
}
