package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContentTypeRepository implements tagging.ContentTypeRepository using GORM
type GormContentTypeRepository struct {
	db *gorm.DB
}

// NewGormContentTypeRepository creates a new GormContentTypeRepository
func NewGormContentTypeRepository(db *gorm.DB) *GormContentTypeRepository {
	return &GormContentTypeRepository{db: db}
}

// GetOrCreate inserts (appLabel, model) unless it already exists and returns the stored row.
// A concurrent insert of the same key is absorbed by ON CONFLICT DO NOTHING, so every
// caller reads back the same id.
func (r *GormContentTypeRepository) GetOrCreate(ctx context.Context, appLabel, model string) (*tagging.ContentType, error) {
	db := r.db.WithContext(ctx)

	insert := models.ContentTypeModel{AppLabel: appLabel, Model: model}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_label"}, {Name: "model"}},
		DoNothing: true,
	}).Create(&insert).Error
	if err != nil {
		return nil, err
	}

	var stored models.ContentTypeModel
	if err := db.Where("app_label = ? AND model = ?", appLabel, model).Take(&stored).Error; err != nil {
		return nil, err
	}
	return stored.ToDomain(), nil
}

// FindAll lists every registered descriptor ordered by id
func (r *GormContentTypeRepository) FindAll(ctx context.Context) ([]tagging.ContentType, error) {
	var ms []models.ContentTypeModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]tagging.ContentType, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}
