package tagging

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/stretchr/testify/mock"
)

// MockTagRepository is a mock implementation of tagging.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uint64) (*tagging.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tagging.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tagging.Tag, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tagging.Tag), args.Error(1)
}

func (m *MockTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *tagging.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaggedItemRepository is a mock implementation of tagging.TaggedItemRepository
type MockTaggedItemRepository struct {
	mock.Mock
}

func (m *MockTaggedItemRepository) FindByID(ctx context.Context, id uint64) (*tagging.TaggedItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tagging.TaggedItem), args.Error(1)
}

func (m *MockTaggedItemRepository) FindByTarget(ctx context.Context, contentTypeID, objectID uint64) ([]tagging.TaggedItem, error) {
	args := m.Called(ctx, contentTypeID, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tagging.TaggedItem), args.Error(1)
}

func (m *MockTaggedItemRepository) FindByTag(ctx context.Context, tagID uint64) ([]tagging.TaggedItem, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).([]tagging.TaggedItem), args.Error(1)
}

func (m *MockTaggedItemRepository) Save(ctx context.Context, item *tagging.TaggedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTaggedItemRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContentTypeRepository is a mock implementation of tagging.ContentTypeRepository
type MockContentTypeRepository struct {
	mock.Mock
}

func (m *MockContentTypeRepository) GetOrCreate(ctx context.Context, appLabel, model string) (*tagging.ContentType, error) {
	args := m.Called(ctx, appLabel, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tagging.ContentType), args.Error(1)
}

func (m *MockContentTypeRepository) FindAll(ctx context.Context) ([]tagging.ContentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tagging.ContentType), args.Error(1)
}

// MockContentTypeCache is a mock implementation of tagging.ContentTypeCache
type MockContentTypeCache struct {
	mock.Mock
}

func (m *MockContentTypeCache) Get(ctx context.Context, kind tagging.EntityKind) (*tagging.ContentType, bool, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*tagging.ContentType), args.Bool(1), args.Error(2)
}

func (m *MockContentTypeCache) Set(ctx context.Context, kind tagging.EntityKind, ct *tagging.ContentType) error {
	args := m.Called(ctx, kind, ct)
	return args.Error(0)
}

func contentType(id uint64, kind tagging.EntityKind) *tagging.ContentType {
	return &tagging.ContentType{ID: id, AppLabel: tagging.AppLabel, Model: kind.Model()}
}

func persistedTag(id uint64, label string) *tagging.Tag {
	t := &tagging.Tag{Label: label}
	t.ID = id
	return t
}
