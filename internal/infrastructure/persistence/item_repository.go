package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/catalog"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository is the GORM implementation of the item repository
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByIDForTenant returns an item by ID within a tenant
func (r *GormItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	err := r.db.WithContext(ctx).
		First(&item, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCodeForTenant returns an item by code within a tenant
func (r *GormItemRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Item, error) {
	var item catalog.Item
	err := r.db.WithContext(ctx).
		First(&item, "tenant_id = ? AND code = ?", tenantID, code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ExistsByCodeForTenant reports whether an item with the code exists in the tenant
func (r *GormItemRepository) ExistsByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Item{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	return count > 0, err
}

// ListForTenant returns the tenant's items matching the filter
func (r *GormItemRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Item{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name LIKE ? OR code LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*catalog.Item
	err := applyPaging(query, filter).Find(&items).Error
	return items, total, err
}
