package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/purchasing"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRepository is the GORM implementation of the purchase repository
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new repository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Save persists a purchase with its lines
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *purchasing.Purchase) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(purchase).Error
}

// FindByIDForTenant returns a purchase with its lines by ID within a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.Purchase, error) {
	var purchase purchasing.Purchase
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number")
		}).
		First(&purchase, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// ListForTenant returns the tenant's purchases matching the filter
func (r *GormPurchaseRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*purchasing.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&purchasing.Purchase{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("vendor_invoice_no LIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if vendorID, ok := filter.Filters["vendor_id"]; ok {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []*purchasing.Purchase
	err := applyPaging(query, filter).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number")
		}).
		Find(&purchases).Error
	return purchases, total, err
}

// DeleteDraftForTenant removes a draft purchase and its lines
func (r *GormPurchaseRepository) DeleteDraftForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&purchasing.PurchaseLine{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ? AND status = ?", tenantID, id, purchasing.PurchaseStatusDraft).
			Delete(&purchasing.Purchase{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
