package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/partner"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVendorRepository is the GORM implementation of the vendor repository
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new repository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Save persists a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// FindByIDForTenant returns a vendor by ID within a tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	err := r.db.WithContext(ctx).
		First(&vendor, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByCodeForTenant returns a vendor by code within a tenant
func (r *GormVendorRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Vendor, error) {
	var vendor partner.Vendor
	err := r.db.WithContext(ctx).
		First(&vendor, "tenant_id = ? AND code = ?", tenantID, code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// ExistsByCodeForTenant reports whether a vendor with the code exists in the tenant
func (r *GormVendorRepository) ExistsByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.Vendor{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	return count > 0, err
}

// ListForTenant returns the tenant's vendors matching the filter
func (r *GormVendorRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*partner.Vendor, int64, error) {
	query := r.db.WithContext(ctx).Model(&partner.Vendor{}).Where("tenant_id = ?", tenantID)
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

	var vendors []*partner.Vendor
	err := applyPaging(query, filter).Find(&vendors).Error
	return vendors, total, err
}

// DeleteForTenant removes a vendor
func (r *GormVendorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&partner.Vendor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
