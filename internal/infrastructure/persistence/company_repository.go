package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCompanyRepository is the GORM implementation of the company repository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new repository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Save persists a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// FindByID returns a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var company identity.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByTaxNumber returns a company by its tax registration number
func (r *GormCompanyRepository) FindByTaxNumber(ctx context.Context, taxNumber string) (*identity.Company, error) {
	var company identity.Company
	err := r.db.WithContext(ctx).First(&company, "tax_number = ?", taxNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// ExistsByTaxNumber reports whether a company with the tax number exists
func (r *GormCompanyRepository) ExistsByTaxNumber(ctx context.Context, taxNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Company{}).
		Where("tax_number = ?", taxNumber).Count(&count).Error
	return count > 0, err
}

// List returns companies matching the filter
func (r *GormCompanyRepository) List(ctx context.Context, filter shared.Filter) ([]*identity.Company, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.Company{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []*identity.Company
	err := applyPaging(query, filter).Find(&companies).Error
	return companies, total, err
}

// applyPaging applies ordering and pagination from the filter
func applyPaging(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		dir := "ASC"
		if filter.OrderDir == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
