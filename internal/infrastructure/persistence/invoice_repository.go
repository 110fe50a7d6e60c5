package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/invoicing"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceSequence holds the per-tenant invoice numbering counter
type InvoiceSequence struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	NextValue int64     `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

// GormInvoiceRepository is the GORM implementation of the invoice repository
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new repository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save persists an invoice with its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(invoice).Error
}

// FindByIDForTenant returns an invoice with its lines by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number")
		}).
		First(&invoice, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumberForTenant returns an invoice by its number within a tenant
func (r *GormInvoiceRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number")
		}).
		First(&invoice, "tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// ExistsByNumberForTenant reports whether an invoice with the number exists
func (r *GormInvoiceRepository) ExistsByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// ListForTenant returns the tenant's invoices matching the filter. Lines are
// loaded for each returned invoice.
func (r *GormInvoiceRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*invoicing.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&invoicing.Invoice{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ? OR buyer_name LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if code, ok := filter.Filters["scenario_code"]; ok {
		query = query.Where("scenario_code = ?", code)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []*invoicing.Invoice
	err := applyPaging(query, filter).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number")
		}).
		Find(&invoices).Error
	return invoices, total, err
}

// DeleteDraftForTenant removes a draft invoice and its lines
func (r *GormInvoiceRepository) DeleteDraftForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&invoicing.InvoiceLine{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ? AND status = ?", tenantID, id, invoicing.InvoiceStatusDraft).
			Delete(&invoicing.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextSequenceForTenant atomically increments and returns the tenant's
// invoice numbering counter
func (r *GormInvoiceRepository) NextSequenceForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq InvoiceSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "tenant_id = ?", tenantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = InvoiceSequence{TenantID: tenantID, NextValue: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		value = seq.NextValue
		seq.NextValue++
		return tx.Save(&seq).Error
	})
	return value, err
}
