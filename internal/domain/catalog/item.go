package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the status of a catalog item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusArchived ItemStatus = "archived"
)

// Item is a sellable product or service in the company's catalog. The HS code
// and unit of measure flow onto invoice lines for tax reporting; the tax rate
// is the default applied when a line does not override it.
type Item struct {
	shared.TenantAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_item_tenant_code,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	HSCode        string          `gorm:"type:varchar(20)"`
	UnitOfMeasure string          `gorm:"type:varchar(20);not null;default:'PCS'"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"` // Percentage, e.g. 18.00
	Status        ItemStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(tenantID uuid.UUID, code, name, unitOfMeasure string, unitPrice, taxRate decimal.Decimal) (*Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	if unitOfMeasure == "" {
		unitOfMeasure = "PCS"
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		UnitOfMeasure:       unitOfMeasure,
		UnitPrice:           unitPrice,
		TaxRate:             taxRate,
		Status:              ItemStatusActive,
	}, nil
}

// UpdateInfo updates the item's descriptive fields
func (i *Item) UpdateInfo(name, description, hsCode, unitOfMeasure string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}

	i.Name = name
	i.Description = description
	i.HSCode = hsCode
	if unitOfMeasure != "" {
		i.UnitOfMeasure = unitOfMeasure
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// UpdatePricing updates the item's default price and tax rate
func (i *Item) UpdatePricing(unitPrice, taxRate decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	i.UnitPrice = unitPrice
	i.TaxRate = taxRate
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Archive removes the item from active use without deleting history
func (i *Item) Archive() error {
	if i.Status == ItemStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Item is already archived")
	}
	i.Status = ItemStatusArchived
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Restore returns an archived item to active use
func (i *Item) Restore() error {
	if i.Status == ItemStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Item is already active")
	}
	i.Status = ItemStatusActive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsActive returns true if the item can be placed on new documents
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}
