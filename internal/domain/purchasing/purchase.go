package purchasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the lifecycle status of a purchase record
type PurchaseStatus string

const (
	PurchaseStatusDraft    PurchaseStatus = "draft"
	PurchaseStatusRecorded PurchaseStatus = "recorded"
)

// Purchase is a record of goods or services bought from a vendor, kept for
// input tax accounting. Unlike sales invoices, purchases carry no scenario
// code; they reference the vendor's invoice number instead.
type Purchase struct {
	shared.TenantAggregateRoot
	VendorID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorInvoiceNo string          `gorm:"type:varchar(50);not null"`
	PurchaseDate    time.Time       `gorm:"not null"`
	Status          PurchaseStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes           string          `gorm:"type:text"`
	RecordedAt      *time.Time
	Lines           []PurchaseLine `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseLine is one line of a purchase record
type PurchaseLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber   int             `gorm:"not null"`
	Description  string          `gorm:"type:varchar(200);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineSubtotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTax      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// TableName returns the table name for GORM
func (PurchaseLine) TableName() string {
	return "purchase_lines"
}

// NewPurchase creates a draft purchase record
func NewPurchase(tenantID, vendorID uuid.UUID, vendorInvoiceNo string, purchaseDate time.Time) (*Purchase, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor is required")
	}
	vendorInvoiceNo = strings.TrimSpace(vendorInvoiceNo)
	if vendorInvoiceNo == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_INVOICE", "Vendor invoice number cannot be empty")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PURCHASE_DATE", "Purchase date is required")
	}

	return &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorID:            vendorID,
		VendorInvoiceNo:     vendorInvoiceNo,
		PurchaseDate:        purchaseDate,
		Status:              PurchaseStatusDraft,
		Subtotal:            decimal.Zero,
		TaxAmount:           decimal.Zero,
		Total:               decimal.Zero,
		Lines:               []PurchaseLine{},
	}, nil
}

// AddLine appends a line and recomputes totals, rounding amounts to 2 places
func (p *Purchase) AddLine(description string, quantity, unitPrice, taxRate decimal.Decimal) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchases can be modified")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_LINE", "Line tax rate must be between 0 and 100")
	}

	subtotal := quantity.Mul(unitPrice).Round(2)
	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

	p.Lines = append(p.Lines, PurchaseLine{
		ID:           uuid.New(),
		PurchaseID:   p.ID,
		LineNumber:   len(p.Lines) + 1,
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TaxRate:      taxRate,
		LineSubtotal: subtotal,
		LineTax:      tax,
		LineTotal:    subtotal.Add(tax),
		CreatedAt:    time.Now(),
	})
	p.recomputeTotals()
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveLine removes a line by its line number and renumbers the rest
func (p *Purchase) RemoveLine(lineNumber int) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchases can be modified")
	}

	idx := -1
	for i, line := range p.Lines {
		if line.LineNumber == lineNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", fmt.Sprintf("Purchase has no line %d", lineNumber))
	}

	p.Lines = append(p.Lines[:idx], p.Lines[idx+1:]...)
	for i := range p.Lines {
		p.Lines[i].LineNumber = i + 1
	}
	p.recomputeTotals()
	p.UpdatedAt = time.Now()
	return nil
}

// Record finalizes the purchase for input tax accounting
func (p *Purchase) Record() error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchases can be recorded")
	}
	if len(p.Lines) == 0 {
		return shared.NewDomainError("EMPTY_PURCHASE", "Cannot record a purchase without lines")
	}

	now := time.Now()
	p.Status = PurchaseStatusRecorded
	p.RecordedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// IsDraft returns true if the purchase is still editable
func (p *Purchase) IsDraft() bool {
	return p.Status == PurchaseStatusDraft
}

func (p *Purchase) recomputeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range p.Lines {
		subtotal = subtotal.Add(line.LineSubtotal)
		tax = tax.Add(line.LineTax)
	}
	p.Subtotal = subtotal
	p.TaxAmount = tax
	p.Total = subtotal.Add(tax)
}
