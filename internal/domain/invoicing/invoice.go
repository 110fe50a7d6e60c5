package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/compliance"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of a sales invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

// Invoice is a sales invoice. Every invoice carries exactly one scenario code
// drawn from the scenarios applicable to the issuing company's declared
// activity and sector combination. Lines, totals and the scenario code are
// mutable only while the invoice is a draft.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	ScenarioCode   string          `gorm:"type:varchar(10);not null;index"`
	BuyerName      string          `gorm:"type:varchar(200);not null"`
	BuyerTaxNumber string          `gorm:"type:varchar(50)"` // Empty for unregistered buyers
	BuyerAddress   string          `gorm:"type:text"`
	BuyerProvince  string          `gorm:"type:varchar(100)"`
	IssueDate      time.Time       `gorm:"not null"`
	Status         InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes          string          `gorm:"type:text"`
	IssuedAt       *time.Time
	VoidedAt       *time.Time
	VoidReason     string        `gorm:"type:text"`
	Lines          []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceLine is one line of an invoice. Amounts are computed from quantity,
// unit price and tax rate at the time the line is added and never recomputed
// afterwards.
type InvoiceLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber    int             `gorm:"not null"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode      string          `gorm:"type:varchar(50);not null"`
	Description   string          `gorm:"type:varchar(200);not null"`
	HSCode        string          `gorm:"type:varchar(20)"`
	UnitOfMeasure string          `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineSubtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTax       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// NewInvoice creates a draft invoice. The scenario code must be well formed
// and applicable to the issuing company; applicability against the company's
// declaration is the caller's responsibility since the company aggregate is
// not reachable from here.
func NewInvoice(tenantID uuid.UUID, invoiceNumber, scenarioCode, buyerName string, issueDate time.Time) (*Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if _, err := compliance.ParseScenarioCode(scenarioCode); err != nil {
		return nil, err
	}
	if buyerName == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer name cannot be empty")
	}
	if issueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ISSUE_DATE", "Issue date is required")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		ScenarioCode:        scenarioCode,
		BuyerName:           buyerName,
		IssueDate:           issueDate,
		Status:              InvoiceStatusDraft,
		Subtotal:            decimal.Zero,
		TaxAmount:           decimal.Zero,
		Total:               decimal.Zero,
		Lines:               []InvoiceLine{},
	}, nil
}

// SetBuyerDetails fills in optional buyer identification
func (inv *Invoice) SetBuyerDetails(taxNumber, address, province string) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be modified")
	}
	inv.BuyerTaxNumber = taxNumber
	inv.BuyerAddress = address
	inv.BuyerProvince = province
	inv.UpdatedAt = time.Now()
	return nil
}

// ChangeScenarioCode replaces the scenario code on a draft invoice
func (inv *Invoice) ChangeScenarioCode(scenarioCode string) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be modified")
	}
	if _, err := compliance.ParseScenarioCode(scenarioCode); err != nil {
		return err
	}
	inv.ScenarioCode = scenarioCode
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// LineInput carries the values needed to add an invoice line
type LineInput struct {
	ItemID        uuid.UUID
	ItemCode      string
	Description   string
	HSCode        string
	UnitOfMeasure string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxRate       decimal.Decimal
}

// AddLine appends a line and recomputes invoice totals. Line amounts round to
// 2 decimal places, half up, before entering the totals.
func (inv *Invoice) AddLine(input LineInput) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be modified")
	}
	if input.Description == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if !input.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if input.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_LINE", "Line tax rate must be between 0 and 100")
	}

	subtotal := input.Quantity.Mul(input.UnitPrice).Round(2)
	tax := subtotal.Mul(input.TaxRate).Div(decimal.NewFromInt(100)).Round(2)

	line := InvoiceLine{
		ID:            uuid.New(),
		InvoiceID:     inv.ID,
		LineNumber:    len(inv.Lines) + 1,
		ItemID:        input.ItemID,
		ItemCode:      input.ItemCode,
		Description:   input.Description,
		HSCode:        input.HSCode,
		UnitOfMeasure: input.UnitOfMeasure,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TaxRate:       input.TaxRate,
		LineSubtotal:  subtotal,
		LineTax:       tax,
		LineTotal:     subtotal.Add(tax),
		CreatedAt:     time.Now(),
	}
	inv.Lines = append(inv.Lines, line)
	inv.recomputeTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// RemoveLine removes a line by its line number and renumbers the rest
func (inv *Invoice) RemoveLine(lineNumber int) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be modified")
	}

	idx := -1
	for i, line := range inv.Lines {
		if line.LineNumber == lineNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", fmt.Sprintf("Invoice has no line %d", lineNumber))
	}

	inv.Lines = append(inv.Lines[:idx], inv.Lines[idx+1:]...)
	for i := range inv.Lines {
		inv.Lines[i].LineNumber = i + 1
	}
	inv.recomputeTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// Issue finalizes the invoice. Issued invoices are immutable except for Void.
func (inv *Invoice) Issue() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be issued")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot issue an invoice without lines")
	}

	now := time.Now()
	inv.Status = InvoiceStatusIssued
	inv.IssuedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// Void cancels an issued invoice. Drafts are deleted, not voided.
func (inv *Invoice) Void(reason string) error {
	if inv.Status != InvoiceStatusIssued {
		return shared.NewDomainError("NOT_ISSUED", "Only issued invoices can be voided")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason cannot be empty")
	}

	now := time.Now()
	inv.Status = InvoiceStatusVoided
	inv.VoidedAt = &now
	inv.VoidReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// IsDraft returns true if the invoice is still editable
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

func (inv *Invoice) recomputeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.LineSubtotal)
		tax = tax.Add(line.LineTax)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = tax
	inv.Total = subtotal.Add(tax)
}
