package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	appcompliance "github.com/invoiceflow/backend/internal/application/compliance"
	"github.com/invoiceflow/backend/internal/domain/catalog"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/invoicing"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceLineRequest is one line of a create request. Unit price and tax rate
// default to the catalog item's values when omitted.
type InvoiceLineRequest struct {
	ItemID    uuid.UUID        `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}

// CreateInvoiceRequest creates a draft invoice
type CreateInvoiceRequest struct {
	ScenarioCode   string               `json:"scenario_code" binding:"required"`
	BuyerName      string               `json:"buyer_name" binding:"required,max=200"`
	BuyerTaxNumber string               `json:"buyer_tax_number" binding:"max=50"`
	BuyerAddress   string               `json:"buyer_address"`
	BuyerProvince  string               `json:"buyer_province" binding:"max=100"`
	IssueDate      time.Time            `json:"issue_date" binding:"required"`
	Notes          string               `json:"notes"`
	Lines          []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// VoidInvoiceRequest voids an issued invoice
type VoidInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceLineResponse is the outward representation of an invoice line
type InvoiceLineResponse struct {
	LineNumber    int             `json:"line_number"`
	ItemCode      string          `json:"item_code"`
	Description   string          `json:"description"`
	HSCode        string          `json:"hs_code,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	LineSubtotal  decimal.Decimal `json:"line_subtotal"`
	LineTax       decimal.Decimal `json:"line_tax"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// InvoiceResponse is the outward representation of an invoice
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	ScenarioCode   string                `json:"scenario_code"`
	BuyerName      string                `json:"buyer_name"`
	BuyerTaxNumber string                `json:"buyer_tax_number,omitempty"`
	BuyerAddress   string                `json:"buyer_address,omitempty"`
	BuyerProvince  string                `json:"buyer_province,omitempty"`
	IssueDate      time.Time             `json:"issue_date"`
	Status         string                `json:"status"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	Total          decimal.Decimal       `json:"total"`
	Notes          string                `json:"notes,omitempty"`
	IssuedAt       *time.Time            `json:"issued_at,omitempty"`
	VoidedAt       *time.Time            `json:"voided_at,omitempty"`
	VoidReason     string                `json:"void_reason,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines"`
}

// ListInvoicesResponse is a paginated invoice listing
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
}

// InvoiceService creates, issues and voids sales invoices. Scenario codes on
// new invoices are checked against the scenarios applicable to the issuing
// company's declared activities and sectors.
type InvoiceService struct {
	invoices  invoicing.InvoiceRepository
	companies identity.CompanyRepository
	items     catalog.ItemRepository
	scenarios *appcompliance.ScenarioService
	logger    *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoices invoicing.InvoiceRepository,
	companies identity.CompanyRepository,
	items catalog.ItemRepository,
	scenarios *appcompliance.ScenarioService,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		companies: companies,
		items:     items,
		scenarios: scenarios,
		logger:    logger,
	}
}

// Create builds a draft invoice from catalog items. The scenario code must be
// among the codes resolved for the company's declaration; in degraded mode
// any well-formed code is accepted and the invoice is still created.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	company, err := s.companies.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewDomainError("COMPANY_SUSPENDED", "Suspended companies cannot issue invoices")
	}

	lookup, err := s.scenarios.Lookup(ctx, appcompliance.LookupRequest{
		BusinessActivities: company.ActivityList(),
		Sectors:            company.SectorList(),
	})
	if err != nil {
		return nil, err
	}
	if !lookup.Degraded && !contains(lookup.ScenarioCodes, req.ScenarioCode) {
		return nil, shared.NewDomainError("SCENARIO_NOT_APPLICABLE",
			fmt.Sprintf("Scenario %s is not applicable to this company's declared activities and sectors", req.ScenarioCode))
	}

	seq, err := s.invoices.NextSequenceForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("INV-%d-%06d", req.IssueDate.Year(), seq)

	invoice, err := invoicing.NewInvoice(tenantID, number, req.ScenarioCode, req.BuyerName, req.IssueDate)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetBuyerDetails(req.BuyerTaxNumber, req.BuyerAddress, req.BuyerProvince); err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	for _, lineReq := range req.Lines {
		item, err := s.items.FindByIDForTenant(ctx, tenantID, lineReq.ItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsActive() {
			return nil, shared.NewDomainError("ITEM_ARCHIVED",
				fmt.Sprintf("Item %s is archived and cannot be invoiced", item.Code))
		}

		unitPrice := item.UnitPrice
		if lineReq.UnitPrice != nil {
			unitPrice = *lineReq.UnitPrice
		}
		taxRate := item.TaxRate
		if lineReq.TaxRate != nil {
			taxRate = *lineReq.TaxRate
		}

		if err := invoice.AddLine(invoicing.LineInput{
			ItemID:        item.ID,
			ItemCode:      item.Code,
			Description:   item.Name,
			HSCode:        item.HSCode,
			UnitOfMeasure: item.UnitOfMeasure,
			Quantity:      lineReq.Quantity,
			UnitPrice:     unitPrice,
			TaxRate:       taxRate,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("scenario_code", invoice.ScenarioCode),
		zap.Bool("degraded_resolution", lookup.Degraded))
	return toInvoiceResponse(invoice), nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List returns the company's invoices
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*ListInvoicesResponse, error) {
	invoices, total, err := s.invoices.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = *toInvoiceResponse(inv)
	}
	return &ListInvoicesResponse{Invoices: out, Total: total}, nil
}

// Issue finalizes a draft invoice
func (s *InvoiceService) Issue(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Issue(); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice issued",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber))
	return toInvoiceResponse(invoice), nil
}

// Void cancels an issued invoice
func (s *InvoiceService) Void(ctx context.Context, tenantID, id uuid.UUID, req VoidInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(req.Reason); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice voided",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("reason", req.Reason))
	return toInvoiceResponse(invoice), nil
}

// DeleteDraft removes a draft invoice
func (s *InvoiceService) DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error {
	invoice, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !invoice.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be deleted")
	}
	return s.invoices.DeleteDraftForTenant(ctx, tenantID, id)
}

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func toInvoiceResponse(inv *invoicing.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			LineNumber:    line.LineNumber,
			ItemCode:      line.ItemCode,
			Description:   line.Description,
			HSCode:        line.HSCode,
			UnitOfMeasure: line.UnitOfMeasure,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TaxRate:       line.TaxRate,
			LineSubtotal:  line.LineSubtotal,
			LineTax:       line.LineTax,
			LineTotal:     line.LineTotal,
		}
	}

	return &InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		ScenarioCode:   inv.ScenarioCode,
		BuyerName:      inv.BuyerName,
		BuyerTaxNumber: inv.BuyerTaxNumber,
		BuyerAddress:   inv.BuyerAddress,
		BuyerProvince:  inv.BuyerProvince,
		IssueDate:      inv.IssueDate,
		Status:         string(inv.Status),
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Notes:          inv.Notes,
		IssuedAt:       inv.IssuedAt,
		VoidedAt:       inv.VoidedAt,
		VoidReason:     inv.VoidReason,
		Lines:          lines,
	}
}
