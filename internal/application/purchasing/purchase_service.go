package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/partner"
	"github.com/invoiceflow/backend/internal/domain/purchasing"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseLineRequest is one line of a purchase
type PurchaseLineRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreatePurchaseRequest records a purchase from a vendor
type CreatePurchaseRequest struct {
	VendorID        uuid.UUID             `json:"vendor_id" binding:"required"`
	VendorInvoiceNo string                `json:"vendor_invoice_no" binding:"required,max=50"`
	PurchaseDate    time.Time             `json:"purchase_date" binding:"required"`
	Notes           string                `json:"notes"`
	Lines           []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PurchaseLineResponse is the outward representation of a purchase line
type PurchaseLineResponse struct {
	LineNumber   int             `json:"line_number"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
	LineTax      decimal.Decimal `json:"line_tax"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// PurchaseResponse is the outward representation of a purchase
type PurchaseResponse struct {
	ID              uuid.UUID              `json:"id"`
	VendorID        uuid.UUID              `json:"vendor_id"`
	VendorInvoiceNo string                 `json:"vendor_invoice_no"`
	PurchaseDate    time.Time              `json:"purchase_date"`
	Status          string                 `json:"status"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	TaxAmount       decimal.Decimal        `json:"tax_amount"`
	Total           decimal.Decimal        `json:"total"`
	Notes           string                 `json:"notes,omitempty"`
	RecordedAt      *time.Time             `json:"recorded_at,omitempty"`
	Lines           []PurchaseLineResponse `json:"lines"`
}

// ListPurchasesResponse is a paginated purchase listing
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Total     int64              `json:"total"`
}

// PurchaseService records purchases for input tax accounting
type PurchaseService struct {
	purchases purchasing.PurchaseRepository
	vendors   partner.VendorRepository
	logger    *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchases purchasing.PurchaseRepository, vendors partner.VendorRepository, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		vendors:   vendors,
		logger:    logger,
	}
}

// Create builds a draft purchase against an active vendor
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive() {
		return nil, shared.NewDomainError("VENDOR_INACTIVE", "Purchases cannot be recorded against an inactive vendor")
	}

	purchase, err := purchasing.NewPurchase(tenantID, vendor.ID, req.VendorInvoiceNo, req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	purchase.Notes = req.Notes

	for _, line := range req.Lines {
		if err := purchase.AddLine(line.Description, line.Quantity, line.UnitPrice, line.TaxRate); err != nil {
			return nil, err
		}
	}

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("vendor_id", vendor.ID.String()))
	return toPurchaseResponse(purchase), nil
}

// Get returns a purchase by ID
func (s *PurchaseService) Get(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// List returns the company's purchases
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*ListPurchasesResponse, error) {
	purchases, total, err := s.purchases.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		out[i] = *toPurchaseResponse(p)
	}
	return &ListPurchasesResponse{Purchases: out, Total: total}, nil
}

// Record finalizes a draft purchase
func (s *PurchaseService) Record(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.Record(); err != nil {
		return nil, err
	}
	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// DeleteDraft removes a draft purchase
func (s *PurchaseService) DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error {
	purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !purchase.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchases can be deleted")
	}
	return s.purchases.DeleteDraftForTenant(ctx, tenantID, id)
}

func toPurchaseResponse(p *purchasing.Purchase) *PurchaseResponse {
	lines := make([]PurchaseLineResponse, len(p.Lines))
	for i, line := range p.Lines {
		lines[i] = PurchaseLineResponse{
			LineNumber:   line.LineNumber,
			Description:  line.Description,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			TaxRate:      line.TaxRate,
			LineSubtotal: line.LineSubtotal,
			LineTax:      line.LineTax,
			LineTotal:    line.LineTotal,
		}
	}

	return &PurchaseResponse{
		ID:              p.ID,
		VendorID:        p.VendorID,
		VendorInvoiceNo: p.VendorInvoiceNo,
		PurchaseDate:    p.PurchaseDate,
		Status:          string(p.Status),
		Subtotal:        p.Subtotal,
		TaxAmount:       p.TaxAmount,
		Total:           p.Total,
		Notes:           p.Notes,
		RecordedAt:      p.RecordedAt,
		Lines:           lines,
	}
}
