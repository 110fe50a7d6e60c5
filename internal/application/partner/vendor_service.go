package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/partner"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateVendorRequest creates a vendor
type CreateVendorRequest struct {
	Code         string `json:"code" binding:"required,max=50"`
	Name         string `json:"name" binding:"required,max=200"`
	TaxNumber    string `json:"tax_number" binding:"max=50"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	Address      string `json:"address"`
	Province     string `json:"province" binding:"max=100"`
	Notes        string `json:"notes"`
}

// UpdateVendorRequest updates a vendor
type UpdateVendorRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	TaxNumber    string `json:"tax_number" binding:"max=50"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	Address      string `json:"address"`
	Province     string `json:"province" binding:"max=100"`
	Notes        string `json:"notes"`
}

// VendorResponse is the outward representation of a vendor
type VendorResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	TaxNumber    string    `json:"tax_number,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Province     string    `json:"province,omitempty"`
	Status       string    `json:"status"`
	Registered   bool      `json:"registered"`
	Notes        string    `json:"notes,omitempty"`
}

// ListVendorsResponse is a paginated vendor listing
type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
	Total   int64            `json:"total"`
}

// VendorService manages the company's vendors
type VendorService struct {
	vendors partner.VendorRepository
	logger  *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(vendors partner.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendors: vendors,
		logger:  logger,
	}
}

// Create adds a vendor to the company
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	exists, err := s.vendors.ExistsByCodeForTenant(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A vendor with this code already exists")
	}

	vendor, err := partner.NewVendor(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	vendor.TaxNumber = req.TaxNumber
	vendor.Address = req.Address
	vendor.Province = req.Province
	vendor.Notes = req.Notes
	vendor.UpdateContact(req.ContactName, req.ContactEmail, req.ContactPhone)

	if err := s.vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("code", vendor.Code))
	return toVendorResponse(vendor), nil
}

// Get returns a vendor by ID
func (s *VendorService) Get(ctx context.Context, tenantID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List returns the company's vendors
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*ListVendorsResponse, error) {
	vendors, total, err := s.vendors.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		out[i] = *toVendorResponse(v)
	}
	return &ListVendorsResponse{Vendors: out, Total: total}, nil
}

// Update updates a vendor's details
func (s *VendorService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.UpdateInfo(req.Name, req.TaxNumber, req.Address, req.Province, req.Notes); err != nil {
		return nil, err
	}
	vendor.UpdateContact(req.ContactName, req.ContactEmail, req.ContactPhone)

	if err := s.vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Deactivate marks a vendor inactive
func (s *VendorService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := vendor.Deactivate(); err != nil {
		return err
	}
	return s.vendors.Save(ctx, vendor)
}

// Activate marks a vendor active
func (s *VendorService) Activate(ctx context.Context, tenantID, id uuid.UUID) error {
	vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := vendor.Activate(); err != nil {
		return err
	}
	return s.vendors.Save(ctx, vendor)
}

func toVendorResponse(v *partner.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:           v.ID,
		Code:         v.Code,
		Name:         v.Name,
		TaxNumber:    v.TaxNumber,
		ContactName:  v.ContactName,
		ContactEmail: v.ContactEmail,
		ContactPhone: v.ContactPhone,
		Address:      v.Address,
		Province:     v.Province,
		Status:       string(v.Status),
		Registered:   v.IsRegistered(),
		Notes:        v.Notes,
	}
}
