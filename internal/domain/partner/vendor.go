package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor is a supplier the company purchases from. Vendors may be registered
// taxpayers with their own tax number or unregistered cash suppliers.
type Vendor struct {
	shared.TenantAggregateRoot
	Code         string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_vendor_tenant_code,priority:2"`
	Name         string       `gorm:"type:varchar(200);not null"`
	TaxNumber    string       `gorm:"type:varchar(50)"` // Empty for unregistered vendors
	ContactName  string       `gorm:"type:varchar(100)"`
	ContactEmail string       `gorm:"type:varchar(200)"`
	ContactPhone string       `gorm:"type:varchar(50)"`
	Address      string       `gorm:"type:text"`
	Province     string       `gorm:"type:varchar(100)"`
	Status       VendorStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor for a company
func NewVendor(tenantID uuid.UUID, code, name string) (*Vendor, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Vendor code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Vendor code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}

	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Status:              VendorStatusActive,
	}, nil
}

// UpdateInfo updates the vendor's basic information
func (v *Vendor) UpdateInfo(name, taxNumber, address, province, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}

	v.Name = name
	v.TaxNumber = taxNumber
	v.Address = address
	v.Province = province
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// UpdateContact updates the vendor's contact information
func (v *Vendor) UpdateContact(contactName, email, phone string) {
	v.ContactName = contactName
	v.ContactEmail = email
	v.ContactPhone = phone
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Deactivate marks the vendor as inactive
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Vendor is already inactive")
	}
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Activate marks the vendor as active
func (v *Vendor) Activate() error {
	if v.Status == VendorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Vendor is already active")
	}
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// IsRegistered returns true if the vendor carries a tax registration number
func (v *Vendor) IsRegistered() bool {
	return v.TaxNumber != ""
}
