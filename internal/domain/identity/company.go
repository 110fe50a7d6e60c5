package identity

import (
	"strings"
	"time"

	"github.com/invoiceflow/backend/internal/domain/compliance"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// CompanyStatus represents the lifecycle status of a company
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// Company is a registered taxpayer and the tenant boundary of the system:
// every other aggregate is scoped by the company's ID. A company declares the
// business activities and sectors that drive scenario applicability on its
// invoices.
type Company struct {
	shared.BaseAggregateRoot
	Name               string        `gorm:"type:varchar(200);not null"`
	TaxNumber          string        `gorm:"type:varchar(50);not null;uniqueIndex"` // National tax registration number
	Address            string        `gorm:"type:text"`
	Province           string        `gorm:"type:varchar(100)"`
	Status             CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
	BusinessActivities string        `gorm:"type:text;not null"` // Comma-separated closed-enum labels
	Sectors            string        `gorm:"type:text;not null"` // Comma-separated closed-enum labels
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company with a validated activity/sector declaration.
// The combination must resolve to at least one compliance scenario; companies
// with no reportable scenario cannot issue invoices and are rejected up front.
func NewCompany(name, taxNumber string, activities, sectors []string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	if taxNumber == "" {
		return nil, shared.NewDomainError("INVALID_TAX_NUMBER", "Tax registration number cannot be empty")
	}

	normActivities, err := normalizeActivities(activities)
	if err != nil {
		return nil, err
	}
	normSectors, err := normalizeSectors(sectors)
	if err != nil {
		return nil, err
	}
	if result := compliance.ValidateCombination(normActivities, normSectors); !result.Valid {
		return nil, shared.NewDomainError("INVALID_COMBINATION", result.Reason)
	}

	return &Company{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		TaxNumber:          taxNumber,
		Status:             CompanyStatusActive,
		BusinessActivities: strings.Join(normActivities, ","),
		Sectors:            strings.Join(normSectors, ","),
	}, nil
}

// UpdateProfile updates the company's display information
func (c *Company) UpdateProfile(name, address, province string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}

	c.Name = name
	c.Address = address
	c.Province = province
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// DeclareActivities replaces the company's activity/sector declaration. The
// new combination goes through the same resolver validation as registration.
func (c *Company) DeclareActivities(activities, sectors []string) error {
	normActivities, err := normalizeActivities(activities)
	if err != nil {
		return err
	}
	normSectors, err := normalizeSectors(sectors)
	if err != nil {
		return err
	}
	if result := compliance.ValidateCombination(normActivities, normSectors); !result.Valid {
		return shared.NewDomainError("INVALID_COMBINATION", result.Reason)
	}

	c.BusinessActivities = strings.Join(normActivities, ",")
	c.Sectors = strings.Join(normSectors, ",")
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ActivityList returns the declared business activities as a slice.
func (c *Company) ActivityList() []string {
	return splitCSV(c.BusinessActivities)
}

// SectorList returns the declared sectors as a slice.
func (c *Company) SectorList() []string {
	return splitCSV(c.Sectors)
}

// Suspend suspends the company
func (c *Company) Suspend() error {
	if c.Status == CompanyStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Company is already suspended")
	}
	c.Status = CompanyStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Activate reactivates a suspended company
func (c *Company) Activate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Company is already active")
	}
	c.Status = CompanyStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// normalizeActivities dedups and validates labels against the closed
// enumeration; unknown labels are rejected here, not silently skipped.
func normalizeActivities(activities []string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(activities))
	for _, raw := range activities {
		label := strings.TrimSpace(raw)
		if !compliance.BusinessActivity(label).IsValid() {
			return nil, shared.NewDomainError("INVALID_ACTIVITY", "Unknown business activity: "+label)
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}

func normalizeSectors(sectors []string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(sectors))
	for _, raw := range sectors {
		label := strings.TrimSpace(raw)
		if !compliance.Sector(label).IsValid() {
			return nil, shared.NewDomainError("INVALID_SECTOR", "Unknown sector: "+label)
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
