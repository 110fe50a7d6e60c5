package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/identity"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RegisterCompanyRequest carries the data to register a new company together
// with its first user.
type RegisterCompanyRequest struct {
	Name               string   `json:"name" binding:"required,max=200"`
	TaxNumber          string   `json:"tax_number" binding:"required,max=50"`
	Address            string   `json:"address"`
	Province           string   `json:"province"`
	BusinessActivities []string `json:"business_activities" binding:"required,min=1,dive,business_activity"`
	Sectors            []string `json:"sectors" binding:"required,min=1,dive,sector"`
	AdminEmail         string   `json:"admin_email" binding:"required,email"`
	AdminName          string   `json:"admin_name" binding:"required,max=100"`
	AdminPassword      string   `json:"admin_password" binding:"required,min=8"`
}

// UpdateCompanyRequest updates a company's profile
type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Address  string `json:"address"`
	Province string `json:"province"`
}

// DeclareActivitiesRequest replaces the company's activity and sector declaration
type DeclareActivitiesRequest struct {
	BusinessActivities []string `json:"business_activities" binding:"required,min=1,dive,business_activity"`
	Sectors            []string `json:"sectors" binding:"required,min=1,dive,sector"`
}

// CompanyResponse is the outward representation of a company
type CompanyResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	TaxNumber          string    `json:"tax_number"`
	Address            string    `json:"address"`
	Province           string    `json:"province"`
	Status             string    `json:"status"`
	BusinessActivities []string  `json:"business_activities"`
	Sectors            []string  `json:"sectors"`
}

// CompanyService handles company registration and profile management
type CompanyService struct {
	companies identity.CompanyRepository
	users     identity.UserRepository
	hasher    PasswordHasher
	logger    *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(companies identity.CompanyRepository, users identity.UserRepository, hasher PasswordHasher, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		users:     users,
		hasher:    hasher,
		logger:    logger,
	}
}

// Register creates a company and its first user in one step. The declared
// activity and sector combination must resolve to at least one scenario.
func (s *CompanyService) Register(ctx context.Context, req RegisterCompanyRequest) (*CompanyResponse, error) {
	exists, err := s.companies.ExistsByTaxNumber(ctx, req.TaxNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A company with this tax number is already registered")
	}

	company, err := identity.NewCompany(req.Name, req.TaxNumber, req.BusinessActivities, req.Sectors)
	if err != nil {
		return nil, err
	}
	company.Address = req.Address
	company.Province = req.Province

	hash, err := s.hasher.Hash(req.AdminPassword)
	if err != nil {
		return nil, err
	}
	admin, err := identity.NewUser(company.ID, req.AdminEmail, req.AdminName, hash)
	if err != nil {
		return nil, err
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("company registered",
		zap.String("company_id", company.ID.String()),
		zap.String("tax_number", company.TaxNumber))
	return toCompanyResponse(company), nil
}

// Get returns a company by ID
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Update updates the company profile
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := company.UpdateProfile(req.Name, req.Address, req.Province); err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// DeclareActivities replaces the company's activity and sector declaration
func (s *CompanyService) DeclareActivities(ctx context.Context, id uuid.UUID, req DeclareActivitiesRequest) (*CompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := company.DeclareActivities(req.BusinessActivities, req.Sectors); err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("company declaration updated",
		zap.String("company_id", company.ID.String()),
		zap.Strings("activities", company.ActivityList()),
		zap.Strings("sectors", company.SectorList()))
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *identity.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		TaxNumber:          c.TaxNumber,
		Address:            c.Address,
		Province:           c.Province,
		Status:             string(c.Status),
		BusinessActivities: c.ActivityList(),
		Sectors:            c.SectorList(),
	}
}
