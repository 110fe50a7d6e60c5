package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// CompanyRepository defines the persistence contract for companies. Companies
// are the tenant roots themselves, so lookups are global rather than scoped.
type CompanyRepository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByTaxNumber(ctx context.Context, taxNumber string) (*Company, error)
	ExistsByTaxNumber(ctx context.Context, taxNumber string) (bool, error)
	List(ctx context.Context, filter shared.Filter) ([]*Company, int64, error)
}

// UserRepository defines the persistence contract for users within a company
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	// FindByEmail searches across tenants, used only by login where the tenant
	// is not yet known.
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*User, int64, error)
}
