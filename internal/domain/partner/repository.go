package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// VendorRepository defines the persistence contract for vendors
type VendorRepository interface {
	Save(ctx context.Context, vendor *Vendor) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*Vendor, error)
	ExistsByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Vendor, int64, error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
