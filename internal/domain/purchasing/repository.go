package purchasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// PurchaseRepository defines the persistence contract for purchase records
type PurchaseRepository interface {
	Save(ctx context.Context, purchase *Purchase) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Purchase, int64, error)
	DeleteDraftForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
