package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// ItemRepository defines the persistence contract for catalog items
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*Item, error)
	ExistsByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Item, int64, error)
}
