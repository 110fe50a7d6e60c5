package invoicing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
)

// InvoiceRepository defines the persistence contract for invoices. Save
// persists the invoice together with its lines.
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)
	ExistsByNumberForTenant(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Invoice, int64, error)
	// DeleteDraftForTenant removes a draft invoice and its lines.
	DeleteDraftForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	// NextSequenceForTenant returns the next value of the tenant's invoice
	// numbering sequence.
	NextSequenceForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
