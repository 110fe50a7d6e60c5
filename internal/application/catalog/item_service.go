package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/catalog"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateItemRequest creates a catalog item
type CreateItemRequest struct {
	Code          string          `json:"code" binding:"required,max=50"`
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	HSCode        string          `json:"hs_code" binding:"max=20"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=20"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// UpdateItemRequest updates a catalog item
type UpdateItemRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	HSCode        string          `json:"hs_code" binding:"max=20"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=20"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// ItemResponse is the outward representation of a catalog item
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	HSCode        string          `json:"hs_code,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Status        string          `json:"status"`
}

// ListItemsResponse is a paginated item listing
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Total int64          `json:"total"`
}

// ItemService manages the company's item catalog
type ItemService struct {
	items  catalog.ItemRepository
	logger *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(items catalog.ItemRepository, logger *zap.Logger) *ItemService {
	return &ItemService{
		items:  items,
		logger: logger,
	}
}

// Create adds an item to the catalog
func (s *ItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.items.ExistsByCodeForTenant(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this code already exists")
	}

	item, err := catalog.NewItem(tenantID, req.Code, req.Name, req.UnitOfMeasure, req.UnitPrice, req.TaxRate)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description
	item.HSCode = req.HSCode

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("code", item.Code))
	return toItemResponse(item), nil
}

// Get returns an item by ID
func (s *ItemService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List returns the company's catalog
func (s *ItemService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*ListItemsResponse, error) {
	items, total, err := s.items.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = *toItemResponse(item)
	}
	return &ListItemsResponse{Items: out, Total: total}, nil
}

// Update updates an item's details and pricing
func (s *ItemService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdateInfo(req.Name, req.Description, req.HSCode, req.UnitOfMeasure); err != nil {
		return nil, err
	}
	if err := item.UpdatePricing(req.UnitPrice, req.TaxRate); err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Archive removes an item from active use
func (s *ItemService) Archive(ctx context.Context, tenantID, id uuid.UUID) error {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := item.Archive(); err != nil {
		return err
	}
	return s.items.Save(ctx, item)
}

func toItemResponse(i *catalog.Item) *ItemResponse {
	return &ItemResponse{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Description:   i.Description,
		HSCode:        i.HSCode,
		UnitOfMeasure: i.UnitOfMeasure,
		UnitPrice:     i.UnitPrice,
		TaxRate:       i.TaxRate,
		Status:        string(i.Status),
	}
}
