package handler

import (
	"github.com/gin-gonic/gin"
	apppurchasing "github.com/invoiceflow/backend/internal/application/purchasing"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

// PurchaseHandler serves purchase record endpoints
type PurchaseHandler struct {
	BaseHandler
	service *apppurchasing.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(service *apppurchasing.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// RegisterRoutes registers the purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.Get)
		purchases.POST("/:id/record", h.Record)
		purchases.DELETE("/:id", h.DeleteDraft)
	}
}

// Create builds a draft purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req apppurchasing.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the company's purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	filter := h.Filter(c)
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		filter.Filters["vendor_id"] = vendorID
	}

	resp, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OKWithMeta(c, resp.Purchases, dto.NewMeta(filter.Page, filter.PageSize, resp.Total))
}

// Get returns a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Record finalizes a draft purchase
func (h *PurchaseHandler) Record(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Record(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// DeleteDraft removes a draft purchase
func (h *PurchaseHandler) DeleteDraft(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDraft(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
