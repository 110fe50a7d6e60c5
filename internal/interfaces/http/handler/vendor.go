package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/invoiceflow/backend/internal/application/partner"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

// VendorHandler serves vendor management endpoints
type VendorHandler struct {
	BaseHandler
	service *apppartner.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(service *apppartner.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// RegisterRoutes registers the vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.Create)
		vendors.GET("", h.List)
		vendors.GET("/:id", h.Get)
		vendors.PUT("/:id", h.Update)
		vendors.POST("/:id/deactivate", h.Deactivate)
		vendors.POST("/:id/activate", h.Activate)
	}
}

// Create adds a vendor
func (h *VendorHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req apppartner.CreateVendorRequest
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

// List returns the company's vendors
func (h *VendorHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	filter := h.Filter(c)
	resp, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OKWithMeta(c, resp.Vendors, dto.NewMeta(filter.Page, filter.PageSize, resp.Total))
}

// Get returns a vendor by ID
func (h *VendorHandler) Get(c *gin.Context) {
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

// Update updates a vendor
func (h *VendorHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req apppartner.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Deactivate marks a vendor inactive
func (h *VendorHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate marks a vendor active
func (h *VendorHandler) Activate(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Activate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
