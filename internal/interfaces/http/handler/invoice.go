package handler

import (
	"github.com/gin-gonic/gin"
	appinvoicing "github.com/invoiceflow/backend/internal/application/invoicing"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

// InvoiceHandler serves sales invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	service *appinvoicing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(service *appinvoicing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// RegisterRoutes registers the invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/issue", h.Issue)
		invoices.POST("/:id/void", h.Void)
		invoices.DELETE("/:id", h.DeleteDraft)
	}
}

// Create builds a draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appinvoicing.CreateInvoiceRequest
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

// List returns the company's invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	filter := h.Filter(c)
	if code := c.Query("scenario_code"); code != "" {
		filter.Filters["scenario_code"] = code
	}

	resp, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OKWithMeta(c, resp.Invoices, dto.NewMeta(filter.Page, filter.PageSize, resp.Total))
}

// Get returns an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
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

// Issue finalizes a draft invoice
func (h *InvoiceHandler) Issue(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Issue(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Void cancels an issued invoice
func (h *InvoiceHandler) Void(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req appinvoicing.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Void(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// DeleteDraft removes a draft invoice
func (h *InvoiceHandler) DeleteDraft(c *gin.Context) {
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
