package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/invoiceflow/backend/internal/application/catalog"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

// ItemHandler serves catalog item endpoints
type ItemHandler struct {
	BaseHandler
	service *appcatalog.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(service *appcatalog.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers the item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.POST("/:id/archive", h.Archive)
	}
}

// Create adds an item to the catalog
func (h *ItemHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appcatalog.CreateItemRequest
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

// List returns the company's catalog
func (h *ItemHandler) List(c *gin.Context) {
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
	h.OKWithMeta(c, resp.Items, dto.NewMeta(filter.Page, filter.PageSize, resp.Total))
}

// Get returns an item by ID
func (h *ItemHandler) Get(c *gin.Context) {
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

// Update updates an item
func (h *ItemHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req appcatalog.UpdateItemRequest
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

// Archive removes an item from active use
func (h *ItemHandler) Archive(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
