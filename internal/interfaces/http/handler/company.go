package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/invoiceflow/backend/internal/application/identity"
)

// CompanyHandler serves company profile endpoints. Companies manage only
// their own record; the tenant ID from the token is the company ID.
type CompanyHandler struct {
	BaseHandler
	service *appidentity.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(service *appidentity.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// RegisterRoutes registers the company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/company")
	{
		company.GET("", h.Get)
		company.PUT("", h.Update)
		company.PUT("/declaration", h.DeclareActivities)
	}
}

// Get returns the caller's company
func (h *CompanyHandler) Get(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Update updates the caller's company profile
func (h *CompanyHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appidentity.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// DeclareActivities replaces the company's activity and sector declaration
func (h *CompanyHandler) DeclareActivities(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appidentity.DeclareActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.DeclareActivities(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
