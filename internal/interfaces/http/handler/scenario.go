package handler

import (
	"github.com/gin-gonic/gin"
	appcompliance "github.com/invoiceflow/backend/internal/application/compliance"
)

// ScenarioHandler serves scenario resolution endpoints
type ScenarioHandler struct {
	BaseHandler
	service *appcompliance.ScenarioService
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(service *appcompliance.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

// RegisterRoutes registers the scenario routes
func (h *ScenarioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scenarios := rg.Group("/scenarios")
	{
		scenarios.POST("/lookup", h.Lookup)
		scenarios.POST("/validate", h.Validate)
		scenarios.GET("/activities", h.Activities)
		scenarios.GET("/sectors", h.Sectors)
	}
}

// Lookup resolves scenario codes for a selection of activities and sectors
func (h *ScenarioHandler) Lookup(c *gin.Context) {
	var req appcompliance.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Lookup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Validate checks whether a combination supports invoicing
func (h *ScenarioHandler) Validate(c *gin.Context) {
	var req appcompliance.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Activities returns the closed enumeration of business activities
func (h *ScenarioHandler) Activities(c *gin.Context) {
	h.OK(c, gin.H{"business_activities": h.service.Activities()})
}

// Sectors returns the closed enumeration of sectors
func (h *ScenarioHandler) Sectors(c *gin.Context) {
	h.OK(c, gin.H{"sectors": h.service.Sectors()})
}
