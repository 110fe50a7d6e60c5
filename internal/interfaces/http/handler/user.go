package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/invoiceflow/backend/internal/application/identity"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

// UserHandler serves user management endpoints
type UserHandler struct {
	BaseHandler
	service *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *appidentity.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.POST("/:id/disable", h.Disable)
	}
	rg.POST("/me/password", h.ChangePassword)
}

// Create adds a user to the company
func (h *UserHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req appidentity.CreateUserRequest
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

// List returns the company's users
func (h *UserHandler) List(c *gin.Context) {
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
	h.OKWithMeta(c, resp.Users, dto.NewMeta(filter.Page, filter.PageSize, resp.Total))
}

// Get returns a user by ID
func (h *UserHandler) Get(c *gin.Context) {
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

// Update renames a user
func (h *UserHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req appidentity.UpdateUserRequest
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

// Disable disables a user account
func (h *UserHandler) Disable(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Disable(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangePassword changes the caller's own password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), tenantID, userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
