package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/invoiceflow/backend/internal/application/identity"
)

// AuthHandler serves authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth      *appidentity.AuthService
	companies *appidentity.CompanyService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *appidentity.AuthService, companies *appidentity.CompanyService) *AuthHandler {
	return &AuthHandler{auth: auth, companies: companies}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

// Register registers a company together with its first user
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.companies.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login exchanges credentials for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
