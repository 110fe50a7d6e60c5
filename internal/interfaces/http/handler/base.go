package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/domain/shared"
	"github.com/invoiceflow/backend/internal/infrastructure/logger"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
	"github.com/invoiceflow/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides response and error helpers shared by all handlers
type BaseHandler struct{}

// OK writes a 200 success response
func (h *BaseHandler) OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Created writes a 201 success response
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// OKWithMeta writes a 200 success response with pagination metadata
func (h *BaseHandler) OKWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.OKWithMeta(data, meta))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError maps an error to the envelope and status code. Domain errors
// keep their code; anything else becomes a 500 with the detail logged, not
// leaked.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if domainErr, ok := err.(*shared.DomainError); ok {
		c.JSON(dto.StatusForCode(domainErr.Code), dto.Fail(domainErr.Code, domainErr.Message))
		return
	}

	logger.FromContext(c.Request.Context()).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.Fail("INTERNAL_ERROR", "An internal error occurred"))
}

// BadRequest writes a 400 validation failure
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Fail("VALIDATION_ERROR", err.Error()))
}

// TenantID returns the authenticated tenant ID from the request context
func (h *BaseHandler) TenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.TenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("UNAUTHORIZED", "Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// UserID returns the authenticated user ID from the request context
func (h *BaseHandler) UserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("UNAUTHORIZED", "Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// PathID parses a UUID path parameter
func (h *BaseHandler) PathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("VALIDATION_ERROR", "Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}

// Filter builds a listing filter from query parameters
func (h *BaseHandler) Filter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 && size <= 100 {
		filter.PageSize = size
	}
	if search := c.Query("search"); search != "" {
		filter.Search = search
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	return filter
}
