package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// RegisterRoutes registers the public system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.OK(c, gin.H{"status": "ok", "version": h.version})
}

// Ready reports whether the database is reachable
func (h *SystemHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	h.OK(c, gin.H{"status": "ready"})
}
