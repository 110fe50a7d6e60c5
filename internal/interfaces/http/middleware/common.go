package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-ID"

// RequestID assigns each request an ID, honoring one supplied by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// RequestLogger attaches a request-scoped logger to the context and logs each
// request on completion. The logger carries the request ID and, once
// authenticated, the tenant and user IDs.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := base.With(zap.String("request_id", c.GetString("request_id")))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if tenantID, ok := TenantIDFromContext(c); ok {
			fields = append(fields, zap.String("tenant_id", tenantID.String()))
		}
		if userID, ok := UserIDFromContext(c); ok {
			fields = append(fields, zap.String("user_id", userID.String()))
		}

		if c.Writer.Status() >= 500 {
			reqLogger.Error("request completed", fields...)
		} else {
			reqLogger.Info("request completed", fields...)
		}
	}
}

// CORS sets permissive CORS headers for browser clients
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Secure sets common security headers
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
