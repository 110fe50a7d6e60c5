package router

import (
	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/backend/internal/infrastructure/auth"
	"github.com/invoiceflow/backend/internal/infrastructure/config"
	"github.com/invoiceflow/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the gin engine with middleware and routes
type Router struct {
	engine *gin.Engine
}

// New creates the router. Public registrars are mounted without
// authentication; protected registrars sit behind JWT auth.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *auth.JWTManager,
	public []RouteRegistrar,
	protected []RouteRegistrar,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Secure())

	api := engine.Group("/api/v1")
	for _, r := range public {
		r.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtManager))
	for _, r := range protected {
		r.RegisterRoutes(authed)
	}

	return &Router{engine: engine}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
