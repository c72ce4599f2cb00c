package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/fuzumoe/linktorch-search/internal/middleware"
	"github.com/fuzumoe/linktorch-search/internal/service"
)

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// Options carries what the router needs besides the registrars.
type Options struct {
	Logger      *zap.Logger
	Tokens      service.TokenService
	CORSOrigins []string
}

// RegisterRoutes wires up global middleware, docs, public and protected routes.
// Public registrars mount at the root; protected ones under /api/v1 behind
// bearer authentication.
func RegisterRoutes(
	r *gin.Engine,
	opts Options,
	publicRegs []RouteRegistrar,
	protectedRegs []RouteRegistrar,
) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Global middleware
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("")
	for _, reg := range publicRegs {
		reg.RegisterRoutes(public)
	}

	protected := r.Group("/api/v1", middleware.JWTAuthMiddleware(opts.Tokens))
	for _, reg := range protectedRegs {
		reg.RegisterRoutes(protected)
	}
}
