package handlers

import (
	"github.com/finacct/backend/cmd/docs"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/middleware"
	"github.com/finacct/backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, rateLimit)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	// Apply AuthMiddleware to the entire v1 group. The rate limiter goes
	// after it so the tenant claim is already on the context and buckets are
	// keyed per tenant rather than per client IP.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), rateLimit)

	RegisterAccountRoutes(v1, services.AccountSvc)
	RegisterPostingRoutes(v1, services.PostingSvc)
	RegisterPeriodRoutes(v1, services.PeriodSvc)
	RegisterRefundRoutes(v1, services.RefundSvc)
	RegisterReportingRoutes(v1, services.ReportingSvc)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
