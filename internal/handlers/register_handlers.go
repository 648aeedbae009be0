package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/pos_ledger/cmd/docs"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// routeOptions holds the optional infrastructure the API is mounted with.
type routeOptions struct {
	idempotencyStore portsrepo.IdempotencyStore
	idempotencyTTL   time.Duration
	limiter          *limiter.Limiter
	posthog          *utils.PosthogClientWrapper
}

// RouteOption configures RegisterRoutes.
type RouteOption func(*routeOptions)

// WithIdempotencyStore enables Idempotency-Key handling on sale, payment and return submissions.
func WithIdempotencyStore(store portsrepo.IdempotencyStore, ttl time.Duration) RouteOption {
	return func(o *routeOptions) {
		o.idempotencyStore = store
		o.idempotencyTTL = ttl
	}
}

// WithRateLimiter limits API requests per owning account.
func WithRateLimiter(l *limiter.Limiter) RouteOption {
	return func(o *routeOptions) {
		o.limiter = l
	}
}

// WithPosthog tracks successful API calls.
func WithPosthog(client *utils.PosthogClientWrapper) RouteOption {
	return func(o *routeOptions) {
		o.posthog = client
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	options ...RouteOption,
) {
	var opts routeOptions
	for _, option := range options {
		option(&opts)
	}

	registerValidators()

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotentReplayedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, opts)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts routeOptions,
) {
	var parserOpts []jwt.ParserOption
	if cfg.JWTIssuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, parserOpts...))
	if opts.limiter != nil {
		v1.Use(middleware.RateLimit(opts.limiter))
	}
	v1.Use(middleware.PosthogMiddleware(opts.posthog))

	idempotent := middleware.Idempotency(opts.idempotencyStore, opts.idempotencyTTL)

	registerItemRoutes(v1, service.Item)
	registerCustomerRoutes(v1, service.Customer)
	registerInvoiceRoutes(v1, service.Invoice, idempotent)
	registerReturnRoutes(v1, service.Return, idempotent)
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
