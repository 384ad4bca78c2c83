package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbPool *pgxpool.Pool,
) {
	registerCustomValidators()

	// Add health check route with a DB ping
	r.GET("/health", func(c *gin.Context) {
		if dbPool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := dbPool.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})
	registerHomeRoutes(r)

	// Gateway adapters post normalized events here; API-key auth, not JWT.
	setupWebhookRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// registerCustomValidators installs the binding rules the DTOs reference.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("reversalkind", func(fl validator.FieldLevel) bool {
			kind := fl.Field().String()
			return kind == "refund" || kind == "chargeback"
		})
	}
}

// setupWebhookRoutes configures the /webhooks group behind API-key auth and
// rate limiting.
func setupWebhookRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.WebhookRateLimit)
	if err != nil {
		slog.Warn("Invalid webhook rate limit format, falling back to 120-M",
			slog.String("configured", cfg.WebhookRateLimit),
			slog.String("error", err.Error()),
		)
		rate = limiter.Rate{Period: time.Minute, Limit: 120}
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	webhooks := r.Group("/webhooks",
		middleware.RateLimit(limiterInstance),
		middleware.WebhookAuthMiddleware(cfg.WebhookAPIKeyHash, cfg.WebhookCallerName),
	)
	registerWebhookRoutes(webhooks, services.Posting, services.Reversal)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerSaleRoutes(v1, services.Posting, services.Reversal, services.Reporting)
	registerAccountRoutes(v1, services.Account)
}
