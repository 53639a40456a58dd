package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/application/middleware"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/infrastructure/logging"
)

// Router holds everything the HTTP surface is built from
type Router struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	JWT            *middleware.JWTMiddleware
	// RateLimiter may be nil, which disables limiting
	RateLimiter *middleware.RateLimiter

	Access        *AccessHandler
	Tiers         *TierHandler
	Subscriptions *SubscriptionHandler
	Payments      *PaymentHandler
	Content       *ContentHandler
	Creators      *CreatorHandler
	Admin         *AdminHandler
	Webhook       *WebhookHandler
	Health        *HealthHandler
}

// Engine builds the gin engine with all routes registered
func (r *Router) Engine() *gin.Engine {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestMiddleware(logger))
	router.Use(middleware.CORSMiddleware(r.AllowedOrigins))

	if r.Health != nil {
		router.GET("/health", r.Health.Health)
	}
	if r.Webhook != nil {
		router.POST("/webhook/payments", r.Webhook.PaymentWebhook)
	}

	creators := middleware.RequireRole(entity.RoleCreator, entity.RoleAdmin)

	v1 := router.Group("/v1")
	v1.Use(r.JWT.Authenticate())
	{
		content := v1.Group("/content")
		{
			content.GET("/:id/access", r.limit(middleware.PollingConfig), r.Access.CheckAccess)
			content.POST("/:id/access", r.Access.ConsumeAccess)
			content.POST("", creators, r.Content.CreateContent)
			content.POST("/:id/publish", creators, r.Content.PublishContent)
			content.DELETE("/:id", creators, r.Content.DeleteContent)
		}

		v1.POST("/creators", creators, r.Creators.CreateProfile)

		tiers := v1.Group("/tiers")
		{
			tiers.GET("/:id/price", r.Tiers.GetPrice)
			tiers.GET("/:id/revenue", creators, r.Tiers.GetRevenue)
			tiers.POST("", creators, r.Tiers.CreateTier)
			tiers.POST("/:id/discount", creators, r.Tiers.AddDiscount)
			tiers.DELETE("/:id/discount", creators, r.Tiers.RemoveDiscount)
			tiers.POST("/:id/archive", creators, r.Tiers.ArchiveTier)
			tiers.DELETE("/:id", creators, r.Tiers.DeleteTier)
		}

		subs := v1.Group("/subscriptions")
		{
			subs.POST("", r.Subscriptions.CreateSubscription)
			subs.GET("/:id", r.Subscriptions.GetSubscription)
			subs.POST("/:id/cancel", r.Subscriptions.CancelSubscription)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", r.Payments.CreatePayment)
			payments.POST("/:id/complete", middleware.AdminMiddleware(), r.Payments.CompletePayment)
			payments.POST("/:id/refund", middleware.AdminMiddleware(), r.Payments.RefundPayment)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/access", r.Admin.GrantAccess)
			admin.POST("/access/:id/revoke", r.Admin.RevokeAccess)
			admin.POST("/creators/:id/earnings", r.Admin.ApplyEarnings)
			admin.POST("/creators/:id/deactivate", r.Creators.DeactivateProfile)
			admin.POST("/creators/:id/reactivate", r.Creators.ReactivateProfile)
			admin.PUT("/creators/:id/verification", r.Creators.SetVerification)
		}
	}

	return router
}

func (r *Router) limit(cfg middleware.RateLimitConfig) gin.HandlerFunc {
	if r.RateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.RateLimiter.Middleware(middleware.ByUserID, cfg)
}
