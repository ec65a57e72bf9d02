package api

import (
	"fraudconfig/internal/metrics"
	"fraudconfig/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Feature   *FeatureHandler
	Threshold *ThresholdHandler
	Scheduler *SchedulerHandler
	Model     *ModelHandler
	Customer  *CustomerRuleHandler
	Audit     *AuditHandler
	Auth      *AuthHandler
}

func RegisterRoutes(h Handlers, rdb *redis.Client, requestsPerSecond int) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(
		middleware.CorsMiddleware(),
		middleware.RequestID(),
		middleware.GinZapLogger(),
		middleware.GinZapRecovery(),
		middleware.HttpMiddleware(),
		middleware.TraceMiddleware(),
	)
	r.SetTrustedProxies(nil)

	// Public Routes
	r.GET("/health", h.Feature.HealthCheck)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth Routes (Public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// Auth Routes (Protected)
	authProtected := r.Group("/v1/auth")
	authProtected.Use(middleware.JWTMiddleware(true))
	{
		authProtected.GET("/me", h.Auth.GetProfile)
		authProtected.POST("/logout", h.Auth.Logout)
	}

	// Control plane. Requests without a token act as the System operator;
	// a token that is present but invalid is still rejected.
	protected := r.Group("/v1")
	protected.Use(middleware.JWTMiddleware(false))

	// Rate Limiter for Write Operations
	writeLimiter := middleware.RateLimitMiddleware(rdb, requestsPerSecond)

	{
		protected.GET("/features", h.Feature.ListFeatures)
		protected.GET("/feature/:id", h.Feature.GetFeature)
		protected.GET("/feature/:id/audits", h.Feature.GetFeatureAudits)
		protected.POST("/feature/:id", writeLimiter, h.Feature.UpdateFeature)
		protected.POST("/feature/:id/toggle", writeLimiter, h.Feature.ToggleFeature)

		protected.GET("/thresholds", h.Threshold.ListThresholds)
		protected.GET("/threshold/:id", h.Threshold.GetThreshold)
		protected.POST("/threshold/:id", writeLimiter, h.Threshold.UpdateThreshold)

		protected.GET("/scheduler", h.Scheduler.GetScheduler)
		protected.POST("/scheduler", writeLimiter, h.Scheduler.UpdateScheduler)
		protected.POST("/scheduler/run", writeLimiter, h.Scheduler.MarkRun)

		protected.GET("/models", h.Model.ListModelVersions)
		protected.GET("/model/:id", h.Model.GetModelVersion)
		protected.POST("/model/:id/activate", writeLimiter, h.Model.ActivateModelVersion)
		protected.GET("/training-runs", h.Model.ListTrainingRuns)

		protected.GET("/customer-rules/search", h.Customer.SearchRuleSets)
		protected.GET("/customer-rules", h.Customer.GetRuleSet)
		protected.POST("/customer-rules", writeLimiter, h.Customer.SaveRuleSet)
		protected.DELETE("/customer-rules", writeLimiter, h.Customer.DeleteRuleSet)

		protected.GET("/audits", h.Audit.ListAudits)
	}
	return r
}
