package handler

import (
	"donation-slip-gateway/internal/adapter/http/middleware"
	redisStore "donation-slip-gateway/internal/adapter/storage/redis"
	"donation-slip-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxUploadSize caps the multipart body; slip images are small photos.
const maxUploadSize = 10 << 20 // 10 MB

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	VerifySvc      ports.VerificationService
	QuerySvc       ports.DonationQueryService
	TokenSvc       ports.TokenService      // nil = all donations anonymous
	AttemptSvc     ports.AttemptRecorder
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.MaxBodySize(maxUploadSize))

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// Optional supporter identity; never rejects.
	optAuth := func(c *gin.Context) { c.Next() }
	if deps.TokenSvc != nil {
		optAuth = middleware.OptionalAuth(deps.TokenSvc, deps.Logger)
	}

	// API v1 routes — all public; donations accept anonymous submissions.
	v1 := r.Group("/api/v1")

	slipHandler := NewSlipHandler(deps.VerifySvc, deps.AttemptSvc)
	slips := v1.Group("/slips")
	{
		slips.POST("/verify", rl("verify"), optAuth, slipHandler.VerifySlip)
	}

	donationHandler := NewDonationHandler(deps.QuerySvc)
	donations := v1.Group("/donations")
	{
		donations.GET("", rl("donations"), donationHandler.ListRecent)
		donations.GET("/stats", rl("donations"), donationHandler.Stats)
		donations.GET("/policy", rl("donations"), donationHandler.Policy)
	}

	return r
}
