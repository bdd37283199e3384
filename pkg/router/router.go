package router

import (
	"strings"

	convapi "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/api"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/config"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/di"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/errors"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/health"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/logger"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/middleware"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/observability"
	qaapi "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/api"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Health    *health.Checker
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container, checker *health.Checker) *Router {
	logger.SetGlobal(container.Logger)

	cfg := config.Get()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(middleware.RequestID())

	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(cfg.Security.RateLimit)
	limiterOpts.Burst = cfg.Security.RateLimitBurst
	rateLimiter := middleware.NewRateLimiter(container.Logger, limiterOpts)
	engine.Use(rateLimiter.Middleware())

	engine.Use(observability.RequestCounter())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Health:    checker,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	r.Engine.GET("/health", r.Health.GinHandler())
	r.Engine.GET("/metrics", observability.Handler())

	conversationHandler := convapi.NewConversationHandler(r.Container.ConversationService)
	conversationHandler.RegisterRoutes(r.Engine)

	assessmentHandler := qaapi.NewAssessmentHandler(r.Container.AssessmentService)
	assessmentHandler.RegisterRoutes(r.Engine)
}

// corsMiddleware answers preflight requests and reflects allowed origins
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if _, ok := allowed[origin]; ok {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
