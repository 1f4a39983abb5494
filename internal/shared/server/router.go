package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "agentiq-backend/internal/auth"
	"agentiq-backend/internal/calls"
	"agentiq-backend/internal/services/health"
	"agentiq-backend/internal/shared/config"
	"agentiq-backend/internal/shared/metrics"
	"agentiq-backend/internal/shared/server/middleware"
	"agentiq-backend/internal/shared/server/respond"
	"agentiq-backend/internal/usage"
	"agentiq-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Construction of the
// dependencies happens in bootstrap; this package only attaches routes.
type RouterDeps struct {
	Config       config.Config
	CallsHandler *calls.Handler
	UsageHandler *usage.Handler
	UsersHandler *users.Handler
	GoogleAuth   *googleauth.GoogleService
	Health       *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	// Metrics and health stay outside auth so probes need no identity.
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(analyzeRateLimit()),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.CallsHandler != nil {
		deps.CallsHandler.RegisterRoutes(api)
	}
	if deps.UsageHandler != nil {
		deps.UsageHandler.RegisterRoutes(api)
		if deps.Config.IsDevLike() {
			dev := api.Group("/dev")
			deps.UsageHandler.RegisterDevRoutes(dev)
		}
	}

	return r
}

// analyzeRateLimit throttles the analysis endpoint per principal. The quota
// service enforces the business limits; this only absorbs bursts.
func analyzeRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/calls/analyze" {
				return "ANALYZE"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
