package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/billing"
	"resume-builder/internal/exports"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/users"
)

const (
	rateGroupExport  = "EXPORT"
	rateGroupSuggest = "SUGGEST"
)

// RouterDeps carries handlers that the router wires. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	UsersHandler      *users.Handler
	ResumesHandler    *resumes.Handler
	ExportsHandler    *exports.Handler
	SuggestionHandler *suggestions.Handler
	BillingHandler    *billing.Handler
	HealthService     *health.Service
	GoogleAuth        *googleauth.GoogleService
	RateLimiter       *middleware.RateLimiter
	Tokens            middleware.TokenVerifier
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
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    defaultRateLimitRules(),
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.HealthService != nil {
		api.GET("/health", health.Handler(deps.HealthService))
	} else {
		api.GET("/health", func(c *gin.Context) {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
		})
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.ExportsHandler != nil {
		deps.ExportsHandler.RegisterRoutes(api)
	}
	if deps.SuggestionHandler != nil {
		deps.SuggestionHandler.RegisterRoutes(api)
	}
	if deps.BillingHandler != nil {
		deps.BillingHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

func defaultRateLimitRules() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		rateGroupExport:  {Rate: 0.5, Burst: 10},
		rateGroupSuggest: {Rate: 0.2, Burst: 5},
		"DEFAULT":        {Rate: 10, Burst: 50},
	}
}

// rateLimitGroup classifies expensive endpoints into their own buckets.
func rateLimitGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case path == "/api/v1/compose":
		return rateGroupExport
	case c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/exports"):
		return rateGroupExport
	case strings.HasPrefix(path, "/api/v1/suggestions/"):
		return rateGroupSuggest
	}
	return ""
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
