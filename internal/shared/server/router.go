package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalease-client/internal/mockbackend"
	"legalease-client/internal/shared/config"
	"legalease-client/internal/shared/metrics"
	"legalease-client/internal/shared/server/middleware"
	"legalease-client/internal/shared/server/respond"
)

const (
	healthPath  = "/api/health"
	metricsPath = "/api/metrics"
)

// NewRouter constructs the Gin engine for the stand-in backend.
func NewRouter(cfg config.Config, backend *mockbackend.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.BearerToken(cfg.MockAPIToken, healthPath, metricsPath),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Not found", "")
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "healthy"})
	})
	api.GET("/metrics", metrics.Handler())
	backend.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
