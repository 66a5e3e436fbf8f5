package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medrec/record-api/internal/config"
	"github.com/medrec/record-api/internal/handler"
	authhandler "github.com/medrec/record-api/internal/handler/auth"
	hospitalhandler "github.com/medrec/record-api/internal/handler/hospital"
	recordhandler "github.com/medrec/record-api/internal/handler/record"
	userhandler "github.com/medrec/record-api/internal/handler/user"
	"github.com/medrec/record-api/internal/middleware"
	"github.com/medrec/record-api/pkg/metrics"
)

type Handlers struct {
	Auth     *authhandler.Handler
	User     *userhandler.Handler
	Hospital *hospitalhandler.Handler
	Record   *recordhandler.Handler
}

// New assembles the HTTP surface: global middleware, the probe and metrics
// endpoints, the public auth group, and the authenticated /api/v1 group.
func New(cfg *config.Config, db *sqlx.DB, m *metrics.Metrics,
	auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {

	registerValidators()

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.Security.RateLimitRPS,
		Burst: cfg.Security.RateLimitBurst,
	})
	r.Use(limiter.RateLimit())

	handler.NewHealthHandler(db).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	h.Auth.RegisterPublicRoutes(v1)

	protected := v1.Group("", auth.Authenticate())
	h.Auth.RegisterProtectedRoutes(protected)
	h.User.RegisterRoutes(protected)
	h.Hospital.RegisterRoutes(protected)
	h.Record.RegisterRoutes(protected)

	return r
}
