package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelarsoto/leadpipe-backend/api/controllers"
	"github.com/avelarsoto/leadpipe-backend/api/middleware"
	"github.com/avelarsoto/leadpipe-backend/internal/auth"
	"github.com/avelarsoto/leadpipe-backend/internal/leads"
	"github.com/avelarsoto/leadpipe-backend/internal/users"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	"github.com/avelarsoto/leadpipe-backend/pkg/db"
	"github.com/avelarsoto/leadpipe-backend/pkg/logger"
	"github.com/avelarsoto/leadpipe-backend/pkg/metrics"
	"github.com/avelarsoto/leadpipe-backend/pkg/redis"
)

type sessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	RedisPinger redis.Pinger
	UserRepo    *users.Repository
	Sessions    sessionChecker
	AuthService auth.Service
	LeadService leads.Service
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(cfg, deps.UserRepo, deps.Sessions, logg))

		r.Post("/register", controllers.AuthRegister(deps.AuthService, cfg, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, cfg, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated(logg))

			r.Get("/user", controllers.AuthCurrentUser(deps.AuthService, logg))

			r.Route("/leads", func(r chi.Router) {
				r.Post("/", controllers.LeadCreate(deps.LeadService, logg))
				r.Get("/", controllers.LeadList(deps.LeadService, logg))
				r.Get("/{leadId}", controllers.LeadGet(deps.LeadService, logg))
				r.Put("/{leadId}", controllers.LeadUpdate(deps.LeadService, logg))
				r.Delete("/{leadId}", controllers.LeadDelete(deps.LeadService, logg))
			})
		})
	})

	return r
}
