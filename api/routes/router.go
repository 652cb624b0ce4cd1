package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoprate/shoprate-backend/api/controllers"
	"github.com/shoprate/shoprate-backend/api/middleware"
	"github.com/shoprate/shoprate-backend/internal/auth"
	"github.com/shoprate/shoprate-backend/internal/ratings"
	"github.com/shoprate/shoprate-backend/internal/stores"
	"github.com/shoprate/shoprate-backend/internal/users"
	"github.com/shoprate/shoprate-backend/pkg/config"
	"github.com/shoprate/shoprate-backend/pkg/db"
	"github.com/shoprate/shoprate-backend/pkg/enums"
	"github.com/shoprate/shoprate-backend/pkg/logger"
	"github.com/shoprate/shoprate-backend/pkg/metrics"
	"github.com/shoprate/shoprate-backend/pkg/redis"
)

// Deps carries everything the router wires into its handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	UsersRepo *users.Repository

	AuthService   auth.Service
	UserService   users.Service
	StoreService  stores.Service
	RatingService ratings.Service
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
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// A missing redis client must reach the middleware as an untyped nil so
	// the rate limit disables itself instead of panicking on a typed nil.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

	authed := middleware.Auth(cfg.JWT, deps.UsersRepo, logg)
	adminOnly := middleware.RequireRole(logg, enums.RoleAdmin)

	r.Get("/", controllers.Root(cfg))
	r.Get("/healthz", controllers.Health(cfg, deps.DB))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimit(registerPolicy)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(rateLimit(loginPolicy)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoresList(deps.StoreService, logg))
			r.Get("/{id}", controllers.StoreGet(deps.StoreService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.With(adminOnly).Post("/", controllers.StoreCreate(deps.StoreService, logg))
				r.Put("/{id}", controllers.StoreUpdate(deps.StoreService, logg))
				r.With(adminOnly).Delete("/{id}", controllers.StoreDelete(deps.StoreService, logg))
				r.Get("/owner/{ownerId}", controllers.StoresByOwner(deps.StoreService, logg))
			})
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Get("/store/{storeId}", controllers.RatingsByStore(deps.RatingService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.RatingCreate(deps.RatingService, logg))
				r.With(adminOnly).Get("/", controllers.RatingsList(deps.RatingService, logg))
				r.Get("/user/{userId}/store/{storeId}", controllers.RatingByUserAndStore(deps.RatingService, logg))
				r.Put("/{id}", controllers.RatingUpdate(deps.RatingService, logg))
				r.Delete("/{id}", controllers.RatingDelete(deps.RatingService, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/", controllers.UsersList(deps.UserService, logg))
			r.Get("/dashboard", controllers.UsersDashboard(deps.UserService, logg))
			r.Get("/{id}", controllers.UserGet(deps.UserService, logg))
			r.Post("/", controllers.UserCreate(deps.UserService, logg))
			r.Put("/{id}", controllers.UserUpdate(deps.UserService, logg))
			r.Delete("/{id}", controllers.UserDelete(deps.UserService, logg))
		})
	})

	return r
}
