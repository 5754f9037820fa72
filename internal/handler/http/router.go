package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshcart/grocery-api/internal/auth"
	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/internal/service"
	"github.com/freshcart/grocery-api/pkg/health"
	"github.com/freshcart/grocery-api/pkg/middleware"
)

// RouterConfig bundles the dependencies of the HTTP router.
type RouterConfig struct {
	UserService    *service.UserService
	GroceryService *service.GroceryService
	OrderService   *service.OrderService
	JWTManager     *auth.JWTManager
	HealthHandler  *health.Handler
	RateLimiter    *middleware.RateLimiter
	CORS           middleware.CORSConfig
	Logger         *slog.Logger
}

// NewRouter creates a chi router with all grocery API routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("grocery-api"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.JWTManager.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	// Auth endpoints (public, rate-limited to slow down credential stuffing).
	authHandler := NewAuthHandler(cfg.UserService, cfg.Logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Inventory endpoints. The listing is readable by any authenticated role;
	// everything else is admin-only.
	groceryHandler := NewGroceryHandler(cfg.GroceryService, cfg.Logger)
	r.Route("/api/v1/groceries", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(30 * time.Second))

			r.Get("/", groceryHandler.ListGroceries)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Get("/{id}", groceryHandler.GetGrocery)
			r.Post("/", groceryHandler.CreateGrocery)
			r.Put("/{id}", groceryHandler.UpdateGrocery)
			r.Delete("/{id}", groceryHandler.DeleteGrocery)
		})
	})

	// Order endpoints. Placing and listing orders is for shoppers; admins can
	// still read any single order by ID.
	orderHandler := NewOrderHandler(cfg.OrderService, cfg.Logger)
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleUser))

			r.Post("/", orderHandler.PlaceOrder)
			r.Get("/", orderHandler.ListOrders)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

			r.Get("/{id}", orderHandler.GetOrder)
		})
	})

	return r
}
