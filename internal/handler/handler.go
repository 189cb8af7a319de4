package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Tokens         TokenParser
	Roles          RoleChecker
	Health         Pinger
}

// Handlers groups the per-resource handlers mounted by NewHandler.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Catalog  *CatalogHandler
	Bookings *BookingHandler
	Stats    *StatsHandler
}

type Handler struct {
	router *chi.Mux
	opts   Options
	hs     Handlers
}

func NewHandler(opts Options, hs Handlers) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(opts.Logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	h := &Handler{
		router: router,
		opts:   opts,
		hs:     hs,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	r := h.router
	authorize := Authorize(h.opts.Tokens)

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	r.Get("/jwt", h.hs.Auth.IssueToken)

	r.Post("/users", h.hs.Users.CreateUser)
	r.Get("/users", h.hs.Users.ListUsers)
	r.Get("/users/admin/{email}", h.hs.Users.CheckRole(model.RoleAdmin, "isAdmin"))
	r.Get("/users/sellers/{email}", h.hs.Users.CheckRole(model.RoleSeller, "isSeller"))
	r.Get("/users/buyers/{email}", h.hs.Users.CheckRole(model.RoleBuyer, "isBuyer"))
	r.Delete("/users/{id}", h.hs.Users.DeleteUser)
	r.Get("/buyers", h.hs.Users.ListByRole(model.RoleBuyer))
	r.Get("/sellers", h.hs.Users.ListByRole(model.RoleSeller))
	r.Patch("/sellers/{id}", h.hs.Users.UpdateSellerStatus)

	r.Get("/categories", h.hs.Catalog.ListCategories)
	r.Post("/categories", h.hs.Catalog.CreateCategory)
	r.Get("/categories/{id}", h.hs.Catalog.GetCategory)

	r.Post("/products", h.hs.Catalog.CreateProduct)
	r.Get("/products", h.hs.Catalog.ListProducts)
	r.Get("/products/{id}", h.hs.Catalog.GetProduct)
	r.Delete("/products/{id}", h.hs.Catalog.DeleteProduct)

	r.With(authorize).Get("/bookings", h.hs.Bookings.ListBookings)
	r.Get("/bookings/{id}", h.hs.Bookings.GetBooking)
	r.Post("/bookings", h.hs.Bookings.CreateBooking)

	r.Post("/create-payment-intent", h.hs.Bookings.CreatePaymentIntent)
	r.Post("/payments", h.hs.Bookings.RecordPayment)

	r.With(authorize, RequireRole(h.opts.Roles, model.RoleAdmin, h.opts.Logger)).Get("/stats", h.hs.Stats.GetStats)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("mobile resale market server is running"))
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.opts.Health != nil {
		if err := h.opts.Health.Ping(r.Context()); err != nil {
			h.opts.Logger.Error("health check failed", "err", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
