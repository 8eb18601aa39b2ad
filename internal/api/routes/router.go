package routes

import (
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/api/handlers"
	"github.com/zatekoja/clinicdirectory/internal/api/middleware"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler   *handlers.AuthHandler
	clinicHandler *handlers.ClinicHandler
	reviewHandler *handlers.ReviewHandler
	adminHandler  *handlers.AdminHandler
	healthHandler *handlers.HealthHandler

	tokens         middleware.TokenVerifier
	dbConfigured   bool
	allowedOrigins []string
	metrics        *observability.Metrics
}

// Options carries the cross-cutting settings of the router
type Options struct {
	Tokens         middleware.TokenVerifier
	DBConfigured   bool
	AllowedOrigins []string
	Metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	clinicHandler *handlers.ClinicHandler,
	reviewHandler *handlers.ReviewHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	opts Options,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		authHandler:    authHandler,
		clinicHandler:  clinicHandler,
		reviewHandler:  reviewHandler,
		adminHandler:   adminHandler,
		healthHandler:  healthHandler,
		tokens:         opts.Tokens,
		dbConfigured:   opts.DBConfigured,
		allowedOrigins: opts.AllowedOrigins,
		metrics:        opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	requireDB := middleware.RequireDatabase(r.dbConfigured)
	requireAuth := middleware.RequireAuth(r.tokens)
	requireAdmin := middleware.RequireAdmin(r.tokens)

	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Auth
	r.mux.Handle("POST /api/auth", requireDB(http.HandlerFunc(r.authHandler.Handle)))
	r.mux.Handle("/api/auth", handlers.MethodNotAllowed("POST, OPTIONS"))

	// Public directory
	r.mux.Handle("GET /api/clinics", requireDB(http.HandlerFunc(r.clinicHandler.ListClinics)))
	r.mux.Handle("/api/clinics", handlers.MethodNotAllowed("GET, OPTIONS"))
	r.mux.Handle("GET /api/clinics/{id}", requireDB(http.HandlerFunc(r.clinicHandler.GetClinic)))
	r.mux.Handle("/api/clinics/{id}", handlers.MethodNotAllowed("GET, OPTIONS"))

	// Reviews
	r.mux.Handle("POST /api/reviews", requireDB(requireAuth(http.HandlerFunc(r.reviewHandler.CreateReview))))
	r.mux.Handle("/api/reviews", handlers.MethodNotAllowed("POST, OPTIONS"))

	// Admin clinic management
	r.mux.Handle("GET /api/admin/clinics", requireDB(requireAdmin(http.HandlerFunc(r.adminHandler.ListClinics))))
	r.mux.Handle("POST /api/admin/clinics", requireDB(requireAdmin(http.HandlerFunc(r.adminHandler.CreateClinic))))
	r.mux.Handle("PUT /api/admin/clinics", requireDB(requireAdmin(http.HandlerFunc(r.adminHandler.UpdateClinic))))
	r.mux.Handle("DELETE /api/admin/clinics", requireDB(requireAdmin(http.HandlerFunc(r.adminHandler.DeleteClinic))))
	r.mux.Handle("/api/admin/clinics", handlers.MethodNotAllowed("GET, POST, PUT, DELETE, OPTIONS"))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so preflights never reach the mux.
	var handler http.Handler = r.mux
	handler = middleware.Recover(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
