package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/api"
	apiMiddleware "github.com/sohilaahmed2/AlaEltalab/internal/api/middleware"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.customerStore,
		app.providerStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	bookingHandler := api.NewBookingHandler(app.bookingService)
	ratingHandler := api.NewRatingHandler(app.ratingService)
	providerHandler := api.NewProviderHandler(app.directoryService)
	accountHandler := api.NewAccountHandler(app.customerStore, app.providerStore, app.ratingStore)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register/customer", authHandler.RegisterCustomer)
		r.Post("/auth/register/provider", authHandler.RegisterProvider)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints (both roles)
			r.Get("/me", accountHandler.Get)
			r.Put("/me", accountHandler.Update)
			r.Delete("/me", accountHandler.Delete)

			// Booking list is role-aware (both roles)
			r.Get("/bookings", bookingHandler.List)

			// Service catalog
			r.Get("/services", providerHandler.Services)

			// Customer endpoints
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireRole(auth.RoleCustomer))

				r.Get("/providers", providerHandler.Find)
				r.Post("/bookings", bookingHandler.Create)
				r.Delete("/bookings/{id}", bookingHandler.Cancel)
				r.Post("/bookings/{id}/rating", ratingHandler.Rate)
			})

			// Provider endpoints
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireRole(auth.RoleProvider))

				r.Post("/bookings/{id}/confirm", bookingHandler.Confirm)
				r.Post("/bookings/{id}/reject", bookingHandler.Reject)
				r.Post("/bookings/{id}/start", bookingHandler.Start)
				r.Post("/bookings/{id}/complete", bookingHandler.Complete)
				r.Post("/bookings/{id}/paid", bookingHandler.MarkPaid)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
