// Package handlers wires the HTTP surface: route layout, request decoding
// and the translation of service results into JSON responses.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chandrabharti/restaurant-api/internal/captcha"
	"github.com/chandrabharti/restaurant-api/internal/config"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
	"github.com/chandrabharti/restaurant-api/internal/service"
)

type Handlers struct {
	Auth    service.AuthService
	Admin   service.AdminService
	Booking service.BookingService
	Menu    service.MenuService
	Contact service.ContactService

	Captcha     captcha.Verifier
	RateLimiter *middleware.RateLimiter
	Config      *config.Config
}

// Router assembles the full route tree.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	captchaGate := middleware.Captcha(h.Captcha, h.Config)
	requireJWT := middleware.RequireJWT(h.Config.Auth.JWTSecret)
	optionalJWT := middleware.OptionalJWT(h.Config.Auth.JWTSecret)

	limit := func(next http.Handler) http.Handler { return next }
	if h.RateLimiter != nil {
		limit = h.RateLimiter.Middleware
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(limit, captchaGate).Post("/signup", h.signup)
		r.With(limit, captchaGate).Post("/login", h.login)
		r.With(limit).Post("/google-auth", h.googleLogin)
		r.With(limit, captchaGate).Post("/forgot-password", h.forgotPassword)
		r.With(limit).Post("/reset-password", h.resetPassword)
		r.With(requireJWT).Get("/profile", h.profile)
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.listMenu)
		r.Get("/category/{category}", h.listMenuByCategory)
		r.Get("/{id}", h.getMenuItem)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.With(optionalJWT).Post("/", h.createBooking)
		r.With(requireJWT).Get("/user/{userId}", h.listUserBookings)
		r.With(requireJWT).Get("/{id}", h.getBooking)
		r.With(requireJWT).Put("/{id}/cancel", h.cancelBooking)
		r.With(requireJWT, middleware.RequireAdmin).Put("/{id}/status", h.updateBookingStatus)
	})

	r.With(captchaGate).Post("/contact", h.createMessage)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/bootstrap", h.bootstrapAdmin)
		r.With(limit, captchaGate).Post("/login", h.adminLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireJWT, middleware.RequireAdmin)

			r.Get("/dashboard/stats", h.dashboard)
			r.Post("/change-password", h.changePassword)

			r.Get("/users", h.listUsers)
			r.Put("/users/{id}/block", h.blockUser)
			r.Delete("/users/{id}", h.deleteUser)

			r.Get("/bookings", h.listBookings)
			r.Delete("/bookings/{id}", h.deleteBooking)

			r.Get("/messages", h.listMessages)
			r.Put("/messages/{id}/reply", h.replyMessage)
			r.Delete("/messages/{id}", h.deleteMessage)

			r.Post("/menu", h.createMenuItem)
			r.Put("/menu/{id}", h.updateMenuItem)
			r.Delete("/menu/{id}", h.deleteMenuItem)
		})
	})

	return r
}

// ---------- Request helpers ----------

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}
