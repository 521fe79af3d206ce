package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/practice-booking/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/practice-booking/internal/http/middleware"
	"github.com/wolfman30/practice-booking/internal/web"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

// Config holds router configuration. Booking, Pages and Slots are required.
type Config struct {
	Logger  *logging.Logger
	Booking *handlers.BookingHandler
	Pages   *handlers.PagesHandler
	Slots   *handlers.SlotsHandler

	// Health defaults to a static ok response.
	Health         http.HandlerFunc
	MetricsHandler http.Handler

	CORSAllowedOrigins []string
	// RateLimiter throttles form posts and the JSON API when set.
	RateLimiter   *httpmiddleware.RateLimiter
	SecureCookies bool
}

// New creates the chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimiter != nil {
		throttle = httpmiddleware.RateLimit(cfg.RateLimiter)
	}

	health := cfg.Health
	if health == nil {
		health = handlers.Health(nil)
	}
	r.Get("/health", health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Handle("/static/*", web.Static())

	r.Get("/", cfg.Pages.Home)
	r.Get("/confirmation", cfg.Pages.Confirmation)
	r.Get("/confirmation/{id}", cfg.Pages.Confirmation)

	r.Route("/book", func(book chi.Router) {
		book.Use(httpmiddleware.SessionCookie(cfg.SecureCookies))
		book.Get("/", cfg.Booking.Book)
		book.Get("/calendar", cfg.Booking.Calendar)
		book.Group(func(form chi.Router) {
			form.Use(throttle)
			form.Post("/date", cfg.Booking.SelectDate)
			form.Post("/time", cfg.Booking.SelectTime)
			form.Post("/session-type", cfg.Booking.SelectSessionType)
			form.Post("/client", cfg.Booking.UpdateClient)
			form.Post("/next", cfg.Booking.Next)
			form.Post("/back", cfg.Booking.Back)
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
		api.Use(throttle)
		api.Get("/slots", cfg.Slots.List)
	})

	r.NotFound(cfg.Pages.NotFound)

	return r
}
