package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/staykenya/bookings/internal/checkout"
	"github.com/staykenya/bookings/internal/notification"
	"github.com/staykenya/bookings/internal/render"
	"github.com/staykenya/bookings/internal/service"
	"github.com/staykenya/bookings/pkg/health"
	"github.com/staykenya/bookings/pkg/middleware"
)

// NewRouter creates a chi router with all bookings service routes registered.
func NewRouter(
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	builder *checkout.Builder,
	renderer *render.Renderer,
	notifier *notification.Notifier,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bookings"))
	r.Use(middleware.Tracing("bookings"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(cartService, notifier, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, notifier, logger)
	checkoutHandler := NewCheckoutHandler(cartService, builder, notifier, logger)
	fragmentsHandler := NewFragmentsHandler(cartService, wishlistService, renderer, notifier, logger)
	actionsHandler := NewActionsHandler(cartService, wishlistService, builder, notifier, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{id}/quantity", cartHandler.AdjustQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Post("/toggle", wishlistHandler.Toggle)
			r.Delete("/items/{id}", wishlistHandler.RemoveItem)
		})

		r.Post("/actions", actionsHandler.Handle)
		r.Get("/checkout/link", checkoutHandler.Link)

		r.Get("/fragments/cart", fragmentsHandler.CartFragment)
		r.Get("/fragments/wishlist", fragmentsHandler.WishlistFragment)
		r.Get("/badges", fragmentsHandler.Badges)
		r.Get("/notifications", fragmentsHandler.Notifications)
	})

	return r
}
