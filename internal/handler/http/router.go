package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yasheela-alla/cartIt/pkg/health"
	"github.com/yasheela-alla/cartIt/pkg/middleware"

	"github.com/yasheela-alla/cartIt/internal/service"
)

// NewRouter creates a chi router with all checkout service routes registered.
func NewRouter(
	checkoutService *service.CheckoutService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("checkout"))
	r.Use(middleware.Tracing("checkout"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	checkoutHandler := NewCheckoutHandler(checkoutService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(CORS)
		r.Use(ContentTypeJSON)

		r.Get("/products", checkoutHandler.ListProducts)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", checkoutHandler.CreateSession)

			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", checkoutHandler.GetSession)

				r.Post("/items", checkoutHandler.AddItem)
				r.Patch("/items/{productId}", checkoutHandler.AdjustQuantity)
				r.Delete("/items/{productId}", checkoutHandler.RemoveItem)

				r.Post("/checkout", checkoutHandler.Checkout)
				r.Post("/back", checkoutHandler.Back)
				r.Post("/payment", checkoutHandler.CompletePayment)
				r.Post("/continue", checkoutHandler.Continue)
			})
		})
	})

	return r
}
