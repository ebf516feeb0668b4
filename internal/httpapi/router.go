package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/beer-catalog/internal/logger"
)

// NewRouter wires the catalog, cart and checkout routes. metricsHandler
// serves /metrics when non-nil.
func NewRouter(h *Handler, metrics *Metrics, metricsHandler http.Handler, logg *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logg))
	r.Use(middleware.Recoverer)
	if metrics != nil {
		r.Use(metrics.Middleware)
	}

	r.Get("/healthz", h.Healthz)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{productID}", h.GetProduct)
	})

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Delete("/", h.EndSession)
		r.Get("/cart", h.GetCart)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/items", h.AddItem)
		r.Delete("/cart/items/{productID}", h.RemoveItem)
		r.Get("/checkout", h.Checkout)
	})

	return r
}
