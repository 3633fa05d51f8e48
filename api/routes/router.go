package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glow24organics/storefront-backend/api/controllers"
	cartcontrollers "github.com/glow24organics/storefront-backend/api/controllers/cart"
	checkoutcontrollers "github.com/glow24organics/storefront-backend/api/controllers/checkout"
	codcontrollers "github.com/glow24organics/storefront-backend/api/controllers/cod"
	handoffcontrollers "github.com/glow24organics/storefront-backend/api/controllers/handoff"
	ordercontrollers "github.com/glow24organics/storefront-backend/api/controllers/orders"
	paymentcontrollers "github.com/glow24organics/storefront-backend/api/controllers/payment"
	"github.com/glow24organics/storefront-backend/api/middleware"
	"github.com/glow24organics/storefront-backend/internal/cart"
	checkoutsvc "github.com/glow24organics/storefront-backend/internal/checkout"
	codsvc "github.com/glow24organics/storefront-backend/internal/cod"
	handoffsvc "github.com/glow24organics/storefront-backend/internal/handoff"
	ordersvc "github.com/glow24organics/storefront-backend/internal/orders"
	paymentsvc "github.com/glow24organics/storefront-backend/internal/payment"
	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/db"
	"github.com/glow24organics/storefront-backend/pkg/logger"
	"github.com/glow24organics/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	promRegistry *prometheus.Registry,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	paymentService paymentsvc.Service,
	codService codsvc.Service,
	handoffService handoffsvc.Service,
	orderService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CheckoutSession(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Put("/", cartcontrollers.CartReplace(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutcontrollers.CheckoutFetch(checkoutService, logg))
			r.Post("/hydrate", checkoutcontrollers.CheckoutHydrate(checkoutService, logg))
			r.Patch("/field", checkoutcontrollers.CheckoutSetField(checkoutService, logg))
			r.Post("/submit", checkoutcontrollers.CheckoutSubmit(checkoutService, logg))
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/", paymentcontrollers.PaymentStart(paymentService, logg))
			r.Get("/", paymentcontrollers.PaymentFetch(paymentService, logg))
			r.Post("/submit", paymentcontrollers.PaymentSubmit(paymentService, logg))
			r.Post("/reset", paymentcontrollers.PaymentReset(paymentService, logg))
		})

		r.Route("/cod", func(r chi.Router) {
			r.Get("/", codcontrollers.CODPreview(codService, logg))
			r.Post("/confirm", codcontrollers.CODConfirm(codService, logg))
		})

		r.Get("/handoff", handoffcontrollers.HandoffCompose(handoffService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/latest", ordercontrollers.OrderLatest(orderService, logg))
			r.Get("/{orderId}", ordercontrollers.OrderDetail(orderService, logg))
		})
	})

	return r
}
