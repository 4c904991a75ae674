package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bautizosmaitte/storefront-api/api/controllers"
	"github.com/bautizosmaitte/storefront-api/api/middleware"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/metrics"
)

// Deps collects everything the router wires into handlers. All services
// are injected; nothing here reaches for globals.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	KV        kvstore.Store
	Registry  *prometheus.Registry
	Metrics   *metrics.HTTPMetrics
	Catalog   catalog.Service
	Cart      controllers.CartService
	Favorites controllers.FavoritesService
	Checkout  controllers.CheckoutService
	Sales     controllers.SalesClient
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.Site),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.KV))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/site-config", controllers.SiteConfig(cfg))

		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.ProductBySlug(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/brands", controllers.ListBrands(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, cfg.App.IsProd(), logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
				r.Put("/items/{lineID}", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Delete("/items/{lineID}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesFetch(deps.Favorites, logg))
				r.Post("/toggle", controllers.FavoritesToggle(deps.Favorites, deps.Catalog, logg))
				r.Delete("/{productID}", controllers.FavoritesRemove(deps.Favorites, logg))
				r.Delete("/", controllers.FavoritesClear(deps.Favorites, logg))
			})

			r.Get("/checkout/totals", controllers.CheckoutTotals(deps.Checkout, logg))
			r.Post("/checkout", controllers.Checkout(deps.Checkout, cfg.Site, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.SaleCreate(deps.Sales, logg))
			r.Get("/{saleID}", controllers.SaleDetail(deps.Sales, logg))
			r.Put("/{saleID}/status", controllers.SaleUpdateStatus(deps.Sales, logg))
		})
	})

	return r
}
