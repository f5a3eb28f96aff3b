package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/otkirbek-shop/go-storefront/docs" // Импорт сгенерированных файлов
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

// RouterDeps — зависимости маршрутов API.
type RouterDeps struct {
	Catalog   usecase.CatalogUC
	Cart      usecase.CartUC
	Orders    usecase.OrderUC
	Favorites usecase.FavoritesUC
	Users     usecase.UserUC

	Verifier    InitDataVerifier
	SessionRepo usecase.SessionRepository
	AdminIDs    []int64
	SessionTTL  time.Duration
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(deps *RouterDeps) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	auth := NewAuthMiddleware(deps.Verifier, r.logger)
	admin := NewAdminMiddleware(deps.AdminIDs, deps.SessionRepo, deps.SessionTTL, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(auth.Handle)

		registerCatalogRoutes(v1, NewCatalogHandler(deps.Catalog, r.logger))
		registerCartRoutes(v1, NewCartHandler(deps.Cart, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(deps.Orders, deps.Cart, deps.Users, r.logger))
		registerFavoritesRoutes(v1, NewFavoritesHandler(deps.Favorites, r.logger))

		v1.Route("/admin", func(ar chi.Router) {
			ar.Use(admin.Handle)
			registerAdminRoutes(ar, NewAdminHandler(deps.Catalog, deps.Orders, r.logger))
		})
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/products", h.getProducts)
	router.Get("/products/{id}", h.getProductByID)
	router.Get("/categories", h.getCategories)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clearCart)
		cr.Post("/items", h.addItem)
		cr.Patch("/items/{productID}", h.updateQuantity)
		cr.Delete("/items/{productID}", h.removeItem)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/", h.createOrder)
		or.Get("/", h.listOrders)
		or.Get("/{id}", h.getOrderByID)
		or.Post("/{id}/received", h.confirmReceived)
	})
}

func registerFavoritesRoutes(router chi.Router, h *FavoritesHandler) {
	router.Route("/favorites", func(fr chi.Router) {
		fr.Get("/", h.listFavorites)
		fr.Put("/{productID}", h.addFavorite)
		fr.Delete("/{productID}", h.removeFavorite)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Post("/products", h.addProduct)
	router.Delete("/products/{id}", h.deleteProduct)
	router.Post("/categories", h.addCategory)
	router.Delete("/categories/{id}", h.deleteCategory)
	router.Patch("/orders/{id}/status", h.updateOrderStatus)
}
