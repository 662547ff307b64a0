package handler

import (
	"go-commerce-api/internal/middleware"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Server bundles the handlers mounted by SetupRoutes.
type Server struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Catalog   *CatalogHandler
	Orders    *OrderHandler
	Promos    *PromoHandler
	Dashboard *DashboardHandler
}

// SetupRoutes mounts the API under /api/v1 and the websocket feed under /ws. hub may be nil.
func SetupRoutes(app *fiber.App, s *Server, auth middleware.Authenticator, hub *ws.Hub) {
	api := app.Group("/api/v1")
	protected := middleware.RequireAuth(auth)
	priv := middleware.RequirePrivilege

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", s.Auth.Login)
	api.Post("/auth/validate-token", s.Auth.ValidateToken)

	api.Get("/users", s.Users.GetUsers)
	api.Post("/users", s.Users.CreateUser)
	api.Get("/users/:id", protected, priv(model.PrivUserView), s.Users.GetUser)

	api.Get("/brands", s.Catalog.GetBrands)
	api.Get("/categories", s.Catalog.GetCategories)
	api.Get("/colors", s.Catalog.GetColors)
	api.Get("/products", s.Catalog.GetProducts)
	api.Get("/products/:id", s.Catalog.GetProduct)
	api.Get("/variants/:id/quote", s.Promos.Quote)
	api.Get("/coupons/:code/validity", s.Promos.CouponValidity)

	// ============ PROTECTED ROUTES ============
	api.Post("/brands", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateBrand)
	api.Post("/categories", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateCategory)
	api.Post("/colors", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateColor)
	api.Post("/products", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateProduct)
	api.Post("/products/:id/variants", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateVariant)
	api.Post("/variants/:id/images", protected, priv(model.PrivCatalogWrite), s.Catalog.CreateImage)

	api.Post("/orders", protected, priv(model.PrivOrderCreate), s.Orders.CreateOrder)
	api.Get("/orders/:id", protected, priv(model.PrivOrderView), s.Orders.GetOrder)
	api.Post("/orders/:id/items", protected, priv(model.PrivOrderCreate), s.Orders.AddItem)
	api.Post("/orders/:id/recalculate", protected, priv(model.PrivOrderCreate), s.Orders.RecalculateTotal)
	api.Post("/orders/:id/payment", protected, priv(model.PrivPaymentCreate), s.Orders.CreatePayment)
	api.Delete("/orders/:id", protected, priv(model.PrivOrderCreate), s.Orders.DeleteOrder)

	api.Get("/promos", protected, priv(model.PrivPromoWrite), s.Promos.GetPromos)
	api.Post("/promos", protected, priv(model.PrivPromoWrite), s.Promos.CreatePromo)
	api.Post("/coupons", protected, priv(model.PrivCouponWrite), s.Promos.CreateCoupon)
	api.Post("/coupons/:code/redeem", protected, priv(model.PrivCouponRedeem), s.Promos.RedeemCoupon)

	api.Get("/dashboard/stats", protected, priv(model.PrivDashboardView), s.Dashboard.GetDashboardStats)

	if hub == nil {
		return
	}
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(hub.Serve))
}
