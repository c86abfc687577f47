package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/acreworks/landfolio/app/controllers"
	"github.com/acreworks/landfolio/internal/pkg/middleware"
)

// ApiRouter carries the public catalog, auth and the customer portal.
type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))
	v1 := api.Group("/v1")

	// Public catalog and financing.
	v1.Get("/properties", controllers.HandleListProperties)
	// Registered before :slug so "featured" is not taken as a slug.
	v1.Get("/properties/featured", controllers.HandleFeaturedProperties)
	v1.Get("/properties/:slug", controllers.HandleGetProperty)
	v1.Get("/properties/:slug/payment-plans", controllers.HandlePaymentPlans)
	v1.Get("/properties/:slug/payment-plans/closest", controllers.HandleClosestPlan)

	v1.Get("/pages", controllers.HandleListPages)
	v1.Get("/pages/:slug", controllers.HandleGetPage)
	v1.Post("/contact", controllers.HandleContact)

	// Auth.
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Get("/activate", controllers.HandleActivate)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)

	// Customer portal.
	me := v1.Group("/me", middleware.RequireAuth)
	me.Get("/", controllers.HandleGetMe)
	me.Put("/", controllers.HandleUpdateMe)
	me.Get("/loans", controllers.HandleMyLoans)
	me.Get("/loans/:id", controllers.HandleMyLoan)
	me.Post("/loans/:id/payments", controllers.HandlePayInstallment)

	v1.Post("/purchases", middleware.RequireAuth, controllers.HandleCreatePurchase)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
