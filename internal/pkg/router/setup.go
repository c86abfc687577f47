package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/acreworks/landfolio/app/controllers"
	"github.com/acreworks/landfolio/internal/pkg/gateway"
	"github.com/acreworks/landfolio/internal/pkg/imagestore"
	"github.com/acreworks/landfolio/internal/pkg/middleware"
)

// Router installs one group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires the middleware, the controller dependencies and every
// route group.
func InstallRouter(app *fiber.App) {
	// UserContext first so every later handler can read the caller.
	app.Use(middleware.UserContextMiddleware)

	controllers.InitializeGateway(gateway.NewFromEnv())

	storeCfg := imagestore.ConfigFromEnv()
	if storeCfg.IsEnabled() {
		client, err := imagestore.NewClient(storeCfg)
		if err != nil {
			log.Printf("Image storage disabled: %v", err)
		} else {
			controllers.InitializeImageStore(client)
		}
	}

	setup(app, NewApiRouter(), NewAdminRouter())
}

func setup(app *fiber.App, routers ...Router) {
	for _, r := range routers {
		r.InstallRouter(app)
	}
}
