package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acreworks/landfolio/app/controllers"
	"github.com/acreworks/landfolio/internal/pkg/middleware"
)

// AdminRouter carries the back office.
type AdminRouter struct {
}

func (h AdminRouter) InstallRouter(app *fiber.App) {
	admin := app.Group("/api/v1/admin", middleware.RequireAdmin)

	admin.Get("/dashboard", controllers.HandleAdminDashboard)

	admin.Get("/users", controllers.HandleAdminListUsers)
	admin.Patch("/users/:id", controllers.HandleAdminUpdateUser)
	admin.Delete("/users/:id", controllers.HandleAdminDeleteUser)

	admin.Get("/properties", controllers.HandleAdminListProperties)
	admin.Post("/properties", controllers.HandleAdminCreateProperty)
	admin.Put("/properties/:id", controllers.HandleAdminUpdateProperty)
	admin.Delete("/properties/:id", controllers.HandleAdminDeleteProperty)
	admin.Post("/properties/:id/images", controllers.HandleAdminUploadImage)
	admin.Delete("/properties/:id/images/:imageId", controllers.HandleAdminDeleteImage)
	admin.Get("/properties/:id/listing", controllers.HandleAdminListingHTML)

	admin.Get("/properties/:id/taxes", controllers.HandleAdminListTaxRecords)
	admin.Post("/properties/:id/taxes", controllers.HandleAdminCreateTaxRecord)
	admin.Post("/taxes/:recordId/pay", controllers.HandleAdminPayTaxRecord)
	admin.Delete("/taxes/:recordId", controllers.HandleAdminDeleteTaxRecord)

	admin.Get("/payments", controllers.HandleAdminListPayments)
	admin.Post("/payments/:id/refund", controllers.HandleAdminRefundPayment)
	admin.Delete("/payments/:id", controllers.HandleAdminDeletePayment)

	admin.Get("/loans", controllers.HandleAdminListLoans)
	admin.Get("/loans/:id", controllers.HandleAdminGetLoan)
	admin.Patch("/loans/:id", controllers.HandleAdminUpdateLoan)
	admin.Post("/loans/:id/payments", controllers.HandleAdminRecordPayment)

	// Loan import wizard. Recalculate and generate are pure previews; only
	// commit writes.
	imports := admin.Group("/loan-imports")
	imports.Post("/recalculate", controllers.HandleImportRecalculate)
	imports.Post("/generate", controllers.HandleImportGenerate)
	imports.Post("/commit", controllers.HandleImportCommit)

	admin.Get("/auctions", controllers.HandleAdminListAuctions)
	admin.Post("/auctions", controllers.HandleAdminCreateAuction)
	admin.Put("/auctions/:id", controllers.HandleAdminUpdateAuction)
	admin.Delete("/auctions/:id", controllers.HandleAdminDeleteAuction)

	admin.Get("/messages", controllers.HandleAdminListMessages)
	admin.Get("/messages/:id", controllers.HandleAdminGetMessage)
	admin.Post("/messages/:id/replied", controllers.HandleAdminMarkReplied)
	admin.Delete("/messages/:id", controllers.HandleAdminDeleteMessage)

	admin.Get("/pages", controllers.HandleAdminListPages)
	admin.Post("/pages", controllers.HandleAdminCreatePage)
	admin.Put("/pages/:id", controllers.HandleAdminUpdatePage)
	admin.Delete("/pages/:id", controllers.HandleAdminDeletePage)

	admin.Get("/settings", controllers.HandleAdminGetSettings)
	admin.Put("/settings", controllers.HandleAdminSaveSettings)
}

func NewAdminRouter() *AdminRouter {
	return &AdminRouter{}
}
