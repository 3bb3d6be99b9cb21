package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	trackerController "docpulse_backend/internals/features/documents/tracker/controller"
	helperOSS "docpulse_backend/internals/helpers/oss"
	"docpulse_backend/internals/middlewares"
)

// DocumentTrackerUserRoutes: read-only untuk user terautentikasi
func DocumentTrackerUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := trackerController.NewDocumentTrackerController(db, nil)

	api.Get("/", ctl.List)
	api.Get("/:id", ctl.GetByID)
	api.Get("/:id/chain", ctl.GetChain)
}

// DocumentTrackerAdminRoutes: CRUD + aksi lifecycle (compliance ke atas)
func DocumentTrackerAdminRoutes(api fiber.Router, db *gorm.DB, blob *helperOSS.OSSService) {
	ctl := trackerController.NewDocumentTrackerController(db, blob)
	act := trackerController.NewDocumentActionController(db)

	api.Post("/", ctl.Create)
	api.Patch("/:id", ctl.Patch)
	api.Delete("/:id", ctl.Delete)

	api.Post("/:id/submit", middlewares.DocumentActionRateLimiter(), ctl.Submit)
	api.Post("/:id/upload", middlewares.UploadRateLimiter(), ctl.UploadAttachment)

	// Aksi lifecycle; :id opsional karena payload lama masih
	// mengirim target lewat body (name / docname / doc).
	actions := api.Group("/actions", middlewares.DocumentActionRateLimiter())
	actions.Post("/renew/:id?", act.Renew)
	actions.Post("/mark-renewal-in-progress/:id?", act.MarkRenewalInProgress)
	actions.Post("/revert-renewal-status/:id?", act.RevertRenewalStatus)
	actions.Post("/revoke-or-cancel/:id?", act.RevokeOrCancel)
	actions.Patch("/lifecycle-state/:id?", act.UpdateLifecycleState)
	actions.Patch("/status/:id?", act.UpdateStatus)
}
