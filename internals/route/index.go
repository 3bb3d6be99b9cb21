// file: internals/route/index.go
package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"docpulse_backend/internals/constants"
	companyRoute "docpulse_backend/internals/features/companies/route"
	renewalLogRoute "docpulse_backend/internals/features/documents/renewal_logs/route"
	settingsRoute "docpulse_backend/internals/features/documents/settings/route"
	trackerRoute "docpulse_backend/internals/features/documents/tracker/route"
	helperOSS "docpulse_backend/internals/helpers/oss"
	"docpulse_backend/internals/middlewares"
	authMiddleware "docpulse_backend/internals/middlewares/auth"
	"docpulse_backend/internals/scheduler"
)

/* =========================================================
   Route groups:
   /api/p → publik (tanpa auth)
   /api/u → user terautentikasi (read)
   /api/a → admin/compliance (tulis + aksi lifecycle)
========================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB, sched *scheduler.Scheduler) {
	BaseRoutes(app)

	blob, err := helperOSS.NewOSSServiceFromEnv("docpulse")
	if err != nil {
		// Upload endpoint akan balas 503; fitur lain jalan normal.
		log.Printf("[WARN] OSS tidak aktif: %v", err)
		blob = nil
	}

	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// Publik
	p := api.Group("/p")
	p.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	// User terautentikasi (read-only)
	u := api.Group("/u", authMiddleware.AuthMiddleware())
	companyRoute.CompanyUserRoutes(u.Group("/companies"), db)
	trackerRoute.DocumentTrackerUserRoutes(u.Group("/document-trackers"), db)
	renewalLogRoute.RenewalLogUserRoutes(u.Group("/renewal-logs"), db)

	// Admin / compliance
	a := api.Group("/a", authMiddleware.AuthMiddleware())

	companyRoute.CompanyAdminRoutes(
		a.Group("/companies", authMiddleware.OnlyRoles(
			constants.RoleErrorManager("companies"), constants.ManagerAndAbove...,
		)), db)

	trackerRoute.DocumentTrackerAdminRoutes(
		a.Group("/document-trackers", authMiddleware.OnlyRoles(
			constants.RoleErrorCompliance("document tracker"), constants.OwnerAndAbove...,
		)), db, blob)

	settingsRoute.TrackerSettingsAdminRoutes(
		a.Group("/tracker", authMiddleware.OnlyRoles(
			constants.RoleErrorSystem("tracker settings"), constants.RoleSystemManager,
		)), db, sched)
}
