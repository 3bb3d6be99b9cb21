package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsController "docpulse_backend/internals/features/documents/settings/controller"
	"docpulse_backend/internals/scheduler"
)

// TrackerSettingsAdminRoutes: konfigurasi scan + diagnostik scheduler
// (system manager saja).
func TrackerSettingsAdminRoutes(api fiber.Router, db *gorm.DB, sched *scheduler.Scheduler) {
	ctl := settingsController.NewTrackerSettingsController(db, sched)

	api.Get("/settings", ctl.Get)
	api.Put("/settings", ctl.Update)

	api.Get("/scheduler/status", ctl.SchedulerStatus)
	api.Post("/scheduler/run-now", ctl.RunScanNow)
}
