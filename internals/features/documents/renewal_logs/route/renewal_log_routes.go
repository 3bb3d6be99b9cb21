package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	renewalLogController "docpulse_backend/internals/features/documents/renewal_logs/controller"
)

// RenewalLogUserRoutes: laporan scan read-only untuk user terautentikasi
func RenewalLogUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := renewalLogController.NewRenewalLogController(db)

	api.Get("/", ctl.List)
	api.Get("/:id", ctl.GetByID)
}
