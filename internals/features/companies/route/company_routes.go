package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	companyController "docpulse_backend/internals/features/companies/controller"
)

// CompanyUserRoutes: read-only untuk user terautentikasi
func CompanyUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := companyController.NewCompanyController(db)

	api.Get("/", ctl.List)
	api.Get("/:id", ctl.GetByID)
}

// CompanyAdminRoutes: kelola tenant (manager ke atas)
func CompanyAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := companyController.NewCompanyController(db)

	api.Post("/", ctl.Create)
	api.Patch("/:id", ctl.Patch)
	api.Delete("/:id", ctl.Delete)
}
