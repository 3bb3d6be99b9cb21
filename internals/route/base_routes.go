package route

import (
	"github.com/gofiber/fiber/v2"

	helper "docpulse_backend/internals/helpers"
)

// BaseRoutes: endpoint publik tanpa auth (health check dsb).
func BaseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return helper.Success(c, "OK", fiber.Map{"service": "docpulse_backend"})
	})
}
