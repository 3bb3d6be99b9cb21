// file: internals/features/documents/settings/controller/tracker_settings_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "docpulse_backend/internals/features/documents/settings/dto"
	model "docpulse_backend/internals/features/documents/settings/model"
	helper "docpulse_backend/internals/helpers"
	"docpulse_backend/internals/scheduler"
)

type TrackerSettingsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Sched     *scheduler.Scheduler
}

func NewTrackerSettingsController(db *gorm.DB, sched *scheduler.Scheduler) *TrackerSettingsController {
	return &TrackerSettingsController{DB: db, Validator: validator.New(), Sched: sched}
}

// GET /settings
func (ctl *TrackerSettingsController) Get(c *fiber.Ctx) error {
	s, err := model.Load(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.FromModelTrackerSettings(s))
}

// PUT /settings
// Jadwal baru langsung di-resync ke cron; kalau ekspresi invalid,
// error dikembalikan ke caller dan settings tidak disimpan.
func (ctl *TrackerSettingsController) Update(c *fiber.Ctx) error {
	var req dto.UpdateTrackerSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := model.Load(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.CronSchedule != nil {
		s.TrackerSettingsCronSchedule = strings.TrimSpace(*req.CronSchedule)
	}
	if req.ScanEnabled != nil {
		s.TrackerSettingsScanEnabled = *req.ScanEnabled
	}

	// Validasi ekspresi dulu, lalu persist, baru resync cron.
	// Kalau Save gagal, scheduler belum disentuh dan tetap konsisten
	// dengan row settings lama.
	if err := scheduler.ValidateSchedule(s.TrackerSettingsCronSchedule); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Ekspresi cron invalid: "+err.Error())
	}

	if err := ctl.DB.Save(s).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.Sched.Register(s.TrackerSettingsCronSchedule, s.TrackerSettingsScanEnabled); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Settings tersimpan, resync scheduler gagal: "+err.Error())
	}

	return helper.Success(c, "Settings disimpan", dto.FromModelTrackerSettings(s))
}

// GET /scheduler/status
func (ctl *TrackerSettingsController) SchedulerStatus(c *fiber.Ctx) error {
	return helper.Success(c, "OK", ctl.Sched.Status())
}

// POST /scheduler/run-now — trigger scan manual, error langsung ke caller.
func (ctl *TrackerSettingsController) RunScanNow(c *fiber.Ctx) error {
	if err := ctl.Sched.RunNow(c.UserContext()); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Renewal scan selesai", ctl.Sched.Status())
}
