// file: internals/features/documents/settings/controller/tracker_settings_controller_test.go
package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "docpulse_backend/internals/features/documents/settings/model"
	"docpulse_backend/internals/scheduler"
)

func newSettingsFixture(t *testing.T) (*fiber.App, *gorm.DB, *TrackerSettingsController) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// :memory: itu per-connection
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.TrackerSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := model.Load(db); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	sched := scheduler.NewScheduler(db)
	if err := sched.Register(model.DefaultCronSchedule, true); err != nil {
		t.Fatalf("register default: %v", err)
	}

	ctl := NewTrackerSettingsController(db, sched)
	app := fiber.New()
	app.Put("/settings", ctl.Update)
	return app, db, ctl
}

func putSettings(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPut, "/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestUpdateSettingsResyncsScheduler(t *testing.T) {
	app, db, ctl := newSettingsFixture(t)

	resp := putSettings(t, app, `{"tracker_settings_cron_schedule":"30 7 * * *"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	s, _ := model.Load(db)
	if s.TrackerSettingsCronSchedule != "30 7 * * *" {
		t.Errorf("schedule tersimpan = %q, want %q", s.TrackerSettingsCronSchedule, "30 7 * * *")
	}
	if st := ctl.Sched.Status(); st.Schedule != "30 7 * * *" {
		t.Errorf("schedule scheduler = %q, want %q", st.Schedule, "30 7 * * *")
	}
}

func TestUpdateSettingsRejectsInvalidCron(t *testing.T) {
	app, db, ctl := newSettingsFixture(t)

	resp := putSettings(t, app, `{"tracker_settings_cron_schedule":"not a cron"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	s, _ := model.Load(db)
	if s.TrackerSettingsCronSchedule != model.DefaultCronSchedule {
		t.Errorf("row berubah padahal ekspresi invalid: %q", s.TrackerSettingsCronSchedule)
	}
	if st := ctl.Sched.Status(); st.Schedule != model.DefaultCronSchedule {
		t.Errorf("scheduler berubah padahal ekspresi invalid: %q", st.Schedule)
	}
}

func TestUpdateSettingsSaveFailureKeepsScheduler(t *testing.T) {
	app, db, ctl := newSettingsFixture(t)

	// Paksa UPDATE gagal; scheduler harus tetap di jadwal lama
	// supaya tidak lepas sinkron dari row yang tersimpan.
	if err := db.Exec(`CREATE TRIGGER block_settings_update
		BEFORE UPDATE ON tracker_settings
		BEGIN SELECT RAISE(ABORT, 'update ditolak'); END;`).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	resp := putSettings(t, app, `{"tracker_settings_cron_schedule":"30 7 * * *"}`)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	if st := ctl.Sched.Status(); st.Schedule != model.DefaultCronSchedule {
		t.Errorf("scheduler ikut berubah padahal save gagal: %q", st.Schedule)
	}
	s, _ := model.Load(db)
	if s.TrackerSettingsCronSchedule != model.DefaultCronSchedule {
		t.Errorf("row berubah padahal save gagal: %q", s.TrackerSettingsCronSchedule)
	}
}
