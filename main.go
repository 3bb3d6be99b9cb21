// file: main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"docpulse_backend/internals/configs"
	database "docpulse_backend/internals/databases"
	"docpulse_backend/internals/middlewares"
	loggerMiddleware "docpulse_backend/internals/middlewares/logger"
	"docpulse_backend/internals/route"
	"docpulse_backend/internals/scheduler"
	"docpulse_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.Migrate()

	if configs.GetEnv("SEED", "false") == "true" {
		if err := seeds.Run(database.DB); err != nil {
			log.Printf("[WARN] seeding gagal: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "docpulse_backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(requestid.New())
	app.Use(middlewares.CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(middlewares.DBMiddleware(database.DB))

	// Scheduler: jadwal diambil dari tracker_settings, best-effort saat boot.
	sched := scheduler.NewScheduler(database.DB)
	if err := sched.SyncFromSettings(); err != nil {
		log.Printf("[WARN] gagal sync jadwal scan dari settings: %v", err)
	}
	sched.Start()

	route.SetupRoutes(app, database.DB, sched)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("⏳ Shutdown: tunggu job cron selesai...")
		<-sched.Stop().Done()
		_ = app.Shutdown()
	}()

	port := configs.GetEnv("PORT", "8080")
	log.Printf("🚀 docpulse_backend listen di :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server berhenti: %v", err)
	}
}
