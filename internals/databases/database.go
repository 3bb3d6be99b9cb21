package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"docpulse_backend/internals/configs"
	companyModel "docpulse_backend/internals/features/companies/model"
	renewalLogModel "docpulse_backend/internals/features/documents/renewal_logs/model"
	settingsModel "docpulse_backend/internals/features/documents/settings/model"
	trackerModel "docpulse_backend/internals/features/documents/tracker/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=docpulse&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// TunePool: atur pool connection sesuai env (default aman untuk instance kecil)
func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] gagal ambil sql.DB: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(15)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate: auto-migrate semua model fitur + index parsial untuk uniqueness dokumen Current
func Migrate() {
	if err := DB.AutoMigrate(
		&companyModel.Company{},
		&trackerModel.DocumentTracker{},
		&trackerModel.DocumentTrackerAttachment{},
		&renewalLogModel.RenewalLog{},
		&renewalLogModel.RenewalLogItem{},
		&settingsModel.TrackerSettings{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	// Backstop untuk read-then-write uniqueness check di LifecycleService:
	// dua submit bersamaan untuk dokumen logis yang sama akan kena index ini.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_current_document_tracker
		ON document_trackers (document_tracker_company_id, document_tracker_name, document_tracker_category)
		WHERE document_tracker_lifecycle_state = 'Current'
		  AND document_tracker_docstatus = 1
		  AND document_tracker_status NOT IN ('Cancelled')
		  AND document_tracker_amended_from IS NULL
		  AND document_tracker_deleted_at IS NULL
	`).Error; err != nil {
		log.Printf("[WARN] gagal buat index uniq_current_document_tracker: %v", err)
	}

	log.Println("✅ Migrasi selesai.")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
