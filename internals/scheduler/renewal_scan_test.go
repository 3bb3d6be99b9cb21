package scheduler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	companyModel "docpulse_backend/internals/features/companies/model"
	renewalLogModel "docpulse_backend/internals/features/documents/renewal_logs/model"
	trackerModel "docpulse_backend/internals/features/documents/tracker/model"
	trackerService "docpulse_backend/internals/features/documents/tracker/service"
)

var scanToday = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newScanFixture(t *testing.T) (*RenewalScanService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&companyModel.Company{},
		&trackerModel.DocumentTracker{},
		&trackerModel.DocumentTrackerAttachment{},
		&renewalLogModel.RenewalLog{},
		&renewalLogModel.RenewalLogItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := &RenewalScanService{DB: db, Now: func() time.Time { return scanToday }}
	return svc, db
}

func seedCompany(t *testing.T, db *gorm.DB, name, slug string) *companyModel.Company {
	t.Helper()
	c := companyModel.Company{CompanyName: name, CompanySlug: slug, CompanyIsActive: true}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed company %s: %v", name, err)
	}
	return &c
}

// seedSubmitted: dokumen submitted Current dengan lead time 1M.
func seedSubmitted(t *testing.T, db *gorm.DB, c *companyModel.Company, name string, expiry time.Time) *trackerModel.DocumentTracker {
	t.Helper()
	svc := &trackerService.LifecycleService{DB: db, Now: func() time.Time { return scanToday }}

	doc := &trackerModel.DocumentTracker{
		DocumentTrackerCompanyID:     c.CompanyID,
		DocumentTrackerName:          name,
		DocumentTrackerCategory:      "License",
		DocumentTrackerIsExpiryBased: true,
		DocumentTrackerIsRenewable:   true,
		DocumentTrackerLeadTimeType:  trackerModel.LeadTime1M,
		DocumentTrackerExpiryDate:    &expiry,
	}
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	if _, err := svc.Submit(context.Background(), doc.DocumentTrackerID); err != nil {
		t.Fatalf("submit %s: %v", name, err)
	}
	return doc
}

func TestRenewalScanSeverity(t *testing.T) {
	svc, db := newScanFixture(t)
	acme := seedCompany(t, db, "Acme Logistics", "acme")

	today := trackerService.DateOnly(scanToday)
	seedSubmitted(t, db, acme, "Due Today License", today)
	seedSubmitted(t, db, acme, "Due Soon Permit", today.AddDate(0, 0, 14))
	seedSubmitted(t, db, acme, "Safe Contract", today.AddDate(1, 0, 0)) // di luar window

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	var logs []renewalLogModel.RenewalLog
	if err := db.Preload("Items").Find(&logs).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("jumlah log = %d, want 1", len(logs))
	}
	if logs[0].RenewalLogCompanyID != acme.CompanyID {
		t.Errorf("log company = %s, want acme", logs[0].RenewalLogCompanyID)
	}
	if len(logs[0].Items) != 2 {
		t.Fatalf("jumlah item = %d, want 2 (dokumen di luar window ikut terbawa?)", len(logs[0].Items))
	}

	bySeverity := map[string]renewalLogModel.RenewalLogItem{}
	for _, it := range logs[0].Items {
		bySeverity[it.RenewalLogItemSeverity] = it
	}

	dueToday, ok := bySeverity[renewalLogModel.SeverityDueToday]
	if !ok {
		t.Fatal("item Due Today tidak ada")
	}
	if dueToday.RenewalLogItemDaysToExpiry != 0 {
		t.Errorf("Due Today days = %d, want 0", dueToday.RenewalLogItemDaysToExpiry)
	}
	if dueToday.RenewalLogItemDocumentName != "Due Today License" {
		t.Errorf("Due Today name = %q", dueToday.RenewalLogItemDocumentName)
	}

	dueSoon, ok := bySeverity[renewalLogModel.SeverityDueSoon]
	if !ok {
		t.Fatal("item Due Soon tidak ada")
	}
	if dueSoon.RenewalLogItemDaysToExpiry != 14 {
		t.Errorf("Due Soon days = %d, want 14", dueSoon.RenewalLogItemDaysToExpiry)
	}
}

func TestRenewalScanOverdue(t *testing.T) {
	svc, db := newScanFixture(t)
	acme := seedCompany(t, db, "Acme Logistics", "acme")

	today := trackerService.DateOnly(scanToday)
	doc := seedSubmitted(t, db, acme, "Lapsed Permit", today.AddDate(0, 0, 7))

	// geser waktu: scan jalan 10 hari setelah expiry
	later := scanToday.AddDate(0, 0, 17)
	svc.Now = func() time.Time { return later }

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	var items []renewalLogModel.RenewalLogItem
	if err := db.Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("jumlah item = %d, want 1", len(items))
	}
	if items[0].RenewalLogItemSeverity != renewalLogModel.SeverityOverdue {
		t.Errorf("severity = %q, want Overdue", items[0].RenewalLogItemSeverity)
	}
	if items[0].RenewalLogItemDaysToExpiry != -10 {
		t.Errorf("days = %d, want -10", items[0].RenewalLogItemDaysToExpiry)
	}

	// scan juga refresh status dokumen ke Expired
	var got trackerModel.DocumentTracker
	if err := db.First(&got, "document_tracker_id = ?", doc.DocumentTrackerID).Error; err != nil {
		t.Fatalf("reload doc: %v", err)
	}
	if got.DocumentTrackerStatus != trackerModel.StatusExpired {
		t.Errorf("status = %q, want Expired", got.DocumentTrackerStatus)
	}
	if !got.DocumentTrackerFlagOverdue {
		t.Error("flag_overdue harus true")
	}
}

func TestRenewalScanSkipsQuietTenants(t *testing.T) {
	svc, db := newScanFixture(t)

	acme := seedCompany(t, db, "Acme Logistics", "acme")
	quiet := seedCompany(t, db, "Quiet Corp", "quiet")

	today := trackerService.DateOnly(scanToday)
	seedSubmitted(t, db, acme, "Due Soon Permit", today.AddDate(0, 0, 3))
	// quiet: punya dokumen tapi jauh di luar window
	seedSubmitted(t, db, quiet, "Long Lease", today.AddDate(2, 0, 0))

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	var logs []renewalLogModel.RenewalLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("jumlah log = %d, want 1 (tenant tanpa temuan tidak dapat log)", len(logs))
	}
	if logs[0].RenewalLogCompanyID != acme.CompanyID {
		t.Errorf("log milik %s, want acme", logs[0].RenewalLogCompanyID)
	}
}

func TestRenewalScanNewLogPerRun(t *testing.T) {
	svc, db := newScanFixture(t)
	acme := seedCompany(t, db, "Acme Logistics", "acme")

	today := trackerService.DateOnly(scanToday)
	seedSubmitted(t, db, acme, "Due Soon Permit", today.AddDate(0, 0, 3))

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan pertama: %v", err)
	}
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan kedua: %v", err)
	}

	var count int64
	db.Model(&renewalLogModel.RenewalLog{}).Count(&count)
	if count != 2 {
		t.Errorf("jumlah log = %d, want 2 (tiap run bikin laporan baru)", count)
	}
}

func TestRenewalScanIgnoresRenewalInProgressStatus(t *testing.T) {
	svc, db := newScanFixture(t)
	acme := seedCompany(t, db, "Acme Logistics", "acme")

	today := trackerService.DateOnly(scanToday)
	doc := seedSubmitted(t, db, acme, "In Renewal Permit", today.AddDate(0, 0, 3))

	lc := &trackerService.LifecycleService{DB: db, Now: func() time.Time { return scanToday }}
	if err := lc.MarkRenewalInProgress(context.Background(), doc.DocumentTrackerID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	// dokumen tetap masuk laporan, tapi statusnya tidak di-overwrite
	var items []renewalLogModel.RenewalLogItem
	db.Find(&items)
	if len(items) != 1 {
		t.Fatalf("jumlah item = %d, want 1", len(items))
	}
	if items[0].RenewalLogItemCurrentStatus != trackerModel.StatusRenewalInProgress {
		t.Errorf("current_status = %q, want Renewal In Progress", items[0].RenewalLogItemCurrentStatus)
	}

	var got trackerModel.DocumentTracker
	db.First(&got, "document_tracker_id = ?", doc.DocumentTrackerID)
	if got.DocumentTrackerStatus != trackerModel.StatusRenewalInProgress {
		t.Errorf("status = %q, scan tidak boleh mengubah Renewal In Progress", got.DocumentTrackerStatus)
	}
}

func TestRenewalScanIsolatesCompanyFailure(t *testing.T) {
	svc, db := newScanFixture(t)

	broken := seedCompany(t, db, "Broken Holdings", "broken")
	healthy := seedCompany(t, db, "Healthy Trading", "healthy")

	today := trackerService.DateOnly(scanToday)
	seedSubmitted(t, db, broken, "Broken License", today)
	seedSubmitted(t, db, healthy, "Healthy License", today)

	// gagal-kan insert log untuk company pertama; company berikutnya
	// harus tetap diproses
	if err := db.Exec(fmt.Sprintf(`CREATE TRIGGER fail_broken_log
		BEFORE INSERT ON renewal_logs
		WHEN NEW.renewal_log_company_id = '%s'
		BEGIN SELECT RAISE(ABORT, 'insert log ditolak'); END;`, broken.CompanyID)).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("satu company gagal harus menghasilkan error agregat")
	}
	if !strings.Contains(err.Error(), "Broken Holdings") {
		t.Errorf("error agregat tidak menyebut company yang gagal: %v", err)
	}

	var logs []renewalLogModel.RenewalLog
	if err := db.Preload("Items").Find(&logs).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("jumlah log = %d, want 1 (hanya company sehat)", len(logs))
	}
	if logs[0].RenewalLogCompanyID != healthy.CompanyID {
		t.Errorf("log company = %s, want healthy", logs[0].RenewalLogCompanyID)
	}
	if len(logs[0].Items) != 1 {
		t.Errorf("jumlah item company sehat = %d, want 1", len(logs[0].Items))
	}
}
