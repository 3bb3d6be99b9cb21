// file: internals/scheduler/renewal_scan.go
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	companyModel "docpulse_backend/internals/features/companies/model"
	renewalLogModel "docpulse_backend/internals/features/documents/renewal_logs/model"
	trackerModel "docpulse_backend/internals/features/documents/tracker/model"
	trackerService "docpulse_backend/internals/features/documents/tracker/service"
)

// RenewalScanService: job harian yang menyisir dokumen submitted Current,
// refresh status/flag berbasis tanggal, dan menulis laporan per company.
type RenewalScanService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRenewalScanService(db *gorm.DB) *RenewalScanService {
	return &RenewalScanService{DB: db, Now: time.Now}
}

// Run: satu eksekusi scan penuh. Gagal di satu company tidak menghentikan
// company lain; error dikumpulkan dan dikembalikan sebagai satu error.
func (s *RenewalScanService) Run(ctx context.Context) error {
	started := s.Now()
	today := trackerService.DateOnly(started)
	log.Printf("[SCAN] mulai renewal scan untuk tanggal %s", today.Format("2006-01-02"))

	var companies []companyModel.Company
	if err := companyModel.ScopeAlive(s.DB.WithContext(ctx)).
		Where("company_is_active = ?", true).
		Find(&companies).Error; err != nil {
		return fmt.Errorf("renewal scan: gagal ambil daftar company: %w", err)
	}

	var failed []string
	for i := range companies {
		if err := s.scanCompany(ctx, &companies[i], today); err != nil {
			log.Printf("[SCAN] ❌ company %s (%s): %v",
				companies[i].CompanyName, companies[i].CompanyID, err)
			failed = append(failed, companies[i].CompanyName)
		}
	}

	log.Printf("[SCAN] selesai: %d company, %d gagal, durasi %s",
		len(companies), len(failed), time.Since(started).Round(time.Millisecond))

	if len(failed) > 0 {
		return fmt.Errorf("renewal scan: %d dari %d company gagal: %v",
			len(failed), len(companies), failed)
	}
	return nil
}

// scanCompany: proses satu tenant dalam satu transaksi.
// Laporan hanya dibuat kalau ada dokumen yang masuk window.
func (s *RenewalScanService) scanCompany(ctx context.Context, company *companyModel.Company, today time.Time) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var docs []trackerModel.DocumentTracker
		if err := trackerModel.ScopeAlive(tx.Model(&trackerModel.DocumentTracker{})).
			Scopes(trackerModel.ScopeByCompany(company.CompanyID)).
			Where("document_tracker_docstatus = ?", trackerModel.DocstatusSubmitted).
			Where("document_tracker_lifecycle_state = ?", trackerModel.LifecycleCurrent).
			Where("document_tracker_is_expiry_based = ?", true).
			Where("document_tracker_is_renewable = ?", true).
			Where("document_tracker_status NOT IN ?", []string{
				trackerModel.StatusDraft,
				trackerModel.StatusRenewed,
				trackerModel.StatusRevoked,
				trackerModel.StatusCancelled,
			}).
			Where("document_tracker_expiry_date IS NOT NULL").
			Find(&docs).Error; err != nil {
			return err
		}

		var items []renewalLogModel.RenewalLogItem
		for i := range docs {
			doc := &docs[i]
			expiry := trackerService.DateOnly(*doc.DocumentTrackerExpiryDate)
			days := trackerService.DaysBetween(expiry, today)

			// window tercapai: remind date ada dan sudah lewat.
			// Filter tanggal di Go, bukan di SQL, supaya aturan window satu sumber.
			if doc.DocumentTrackerRemindFromDate == nil ||
				today.Before(trackerService.DateOnly(*doc.DocumentTrackerRemindFromDate)) {
				continue
			}

			if err := s.refreshDocumentFlags(tx, doc, today, days); err != nil {
				return err
			}

			severity := renewalLogModel.SeverityDueSoon
			switch {
			case days < 0:
				severity = renewalLogModel.SeverityOverdue
			case days == 0:
				severity = renewalLogModel.SeverityDueToday
			}

			items = append(items, renewalLogModel.RenewalLogItem{
				RenewalLogItemDocumentID:       doc.DocumentTrackerID,
				RenewalLogItemDocumentName:     doc.DocumentTrackerName,
				RenewalLogItemCategory:         doc.DocumentTrackerCategory,
				RenewalLogItemIssuingAuthority: doc.DocumentTrackerAuthority,
				RenewalLogItemIssueDate:        doc.DocumentTrackerIssueDate,
				RenewalLogItemExpiryDate:       doc.DocumentTrackerExpiryDate,
				RenewalLogItemRemindFromDate:   doc.DocumentTrackerRemindFromDate,
				RenewalLogItemDaysToExpiry:     days,
				RenewalLogItemSeverity:         severity,
				RenewalLogItemOwnerPerson:      doc.DocumentTrackerOwnerPerson,
				RenewalLogItemCurrentStatus:    doc.DocumentTrackerStatus,
			})
		}

		if len(items) == 0 {
			return nil
		}

		logRow := renewalLogModel.RenewalLog{
			RenewalLogCompanyID: company.CompanyID,
			RenewalLogDate:      today,
			RenewalLogDocstatus: trackerModel.DocstatusSubmitted,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RenewalLogItemLogID = logRow.RenewalLogID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		log.Printf("[SCAN] company %s: %d dokumen masuk laporan", company.CompanyName, len(items))
		return nil
	})
}

// refreshDocumentFlags: sinkronkan flag + status dengan tanggal hari ini.
// Hanya kolom post-submit yang boleh disentuh. Renewal In Progress
// dibiarkan; perpindahannya manual lewat aksi user.
func (s *RenewalScanService) refreshDocumentFlags(tx *gorm.DB, doc *trackerModel.DocumentTracker, today time.Time, days int) error {
	trackerService.ComputeValidityFields(doc, today)

	newStatus := doc.DocumentTrackerStatus
	if doc.DocumentTrackerStatus != trackerModel.StatusRenewalInProgress {
		newStatus = trackerService.DetermineCorrectStatus(doc, today)
	}

	updates := map[string]any{
		"document_tracker_status":                  newStatus,
		"document_tracker_flag_expiring_soon":      doc.DocumentTrackerFlagExpiringSoon,
		"document_tracker_flag_overdue":            doc.DocumentTrackerFlagOverdue,
		"document_tracker_validity_remaining_days": days,
	}
	if err := tx.Model(&trackerModel.DocumentTracker{}).
		Where("document_tracker_id = ?", doc.DocumentTrackerID).
		Updates(updates).Error; err != nil {
		return err
	}

	doc.DocumentTrackerStatus = newStatus
	return nil
}
