// file: internals/seeds/seeder.go
package seeds

import (
	"log"
	"time"

	"gorm.io/gorm"

	companyModel "docpulse_backend/internals/features/companies/model"
	trackerModel "docpulse_backend/internals/features/documents/tracker/model"
)

// Run: isi data contoh untuk development. No-op kalau sudah ada company.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&companyModel.Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] data sudah ada, skip")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		acme := companyModel.Company{
			CompanyName:     "Acme Logistics",
			CompanySlug:     "acme-logistics",
			CompanyIsActive: true,
		}
		nusantara := companyModel.Company{
			CompanyName:     "Nusantara Trading",
			CompanySlug:     "nusantara-trading",
			CompanyIsActive: true,
		}
		if err := tx.Create(&acme).Error; err != nil {
			return err
		}
		if err := tx.Create(&nusantara).Error; err != nil {
			return err
		}

		today := time.Now()
		soon := today.AddDate(0, 0, 20)   // masuk window remind 1M
		faraway := today.AddDate(1, 0, 0) // masih aman

		docs := []trackerModel.DocumentTracker{
			{
				DocumentTrackerCompanyID:     acme.CompanyID,
				DocumentTrackerName:          "Business License 2026",
				DocumentTrackerCategory:      "License",
				DocumentTrackerIsExpiryBased: true,
				DocumentTrackerIsRenewable:   true,
				DocumentTrackerLeadTimeType:  trackerModel.LeadTime1M,
				DocumentTrackerIssueDate:     datePtr(today.AddDate(-1, 0, 0)),
				DocumentTrackerExpiryDate:    datePtr(soon),
				DocumentTrackerStatus:        trackerModel.StatusDraft,
			},
			{
				DocumentTrackerCompanyID:     acme.CompanyID,
				DocumentTrackerName:          "Warehouse Lease Agreement",
				DocumentTrackerCategory:      "Contract",
				DocumentTrackerIsExpiryBased: true,
				DocumentTrackerIsRenewable:   true,
				DocumentTrackerLeadTimeType:  trackerModel.LeadTime3M,
				DocumentTrackerIssueDate:     datePtr(today.AddDate(0, -6, 0)),
				DocumentTrackerExpiryDate:    datePtr(faraway),
				DocumentTrackerStatus:        trackerModel.StatusDraft,
			},
			{
				DocumentTrackerCompanyID:     nusantara.CompanyID,
				DocumentTrackerName:          "Import Permit",
				DocumentTrackerCategory:      "Permit",
				DocumentTrackerIsExpiryBased: true,
				DocumentTrackerIsRenewable:   true,
				DocumentTrackerLeadTimeType:  trackerModel.LeadTime1W,
				DocumentTrackerIssueDate:     datePtr(today.AddDate(0, -11, 0)),
				DocumentTrackerExpiryDate:    datePtr(today.AddDate(0, 0, 3)),
				DocumentTrackerStatus:        trackerModel.StatusDraft,
			},
		}
		if err := tx.Create(&docs).Error; err != nil {
			return err
		}

		log.Printf("[SEED] %d company, %d dokumen contoh dibuat", 2, len(docs))
		return nil
	})
}

func datePtr(t time.Time) *time.Time {
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
