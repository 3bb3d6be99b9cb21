// file: internals/features/documents/tracker/service/compute.go
package service

import (
	"time"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

/* =========================================================
   Date utils (date-only arithmetic, zona dibuang)
   ========================================================= */

// DateOnly buang komponen jam/zona; semua perbandingan tanggal pakai ini.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween hitung a - b dalam hari (signed, negatif = a sebelum b).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(a).Sub(DateOnly(b)).Hours() / 24)
}

/* =========================================================
   Pure computations (tidak menyentuh DB)
   ========================================================= */

// leadTimeDays peta tipe lead time → jumlah hari. Custom tidak ada di sini.
var leadTimeDays = map[string]int{
	model.LeadTime1D: 1,
	model.LeadTime1W: 7,
	model.LeadTime1M: 30,
	model.LeadTime3M: 90,
}

// ComputeRemindFromDate turunkan remind_from_date dari kebijakan renewal.
// Harus jalan sebelum uniqueness & validity check pada setiap save.
func ComputeRemindFromDate(doc *model.DocumentTracker) {
	if !doc.DocumentTrackerIsExpiryBased || doc.DocumentTrackerExpiryDate == nil {
		doc.DocumentTrackerRemindFromDate = nil
		return
	}
	if !doc.DocumentTrackerIsRenewable {
		doc.DocumentTrackerRemindFromDate = nil
		return
	}

	expiry := DateOnly(*doc.DocumentTrackerExpiryDate)

	switch doc.DocumentTrackerLeadTimeType {
	case model.LeadTimeCustom:
		if doc.DocumentTrackerCustomRemindFromDate != nil {
			d := DateOnly(*doc.DocumentTrackerCustomRemindFromDate)
			doc.DocumentTrackerRemindFromDate = &d
		} else {
			doc.DocumentTrackerRemindFromDate = nil
		}
	case model.LeadTime1D, model.LeadTime1W, model.LeadTime1M, model.LeadTime3M:
		days := leadTimeDays[doc.DocumentTrackerLeadTimeType]
		doc.DocumentTrackerLeadTimeDays = &days
		remind := expiry.AddDate(0, 0, -days)
		doc.DocumentTrackerRemindFromDate = &remind
	default:
		doc.DocumentTrackerRemindFromDate = nil
	}
}

// ComputeValidityFields isi validity_remaining_days + kedua flag.
func ComputeValidityFields(doc *model.DocumentTracker, today time.Time) {
	if !doc.DocumentTrackerIsExpiryBased || doc.DocumentTrackerExpiryDate == nil {
		doc.DocumentTrackerValidityRemainingDays = nil
		doc.DocumentTrackerFlagExpiringSoon = false
		doc.DocumentTrackerFlagOverdue = false
		return
	}

	todayDate := DateOnly(today)
	remaining := DaysBetween(*doc.DocumentTrackerExpiryDate, todayDate)
	doc.DocumentTrackerValidityRemainingDays = &remaining

	if doc.DocumentTrackerRemindFromDate != nil {
		doc.DocumentTrackerFlagExpiringSoon = !todayDate.Before(DateOnly(*doc.DocumentTrackerRemindFromDate))
	} else {
		doc.DocumentTrackerFlagExpiringSoon = false
	}

	doc.DocumentTrackerFlagOverdue = remaining < 0
}

// DetermineCorrectStatus hitung status yang benar dari kondisi dokumen.
// "Renewal In Progress" tidak pernah dihasilkan di sini — hanya via action.
func DetermineCorrectStatus(doc *model.DocumentTracker, today time.Time) string {
	if !doc.DocumentTrackerIsExpiryBased || doc.DocumentTrackerExpiryDate == nil {
		return model.StatusActive
	}

	todayDate := DateOnly(today)
	expiry := DateOnly(*doc.DocumentTrackerExpiryDate)

	if expiry.Before(todayDate) {
		return model.StatusExpired
	}

	if doc.DocumentTrackerRemindFromDate != nil &&
		!todayDate.Before(DateOnly(*doc.DocumentTrackerRemindFromDate)) {
		return model.StatusActiveSoonExpire
	}

	return model.StatusActive
}
