package service

import (
	"testing"
	"time"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestComputeRemindFromDate_LeadTimePresets(t *testing.T) {
	expiry := date(2026, 6, 30)

	cases := []struct {
		leadType string
		wantDays int
	}{
		{model.LeadTime1D, 1},
		{model.LeadTime1W, 7},
		{model.LeadTime1M, 30},
		{model.LeadTime3M, 90},
	}

	for _, tc := range cases {
		doc := &model.DocumentTracker{
			DocumentTrackerIsExpiryBased: true,
			DocumentTrackerIsRenewable:   true,
			DocumentTrackerLeadTimeType:  tc.leadType,
			DocumentTrackerExpiryDate:    datePtr(expiry),
		}
		ComputeRemindFromDate(doc)

		if doc.DocumentTrackerRemindFromDate == nil {
			t.Fatalf("%s: remind_from_date nil", tc.leadType)
		}
		want := expiry.AddDate(0, 0, -tc.wantDays)
		if !doc.DocumentTrackerRemindFromDate.Equal(want) {
			t.Errorf("%s: remind = %v, want %v", tc.leadType, doc.DocumentTrackerRemindFromDate, want)
		}
		if doc.DocumentTrackerLeadTimeDays == nil || *doc.DocumentTrackerLeadTimeDays != tc.wantDays {
			t.Errorf("%s: lead_time_days = %v, want %d", tc.leadType, doc.DocumentTrackerLeadTimeDays, tc.wantDays)
		}
	}
}

func TestComputeRemindFromDate_Custom(t *testing.T) {
	custom := date(2026, 5, 1)
	doc := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased:        true,
		DocumentTrackerIsRenewable:          true,
		DocumentTrackerLeadTimeType:         model.LeadTimeCustom,
		DocumentTrackerExpiryDate:           datePtr(date(2026, 6, 30)),
		DocumentTrackerCustomRemindFromDate: datePtr(custom),
	}
	ComputeRemindFromDate(doc)
	if doc.DocumentTrackerRemindFromDate == nil || !doc.DocumentTrackerRemindFromDate.Equal(custom) {
		t.Errorf("custom remind = %v, want %v", doc.DocumentTrackerRemindFromDate, custom)
	}

	// Custom tanpa tanggal custom → tidak ada remind
	doc.DocumentTrackerCustomRemindFromDate = nil
	ComputeRemindFromDate(doc)
	if doc.DocumentTrackerRemindFromDate != nil {
		t.Errorf("custom tanpa tanggal: remind = %v, want nil", doc.DocumentTrackerRemindFromDate)
	}
}

func TestComputeRemindFromDate_ClearedCases(t *testing.T) {
	base := func() *model.DocumentTracker {
		return &model.DocumentTracker{
			DocumentTrackerIsExpiryBased: true,
			DocumentTrackerIsRenewable:   true,
			DocumentTrackerLeadTimeType:  model.LeadTime1M,
			DocumentTrackerExpiryDate:    datePtr(date(2026, 6, 30)),
			DocumentTrackerRemindFromDate: datePtr(date(2026, 5, 31)),
		}
	}

	notExpiry := base()
	notExpiry.DocumentTrackerIsExpiryBased = false
	ComputeRemindFromDate(notExpiry)
	if notExpiry.DocumentTrackerRemindFromDate != nil {
		t.Error("non-expiry-based: remind harus nil")
	}

	notRenewable := base()
	notRenewable.DocumentTrackerIsRenewable = false
	ComputeRemindFromDate(notRenewable)
	if notRenewable.DocumentTrackerRemindFromDate != nil {
		t.Error("non-renewable: remind harus nil")
	}

	unknownType := base()
	unknownType.DocumentTrackerLeadTimeType = "6M"
	ComputeRemindFromDate(unknownType)
	if unknownType.DocumentTrackerRemindFromDate != nil {
		t.Error("lead time type tidak dikenal: remind harus nil")
	}
}

func TestComputeValidityFields(t *testing.T) {
	today := date(2026, 6, 1)

	doc := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased:  true,
		DocumentTrackerExpiryDate:     datePtr(date(2026, 6, 30)),
		DocumentTrackerRemindFromDate: datePtr(date(2026, 5, 31)),
	}
	ComputeValidityFields(doc, today)

	if doc.DocumentTrackerValidityRemainingDays == nil || *doc.DocumentTrackerValidityRemainingDays != 29 {
		t.Errorf("remaining = %v, want 29", doc.DocumentTrackerValidityRemainingDays)
	}
	if !doc.DocumentTrackerFlagExpiringSoon {
		t.Error("flag_expiring_soon harus true: hari ini sudah lewat remind date")
	}
	if doc.DocumentTrackerFlagOverdue {
		t.Error("flag_overdue harus false: belum lewat expiry")
	}

	// lewat expiry → overdue
	ComputeValidityFields(doc, date(2026, 7, 5))
	if !doc.DocumentTrackerFlagOverdue {
		t.Error("flag_overdue harus true setelah expiry lewat")
	}
	if *doc.DocumentTrackerValidityRemainingDays != -5 {
		t.Errorf("remaining = %d, want -5", *doc.DocumentTrackerValidityRemainingDays)
	}

	// non expiry-based → semua bersih
	doc.DocumentTrackerIsExpiryBased = false
	ComputeValidityFields(doc, today)
	if doc.DocumentTrackerValidityRemainingDays != nil || doc.DocumentTrackerFlagExpiringSoon || doc.DocumentTrackerFlagOverdue {
		t.Error("non-expiry-based: field validity harus kosong")
	}
}

func TestDetermineCorrectStatus(t *testing.T) {
	today := date(2026, 6, 1)

	nonExpiry := &model.DocumentTracker{}
	if got := DetermineCorrectStatus(nonExpiry, today); got != model.StatusActive {
		t.Errorf("non-expiry: %q, want Active", got)
	}

	expired := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased: true,
		DocumentTrackerExpiryDate:    datePtr(date(2026, 5, 20)),
	}
	if got := DetermineCorrectStatus(expired, today); got != model.StatusExpired {
		t.Errorf("expired: %q, want Expired", got)
	}

	inWindow := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased:  true,
		DocumentTrackerExpiryDate:     datePtr(date(2026, 6, 20)),
		DocumentTrackerRemindFromDate: datePtr(date(2026, 5, 21)),
	}
	if got := DetermineCorrectStatus(inWindow, today); got != model.StatusActiveSoonExpire {
		t.Errorf("in window: %q, want Active Soon to Expire", got)
	}

	beforeWindow := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased:  true,
		DocumentTrackerExpiryDate:     datePtr(date(2026, 12, 31)),
		DocumentTrackerRemindFromDate: datePtr(date(2026, 12, 1)),
	}
	if got := DetermineCorrectStatus(beforeWindow, today); got != model.StatusActive {
		t.Errorf("before window: %q, want Active", got)
	}

	// expiry tepat hari ini belum Expired (baru lewat besok)
	dueToday := &model.DocumentTracker{
		DocumentTrackerIsExpiryBased:  true,
		DocumentTrackerExpiryDate:     datePtr(today),
		DocumentTrackerRemindFromDate: datePtr(date(2026, 5, 2)),
	}
	if got := DetermineCorrectStatus(dueToday, today); got != model.StatusActiveSoonExpire {
		t.Errorf("due today: %q, want Active Soon to Expire", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := date(2026, 6, 30)
	b := date(2026, 6, 1)
	if got := DaysBetween(a, b); got != 29 {
		t.Errorf("DaysBetween = %d, want 29", got)
	}
	if got := DaysBetween(b, a); got != -29 {
		t.Errorf("DaysBetween terbalik = %d, want -29", got)
	}
	// komponen jam dibuang
	if got := DaysBetween(a.Add(23*time.Hour), b.Add(1*time.Hour)); got != 29 {
		t.Errorf("DaysBetween dengan jam = %d, want 29", got)
	}
}
