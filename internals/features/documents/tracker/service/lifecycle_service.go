// file: internals/features/documents/tracker/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

/* =========================================================
   LifecycleService — semua mutasi DocumentTracker lewat sini.
   Now di-inject supaya test bisa pakai fake clock.
   ========================================================= */

type LifecycleService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{DB: db, Now: time.Now}
}

func (s *LifecycleService) today() time.Time { return DateOnly(s.Now()) }

/* =========================================================
   Post-submit allow-list
   ========================================================= */

// Field yang masih boleh berubah setelah docstatus = 1.
var allowedAfterSubmit = map[string]struct{}{
	"document_tracker_status":                  {},
	"document_tracker_lifecycle_state":         {},
	"document_tracker_remind_from_date":        {},
	"document_tracker_flag_expiring_soon":      {},
	"document_tracker_flag_overdue":            {},
	"document_tracker_renewal_count":           {},
	"document_tracker_renewed_by_document_id":  {},
	"document_tracker_validity_remaining_days": {},
	"document_tracker_lead_time_days":          {},
}

// trackerFieldValues: snapshot nilai field domain (tanpa bookkeeping timestamps)
// untuk diff guard. Nilai dinormalisasi ke tipe comparable.
func trackerFieldValues(d *model.DocumentTracker) map[string]any {
	fmtDate := func(t *time.Time) any {
		if t == nil {
			return nil
		}
		return DateOnly(*t).Format("2006-01-02")
	}
	strOrNil := func(p *string) any {
		if p == nil {
			return nil
		}
		return *p
	}
	intOrNil := func(p *int) any {
		if p == nil {
			return nil
		}
		return *p
	}
	idOrNil := func(p *uuid.UUID) any {
		if p == nil {
			return nil
		}
		return *p
	}

	return map[string]any{
		"document_tracker_company_id":              d.DocumentTrackerCompanyID,
		"document_tracker_name":                    d.DocumentTrackerName,
		"document_tracker_reference_no":            strOrNil(d.DocumentTrackerReferenceNo),
		"document_tracker_category":                d.DocumentTrackerCategory,
		"document_tracker_authority":               strOrNil(d.DocumentTrackerAuthority),
		"document_tracker_business_unit":           strOrNil(d.DocumentTrackerBusinessUnit),
		"document_tracker_department":              strOrNil(d.DocumentTrackerDepartment),
		"document_tracker_owner_person":            strOrNil(d.DocumentTrackerOwnerPerson),
		"document_tracker_counterparty_type":       strOrNil(d.DocumentTrackerCounterpartyType),
		"document_tracker_counterparty":            strOrNil(d.DocumentTrackerCounterparty),
		"document_tracker_counterparty_snapshot":   string(d.DocumentTrackerCounterpartySnapshot),
		"document_tracker_tags":                    string(d.DocumentTrackerTags),
		"document_tracker_issue_date":              fmtDate(d.DocumentTrackerIssueDate),
		"document_tracker_expiry_date":             fmtDate(d.DocumentTrackerExpiryDate),
		"document_tracker_remind_from_date":        fmtDate(d.DocumentTrackerRemindFromDate),
		"document_tracker_is_expiry_based":         d.DocumentTrackerIsExpiryBased,
		"document_tracker_is_renewable":            d.DocumentTrackerIsRenewable,
		"document_tracker_lead_time_type":          d.DocumentTrackerLeadTimeType,
		"document_tracker_custom_remind_from_date": fmtDate(d.DocumentTrackerCustomRemindFromDate),
		"document_tracker_lead_time_days":          intOrNil(d.DocumentTrackerLeadTimeDays),
		"document_tracker_validity_remaining_days": intOrNil(d.DocumentTrackerValidityRemainingDays),
		"document_tracker_flag_expiring_soon":      d.DocumentTrackerFlagExpiringSoon,
		"document_tracker_flag_overdue":            d.DocumentTrackerFlagOverdue,
		"document_tracker_status":                  d.DocumentTrackerStatus,
		"document_tracker_lifecycle_state":         d.DocumentTrackerLifecycleState,
		"document_tracker_replaces_document_id":    idOrNil(d.DocumentTrackerReplacesDocumentID),
		"document_tracker_renewed_by_document_id":  idOrNil(d.DocumentTrackerRenewedByDocumentID),
		"document_tracker_amended_from":            idOrNil(d.DocumentTrackerAmendedFromID),
		"document_tracker_renewal_count":           d.DocumentTrackerRenewalCount,
		"document_tracker_primary_document_url":    strOrNil(d.DocumentTrackerPrimaryDocumentURL),
	}
}

// validatePostSubmitChanges: diff in-memory vs snapshot terakhir; field di luar
// allow-list yang berubah → ValidationError menyebut nama fieldnya.
func validatePostSubmitChanges(doc, before *model.DocumentTracker) error {
	if before == nil || before.DocumentTrackerDocstatus != model.DocstatusSubmitted {
		return nil
	}

	cur := trackerFieldValues(doc)
	old := trackerFieldValues(before)

	var disallowed []string
	for field, v := range cur {
		if old[field] == v {
			continue
		}
		if _, ok := allowedAfterSubmit[field]; ok {
			continue
		}
		disallowed = append(disallowed, field)
	}

	if len(disallowed) > 0 {
		sort.Strings(disallowed)
		return fiber.NewError(fiber.StatusBadRequest,
			"Tidak boleh mengubah field setelah submit: "+strings.Join(disallowed, ", "))
	}
	return nil
}

/* =========================================================
   Validation orchestration (urutan fix, dipanggil dari Save/Submit)
   ========================================================= */

type validateFlags struct {
	Submitting  bool // docstatus sedang/sudah 1 pada save ini
	FirstSubmit bool // submit pertama → status dipaksa ke DetermineCorrectStatus
}

func (s *LifecycleService) validate(tx *gorm.DB, doc *model.DocumentTracker, fl validateFlags) error {
	ComputeRemindFromDate(doc)

	if err := s.validateCurrentUniqueness(tx, doc); err != nil {
		return err
	}

	ComputeValidityFields(doc, s.today())

	if strings.TrimSpace(doc.DocumentTrackerName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Document Name wajib diisi")
	}
	if doc.DocumentTrackerCompanyID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "Company wajib diisi")
	}

	if fl.Submitting && doc.DocumentTrackerIsExpiryBased && doc.DocumentTrackerExpiryDate == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Expiry Date wajib diisi kalau Is Expiry Based aktif")
	}

	// Submit pertama: status manual di-override dengan hasil komputasi
	if fl.FirstSubmit {
		doc.DocumentTrackerStatus = DetermineCorrectStatus(doc, s.today())
	}

	return nil
}

// validateCurrentUniqueness: maksimal satu record Current per
// (company, name, category). Draft renewal & amended copy dikecualikan.
func (s *LifecycleService) validateCurrentUniqueness(tx *gorm.DB, doc *model.DocumentTracker) error {
	if doc.DocumentTrackerLifecycleState != model.LifecycleCurrent {
		return nil
	}

	// draft renewal boleh koeksis; uniqueness ditegakkan saat submit (old doc diarsip)
	if doc.DocumentTrackerDocstatus == model.DocstatusDraft && doc.DocumentTrackerReplacesDocumentID != nil {
		return nil
	}

	// amended copy menunjuk original via amended_from
	if doc.DocumentTrackerAmendedFromID != nil {
		return nil
	}

	if doc.DocumentTrackerCompanyID == uuid.Nil ||
		strings.TrimSpace(doc.DocumentTrackerName) == "" ||
		strings.TrimSpace(doc.DocumentTrackerCategory) == "" {
		return nil
	}

	type row struct {
		DocumentTrackerID            uuid.UUID  `gorm:"column:document_tracker_id"`
		DocumentTrackerAmendedFromID *uuid.UUID `gorm:"column:document_tracker_amended_from"`
	}
	var rows []row
	if err := model.ScopeAlive(tx.Model(&model.DocumentTracker{})).
		Where("document_tracker_company_id = ?", doc.DocumentTrackerCompanyID).
		Where("document_tracker_name = ?", doc.DocumentTrackerName).
		Where("document_tracker_category = ?", doc.DocumentTrackerCategory).
		Where("document_tracker_lifecycle_state = ?", model.LifecycleCurrent).
		Where("document_tracker_id <> ?", doc.DocumentTrackerID).
		Where("document_tracker_docstatus <> ?", model.DocstatusCancelled).
		Where("document_tracker_status <> ?", model.StatusCancelled).
		Select("document_tracker_id", "document_tracker_amended_from").
		Find(&rows).Error; err != nil {
		return err
	}

	var existing *uuid.UUID
	for i := range rows {
		if rows[i].DocumentTrackerAmendedFromID == nil {
			existing = &rows[i].DocumentTrackerID
			break
		}
	}
	if existing == nil {
		return nil
	}

	// satu-satunya Current yang ada adalah dokumen yang sedang kita gantikan →
	// boleh submit, nanti diarsip di onSubmit
	if doc.DocumentTrackerDocstatus == model.DocstatusSubmitted &&
		doc.DocumentTrackerReplacesDocumentID != nil &&
		*existing == *doc.DocumentTrackerReplacesDocumentID {
		return nil
	}

	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(
		"Hanya boleh ada satu dokumen Current per Document Name, Category, dan Company. Dokumen %s sudah berstatus Current.",
		existing.String()))
}

/* =========================================================
   Load / Save / Submit
   ========================================================= */

// GetByID load satu tracker (alive).
func (s *LifecycleService) GetByID(ctx context.Context, id uuid.UUID) (*model.DocumentTracker, error) {
	var doc model.DocumentTracker
	err := model.ScopeAlive(s.DB.WithContext(ctx)).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("document_tracker_attachment_order ASC")
		}).
		First(&doc, "document_tracker_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dokumen tidak ditemukan")
		}
		return nil, err
	}
	return &doc, nil
}

func (s *LifecycleService) loadForUpdate(tx *gorm.DB, id uuid.UUID) (*model.DocumentTracker, error) {
	var doc model.DocumentTracker
	err := model.ScopeAlive(tx).First(&doc, "document_tracker_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Dokumen tidak ditemukan")
		}
		return nil, err
	}
	return &doc, nil
}

// Create simpan draft baru (docstatus 0) setelah validasi penuh.
func (s *LifecycleService) Create(ctx context.Context, doc *model.DocumentTracker) error {
	doc.DocumentTrackerDocstatus = model.DocstatusDraft
	if doc.DocumentTrackerStatus == "" {
		doc.DocumentTrackerStatus = model.StatusDraft
	}
	if doc.DocumentTrackerLifecycleState == "" {
		doc.DocumentTrackerLifecycleState = model.LifecycleCurrent
	}
	if doc.DocumentTrackerID == uuid.Nil {
		doc.DocumentTrackerID = uuid.New()
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validate(tx, doc, validateFlags{}); err != nil {
			return err
		}
		return tx.Create(doc).Error
	})
}

// SaveOpts mengatur bypass guard post-submit (hanya untuk action terkontrol).
type SaveOpts struct {
	IgnorePostSubmitGuard bool
}

// Save apply perubahan in-memory doc: guard post-submit + validasi + persist.
// Satu save = satu unit of work (transaction).
func (s *LifecycleService) Save(ctx context.Context, doc *model.DocumentTracker, opts SaveOpts) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.saveTx(tx, doc, opts)
	})
}

func (s *LifecycleService) saveTx(tx *gorm.DB, doc *model.DocumentTracker, opts SaveOpts) error {
	before, err := s.loadForUpdate(tx, doc.DocumentTrackerID)
	if err != nil {
		return err
	}

	if !opts.IgnorePostSubmitGuard {
		if err := validatePostSubmitChanges(doc, before); err != nil {
			return err
		}
	}

	fl := validateFlags{Submitting: doc.DocumentTrackerDocstatus == model.DocstatusSubmitted}
	if err := s.validate(tx, doc, fl); err != nil {
		return err
	}

	return tx.Save(doc).Error
}

// Submit finalisasi draft: docstatus 0→1, status dipaksa hasil komputasi,
// lalu predecessor diarsip kalau ini renewal.
func (s *LifecycleService) Submit(ctx context.Context, id uuid.UUID) (*model.DocumentTracker, error) {
	var out *model.DocumentTracker
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if doc.DocumentTrackerDocstatus != model.DocstatusDraft {
			return fiber.NewError(fiber.StatusBadRequest, "Hanya dokumen draft yang bisa di-submit")
		}

		doc.DocumentTrackerDocstatus = model.DocstatusSubmitted
		if err := s.validate(tx, doc, validateFlags{Submitting: true, FirstSubmit: true}); err != nil {
			return err
		}

		// arsipkan predecessor dulu supaya index parsial Current tidak menolak
		// save di bawah (keduanya masih dalam satu transaction)
		if err := s.onSubmit(tx, doc); err != nil {
			return err
		}

		if err := tx.Save(doc).Error; err != nil {
			return translateDuplicateCurrent(err)
		}

		out = doc
		return nil
	})
	return out, err
}

// onSubmit: kalau dokumen ini renewal, arsipkan predecessor sekarang.
func (s *LifecycleService) onSubmit(tx *gorm.DB, doc *model.DocumentTracker) error {
	if doc.DocumentTrackerReplacesDocumentID == nil {
		return nil
	}

	old, err := s.loadForUpdate(tx, *doc.DocumentTrackerReplacesDocumentID)
	if err != nil {
		return err
	}

	// force update setelah submit (setara ignore_validate_update_after_submit)
	return tx.Model(old).Updates(map[string]any{
		"document_tracker_lifecycle_state":        model.LifecycleHistorical,
		"document_tracker_status":                 model.StatusRenewed,
		"document_tracker_renewed_by_document_id": doc.DocumentTrackerID,
		"document_tracker_renewal_count":          gorm.Expr("document_tracker_renewal_count + 1"),
	}).Error
}

// translateDuplicateCurrent: index parsial uniq_current_document_tracker bisa
// menolak submit balapan; terjemahkan ke pesan uniqueness yang sama.
func translateDuplicateCurrent(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "uniq_current_document_tracker") ||
		strings.Contains(err.Error(), "duplicate key") {
		return fiber.NewError(fiber.StatusBadRequest,
			"Hanya boleh ada satu dokumen Current per Document Name, Category, dan Company.")
	}
	return err
}

// AddAttachment tambah lampiran supplementary. Hanya boleh selama draft:
// setelah submit daftar lampiran ikut dibekukan bersama field inti.
func (s *LifecycleService) AddAttachment(ctx context.Context, trackerID uuid.UUID, att *model.DocumentTrackerAttachment) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, trackerID)
		if err != nil {
			return err
		}
		if doc.DocumentTrackerDocstatus != model.DocstatusDraft {
			return fiber.NewError(fiber.StatusBadRequest,
				"Lampiran tidak bisa ditambahkan setelah dokumen di-submit")
		}

		var maxOrder int
		if err := tx.Model(&model.DocumentTrackerAttachment{}).
			Where("document_tracker_attachment_tracker_id = ?", doc.DocumentTrackerID).
			Select("COALESCE(MAX(document_tracker_attachment_order), -1)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		att.DocumentTrackerAttachmentTrackerID = doc.DocumentTrackerID
		att.DocumentTrackerAttachmentOrder = maxOrder + 1
		return tx.Create(att).Error
	})
}

// SoftDelete hapus draft (submitted tidak boleh dihapus, hanya cancel).
func (s *LifecycleService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		if doc.DocumentTrackerDocstatus != model.DocstatusDraft {
			return fiber.NewError(fiber.StatusBadRequest, "Dokumen submitted tidak bisa dihapus, gunakan cancel")
		}
		now := time.Now().UTC()
		return tx.Model(doc).Update("document_tracker_deleted_at", &now).Error
	})
}
