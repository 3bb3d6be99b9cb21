// file: internals/features/documents/tracker/model/document_tracker_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum values
   ========================= */

// Status dokumen (disposisi yang terlihat user/proses)
const (
	StatusDraft             = "Draft"
	StatusActive            = "Active"
	StatusActiveSoonExpire  = "Active Soon to Expire"
	StatusRenewalInProgress = "Renewal In Progress"
	StatusRenewed           = "Renewed"
	StatusRevoked           = "Revoked"
	StatusCancelled         = "Cancelled"
	StatusExpired           = "Expired"
)

// Lifecycle state: salinan yang berlaku vs arsip
const (
	LifecycleCurrent    = "Current"
	LifecycleHistorical = "Historical"
)

// Renewal lead time type
const (
	LeadTimeCustom = "Custom"
	LeadTime1D     = "1D"
	LeadTime1W     = "1W"
	LeadTime1M     = "1M"
	LeadTime3M     = "3M"
)

// Docstatus (submission state, konsep persistence eksternal)
const (
	DocstatusDraft     = 0
	DocstatusSubmitted = 1
	DocstatusCancelled = 2
)

/* =========================
   Snapshot payloads (JSONB)
   ========================= */

type CounterpartySnapshotPayload struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

/* =========================
   Model: document_trackers
   ========================= */

type DocumentTracker struct {
	DocumentTrackerID uuid.UUID `json:"document_tracker_id" gorm:"column:document_tracker_id;type:uuid;primaryKey"`

	// tenant scope
	DocumentTrackerCompanyID uuid.UUID `json:"document_tracker_company_id" gorm:"column:document_tracker_company_id;type:uuid;not null;index;constraint:OnDelete:CASCADE"`

	// identitas dokumen
	DocumentTrackerName        string  `json:"document_tracker_name"                   gorm:"column:document_tracker_name;type:varchar(200);not null;index"`
	DocumentTrackerReferenceNo *string `json:"document_tracker_reference_no,omitempty" gorm:"column:document_tracker_reference_no;type:varchar(120)"`
	DocumentTrackerCategory    string  `json:"document_tracker_category"               gorm:"column:document_tracker_category;type:varchar(80);not null;index"`
	DocumentTrackerAuthority   *string `json:"document_tracker_authority,omitempty"    gorm:"column:document_tracker_authority;type:varchar(160)"`

	// organisasi & PIC
	DocumentTrackerBusinessUnit *string `json:"document_tracker_business_unit,omitempty" gorm:"column:document_tracker_business_unit;type:varchar(120)"`
	DocumentTrackerDepartment   *string `json:"document_tracker_department,omitempty"    gorm:"column:document_tracker_department;type:varchar(120)"`
	DocumentTrackerOwnerPerson  *string `json:"document_tracker_owner_person,omitempty"  gorm:"column:document_tracker_owner_person;type:varchar(160)"`

	// counterparty (pihak lawan kontrak)
	DocumentTrackerCounterpartyType     *string        `json:"document_tracker_counterparty_type,omitempty"     gorm:"column:document_tracker_counterparty_type;type:varchar(60)"`
	DocumentTrackerCounterparty         *string        `json:"document_tracker_counterparty,omitempty"          gorm:"column:document_tracker_counterparty;type:varchar(160)"`
	DocumentTrackerCounterpartySnapshot datatypes.JSON `json:"document_tracker_counterparty_snapshot,omitempty" gorm:"column:document_tracker_counterparty_snapshot;type:jsonb"`

	// label bebas
	DocumentTrackerTags datatypes.JSON `json:"document_tracker_tags,omitempty" gorm:"column:document_tracker_tags;type:jsonb"`

	// tanggal
	DocumentTrackerIssueDate      *time.Time `json:"document_tracker_issue_date,omitempty"       gorm:"column:document_tracker_issue_date;type:date"`
	DocumentTrackerExpiryDate     *time.Time `json:"document_tracker_expiry_date,omitempty"      gorm:"column:document_tracker_expiry_date;type:date"`
	DocumentTrackerRemindFromDate *time.Time `json:"document_tracker_remind_from_date,omitempty" gorm:"column:document_tracker_remind_from_date;type:date"`

	// kebijakan renewal
	DocumentTrackerIsExpiryBased        bool       `json:"document_tracker_is_expiry_based"                    gorm:"column:document_tracker_is_expiry_based;not null;default:false"`
	DocumentTrackerIsRenewable          bool       `json:"document_tracker_is_renewable"                       gorm:"column:document_tracker_is_renewable;not null;default:false"`
	DocumentTrackerLeadTimeType         string     `json:"document_tracker_lead_time_type"                     gorm:"column:document_tracker_lead_time_type;type:varchar(10);not null;default:'1M'"`
	DocumentTrackerCustomRemindFromDate *time.Time `json:"document_tracker_custom_remind_from_date,omitempty"  gorm:"column:document_tracker_custom_remind_from_date;type:date"`
	DocumentTrackerLeadTimeDays         *int       `json:"document_tracker_lead_time_days,omitempty"           gorm:"column:document_tracker_lead_time_days"`

	// field terhitung
	DocumentTrackerValidityRemainingDays *int `json:"document_tracker_validity_remaining_days,omitempty" gorm:"column:document_tracker_validity_remaining_days"`
	DocumentTrackerFlagExpiringSoon      bool `json:"document_tracker_flag_expiring_soon"                gorm:"column:document_tracker_flag_expiring_soon;not null;default:false"`
	DocumentTrackerFlagOverdue           bool `json:"document_tracker_flag_overdue"                      gorm:"column:document_tracker_flag_overdue;not null;default:false"`

	// lifecycle
	DocumentTrackerStatus         string `json:"document_tracker_status"          gorm:"column:document_tracker_status;type:varchar(40);not null;default:'Draft';index"`
	DocumentTrackerLifecycleState string `json:"document_tracker_lifecycle_state" gorm:"column:document_tracker_lifecycle_state;type:varchar(20);not null;default:'Current';index"`
	DocumentTrackerDocstatus      int    `json:"document_tracker_docstatus"       gorm:"column:document_tracker_docstatus;not null;default:0;index"`

	// rantai renewal / amendment
	DocumentTrackerReplacesDocumentID  *uuid.UUID `json:"document_tracker_replaces_document_id,omitempty"   gorm:"column:document_tracker_replaces_document_id;type:uuid;index"`
	DocumentTrackerRenewedByDocumentID *uuid.UUID `json:"document_tracker_renewed_by_document_id,omitempty" gorm:"column:document_tracker_renewed_by_document_id;type:uuid"`
	DocumentTrackerAmendedFromID       *uuid.UUID `json:"document_tracker_amended_from_id,omitempty"        gorm:"column:document_tracker_amended_from;type:uuid"`
	DocumentTrackerRenewalCount        int        `json:"document_tracker_renewal_count"                    gorm:"column:document_tracker_renewal_count;not null;default:0"`

	// lampiran
	DocumentTrackerPrimaryDocumentURL *string                     `json:"document_tracker_primary_document_url,omitempty" gorm:"column:document_tracker_primary_document_url;type:text"`
	Attachments                       []DocumentTrackerAttachment `json:"attachments,omitempty" gorm:"foreignKey:DocumentTrackerAttachmentTrackerID;references:DocumentTrackerID"`

	// timestamps (soft delete manual, bukan gorm.DeletedAt)
	DocumentTrackerCreatedAt time.Time  `json:"document_tracker_created_at"           gorm:"column:document_tracker_created_at;type:timestamptz;not null"`
	DocumentTrackerUpdatedAt time.Time  `json:"document_tracker_updated_at"           gorm:"column:document_tracker_updated_at;type:timestamptz;not null"`
	DocumentTrackerDeletedAt *time.Time `json:"document_tracker_deleted_at,omitempty" gorm:"column:document_tracker_deleted_at;type:timestamptz"`
}

func (DocumentTracker) TableName() string { return "document_trackers" }

/* =========================
   Hooks
   ========================= */

func (m *DocumentTracker) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentTrackerID == uuid.Nil {
		m.DocumentTrackerID = uuid.New()
	}
	now := time.Now().UTC()
	if m.DocumentTrackerCreatedAt.IsZero() {
		m.DocumentTrackerCreatedAt = now
	}
	m.DocumentTrackerUpdatedAt = now
	return nil
}

func (m *DocumentTracker) BeforeUpdate(tx *gorm.DB) error {
	m.DocumentTrackerUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Scopes
   ========================= */

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("document_tracker_deleted_at IS NULL")
}

func ScopeByCompany(companyID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("document_tracker_company_id = ?", companyID)
	}
}

func ScopeCurrent(db *gorm.DB) *gorm.DB {
	return db.Where("document_tracker_lifecycle_state = ?", LifecycleCurrent)
}
