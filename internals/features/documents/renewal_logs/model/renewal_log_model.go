// file: internals/features/documents/renewal_log/model/renewal_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Severity item laporan scan harian
========================================================= */

const (
	SeverityOverdue  = "Overdue"   // expiry sudah lewat
	SeverityDueToday = "Due Today" // expiry tepat hari ini
	SeverityDueSoon  = "Due Soon"  // expiry masih di depan, masuk window remind
)

/* =========================================================
   RenewalLog: satu laporan per company per eksekusi scan
========================================================= */

type RenewalLog struct {
	RenewalLogID        uuid.UUID `json:"renewal_log_id"         gorm:"column:renewal_log_id;type:uuid;primaryKey"`
	RenewalLogCompanyID uuid.UUID `json:"renewal_log_company_id" gorm:"column:renewal_log_company_id;type:uuid;not null;index:idx_renewal_log_company_date"`
	RenewalLogDate      time.Time `json:"renewal_log_date"       gorm:"column:renewal_log_date;type:date;not null;index:idx_renewal_log_company_date"`
	RenewalLogDocstatus int       `json:"renewal_log_docstatus"  gorm:"column:renewal_log_docstatus;not null;default:1"`

	RenewalLogCreatedAt time.Time  `json:"renewal_log_created_at" gorm:"column:renewal_log_created_at;autoCreateTime"`
	RenewalLogUpdatedAt time.Time  `json:"renewal_log_updated_at" gorm:"column:renewal_log_updated_at;autoUpdateTime"`
	RenewalLogDeletedAt *time.Time `json:"renewal_log_deleted_at,omitempty" gorm:"column:renewal_log_deleted_at;index"`

	Items []RenewalLogItem `json:"items,omitempty" gorm:"foreignKey:RenewalLogItemLogID;references:RenewalLogID"`
}

func (RenewalLog) TableName() string { return "renewal_logs" }

func (m *RenewalLog) BeforeCreate(tx *gorm.DB) error {
	if m.RenewalLogID == uuid.Nil {
		m.RenewalLogID = uuid.New()
	}
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("renewal_log_deleted_at IS NULL")
}

func ScopeByCompany(companyID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("renewal_log_company_id = ?", companyID)
	}
}

/* =========================================================
   RenewalLogItem: satu baris per dokumen yang masuk window
========================================================= */

type RenewalLogItem struct {
	RenewalLogItemID    uuid.UUID `json:"renewal_log_item_id"     gorm:"column:renewal_log_item_id;type:uuid;primaryKey"`
	RenewalLogItemLogID uuid.UUID `json:"renewal_log_item_log_id" gorm:"column:renewal_log_item_log_id;type:uuid;not null;index"`

	RenewalLogItemDocumentID   uuid.UUID `json:"renewal_log_item_document_id"   gorm:"column:renewal_log_item_document_id;type:uuid;not null;index"`
	RenewalLogItemDocumentName string    `json:"renewal_log_item_document_name" gorm:"column:renewal_log_item_document_name;type:varchar(200);not null"`
	RenewalLogItemCategory     string    `json:"renewal_log_item_category"      gorm:"column:renewal_log_item_category;type:varchar(80);not null"`

	RenewalLogItemIssuingAuthority *string `json:"renewal_log_item_issuing_authority,omitempty" gorm:"column:renewal_log_item_issuing_authority;type:varchar(160)"`

	RenewalLogItemIssueDate      *time.Time `json:"renewal_log_item_issue_date,omitempty"       gorm:"column:renewal_log_item_issue_date;type:date"`
	RenewalLogItemExpiryDate     *time.Time `json:"renewal_log_item_expiry_date,omitempty"      gorm:"column:renewal_log_item_expiry_date;type:date"`
	RenewalLogItemRemindFromDate *time.Time `json:"renewal_log_item_remind_from_date,omitempty" gorm:"column:renewal_log_item_remind_from_date;type:date"`

	RenewalLogItemDaysToExpiry  int     `json:"renewal_log_item_days_to_expiry" gorm:"column:renewal_log_item_days_to_expiry;not null;default:0"`
	RenewalLogItemSeverity      string  `json:"renewal_log_item_severity"       gorm:"column:renewal_log_item_severity;type:varchar(20);not null"`
	RenewalLogItemOwnerPerson   *string `json:"renewal_log_item_owner_person,omitempty" gorm:"column:renewal_log_item_owner_person;type:varchar(120)"`
	RenewalLogItemCurrentStatus string  `json:"renewal_log_item_current_status" gorm:"column:renewal_log_item_current_status;type:varchar(40);not null"`

	RenewalLogItemCreatedAt time.Time `json:"renewal_log_item_created_at" gorm:"column:renewal_log_item_created_at;autoCreateTime"`
}

func (RenewalLogItem) TableName() string { return "renewal_log_items" }

func (m *RenewalLogItem) BeforeCreate(tx *gorm.DB) error {
	if m.RenewalLogItemID == uuid.Nil {
		m.RenewalLogItemID = uuid.New()
	}
	return nil
}
