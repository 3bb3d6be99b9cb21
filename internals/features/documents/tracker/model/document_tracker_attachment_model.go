// file: internals/features/documents/tracker/model/document_tracker_attachment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Jenis lampiran tambahan
const (
	AttachmentTypeSupporting  = "Supporting"
	AttachmentTypeAmendment   = "Amendment"
	AttachmentTypeCorrespond  = "Correspondence"
	AttachmentTypeTranslation = "Translation"
)

/* =========================
   Model: document_tracker_attachments (child list, ordered)
   ========================= */

type DocumentTrackerAttachment struct {
	DocumentTrackerAttachmentID uuid.UUID `json:"document_tracker_attachment_id" gorm:"column:document_tracker_attachment_id;type:uuid;primaryKey"`

	DocumentTrackerAttachmentTrackerID uuid.UUID `json:"document_tracker_attachment_tracker_id" gorm:"column:document_tracker_attachment_tracker_id;type:uuid;not null;index;constraint:OnDelete:CASCADE"`

	DocumentTrackerAttachmentType    string  `json:"document_tracker_attachment_type"           gorm:"column:document_tracker_attachment_type;type:varchar(40);not null;default:'Supporting'"`
	DocumentTrackerAttachmentFileURL string  `json:"document_tracker_attachment_file_url"       gorm:"column:document_tracker_attachment_file_url;type:text;not null"`
	DocumentTrackerAttachmentDesc    *string `json:"document_tracker_attachment_desc,omitempty" gorm:"column:document_tracker_attachment_desc;type:text"`

	// urutan tampil; dijaga saat copy pada renew()
	DocumentTrackerAttachmentOrder int `json:"document_tracker_attachment_order" gorm:"column:document_tracker_attachment_order;not null;default:0"`

	DocumentTrackerAttachmentCreatedAt time.Time `json:"document_tracker_attachment_created_at" gorm:"column:document_tracker_attachment_created_at;type:timestamptz;not null"`
}

func (DocumentTrackerAttachment) TableName() string { return "document_tracker_attachments" }

func (m *DocumentTrackerAttachment) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentTrackerAttachmentID == uuid.Nil {
		m.DocumentTrackerAttachmentID = uuid.New()
	}
	if m.DocumentTrackerAttachmentCreatedAt.IsZero() {
		m.DocumentTrackerAttachmentCreatedAt = time.Now().UTC()
	}
	return nil
}
