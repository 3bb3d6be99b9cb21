// file: internals/features/documents/renewal_logs/dto/renewal_log_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "docpulse_backend/internals/features/documents/renewal_logs/model"
)

type RenewalLogItemResponse struct {
	RenewalLogItemID uuid.UUID `json:"renewal_log_item_id"`

	DocumentID   uuid.UUID `json:"renewal_log_item_document_id"`
	DocumentName string    `json:"renewal_log_item_document_name"`
	Category     string    `json:"renewal_log_item_category"`

	IssuingAuthority *string `json:"renewal_log_item_issuing_authority,omitempty"`

	IssueDate      *string `json:"renewal_log_item_issue_date,omitempty"`
	ExpiryDate     *string `json:"renewal_log_item_expiry_date,omitempty"`
	RemindFromDate *string `json:"renewal_log_item_remind_from_date,omitempty"`

	DaysToExpiry  int     `json:"renewal_log_item_days_to_expiry"`
	Severity      string  `json:"renewal_log_item_severity"`
	OwnerPerson   *string `json:"renewal_log_item_owner_person,omitempty"`
	CurrentStatus string  `json:"renewal_log_item_current_status"`
}

type RenewalLogResponse struct {
	RenewalLogID uuid.UUID `json:"renewal_log_id"`
	CompanyID    uuid.UUID `json:"renewal_log_company_id"`
	LogDate      string    `json:"renewal_log_date"`
	Docstatus    int       `json:"renewal_log_docstatus"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"renewal_log_created_at"`

	Items []RenewalLogItemResponse `json:"items,omitempty"`
}

func dateStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func FromModelRenewalLogItem(m *model.RenewalLogItem) RenewalLogItemResponse {
	return RenewalLogItemResponse{
		RenewalLogItemID: m.RenewalLogItemID,
		DocumentID:       m.RenewalLogItemDocumentID,
		DocumentName:     m.RenewalLogItemDocumentName,
		Category:         m.RenewalLogItemCategory,
		IssuingAuthority: m.RenewalLogItemIssuingAuthority,
		IssueDate:        dateStr(m.RenewalLogItemIssueDate),
		ExpiryDate:       dateStr(m.RenewalLogItemExpiryDate),
		RemindFromDate:   dateStr(m.RenewalLogItemRemindFromDate),
		DaysToExpiry:     m.RenewalLogItemDaysToExpiry,
		Severity:         m.RenewalLogItemSeverity,
		OwnerPerson:      m.RenewalLogItemOwnerPerson,
		CurrentStatus:    m.RenewalLogItemCurrentStatus,
	}
}

// FromModelRenewalLog: withItems=false untuk listing (hemat payload)
func FromModelRenewalLog(m *model.RenewalLog, withItems bool) RenewalLogResponse {
	resp := RenewalLogResponse{
		RenewalLogID: m.RenewalLogID,
		CompanyID:    m.RenewalLogCompanyID,
		LogDate:      m.RenewalLogDate.Format("2006-01-02"),
		Docstatus:    m.RenewalLogDocstatus,
		ItemCount:    len(m.Items),
		CreatedAt:    m.RenewalLogCreatedAt,
	}
	if withItems {
		resp.Items = make([]RenewalLogItemResponse, 0, len(m.Items))
		for i := range m.Items {
			resp.Items = append(resp.Items, FromModelRenewalLogItem(&m.Items[i]))
		}
	}
	return resp
}
