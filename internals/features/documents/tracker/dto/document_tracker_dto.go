// file: internals/features/documents/tracker/dto/document_tracker_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

const dateLayout = "2006-01-02"

func parseDateYMD(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func fmtDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

/* =========================================================
   REQUEST: Create (selalu draft)
   ========================================================= */

type CreateDocumentTrackerRequest struct {
	DocumentTrackerCompanyID uuid.UUID `json:"document_tracker_company_id" validate:"required"`

	DocumentTrackerName        string  `json:"document_tracker_name"     validate:"required,max=200"`
	DocumentTrackerReferenceNo *string `json:"document_tracker_reference_no" validate:"omitempty,max=120"`
	DocumentTrackerCategory    string  `json:"document_tracker_category" validate:"required,max=80"`
	DocumentTrackerAuthority   *string `json:"document_tracker_authority" validate:"omitempty,max=160"`

	DocumentTrackerBusinessUnit *string `json:"document_tracker_business_unit" validate:"omitempty,max=120"`
	DocumentTrackerDepartment   *string `json:"document_tracker_department"    validate:"omitempty,max=120"`
	DocumentTrackerOwnerPerson  *string `json:"document_tracker_owner_person"  validate:"omitempty,max=160"`

	DocumentTrackerCounterpartyType *string                            `json:"document_tracker_counterparty_type" validate:"omitempty,max=60"`
	DocumentTrackerCounterparty     *string                            `json:"document_tracker_counterparty"      validate:"omitempty,max=160"`
	CounterpartySnapshot            *model.CounterpartySnapshotPayload `json:"document_tracker_counterparty_snapshot"`

	DocumentTrackerTags []string `json:"document_tracker_tags"`

	// "YYYY-MM-DD"
	DocumentTrackerIssueDate  *string `json:"document_tracker_issue_date"  validate:"omitempty,datetime=2006-01-02"`
	DocumentTrackerExpiryDate *string `json:"document_tracker_expiry_date" validate:"omitempty,datetime=2006-01-02"`

	DocumentTrackerIsExpiryBased        bool    `json:"document_tracker_is_expiry_based"`
	DocumentTrackerIsRenewable          bool    `json:"document_tracker_is_renewable"`
	DocumentTrackerLeadTimeType         *string `json:"document_tracker_lead_time_type" validate:"omitempty,oneof=Custom 1D 1W 1M 3M"`
	DocumentTrackerCustomRemindFromDate *string `json:"document_tracker_custom_remind_from_date" validate:"omitempty,datetime=2006-01-02"`

	DocumentTrackerAmendedFromID *uuid.UUID `json:"document_tracker_amended_from_id"`

	DocumentTrackerPrimaryDocumentURL *string `json:"document_tracker_primary_document_url"`
}

func (r *CreateDocumentTrackerRequest) ToModel() (*model.DocumentTracker, error) {
	m := &model.DocumentTracker{
		DocumentTrackerCompanyID: r.DocumentTrackerCompanyID,

		DocumentTrackerName:        r.DocumentTrackerName,
		DocumentTrackerReferenceNo: r.DocumentTrackerReferenceNo,
		DocumentTrackerCategory:    r.DocumentTrackerCategory,
		DocumentTrackerAuthority:   r.DocumentTrackerAuthority,

		DocumentTrackerBusinessUnit: r.DocumentTrackerBusinessUnit,
		DocumentTrackerDepartment:   r.DocumentTrackerDepartment,
		DocumentTrackerOwnerPerson:  r.DocumentTrackerOwnerPerson,

		DocumentTrackerCounterpartyType: r.DocumentTrackerCounterpartyType,
		DocumentTrackerCounterparty:     r.DocumentTrackerCounterparty,

		DocumentTrackerIsExpiryBased: r.DocumentTrackerIsExpiryBased,
		DocumentTrackerIsRenewable:   r.DocumentTrackerIsRenewable,
		DocumentTrackerLeadTimeType:  model.LeadTime1M, // default 1M

		DocumentTrackerAmendedFromID: r.DocumentTrackerAmendedFromID,

		DocumentTrackerStatus:         model.StatusDraft,
		DocumentTrackerLifecycleState: model.LifecycleCurrent,

		DocumentTrackerPrimaryDocumentURL: r.DocumentTrackerPrimaryDocumentURL,
	}

	if r.DocumentTrackerLeadTimeType != nil {
		m.DocumentTrackerLeadTimeType = *r.DocumentTrackerLeadTimeType
	}

	if r.DocumentTrackerIssueDate != nil && *r.DocumentTrackerIssueDate != "" {
		t, err := parseDateYMD(*r.DocumentTrackerIssueDate)
		if err != nil {
			return nil, err
		}
		m.DocumentTrackerIssueDate = &t
	}
	if r.DocumentTrackerExpiryDate != nil && *r.DocumentTrackerExpiryDate != "" {
		t, err := parseDateYMD(*r.DocumentTrackerExpiryDate)
		if err != nil {
			return nil, err
		}
		m.DocumentTrackerExpiryDate = &t
	}
	if r.DocumentTrackerCustomRemindFromDate != nil && *r.DocumentTrackerCustomRemindFromDate != "" {
		t, err := parseDateYMD(*r.DocumentTrackerCustomRemindFromDate)
		if err != nil {
			return nil, err
		}
		m.DocumentTrackerCustomRemindFromDate = &t
	}

	if r.CounterpartySnapshot != nil {
		b, err := json.Marshal(r.CounterpartySnapshot)
		if err != nil {
			return nil, err
		}
		m.DocumentTrackerCounterpartySnapshot = datatypes.JSON(b)
	}
	if len(r.DocumentTrackerTags) > 0 {
		b, err := json.Marshal(r.DocumentTrackerTags)
		if err != nil {
			return nil, err
		}
		m.DocumentTrackerTags = datatypes.JSON(b)
	}

	return m, nil
}

/* =========================================================
   REQUEST: Patch (draft saja; submitted lewat action khusus)
   ========================================================= */

type PatchDocumentTrackerRequest struct {
	DocumentTrackerName        *string `json:"document_tracker_name"         validate:"omitempty,max=200"`
	DocumentTrackerReferenceNo *string `json:"document_tracker_reference_no" validate:"omitempty,max=120"`
	DocumentTrackerCategory    *string `json:"document_tracker_category"     validate:"omitempty,max=80"`
	DocumentTrackerAuthority   *string `json:"document_tracker_authority"    validate:"omitempty,max=160"`

	DocumentTrackerBusinessUnit *string `json:"document_tracker_business_unit" validate:"omitempty,max=120"`
	DocumentTrackerDepartment   *string `json:"document_tracker_department"    validate:"omitempty,max=120"`
	DocumentTrackerOwnerPerson  *string `json:"document_tracker_owner_person"  validate:"omitempty,max=160"`

	DocumentTrackerIssueDate  *string `json:"document_tracker_issue_date"  validate:"omitempty,datetime=2006-01-02"`
	DocumentTrackerExpiryDate *string `json:"document_tracker_expiry_date" validate:"omitempty,datetime=2006-01-02"`

	DocumentTrackerIsExpiryBased        *bool   `json:"document_tracker_is_expiry_based"`
	DocumentTrackerIsRenewable          *bool   `json:"document_tracker_is_renewable"`
	DocumentTrackerLeadTimeType         *string `json:"document_tracker_lead_time_type" validate:"omitempty,oneof=Custom 1D 1W 1M 3M"`
	DocumentTrackerCustomRemindFromDate *string `json:"document_tracker_custom_remind_from_date" validate:"omitempty,datetime=2006-01-02"`

	DocumentTrackerPrimaryDocumentURL *string `json:"document_tracker_primary_document_url"`
}

func (r *PatchDocumentTrackerRequest) ApplyTo(m *model.DocumentTracker) error {
	if r.DocumentTrackerName != nil {
		m.DocumentTrackerName = *r.DocumentTrackerName
	}
	if r.DocumentTrackerReferenceNo != nil {
		m.DocumentTrackerReferenceNo = r.DocumentTrackerReferenceNo
	}
	if r.DocumentTrackerCategory != nil {
		m.DocumentTrackerCategory = *r.DocumentTrackerCategory
	}
	if r.DocumentTrackerAuthority != nil {
		m.DocumentTrackerAuthority = r.DocumentTrackerAuthority
	}
	if r.DocumentTrackerBusinessUnit != nil {
		m.DocumentTrackerBusinessUnit = r.DocumentTrackerBusinessUnit
	}
	if r.DocumentTrackerDepartment != nil {
		m.DocumentTrackerDepartment = r.DocumentTrackerDepartment
	}
	if r.DocumentTrackerOwnerPerson != nil {
		m.DocumentTrackerOwnerPerson = r.DocumentTrackerOwnerPerson
	}
	if r.DocumentTrackerIssueDate != nil {
		if *r.DocumentTrackerIssueDate == "" {
			m.DocumentTrackerIssueDate = nil
		} else {
			t, err := parseDateYMD(*r.DocumentTrackerIssueDate)
			if err != nil {
				return err
			}
			m.DocumentTrackerIssueDate = &t
		}
	}
	if r.DocumentTrackerExpiryDate != nil {
		if *r.DocumentTrackerExpiryDate == "" {
			m.DocumentTrackerExpiryDate = nil
		} else {
			t, err := parseDateYMD(*r.DocumentTrackerExpiryDate)
			if err != nil {
				return err
			}
			m.DocumentTrackerExpiryDate = &t
		}
	}
	if r.DocumentTrackerIsExpiryBased != nil {
		m.DocumentTrackerIsExpiryBased = *r.DocumentTrackerIsExpiryBased
	}
	if r.DocumentTrackerIsRenewable != nil {
		m.DocumentTrackerIsRenewable = *r.DocumentTrackerIsRenewable
	}
	if r.DocumentTrackerLeadTimeType != nil {
		m.DocumentTrackerLeadTimeType = *r.DocumentTrackerLeadTimeType
	}
	if r.DocumentTrackerCustomRemindFromDate != nil {
		if *r.DocumentTrackerCustomRemindFromDate == "" {
			m.DocumentTrackerCustomRemindFromDate = nil
		} else {
			t, err := parseDateYMD(*r.DocumentTrackerCustomRemindFromDate)
			if err != nil {
				return err
			}
			m.DocumentTrackerCustomRemindFromDate = &t
		}
	}
	if r.DocumentTrackerPrimaryDocumentURL != nil {
		m.DocumentTrackerPrimaryDocumentURL = r.DocumentTrackerPrimaryDocumentURL
	}
	return nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type AttachmentResponse struct {
	AttachmentID   uuid.UUID `json:"document_tracker_attachment_id"`
	AttachmentType string    `json:"document_tracker_attachment_type"`
	FileURL        string    `json:"document_tracker_attachment_file_url"`
	Desc           *string   `json:"document_tracker_attachment_desc,omitempty"`
	Order          int       `json:"document_tracker_attachment_order"`
}

type DocumentTrackerResponse struct {
	DocumentTrackerID        uuid.UUID `json:"document_tracker_id"`
	DocumentTrackerCompanyID uuid.UUID `json:"document_tracker_company_id"`

	DocumentTrackerName        string  `json:"document_tracker_name"`
	DocumentTrackerReferenceNo *string `json:"document_tracker_reference_no,omitempty"`
	DocumentTrackerCategory    string  `json:"document_tracker_category"`
	DocumentTrackerAuthority   *string `json:"document_tracker_authority,omitempty"`

	DocumentTrackerBusinessUnit *string `json:"document_tracker_business_unit,omitempty"`
	DocumentTrackerDepartment   *string `json:"document_tracker_department,omitempty"`
	DocumentTrackerOwnerPerson  *string `json:"document_tracker_owner_person,omitempty"`

	DocumentTrackerCounterpartyType *string         `json:"document_tracker_counterparty_type,omitempty"`
	DocumentTrackerCounterparty     *string         `json:"document_tracker_counterparty,omitempty"`
	CounterpartySnapshot            json.RawMessage `json:"document_tracker_counterparty_snapshot,omitempty"`
	Tags                            json.RawMessage `json:"document_tracker_tags,omitempty"`

	IssueDate      *string `json:"document_tracker_issue_date,omitempty"`
	ExpiryDate     *string `json:"document_tracker_expiry_date,omitempty"`
	RemindFromDate *string `json:"document_tracker_remind_from_date,omitempty"`

	IsExpiryBased        bool    `json:"document_tracker_is_expiry_based"`
	IsRenewable          bool    `json:"document_tracker_is_renewable"`
	LeadTimeType         string  `json:"document_tracker_lead_time_type"`
	CustomRemindFromDate *string `json:"document_tracker_custom_remind_from_date,omitempty"`
	LeadTimeDays         *int    `json:"document_tracker_lead_time_days,omitempty"`

	ValidityRemainingDays *int `json:"document_tracker_validity_remaining_days,omitempty"`
	FlagExpiringSoon      bool `json:"document_tracker_flag_expiring_soon"`
	FlagOverdue           bool `json:"document_tracker_flag_overdue"`

	Status         string `json:"document_tracker_status"`
	LifecycleState string `json:"document_tracker_lifecycle_state"`
	Docstatus      int    `json:"document_tracker_docstatus"`

	ReplacesDocumentID  *uuid.UUID `json:"document_tracker_replaces_document_id,omitempty"`
	RenewedByDocumentID *uuid.UUID `json:"document_tracker_renewed_by_document_id,omitempty"`
	AmendedFromID       *uuid.UUID `json:"document_tracker_amended_from_id,omitempty"`
	RenewalCount        int        `json:"document_tracker_renewal_count"`

	PrimaryDocumentURL *string              `json:"document_tracker_primary_document_url,omitempty"`
	Attachments        []AttachmentResponse `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"document_tracker_created_at"`
	UpdatedAt time.Time `json:"document_tracker_updated_at"`
}

func FromModelDocumentTracker(m *model.DocumentTracker) DocumentTrackerResponse {
	resp := DocumentTrackerResponse{
		DocumentTrackerID:        m.DocumentTrackerID,
		DocumentTrackerCompanyID: m.DocumentTrackerCompanyID,

		DocumentTrackerName:        m.DocumentTrackerName,
		DocumentTrackerReferenceNo: m.DocumentTrackerReferenceNo,
		DocumentTrackerCategory:    m.DocumentTrackerCategory,
		DocumentTrackerAuthority:   m.DocumentTrackerAuthority,

		DocumentTrackerBusinessUnit: m.DocumentTrackerBusinessUnit,
		DocumentTrackerDepartment:   m.DocumentTrackerDepartment,
		DocumentTrackerOwnerPerson:  m.DocumentTrackerOwnerPerson,

		DocumentTrackerCounterpartyType: m.DocumentTrackerCounterpartyType,
		DocumentTrackerCounterparty:     m.DocumentTrackerCounterparty,
		CounterpartySnapshot:            json.RawMessage(m.DocumentTrackerCounterpartySnapshot),
		Tags:                            json.RawMessage(m.DocumentTrackerTags),

		IssueDate:      fmtDate(m.DocumentTrackerIssueDate),
		ExpiryDate:     fmtDate(m.DocumentTrackerExpiryDate),
		RemindFromDate: fmtDate(m.DocumentTrackerRemindFromDate),

		IsExpiryBased:        m.DocumentTrackerIsExpiryBased,
		IsRenewable:          m.DocumentTrackerIsRenewable,
		LeadTimeType:         m.DocumentTrackerLeadTimeType,
		CustomRemindFromDate: fmtDate(m.DocumentTrackerCustomRemindFromDate),
		LeadTimeDays:         m.DocumentTrackerLeadTimeDays,

		ValidityRemainingDays: m.DocumentTrackerValidityRemainingDays,
		FlagExpiringSoon:      m.DocumentTrackerFlagExpiringSoon,
		FlagOverdue:           m.DocumentTrackerFlagOverdue,

		Status:         m.DocumentTrackerStatus,
		LifecycleState: m.DocumentTrackerLifecycleState,
		Docstatus:      m.DocumentTrackerDocstatus,

		ReplacesDocumentID:  m.DocumentTrackerReplacesDocumentID,
		RenewedByDocumentID: m.DocumentTrackerRenewedByDocumentID,
		AmendedFromID:       m.DocumentTrackerAmendedFromID,
		RenewalCount:        m.DocumentTrackerRenewalCount,

		PrimaryDocumentURL: m.DocumentTrackerPrimaryDocumentURL,

		CreatedAt: m.DocumentTrackerCreatedAt,
		UpdatedAt: m.DocumentTrackerUpdatedAt,
	}

	for i := range m.Attachments {
		a := &m.Attachments[i]
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			AttachmentID:   a.DocumentTrackerAttachmentID,
			AttachmentType: a.DocumentTrackerAttachmentType,
			FileURL:        a.DocumentTrackerAttachmentFileURL,
			Desc:           a.DocumentTrackerAttachmentDesc,
			Order:          a.DocumentTrackerAttachmentOrder,
		})
	}

	return resp
}
