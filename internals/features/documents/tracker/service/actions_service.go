// file: internals/features/documents/tracker/service/actions_service.go
package service

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"docpulse_backend/internals/constants"
	model "docpulse_backend/internals/features/documents/tracker/model"
)

/* =========================================================
   Renew — bikin draft pengganti, dokumen lama belum disentuh
   (supersession terjadi di Submit draft baru, lihat onSubmit)
   ========================================================= */

func (s *LifecycleService) Renew(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var newID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}

		if !doc.DocumentTrackerIsRenewable {
			return fiber.NewError(fiber.StatusBadRequest, "Dokumen ini tidak renewable.")
		}
		if doc.DocumentTrackerLifecycleState != model.LifecycleCurrent {
			return fiber.NewError(fiber.StatusBadRequest, "Hanya dokumen Current yang bisa di-renew.")
		}

		issueDate := s.today()
		newDoc := &model.DocumentTracker{
			DocumentTrackerID:        uuid.New(),
			DocumentTrackerCompanyID: doc.DocumentTrackerCompanyID,

			DocumentTrackerName:        doc.DocumentTrackerName,
			DocumentTrackerReferenceNo: doc.DocumentTrackerReferenceNo,
			DocumentTrackerCategory:    doc.DocumentTrackerCategory,
			DocumentTrackerAuthority:   doc.DocumentTrackerAuthority,

			DocumentTrackerBusinessUnit: doc.DocumentTrackerBusinessUnit,
			DocumentTrackerDepartment:   doc.DocumentTrackerDepartment,
			DocumentTrackerOwnerPerson:  doc.DocumentTrackerOwnerPerson,

			DocumentTrackerCounterpartyType:     doc.DocumentTrackerCounterpartyType,
			DocumentTrackerCounterparty:         doc.DocumentTrackerCounterparty,
			DocumentTrackerCounterpartySnapshot: doc.DocumentTrackerCounterpartySnapshot,
			DocumentTrackerTags:                 doc.DocumentTrackerTags,

			DocumentTrackerIssueDate:  &issueDate, // issue date baru saat renewal
			DocumentTrackerExpiryDate: doc.DocumentTrackerExpiryDate,

			DocumentTrackerIsExpiryBased:        doc.DocumentTrackerIsExpiryBased,
			DocumentTrackerIsRenewable:          doc.DocumentTrackerIsRenewable,
			DocumentTrackerLeadTimeType:         doc.DocumentTrackerLeadTimeType,
			DocumentTrackerCustomRemindFromDate: doc.DocumentTrackerCustomRemindFromDate,

			DocumentTrackerLifecycleState:     model.LifecycleCurrent,
			DocumentTrackerStatus:             model.StatusDraft,
			DocumentTrackerDocstatus:          model.DocstatusDraft,
			DocumentTrackerReplacesDocumentID: &doc.DocumentTrackerID,
			DocumentTrackerRenewalCount:       0,

			DocumentTrackerPrimaryDocumentURL: doc.DocumentTrackerPrimaryDocumentURL,
		}

		if err := s.validate(tx, newDoc, validateFlags{}); err != nil {
			return err
		}
		if err := tx.Create(newDoc).Error; err != nil {
			return err
		}

		// copy supplementary attachments, urutan dipertahankan
		var atts []model.DocumentTrackerAttachment
		if err := tx.
			Where("document_tracker_attachment_tracker_id = ?", doc.DocumentTrackerID).
			Order("document_tracker_attachment_order ASC").
			Find(&atts).Error; err != nil {
			return err
		}
		for i := range atts {
			copyAtt := model.DocumentTrackerAttachment{
				DocumentTrackerAttachmentTrackerID: newDoc.DocumentTrackerID,
				DocumentTrackerAttachmentType:      atts[i].DocumentTrackerAttachmentType,
				DocumentTrackerAttachmentFileURL:   atts[i].DocumentTrackerAttachmentFileURL,
				DocumentTrackerAttachmentDesc:      atts[i].DocumentTrackerAttachmentDesc,
				DocumentTrackerAttachmentOrder:     atts[i].DocumentTrackerAttachmentOrder,
			}
			if err := tx.Create(&copyAtt).Error; err != nil {
				return err
			}
		}

		// link balik dari dokumen lama; status/lifecycle TIDAK berubah di sini
		if err := tx.Model(doc).
			Update("document_tracker_renewed_by_document_id", newDoc.DocumentTrackerID).Error; err != nil {
			return err
		}

		newID = newDoc.DocumentTrackerID
		return nil
	})
	return newID, err
}

/* =========================================================
   Status transitions
   ========================================================= */

// MarkRenewalInProgress: satu-satunya jalan masuk ke status Renewal In Progress.
func (s *LifecycleService) MarkRenewalInProgress(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}

		switch doc.DocumentTrackerStatus {
		case model.StatusActive, model.StatusActiveSoonExpire, model.StatusDraft:
			// boleh
		default:
			return fiber.NewError(fiber.StatusBadRequest,
				"Dokumen harus Active, Active Soon to Expire, atau Draft untuk ditandai Renewal In Progress.")
		}

		doc.DocumentTrackerStatus = model.StatusRenewalInProgress
		return s.saveTx(tx, doc, SaveOpts{}) // status masuk allow-list, guard lolos
	})
}

// RevertRenewalStatus: balikkan Renewal In Progress ke status hasil komputasi.
func (s *LifecycleService) RevertRenewalStatus(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}

		if doc.DocumentTrackerStatus != model.StatusRenewalInProgress {
			return fiber.NewError(fiber.StatusBadRequest,
				"Status dokumen harus Renewal In Progress untuk di-revert.")
		}

		ComputeRemindFromDate(doc)
		doc.DocumentTrackerStatus = DetermineCorrectStatus(doc, s.today())
		return s.saveTx(tx, doc, SaveOpts{})
	})
}

// RevokeOrCancel: Active → Revoked (non-destruktif). Selain itu jalur cancel:
// butuh role manager, dokumen harus submitted, docstatus jadi 2.
func (s *LifecycleService) RevokeOrCancel(ctx context.Context, id uuid.UUID, callerRoles []string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}

		switch doc.DocumentTrackerStatus {
		case model.StatusRevoked, model.StatusCancelled, model.StatusRenewed:
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Dokumen sudah %s.", doc.DocumentTrackerStatus))
		}

		if doc.DocumentTrackerStatus == model.StatusActive {
			// Revoke: cukup ubah status + arsip, dokumen tidak di-cancel
			doc.DocumentTrackerStatus = model.StatusRevoked
			doc.DocumentTrackerLifecycleState = model.LifecycleHistorical
			return s.saveTx(tx, doc, SaveOpts{})
		}

		// Cancel path
		if !hasAnyRole(callerRoles, constants.CancelRoles) {
			return fiber.NewError(fiber.StatusForbidden,
				"Hanya master manager yang boleh membatalkan tracker entry.")
		}
		if doc.DocumentTrackerDocstatus != model.DocstatusSubmitted {
			return fiber.NewError(fiber.StatusBadRequest, "Hanya dokumen submitted yang bisa dibatalkan.")
		}

		doc.DocumentTrackerStatus = model.StatusCancelled
		if doc.DocumentTrackerLifecycleState == model.LifecycleCurrent {
			doc.DocumentTrackerLifecycleState = model.LifecycleHistorical
		}
		if err := s.saveTx(tx, doc, SaveOpts{}); err != nil {
			return err
		}

		// cancel record-store: docstatus = 2
		return tx.Model(doc).
			Update("document_tracker_docstatus", model.DocstatusCancelled).Error
	})
}

/* =========================================================
   Controlled post-submit updates (bypass guard untuk satu field)
   ========================================================= */

func (s *LifecycleService) UpdateLifecycleState(ctx context.Context, id uuid.UUID, state string) (uuid.UUID, error) {
	if state != model.LifecycleCurrent && state != model.LifecycleHistorical {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Lifecycle State tidak valid")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		doc.DocumentTrackerLifecycleState = state
		return s.saveTx(tx, doc, SaveOpts{IgnorePostSubmitGuard: true})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *LifecycleService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (uuid.UUID, error) {
	if !validStatus(status) {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Status tidak valid")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(tx, id)
		if err != nil {
			return err
		}
		doc.DocumentTrackerStatus = status
		return s.saveTx(tx, doc, SaveOpts{IgnorePostSubmitGuard: true})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

/* =========================================================
   small utils
   ========================================================= */

func hasAnyRole(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case model.StatusDraft, model.StatusActive, model.StatusActiveSoonExpire,
		model.StatusRenewalInProgress, model.StatusRenewed, model.StatusRevoked,
		model.StatusCancelled, model.StatusExpired:
		return true
	}
	return false
}
