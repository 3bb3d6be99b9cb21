// file: internals/features/documents/tracker/service/chain_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

/* =========================================================
   Renewal chain traversal.
   Link putus = akhir rantai (bukan error); visited-set jaga cycle.
   ========================================================= */

// GetRootDocument jalan mundur lewat replaces_document sampai root.
func (s *LifecycleService) GetRootDocument(ctx context.Context, id uuid.UUID) (*model.DocumentTracker, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visited := map[uuid.UUID]struct{}{}
	for current.DocumentTrackerReplacesDocumentID != nil {
		if _, seen := visited[*current.DocumentTrackerReplacesDocumentID]; seen {
			break
		}
		visited[current.DocumentTrackerID] = struct{}{}

		var prev model.DocumentTracker
		err := model.ScopeAlive(s.DB.WithContext(ctx)).
			First(&prev, "document_tracker_id = ?", *current.DocumentTrackerReplacesDocumentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break // referensi putus → berhenti di sini
			}
			return nil, err
		}
		current = &prev
	}

	return current, nil
}

// GetChainDocuments jalan maju dari root: cari record yang replaces = current.
func (s *LifecycleService) GetChainDocuments(ctx context.Context, rootID uuid.UUID) ([]model.DocumentTracker, error) {
	root, err := s.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}

	chain := []model.DocumentTracker{*root}
	visited := map[uuid.UUID]struct{}{rootID: {}}
	currentID := rootID

	for {
		var next model.DocumentTracker
		err := model.ScopeAlive(s.DB.WithContext(ctx)).
			First(&next, "document_tracker_replaces_document_id = ?", currentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		if _, seen := visited[next.DocumentTrackerID]; seen {
			break
		}
		visited[next.DocumentTrackerID] = struct{}{}
		chain = append(chain, next)
		currentID = next.DocumentTrackerID
	}

	return chain, nil
}
