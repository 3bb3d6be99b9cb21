package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	model "docpulse_backend/internals/features/documents/tracker/model"
)

// buildChain: A (root) di-renew jadi B, B di-renew jadi C. A dan B Historical.
func buildChain(t *testing.T, s *LifecycleService) (a, b, c uuid.UUID) {
	t.Helper()
	company := uuid.New()

	orig := newDraft(company, "Business License", testToday.AddDate(0, 0, 5))
	mustCreate(t, s, orig)
	mustSubmit(t, s, orig.DocumentTrackerID)
	a = orig.DocumentTrackerID

	b = renewAndSubmit(t, s, a)
	c = renewAndSubmit(t, s, b)
	return a, b, c
}

func renewAndSubmit(t *testing.T, s *LifecycleService, id uuid.UUID) uuid.UUID {
	t.Helper()
	newID, err := s.Renew(context.Background(), id)
	if err != nil {
		t.Fatalf("renew %s: %v", id, err)
	}
	draft, err := s.GetByID(context.Background(), newID)
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	draft.DocumentTrackerExpiryDate = datePtr(DateOnly(*draft.DocumentTrackerExpiryDate).AddDate(1, 0, 0))
	if err := s.Save(context.Background(), draft, SaveOpts{}); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	mustSubmit(t, s, newID)
	return newID
}

func TestGetRootDocument(t *testing.T) {
	s := newTestService(t)
	a, _, c := buildChain(t, s)

	root, err := s.GetRootDocument(context.Background(), c)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if root.DocumentTrackerID != a {
		t.Errorf("root = %s, want %s", root.DocumentTrackerID, a)
	}

	// root dari root adalah dirinya sendiri
	self, err := s.GetRootDocument(context.Background(), a)
	if err != nil {
		t.Fatalf("root(a): %v", err)
	}
	if self.DocumentTrackerID != a {
		t.Errorf("root(a) = %s, want %s", self.DocumentTrackerID, a)
	}
}

func TestGetChainDocuments(t *testing.T) {
	s := newTestService(t)
	a, b, c := buildChain(t, s)

	chain, err := s.GetChainDocuments(context.Background(), a)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("panjang chain = %d, want 3", len(chain))
	}
	got := []uuid.UUID{
		chain[0].DocumentTrackerID,
		chain[1].DocumentTrackerID,
		chain[2].DocumentTrackerID,
	}
	want := []uuid.UUID{a, b, c}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chain[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestChainTraversalTerminatesOnCycle(t *testing.T) {
	s := newTestService(t)
	company := uuid.New()

	first := newDraft(company, "License Alpha", testToday.AddDate(0, 1, 0))
	mustCreate(t, s, first)
	second := newDraft(company, "License Beta", testToday.AddDate(0, 1, 0))
	mustCreate(t, s, second)

	// data korup: dua dokumen saling menunjuk lewat replaces.
	// Traversal harus tetap berhenti, bukan muter selamanya.
	wire := func(id, replaces uuid.UUID) {
		if err := s.DB.Model(&model.DocumentTracker{}).
			Where("document_tracker_id = ?", id).
			Update("document_tracker_replaces_document_id", replaces).Error; err != nil {
			t.Fatalf("wire cycle: %v", err)
		}
	}
	wire(first.DocumentTrackerID, second.DocumentTrackerID)
	wire(second.DocumentTrackerID, first.DocumentTrackerID)

	root, err := s.GetRootDocument(context.Background(), first.DocumentTrackerID)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if root.DocumentTrackerID != first.DocumentTrackerID &&
		root.DocumentTrackerID != second.DocumentTrackerID {
		t.Errorf("root %s bukan anggota cycle", root.DocumentTrackerID)
	}

	chain, err := s.GetChainDocuments(context.Background(), first.DocumentTrackerID)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if len(chain) != 2 {
		t.Errorf("panjang chain = %d, want 2 (tiap dokumen sekali)", len(chain))
	}
}
