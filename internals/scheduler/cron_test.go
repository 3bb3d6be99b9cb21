package scheduler

import "testing"

func TestRegisterValidatesExpression(t *testing.T) {
	s := NewScheduler(nil)

	if err := s.Register("not a cron", true); err == nil {
		t.Fatal("ekspresi invalid harus ditolak")
	}
	if err := s.Register("0 6 * * *", true); err != nil {
		t.Fatalf("ekspresi valid ditolak: %v", err)
	}

	st := s.Status()
	if st.Schedule != "0 6 * * *" || !st.Enabled {
		t.Errorf("status = %+v", st)
	}
}

func TestRegisterIdempotentUpsert(t *testing.T) {
	s := NewScheduler(nil)

	if err := s.Register("0 6 * * *", true); err != nil {
		t.Fatal(err)
	}
	first := s.entryID

	// jadwal sama → entry tidak diganti
	if err := s.Register("0 6 * * *", true); err != nil {
		t.Fatal(err)
	}
	if s.entryID != first {
		t.Error("register ulang jadwal sama tidak boleh bikin entry baru")
	}

	// jadwal beda → entry lama diganti
	if err := s.Register("30 7 * * *", true); err != nil {
		t.Fatal(err)
	}
	if s.entryID == first {
		t.Error("ganti jadwal harus mengganti entry")
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("jumlah entry = %d, want 1", got)
	}
}

func TestRegisterDisableRemovesEntry(t *testing.T) {
	s := NewScheduler(nil)

	if err := s.Register("0 6 * * *", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("0 6 * * *", false); err != nil {
		t.Fatal(err)
	}
	if got := len(s.cron.Entries()); got != 0 {
		t.Errorf("jumlah entry = %d, want 0 setelah disable", got)
	}
	if s.Status().Enabled {
		t.Error("status harus disabled")
	}
}
