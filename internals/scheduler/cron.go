// file: internals/scheduler/cron.go
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	settingsModel "docpulse_backend/internals/features/documents/settings/model"
)

// Scheduler bungkus robfig/cron untuk job renewal scan.
// SkipIfStillRunning: scan yang molor tidak ditumpuk run berikutnya.
type Scheduler struct {
	cron *cron.Cron
	scan *RenewalScanService
	db   *gorm.DB

	mu       sync.Mutex
	entryID  cron.EntryID
	schedule string
	enabled  bool
	lastRun  time.Time
	lastErr  error
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		)),
		scan: NewRenewalScanService(db),
		db:   db,
	}
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// ValidateSchedule cek ekspresi cron tanpa menyentuh state scheduler.
func ValidateSchedule(expr string) error {
	_, err := cron.ParseStandard(expr)
	return err
}

// Register: upsert jadwal scan. Idempotent — schedule sama tidak
// membuat entry baru; schedule beda mengganti entry lama.
func (s *Scheduler) Register(schedule string, enabled bool) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 && s.schedule == schedule && s.enabled == enabled {
		return nil
	}

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	s.schedule = schedule
	s.enabled = enabled
	if !enabled {
		log.Printf("[CRON] renewal scan dimatikan")
		return nil
	}

	id, err := s.cron.AddFunc(schedule, s.runBackground)
	if err != nil {
		return err
	}
	s.entryID = id
	log.Printf("[CRON] renewal scan terdaftar: %q", schedule)
	return nil
}

// runBackground: dipanggil cron. Error ditelan setelah dicatat;
// pemanggilan interaktif pakai RunNow yang mengembalikan error.
func (s *Scheduler) runBackground() {
	err := s.scan.Run(context.Background())

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.Printf("[CRON] renewal scan error: %v", err)
	}
}

// RunNow: trigger manual (endpoint admin). Error dikembalikan ke caller.
func (s *Scheduler) RunNow(ctx context.Context) error {
	err := s.scan.Run(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	return err
}

// SyncFromSettings: baca jadwal dari tracker_settings lalu register.
// Saat boot dipanggil best-effort (server tetap naik walau settings rusak).
func (s *Scheduler) SyncFromSettings() error {
	st, err := settingsModel.Load(s.db)
	if err != nil {
		return err
	}
	return s.Register(st.TrackerSettingsCronSchedule, st.TrackerSettingsScanEnabled)
}

// EntryStatus: snapshot untuk endpoint diagnostik.
type EntryStatus struct {
	Schedule   string     `json:"schedule"`
	Enabled    bool       `json:"enabled"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	PrevRun    *time.Time `json:"prev_run,omitempty"`
	LastRunAt  *time.Time `json:"last_run_at,omitempty"`
	LastRunErr string     `json:"last_run_error,omitempty"`
}

func (s *Scheduler) Status() EntryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := EntryStatus{Schedule: s.schedule, Enabled: s.enabled}
	if s.entryID != 0 {
		e := s.cron.Entry(s.entryID)
		if !e.Next.IsZero() {
			next := e.Next
			st.NextRun = &next
		}
		if !e.Prev.IsZero() {
			prev := e.Prev
			st.PrevRun = &prev
		}
	}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		st.LastRunAt = &last
	}
	if s.lastErr != nil {
		st.LastRunErr = s.lastErr.Error()
	}
	return st
}
