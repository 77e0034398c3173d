// Package scheduler runs the periodic sync stamper for linked external
// calendars. Federation itself is out of scope: the job only records when a
// sync-enabled calendar was last touched so clients can show staleness.
package scheduler

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// SyncStamper periodically stamps last_synced_at on sync-enabled calendars.
type SyncStamper struct {
	repos    storage.RepositoryContainer
	schedule string
	cron     *cron.Cron
	log      *log.Logger
}

// NewSyncStamper creates a stamper with a cron schedule expression, for
// example "@every 15m".
func NewSyncStamper(repos storage.RepositoryContainer, schedule string) *SyncStamper {
	return &SyncStamper{
		repos:    repos,
		schedule: schedule,
		log:      logger.Scheduler(),
	}
}

// Start registers the job and launches the cron loop.
func (s *SyncStamper) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("sync stamper started", "schedule", s.schedule)
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *SyncStamper) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("sync stamper stopped")
}

func (s *SyncStamper) run() {
	calendars, err := s.repos.Calendars().GetSyncEnabled()
	if err != nil {
		s.log.Error("failed to list sync-enabled calendars", "error", err)
		return
	}

	now := time.Now().UTC()
	stamped := 0
	for _, c := range calendars {
		if err := s.repos.Calendars().TouchLastSynced(c.ID, now); err != nil {
			s.log.Error("failed to stamp calendar", "calendar_id", c.ID, "error", err)
			continue
		}
		stamped++
	}

	s.log.Debug("sync stamp pass complete", "calendars", len(calendars), "stamped", stamped)
}
