package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/rkbisoi/demo-loan-app-api/internal/repository"
	"github.com/sirupsen/logrus"
)

// Scheduler periodically snapshots the application collection to timestamped
// JSON files. A cheap safety net for the file-as-database setup.
type Scheduler struct {
	cron  *cron.Cron
	store repository.Store
	dir   string
	log   *logrus.Logger
}

// NewScheduler creates a backup scheduler writing snapshots into dir
func NewScheduler(store repository.Store, dir string, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
		dir:   dir,
		log:   log,
	}
}

// Start registers the snapshot job with the given cron schedule and starts
// the scheduler.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := s.Snapshot(context.Background()); err != nil {
			s.log.Errorf("Backup snapshot failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.Infof("Backup scheduler started (%s) writing to %s", schedule, s.dir)
	return nil
}

// Stop halts the scheduler; running jobs finish first.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Snapshot writes the current collection to a timestamped file in the
// backup directory.
func (s *Scheduler) Snapshot(ctx context.Context) error {
	records := s.store.LoadAll(ctx)
	if records == nil {
		records = []models.ApplicationRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("applications-%s.json", time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.log.Infof("Wrote backup snapshot %s (%d records)", path, len(records))
	return nil
}
