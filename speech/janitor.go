package speech

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically deletes generated audio older than Retention.
type Janitor struct {
	Dir       string
	Retention time.Duration
	Schedule  string // cron spec, defaults to "@every 1h"

	cron *cron.Cron
}

// Start schedules the cleanup job.
func (j *Janitor) Start() error {
	spec := j.Schedule
	if spec == "" {
		spec = "@every 1h"
	}
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(spec, func() {
		removed, err := j.Sweep()
		if err != nil {
			log.Printf("Audio cleanup failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("Audio cleanup removed %d files from %s", removed, j.Dir)
		}
	}); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	j.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep.
func (j *Janitor) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Sweep removes expired audio files once and reports how many were deleted.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list audio directory: %w", err)
	}

	cutoff := now().Add(-j.Retention)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), FilePrefix) || filepath.Ext(e.Name()) != ".mp3" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(j.Dir, e.Name())); err != nil {
				log.Printf("Failed to remove %s: %v", e.Name(), err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
