// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a named unit of scheduled work.
type Job interface {
	Name() string
	Run() error
}

// Scheduler wraps a cron runner with per-job logging.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a scheduler. Specs use the standard 5-field cron format.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("service", "scheduler").Logger(),
	}
}

// Register schedules a job. Panics inside jobs are contained so one bad run
// cannot take down the runner.
func (s *Scheduler) Register(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Str("job", job.Name()).Interface("panic", r).Msg("Job panicked")
			}
		}()

		start := time.Now()
		if err := job.Run(); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Job failed")
			return
		}
		s.log.Info().Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with spec %q: %w", job.Name(), spec, err)
	}

	s.log.Info().Str("job", job.Name()).Str("spec", spec).Msg("Job registered")
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}
