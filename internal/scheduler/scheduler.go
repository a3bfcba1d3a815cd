package scheduler

import (
	"fmt"
	"time"

	"agricredit-backend/internal/jobs"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Specs holds the cron expression of each job, with seconds. An empty
// expression disables the job.
type Specs struct {
	ReconcileAccounts string
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
	log  zerolog.Logger
}

// New registers every enabled job. Schedules run in UTC.
func New(runner *jobs.JobRunner, specs Specs, log zerolog.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	s := &Scheduler{cron: c, jobs: runner, log: log}
	if err := s.register("ReconcileAccounts", specs.ReconcileAccounts, runner.ReconcileAccounts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) register(name, spec string, fn func()) error {
	if spec == "" {
		s.log.Info().Str("job", name).Msg("job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("job registered")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("cron scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("cron scheduler stopped")
}

func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }
