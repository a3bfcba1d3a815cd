package jobs

import (
	"context"
	"time"

	appUC "agricredit-backend/internal/usecase/application"

	"github.com/rs/zerolog"
)

// Reconciler repairs approved applications that have no account.
type Reconciler interface {
	Reconcile(ctx context.Context, limit int) (appUC.ReconcileReport, error)
}

// JobRunner holds the dependencies of scheduled jobs.
type JobRunner struct {
	reconciler Reconciler
	batchSize  int
	timeout    time.Duration
	log        zerolog.Logger
}

func NewJobRunner(reconciler Reconciler, batchSize int, timeout time.Duration, log zerolog.Logger) *JobRunner {
	if batchSize <= 0 {
		batchSize = 100
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &JobRunner{reconciler: reconciler, batchSize: batchSize, timeout: timeout, log: log}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error().Str("job", jobName).Interface("panic", r).Msg("job panicked")
		}
	}()

	start := time.Now()
	jobFunc()
	jr.log.Debug().Str("job", jobName).Dur("took", time.Since(start)).Msg("job completed")
}

// ReconcileAccounts opens the missing account of every approved
// application found without one.
func (jr *JobRunner) ReconcileAccounts() {
	jr.runWithRecovery("ReconcileAccounts", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		rep, err := jr.reconciler.Reconcile(ctx, jr.batchSize)
		if err != nil {
			jr.log.Error().Err(err).Msg("account reconciliation failed")
			return
		}
		if rep.Scanned == 0 {
			return
		}
		ev := jr.log.Info()
		if rep.Failed > 0 {
			ev = jr.log.Warn()
		}
		ev.Int("scanned", rep.Scanned).Int("repaired", rep.Repaired).Int("failed", rep.Failed).Msg("account reconciliation")
	})
}
