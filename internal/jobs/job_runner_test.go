package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appUC "agricredit-backend/internal/usecase/application"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type reconcilerFunc func(ctx context.Context, limit int) (appUC.ReconcileReport, error)

func (f reconcilerFunc) Reconcile(ctx context.Context, limit int) (appUC.ReconcileReport, error) {
	return f(ctx, limit)
}

func TestReconcileAccounts_PassesBatchAndDeadline(t *testing.T) {
	var buf bytes.Buffer
	var gotLimit int
	var hadDeadline bool
	jr := NewJobRunner(reconcilerFunc(func(ctx context.Context, limit int) (appUC.ReconcileReport, error) {
		gotLimit = limit
		_, hadDeadline = ctx.Deadline()
		return appUC.ReconcileReport{Scanned: 3, Repaired: 2, Failed: 1}, nil
	}), 25, time.Second, zerolog.New(&buf))

	jr.ReconcileAccounts()

	assert.Equal(t, 25, gotLimit)
	assert.True(t, hadDeadline)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"repaired":2`)
}

func TestReconcileAccounts_QuietWhenNothingToDo(t *testing.T) {
	var buf bytes.Buffer
	jr := NewJobRunner(reconcilerFunc(func(context.Context, int) (appUC.ReconcileReport, error) {
		return appUC.ReconcileReport{}, nil
	}), 0, 0, zerolog.New(&buf).Level(zerolog.InfoLevel))

	jr.ReconcileAccounts()

	assert.Equal(t, 100, jr.batchSize)
	assert.Empty(t, buf.String())
}

func TestReconcileAccounts_LogsErrorsAndRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	jr := NewJobRunner(reconcilerFunc(func(context.Context, int) (appUC.ReconcileReport, error) {
		return appUC.ReconcileReport{}, errors.New("db down")
	}), 10, time.Second, zerolog.New(&buf))
	jr.ReconcileAccounts()
	assert.Contains(t, buf.String(), "db down")

	buf.Reset()
	jr.reconciler = reconcilerFunc(func(context.Context, int) (appUC.ReconcileReport, error) { panic("boom") })
	assert.NotPanics(t, jr.ReconcileAccounts)
	assert.True(t, strings.Contains(buf.String(), "job panicked"))
}
