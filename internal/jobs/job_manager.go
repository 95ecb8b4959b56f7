package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentTimeoutJob *PaymentTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	markStaleHandler commands.MarkStalePendingOrdersCommandHandler,
	sweepSchedule string,
	pendingTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentTimeoutJob: NewPaymentTimeoutJob(markStaleHandler, sweepSchedule, pendingTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentTimeoutJob.Stop()
}
