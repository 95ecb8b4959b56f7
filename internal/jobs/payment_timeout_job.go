package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentTimeoutJob periodically fails pending orders whose online payment
// never arrived. Orders older than the configured TTL move to payment_failed.
type PaymentTimeoutJob struct {
	handler  commands.MarkStalePendingOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewPaymentTimeoutJob creates the payment-timeout sweep job.
// The schedule is a standard 5-field cron expression; the TTL is how long a
// pending order may wait for its payment before being swept.
func NewPaymentTimeoutJob(
	handler commands.MarkStalePendingOrdersCommandHandler,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		ttl:      ttl,
		logger:   logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the payment-timeout sweep on the configured schedule.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewMarkStalePendingOrdersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment timeout job misconfigured", "error", cmdErr)
			return
		}

		swept, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Payment timeout sweep failed", "error", handleErr)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Swept stale pending orders", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment timeout job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop stops the payment-timeout sweep.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}
