package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// staleNote is the timeline note recorded when the sweep fails a pending order.
const staleNote = "Payment not received in time"

// MarkStalePendingOrdersCommandHandler fails pending orders whose payment
// never arrived. Runs periodically from the job scheduler; each sweep is one
// transaction so a partially failed batch rolls back as a whole.
type MarkStalePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewMarkStalePendingOrdersCommandHandler creates a handler for the
// payment-timeout sweep.
func NewMarkStalePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) MarkStalePendingOrdersCommandHandler {
	return MarkStalePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle moves every pending order created before now-TTL to payment_failed
// and returns how many orders the sweep touched.
func (h *MarkStalePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd MarkStalePendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetStalePending(ctx, time.Now().Add(-cmd.TTL()))
	if err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		if err = aggregate.TransitionTo(order.PaymentFailed, staleNote, nil); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		h.notifier.NotifyStatusChanged(ctx, aggregate)
	}

	return len(stale), nil
}
