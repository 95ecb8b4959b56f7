package commands

import (
	"context"
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
// The order is never deleted: cancellation is a terminal status with a
// recorded actor, reason and optional refund bookkeeping.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command and returns the cancelled
// aggregate.
//
// A customer may only cancel their own order; staff actors (admin, shop)
// may cancel any order within the lifecycle rules the aggregate enforces.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.ID())
	if err != nil {
		return nil, err
	}

	if cmd.Actor() == order.CancelledByCustomer && !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		return nil, fmt.Errorf("%w: customer %s does not own order %s",
			ErrActorNotAllowed, cmd.ActorID(), aggregate.OrderID())
	}

	if err = aggregate.Cancel(cmd.Actor(), cmd.Reason(), cmd.RefundAmount(), cmd.RefundID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyStatusChanged(ctx, aggregate)

	return aggregate, nil
}
