package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// UpdateOrderCommandHandler handles the business logic for advancing an order.
// Loads the aggregate, routes every requested change through the corresponding
// lifecycle method and persists the result with an optimistic version check.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order update command and returns the updated aggregate.
//
// The payment outcome is applied before the status change so a refund
// transition in the same command sees the refunded payment status it depends
// on. A concurrent writer surfaces as errs.ErrVersionIsInvalid from Update;
// clients retry by re-reading the order.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	if cmd.PaymentStatus() != order.PaymentStatusUnknown {
		if err = aggregate.UpdatePayment(cmd.PaymentStatus(), cmd.PaymentID(), cmd.PaidAmount()); err != nil {
			return nil, err
		}
	}

	statusChanged := false
	if cmd.Status() != order.Unknown && cmd.Status() != aggregate.Status() {
		if err = aggregate.TransitionTo(cmd.Status(), cmd.Note(), cmd.Rider()); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if cmd.WeightKg() != 0 {
		if err = aggregate.SetWeight(cmd.WeightKg()); err != nil {
			return nil, err
		}
	}

	if cmd.RefundAmount() != 0 {
		if err = aggregate.RecordRefund(cmd.RefundAmount(), cmd.RefundID()); err != nil {
			return nil, err
		}
	}

	if cmd.Rating() != 0 || cmd.Review() != "" {
		if err = aggregate.Rate(cmd.Rating(), cmd.Review()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if statusChanged {
		h.notifier.NotifyStatusChanged(ctx, aggregate)
	}

	return aggregate, nil
}
