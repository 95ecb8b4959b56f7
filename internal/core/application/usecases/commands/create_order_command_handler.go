package commands

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Allocates the next order number for the current year, builds the aggregate
// and persists it in one transaction; the allocated number rolls back together
// with a failed order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and an
// OrderNotifier for post-commit announcements.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order placement command and returns the created
// aggregate so callers can report the assigned order code.
//
// The initial status depends on the payment method: cash-on-delivery orders
// start confirmed, online and wallet orders start pending until the payment
// collaborator reports the outcome.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	year := time.Now().Year()
	seq, err := uow.SequenceAllocator().Next(ctx, orderNumberBucket(year))
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.NewOrderID(year, seq)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:                  kernel.NewUUID(),
		OrderID:             orderID,
		CustomerID:          cmd.CustomerID(),
		Customer:            cmd.Customer(),
		PickupAddress:       cmd.PickupAddress(),
		DeliveryAddress:     cmd.DeliveryAddress(),
		Items:               cmd.Items(),
		Pricing:             cmd.Pricing(),
		PaymentMethod:       cmd.PaymentMethod(),
		PickupSlot:          cmd.PickupSlot(),
		DeliverySlot:        cmd.DeliverySlot(),
		SpecialInstructions: cmd.SpecialInstructions(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyCreated(ctx, aggregate)

	return aggregate, nil
}

// orderNumberBucket names the per-year sequence counter, e.g. "orderId_2025".
func orderNumberBucket(year int) string {
	return fmt.Sprintf("orderId_%d", year)
}
