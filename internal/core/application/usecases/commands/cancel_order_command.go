package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order.
// Cancellation always records who cancelled and why; customers may only
// cancel their own orders, which the handler checks against ActorID.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	id      kernel.UUID
	actor   order.CancelActor
	actorID kernel.UUID
	reason  string

	refundAmount float64
	refundID     string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// Validates the order reference, the actor kind and that a reason is given.
func NewCancelOrderCommand(
	id kernel.UUID,
	actor order.CancelActor,
	actorID kernel.UUID,
	reason string,
	refundAmount float64,
	refundID string,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setActor(actor, actorID),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.refundAmount = refundAmount
	cmd.refundID = refundID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// ID returns the storage identifier of the order to cancel.
func (c CancelOrderCommand) ID() kernel.UUID { return c.id }

// Actor returns who is cancelling.
func (c CancelOrderCommand) Actor() order.CancelActor { return c.actor }

// ActorID returns the identity of the cancelling actor.
func (c CancelOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the mandatory cancellation reason.
func (c CancelOrderCommand) Reason() string { return c.reason }

// RefundAmount returns the refund recorded with the cancellation, or 0.
func (c CancelOrderCommand) RefundAmount() float64 { return c.refundAmount }

// RefundID returns the external refund reference.
func (c CancelOrderCommand) RefundID() string { return c.refundID }

func (c *CancelOrderCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *CancelOrderCommand) setActor(actor order.CancelActor, actorID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	c.actorID = actorID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancelReason")
	}

	c.reason = reason
	return nil
}
