package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to advance an existing order:
// a status change, a payment outcome, a weight capture, refund bookkeeping,
// customer feedback, or any combination of those. At least one change must
// be requested; zero values mean "leave as is".
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	id kernel.UUID

	status order.Status
	note   string
	rider  *kernel.UUID

	paymentStatus order.PaymentStatus
	paymentID     string
	paidAmount    float64

	weightKg float64

	refundAmount float64
	refundID     string

	rating int
	review string

	guard guard.ConstructorGuard
}

// UpdateOrderParams carries the optional changes for NewUpdateOrderCommand.
type UpdateOrderParams struct {
	Status order.Status
	Note   string
	Rider  *kernel.UUID

	PaymentStatus order.PaymentStatus
	PaymentID     string
	PaidAmount    float64

	WeightKg float64

	RefundAmount float64
	RefundID     string

	Rating int
	Review string
}

// NewUpdateOrderCommand creates a command to advance an order.
// Validates the order reference, requires at least one requested change, and
// rejects a requested status that the domain does not know. Whether the
// change is allowed for this particular order is decided by the aggregate.
func NewUpdateOrderCommand(id kernel.UUID, p UpdateOrderParams) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setID(id); err != nil {
		return UpdateOrderCommand{}, err
	}

	if p.Status == order.Unknown &&
		p.PaymentStatus == order.PaymentStatusUnknown &&
		p.WeightKg == 0 && p.RefundAmount == 0 &&
		p.Rating == 0 && p.Review == "" {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("at least one change")
	}

	if p.Status != order.Unknown {
		if err := p.Status.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if p.PaymentStatus != order.PaymentStatusUnknown {
		if err := p.PaymentStatus.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if p.Rider != nil {
		if err := p.Rider.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	cmd.status = p.Status
	cmd.note = p.Note
	cmd.rider = p.Rider
	cmd.paymentStatus = p.PaymentStatus
	cmd.paymentID = p.PaymentID
	cmd.paidAmount = p.PaidAmount
	cmd.weightKg = p.WeightKg
	cmd.refundAmount = p.RefundAmount
	cmd.refundID = p.RefundID
	cmd.rating = p.Rating
	cmd.review = p.Review
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderCommandIsNotConstructed if validation fails.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// ID returns the storage identifier of the order to update.
func (c UpdateOrderCommand) ID() kernel.UUID { return c.id }

// Status returns the requested status, or order.Unknown for no change.
func (c UpdateOrderCommand) Status() order.Status { return c.status }

// Note returns the timeline note accompanying a status change.
func (c UpdateOrderCommand) Note() string { return c.note }

// Rider returns the rider reference for assignment statuses, or nil.
func (c UpdateOrderCommand) Rider() *kernel.UUID { return c.rider }

// PaymentStatus returns the reported payment outcome, or
// order.PaymentStatusUnknown for no change.
func (c UpdateOrderCommand) PaymentStatus() order.PaymentStatus { return c.paymentStatus }

// PaymentID returns the external gateway reference.
func (c UpdateOrderCommand) PaymentID() string { return c.paymentID }

// PaidAmount returns the captured amount.
func (c UpdateOrderCommand) PaidAmount() float64 { return c.paidAmount }

// WeightKg returns the measured weight, or 0 for no change.
func (c UpdateOrderCommand) WeightKg() float64 { return c.weightKg }

// RefundAmount returns the refund to record, or 0 for no change.
func (c UpdateOrderCommand) RefundAmount() float64 { return c.refundAmount }

// RefundID returns the external refund reference.
func (c UpdateOrderCommand) RefundID() string { return c.refundID }

// Rating returns the customer rating, or 0 for no change.
func (c UpdateOrderCommand) Rating() int { return c.rating }

// Review returns the customer review text.
func (c UpdateOrderCommand) Review() string { return c.review }

func (c *UpdateOrderCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}
