package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new laundry order.
// All value objects arrive pre-validated by their own constructors; the
// command re-checks them so a zero value can never slip into the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    CustomerID:    customerID,
//	    Customer:      snapshot,
//	    PickupAddress: pickup,
//	    ...
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	customer        order.CustomerSnapshot
	pickupAddress   order.Address
	deliveryAddress order.Address
	items           []order.Item
	pricing         order.Pricing
	paymentMethod   order.PaymentMethod
	pickupSlot      order.TimeSlot
	deliverySlot    *order.TimeSlot

	specialInstructions string

	guard guard.ConstructorGuard
}

// CreateOrderParams carries the validated inputs for NewCreateOrderCommand.
type CreateOrderParams struct {
	CustomerID      kernel.UUID
	Customer        order.CustomerSnapshot
	PickupAddress   order.Address
	DeliveryAddress order.Address
	Items           []order.Item
	Pricing         order.Pricing
	PaymentMethod   order.PaymentMethod
	PickupSlot      order.TimeSlot
	DeliverySlot    *order.TimeSlot

	SpecialInstructions string
}

// NewCreateOrderCommand creates a command to place a new order.
// Returns an error if any of the embedded value objects fail validation.
func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(p.CustomerID, p.Customer),
		cmd.setAddresses(p.PickupAddress, p.DeliveryAddress),
		cmd.setItems(p.Items),
		cmd.setPricing(p.Pricing),
		cmd.setPaymentMethod(p.PaymentMethod),
		cmd.setSlots(p.PickupSlot, p.DeliverySlot),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.specialInstructions = p.SpecialInstructions
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer reference.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Customer returns the customer contact snapshot.
func (c CreateOrderCommand) Customer() order.CustomerSnapshot { return c.customer }

// PickupAddress returns where the clothes are collected.
func (c CreateOrderCommand) PickupAddress() order.Address { return c.pickupAddress }

// DeliveryAddress returns where the finished order is delivered.
func (c CreateOrderCommand) DeliveryAddress() order.Address { return c.deliveryAddress }

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

// Pricing returns the money breakdown.
func (c CreateOrderCommand) Pricing() order.Pricing { return c.pricing }

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// PickupSlot returns the preferred pickup window.
func (c CreateOrderCommand) PickupSlot() order.TimeSlot { return c.pickupSlot }

// DeliverySlot returns the preferred delivery window, or nil.
func (c CreateOrderCommand) DeliverySlot() *order.TimeSlot { return c.deliverySlot }

// SpecialInstructions returns the customer's free-form instructions.
func (c CreateOrderCommand) SpecialInstructions() string { return c.specialInstructions }

func (c *CreateOrderCommand) setCustomer(customerID kernel.UUID, snapshot order.CustomerSnapshot) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	c.customer = snapshot
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, delivery order.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setPricing(pricing order.Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	c.pricing = pricing
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setSlots(pickup order.TimeSlot, delivery *order.TimeSlot) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return err
		}
	}

	c.pickupSlot = pickup
	c.deliverySlot = delivery
	return nil
}
