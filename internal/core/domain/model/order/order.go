package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidPaymentState is returned when refund-related operations are
	// inconsistent with the order's payment status.
	ErrInvalidPaymentState = errors.New("payment status does not allow this operation")

	// ErrIncompleteFeedback is returned when a rating is submitted without a
	// review or vice versa.
	ErrIncompleteFeedback = errors.New("rating and review must be provided together")
)

// orderPlacedNote seeds the timeline on creation.
const orderPlacedNote = "Order placed by customer"

// Order is the aggregate root of the laundry fulfillment pipeline.
//
// Order follows these invariants:
//   - The human-readable order code is unique and immutable once assigned
//   - At least one item; items and pricing are immutable creation-time snapshots
//   - Status only changes through lifecycle methods, never by direct assignment
//   - Every accepted status change appends exactly one timeline entry;
//     the status field is a projection of the timeline's last entry
//   - Cancellation is a terminal status with a recorded reason, never a deletion
//   - A version token guards against concurrent lost updates (compare-on-write)
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id         kernel.UUID
	orderID    kernel.OrderID
	customerID kernel.UUID
	customer   CustomerSnapshot

	pickupAddress   Address
	deliveryAddress Address

	items   []Item
	pricing Pricing

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	paymentID     string
	paidAmount    float64

	pickupSlot         TimeSlot
	deliverySlot       *TimeSlot
	actualPickupTime   *time.Time
	actualDeliveryTime *time.Time

	pickupRider   *kernel.UUID
	deliveryRider *kernel.UUID

	status   Status
	timeline []TimelineEntry

	specialInstructions string
	totalWeightKg       float64

	cancellation *Cancellation

	rating     int
	review     string
	reviewedAt *time.Time

	version   int64
	createdAt time.Time

	isConstructed bool
}

// NewOrderParams carries the validated inputs for creating an order.
type NewOrderParams struct {
	ID              kernel.UUID
	OrderID         kernel.OrderID
	CustomerID      kernel.UUID
	Customer        CustomerSnapshot
	PickupAddress   Address
	DeliveryAddress Address
	Items           []Item
	Pricing         Pricing
	PaymentMethod   PaymentMethod
	PickupSlot      TimeSlot
	DeliverySlot    *TimeSlot

	SpecialInstructions string
}

// InitialStatus returns the status a freshly placed order starts in:
// Confirmed for cash on delivery, Pending for payments captured online.
func InitialStatus(method PaymentMethod) Status {
	if method == PaymentMethodCOD {
		return Confirmed
	}
	return Pending
}

// NewOrder creates a new Order with validation. This is the only way to build
// a valid new aggregate; persistence reconstruction goes through RestoreOrder.
//
// The order starts in InitialStatus(paymentMethod) with a pending payment
// status, a version of 1, and a single seeded timeline entry.
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOrderID(p.OrderID),
		o.setCustomer(p.CustomerID, p.Customer),
		o.setAddresses(p.PickupAddress, p.DeliveryAddress),
		o.setItems(p.Items),
		o.setPricing(p.Pricing),
		o.setPaymentMethod(p.PaymentMethod),
		o.setSlots(p.PickupSlot, p.DeliverySlot),
	); err != nil {
		return nil, err
	}

	o.specialInstructions = p.SpecialInstructions
	o.paymentStatus = PaymentStatusPending
	o.version = 1
	o.createdAt = time.Now()

	initial := InitialStatus(p.PaymentMethod)
	entry, err := NewTimelineEntry(initial, o.createdAt, nil, orderPlacedNote)
	if err != nil {
		return nil, err
	}
	o.timeline = []TimelineEntry{entry}
	o.status = initial

	return o, nil
}

// RestoreOrderParams carries a persisted order's full state back into the domain.
type RestoreOrderParams struct {
	ID              kernel.UUID
	OrderID         kernel.OrderID
	CustomerID      kernel.UUID
	Customer        CustomerSnapshot
	PickupAddress   Address
	DeliveryAddress Address
	Items           []Item
	Pricing         Pricing

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	PaymentID     string
	PaidAmount    float64

	PickupSlot         TimeSlot
	DeliverySlot       *TimeSlot
	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time

	PickupRider   *kernel.UUID
	DeliveryRider *kernel.UUID

	Status   Status
	Timeline []TimelineEntry

	SpecialInstructions string
	TotalWeightKg       float64

	Cancellation *Cancellation

	Rating     int
	Review     string
	ReviewedAt *time.Time

	Version   int64
	CreatedAt time.Time
}

// RestoreOrder reconstructs an order aggregate from persistence.
// It revalidates identity, status and payment fields but trusts the stored
// timeline: history is what was recorded, not what today's rules would accept.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.CustomerID.Validate(),
		p.Status.Validate(),
		p.PaymentMethod.Validate(),
		p.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Version <= 0 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", p.Version))
	}
	if len(p.Timeline) == 0 {
		return nil, errs.NewValueIsRequiredError("timeline")
	}

	return &Order{
		id:                  p.ID,
		orderID:             p.OrderID,
		customerID:          p.CustomerID,
		customer:            p.Customer,
		pickupAddress:       p.PickupAddress,
		deliveryAddress:     p.DeliveryAddress,
		items:               p.Items,
		pricing:             p.Pricing,
		paymentMethod:       p.PaymentMethod,
		paymentStatus:       p.PaymentStatus,
		paymentID:           p.PaymentID,
		paidAmount:          p.PaidAmount,
		pickupSlot:          p.PickupSlot,
		deliverySlot:        p.DeliverySlot,
		actualPickupTime:    p.ActualPickupTime,
		actualDeliveryTime:  p.ActualDeliveryTime,
		pickupRider:         p.PickupRider,
		deliveryRider:       p.DeliveryRider,
		status:              p.Status,
		timeline:            p.Timeline,
		specialInstructions: p.SpecialInstructions,
		totalWeightKg:       p.TotalWeightKg,
		cancellation:        p.Cancellation,
		rating:              p.Rating,
		review:              p.Review,
		reviewedAt:          p.ReviewedAt,
		version:             p.Version,
		createdAt:           p.CreatedAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their storage identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// TransitionTo validates and applies a status change, appending exactly one
// timeline entry on success.
//
// Rules enforced here:
//   - the transition table (terminal states allow no exit, cancellation is
//     not reachable through this method — use Cancel)
//   - refund transitions require an already refunded payment status
//   - rider-assignment statuses require a rider reference and record it
//
// The machine trusts reported operational statuses and permits forward skips;
// physical-world events do not always arrive in strict pipeline order.
func (o *Order) TransitionTo(next Status, note string, rider *kernel.UUID) error {
	if next == Cancelled {
		return fmt.Errorf("%w: cancellation requires an actor and a reason, use Cancel", ErrInvalidTransition)
	}

	if err := o.status.CanTransitionTo(next); err != nil {
		return err
	}

	if next == Refunded && !o.paymentStatus.Refundable() {
		return fmt.Errorf("%w: payment status is %s", ErrInvalidPaymentState, o.paymentStatus)
	}

	if next.RequiresRider() {
		if rider == nil {
			return errs.NewValueIsRequiredError("rider")
		}
		if err := rider.Validate(); err != nil {
			return err
		}
	}

	now := time.Now()
	entry, err := NewTimelineEntry(next, now, rider, note)
	if err != nil {
		return err
	}

	o.timeline = append(o.timeline, entry)
	o.status = next

	switch next {
	case PickupAssigned:
		o.pickupRider = rider
	case DeliveryAssigned:
		o.deliveryRider = rider
	case PickedUp:
		if o.actualPickupTime == nil {
			o.actualPickupTime = &now
		}
	case Delivered:
		if o.actualDeliveryTime == nil {
			o.actualDeliveryTime = &now
		}
	}

	return nil
}

// AssignPickupRider assigns a pickup rider and moves the order to PickupAssigned.
func (o *Order) AssignPickupRider(rider kernel.UUID, note string) error {
	return o.TransitionTo(PickupAssigned, note, &rider)
}

// AssignDeliveryRider assigns a delivery rider and moves the order to DeliveryAssigned.
func (o *Order) AssignDeliveryRider(rider kernel.UUID, note string) error {
	return o.TransitionTo(DeliveryAssigned, note, &rider)
}

// Cancel transitions the order to the terminal Cancelled status.
//
// A non-empty reason is always required. Customers and riders may cancel only
// while the order is pending or confirmed; staff may additionally cancel a
// payment-failed order. Any refund recorded alongside the cancellation
// requires the payment to already be (partially) refunded.
func (o *Order) Cancel(by CancelActor, reason string, refundAmount float64, refundID string) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("cancelReason")
	}
	if refundAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("refundAmount",
			fmt.Errorf("%.2f is negative", refundAmount))
	}
	if refundAmount > 0 && !o.paymentStatus.Refundable() {
		return fmt.Errorf("%w: payment status is %s", ErrInvalidPaymentState, o.paymentStatus)
	}

	if err := o.status.CanTransitionTo(Cancelled); err != nil {
		return err
	}
	if !by.IsStaff() && o.status != Pending && o.status != Confirmed {
		return fmt.Errorf("%w: %s may not cancel from %s", ErrInvalidTransition, by, o.status)
	}

	now := time.Now()
	entry, err := NewTimelineEntry(Cancelled, now, nil, reason)
	if err != nil {
		return err
	}

	o.timeline = append(o.timeline, entry)
	o.status = Cancelled
	o.cancellation = &Cancellation{
		cancelledBy:  by,
		reason:       reason,
		refundAmount: refundAmount,
		refundID:     refundID,
		cancelledAt:  now,
	}

	return nil
}

// RecordRefund attaches refund bookkeeping to a cancelled order.
// The payment status must already be refunded or partially refunded.
func (o *Order) RecordRefund(amount float64, refundID string) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("refundAmount",
			fmt.Errorf("%.2f is not greater than 0", amount))
	}
	if !o.paymentStatus.Refundable() {
		return fmt.Errorf("%w: payment status is %s", ErrInvalidPaymentState, o.paymentStatus)
	}
	if o.cancellation == nil {
		return fmt.Errorf("%w: refund bookkeeping requires a cancelled order", ErrInvalidPaymentState)
	}

	o.cancellation.refundAmount = amount
	o.cancellation.refundID = refundID
	return nil
}

// UpdatePayment records the outcome reported by the payment collaborator.
func (o *Order) UpdatePayment(status PaymentStatus, paymentID string, paidAmount float64) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if paidAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("paidAmount",
			fmt.Errorf("%.2f is negative", paidAmount))
	}

	o.paymentStatus = status
	if paymentID != "" {
		o.paymentID = paymentID
	}
	if paidAmount > 0 {
		o.paidAmount = paidAmount
	}
	return nil
}

// Rate attaches customer feedback. Rating and review travel together, may be
// set only once, and only after the order has been delivered.
func (o *Order) Rate(rating int, review string) error {
	if rating == 0 && review == "" {
		return errs.NewValueIsRequiredError("rating and review")
	}
	if rating == 0 || review == "" {
		return ErrIncompleteFeedback
	}
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	if !o.status.DeliveredOrLater() {
		return fmt.Errorf("%w: feedback requires a delivered order, status is %s", ErrInvalidTransition, o.status)
	}
	if o.reviewedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			errors.New("order has already been reviewed"))
	}

	now := time.Now()
	o.rating = rating
	o.review = review
	o.reviewedAt = &now
	return nil
}

// SetWeight captures the measured weight, typically after pickup.
func (o *Order) SetWeight(kg float64) error {
	if kg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalWeightKg",
			fmt.Errorf("%.2f is not greater than 0", kg))
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.status)
	}

	o.totalWeightKg = kg
	return nil
}

// ID returns the storage identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderID returns the immutable human-readable order code.
func (o *Order) OrderID() kernel.OrderID { return o.orderID }

// CustomerID returns the ordering customer reference.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Customer returns the customer contact snapshot taken at order time.
func (o *Order) Customer() CustomerSnapshot { return o.customer }

// PickupAddress returns where the rider collects the clothes.
func (o *Order) PickupAddress() Address { return o.pickupAddress }

// DeliveryAddress returns where the finished order is delivered.
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the money breakdown fixed at creation time.
func (o *Order) Pricing() Pricing { return o.pricing }

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the current payment state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentID returns the external gateway reference, if any.
func (o *Order) PaymentID() string { return o.paymentID }

// PaidAmount returns the captured amount, relevant for partial refunds.
func (o *Order) PaidAmount() float64 { return o.paidAmount }

// PickupSlot returns the customer's preferred pickup window.
func (o *Order) PickupSlot() TimeSlot { return o.pickupSlot }

// DeliverySlot returns the preferred delivery window, or nil.
func (o *Order) DeliverySlot() *TimeSlot { return o.deliverySlot }

// ActualPickupTime returns when the pickup actually happened, or nil.
func (o *Order) ActualPickupTime() *time.Time { return o.actualPickupTime }

// ActualDeliveryTime returns when the delivery actually happened, or nil.
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }

// PickupRider returns the assigned pickup rider, or nil.
func (o *Order) PickupRider() *kernel.UUID { return o.pickupRider }

// DeliveryRider returns the assigned delivery rider, or nil.
func (o *Order) DeliveryRider() *kernel.UUID { return o.deliveryRider }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Timeline returns a copy of the append-only audit trail.
func (o *Order) Timeline() []TimelineEntry {
	timeline := make([]TimelineEntry, len(o.timeline))
	copy(timeline, o.timeline)
	return timeline
}

// SpecialInstructions returns the customer's free-form instructions.
func (o *Order) SpecialInstructions() string { return o.specialInstructions }

// TotalWeightKg returns the measured weight (0 until captured).
func (o *Order) TotalWeightKg() float64 { return o.totalWeightKg }

// Cancellation returns the cancellation record, or nil.
func (o *Order) Cancellation() *Cancellation { return o.cancellation }

// Rating returns the customer rating (0 until reviewed).
func (o *Order) Rating() int { return o.rating }

// Review returns the customer review text.
func (o *Order) Review() string { return o.review }

// ReviewedAt returns when feedback was left, or nil.
func (o *Order) ReviewedAt() *time.Time { return o.reviewedAt }

// Version returns the optimistic concurrency token. The repository compares
// it on write and increments it on success; a mismatch means another writer
// updated the order since this copy was read.
func (o *Order) Version() int64 { return o.version }

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	o.orderID = orderID
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID, snapshot CustomerSnapshot) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	o.customer = snapshot
	return nil
}

func (o *Order) setAddresses(pickup, delivery Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.pickupAddress = pickup
	o.deliveryAddress = delivery
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setSlots(pickup TimeSlot, delivery *TimeSlot) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return err
		}
	}
	o.pickupSlot = pickup
	o.deliverySlot = delivery
	return nil
}
