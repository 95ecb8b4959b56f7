package order

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change is not allowed from
// the order's current state.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// Status represents the lifecycle state of a laundry order.
// It implements a state machine with an explicit transition table.
//
// The pipeline runs pending/confirmed -> pickup -> processing -> delivery ->
// completed, but intermediate operational states may be skipped forward
// because riders and shop staff report events as they observe them.
// Cancelled, Refunded and Completed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status for online/wallet payments awaiting confirmation.
	Pending

	// PaymentFailed indicates the payment attempt did not succeed.
	PaymentFailed

	// Confirmed indicates payment is done or cash-on-delivery was accepted.
	Confirmed

	// PickupAssigned indicates a pickup rider has been assigned.
	PickupAssigned

	// PickedUp indicates the rider collected the clothes.
	PickedUp

	// ReachedLaundry indicates the items arrived at the facility.
	ReachedLaundry

	// InProcess indicates washing, dry-cleaning or ironing is underway.
	InProcess

	// ReadyForDelivery indicates processing finished and the order awaits a delivery rider.
	ReadyForDelivery

	// DeliveryAssigned indicates a delivery rider has been assigned.
	DeliveryAssigned

	// OutForDelivery indicates the rider is en route to the customer.
	OutForDelivery

	// Delivered indicates the customer received the order.
	Delivered

	// Completed indicates the customer confirmed receipt. Terminal.
	Completed

	// Cancelled indicates the order was cancelled before fulfillment. Terminal.
	Cancelled

	// Refunded indicates the paid amount was returned. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		PaymentFailed:    "payment_failed",
		Confirmed:        "confirmed",
		PickupAssigned:   "pickup_assigned",
		PickedUp:         "picked_up",
		ReachedLaundry:   "reached_laundry",
		InProcess:        "in_process",
		ReadyForDelivery: "ready_for_delivery",
		DeliveryAssigned: "delivery_assigned",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		Completed:        "completed",
		Cancelled:        "cancelled",
		Refunded:         "refunded",
	}
}

// operationalStatuses are the non-terminal states of the fulfillment pipeline.
// Any of them may be reported next from any other, in arbitrary forward order.
func operationalStatuses() []Status {
	return []Status{
		Pending, PaymentFailed, Confirmed,
		PickupAssigned, PickedUp, ReachedLaundry, InProcess,
		ReadyForDelivery, DeliveryAssigned, OutForDelivery, Delivered,
	}
}

// cancellableStatuses are the only states cancellation may start from.
func cancellableStatuses() []Status {
	return []Status{Pending, Confirmed, PaymentFailed}
}

// transitionTable maps each status to the set of statuses reachable from it.
var transitionTable = buildTransitionTable()

func buildTransitionTable() map[Status]map[Status]bool {
	table := make(map[Status]map[Status]bool)

	for _, from := range operationalStatuses() {
		next := make(map[Status]bool)
		for _, to := range operationalStatuses() {
			if to != from {
				next[to] = true
			}
		}
		// Completion and refund close the pipeline from any operational state;
		// the refund transition is additionally payment-gated by the aggregate.
		next[Completed] = true
		next[Refunded] = true
		table[from] = next
	}

	for _, from := range cancellableStatuses() {
		table[from][Cancelled] = true
	}

	// Terminal states allow no exit.
	table[Completed] = map[Status]bool{}
	table[Cancelled] = map[Status]bool{}
	table[Refunded] = map[Status]bool{}

	return table
}

// StatusFromString parses the wire representation of a status (e.g. "picked_up").
// Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known order status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire name of the status, e.g. "ready_for_delivery".
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Refunded
}

// RequiresRider reports whether entering s must carry a rider reference.
func (s Status) RequiresRider() bool {
	return s == PickupAssigned || s == DeliveryAssigned
}

// DeliveredOrLater reports whether the order has reached the customer,
// which is the precondition for leaving feedback.
func (s Status) DeliveredOrLater() bool {
	return s == Delivered || s == Completed
}

// CanTransitionTo checks the transition table without performing the change.
//
// Returns:
//   - nil if the transition from s to next is allowed
//   - an error wrapping ErrInvalidTransition otherwise
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	allowed, ok := transitionTable[s]
	if !ok || !allowed[next] {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, s, next)
	}
	return nil
}
