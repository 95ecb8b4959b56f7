package order

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

// CancelActor identifies who initiated a cancellation.
type CancelActor int

const (
	// CancelActorUnknown represents an invalid or undefined actor.
	CancelActorUnknown CancelActor = iota

	// CancelledByCustomer is the order's owner.
	CancelledByCustomer

	// CancelledByRider is the pickup or delivery rider.
	CancelledByRider

	// CancelledByAdmin is back-office staff.
	CancelledByAdmin

	// CancelledByShop is the laundry facility.
	CancelledByShop
)

func getCancelActorStrings() map[CancelActor]string {
	return map[CancelActor]string{
		CancelActorUnknown:  "unknown",
		CancelledByCustomer: "customer",
		CancelledByRider:    "rider",
		CancelledByAdmin:    "admin",
		CancelledByShop:     "shop",
	}
}

// CancelActorFromString parses the wire representation of a cancel actor.
func CancelActorFromString(s string) (CancelActor, error) {
	for actor, str := range getCancelActorStrings() {
		if str == s && actor != CancelActorUnknown {
			return actor, nil
		}
	}
	return CancelActorUnknown, errs.NewValueIsInvalidErrorWithCause("cancelledBy",
		fmt.Errorf("%q is not a known cancel actor", s))
}

// Validate checks if the CancelActor value is valid.
func (a CancelActor) Validate() error {
	if a == CancelActorUnknown {
		return errs.NewValueIsInvalidErrorWithCause("cancelledBy",
			fmt.Errorf("%d is not a valid cancel actor", int(a)))
	}
	if _, ok := getCancelActorStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cancelledBy",
			fmt.Errorf("%d is not a valid cancel actor", int(a)))
	}
	return nil
}

// String returns the wire name of the actor, e.g. "customer".
func (a CancelActor) String() string {
	if str, ok := getCancelActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// IsStaff reports whether the actor belongs to the operator side (admin or
// shop), which widens the set of states cancellation may start from.
func (a CancelActor) IsStaff() bool {
	return a == CancelledByAdmin || a == CancelledByShop
}

// Cancellation records who cancelled the order, why, and any refund issued.
// It is populated exactly once, when the order reaches the cancelled status.
type Cancellation struct {
	cancelledBy  CancelActor
	reason       string
	refundAmount float64
	refundID     string
	cancelledAt  time.Time
}

// RestoreCancellation reconstructs a cancellation record from persistence.
func RestoreCancellation(
	by CancelActor,
	reason string,
	refundAmount float64,
	refundID string,
	cancelledAt time.Time,
) (Cancellation, error) {
	if err := by.Validate(); err != nil {
		return Cancellation{}, err
	}
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("cancelReason")
	}

	return Cancellation{
		cancelledBy:  by,
		reason:       reason,
		refundAmount: refundAmount,
		refundID:     refundID,
		cancelledAt:  cancelledAt,
	}, nil
}

// CancelledBy returns the cancelling actor.
func (c Cancellation) CancelledBy() CancelActor { return c.cancelledBy }

// Reason returns the cancellation reason.
func (c Cancellation) Reason() string { return c.reason }

// RefundAmount returns the refunded amount (0 if none yet).
func (c Cancellation) RefundAmount() float64 { return c.refundAmount }

// RefundID returns the gateway refund reference, if any.
func (c Cancellation) RefundID() string { return c.refundID }

// CancelledAt returns when the cancellation happened.
func (c Cancellation) CancelledAt() time.Time { return c.cancelledAt }
