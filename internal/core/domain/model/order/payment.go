package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCOD is cash on delivery. COD orders start Confirmed.
	PaymentMethodCOD

	// PaymentMethodOnline is card, UPI or any external gateway payment.
	PaymentMethodOnline

	// PaymentMethodWallet is payment from the customer's stored wallet balance.
	PaymentMethodWallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		PaymentMethodCOD:     "cod",
		PaymentMethodOnline:  "online",
		PaymentMethodWallet:  "wallet",
	}
}

// PaymentMethodFromString parses the wire representation of a payment method.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a known payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m == PaymentMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	return nil
}

// String returns the wire name of the method, e.g. "cod".
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks the state of the customer's payment independently of
// the fulfillment pipeline.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means the payment has not been captured yet.
	PaymentStatusPending

	// PaymentStatusPaid means the full amount was captured.
	PaymentStatusPaid

	// PaymentStatusFailed means the capture attempt failed.
	PaymentStatusFailed

	// PaymentStatusRefunded means the full amount was returned.
	PaymentStatusRefunded

	// PaymentStatusPartiallyRefunded means part of the amount was returned.
	PaymentStatusPartiallyRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:           "unknown",
		PaymentStatusPending:           "pending",
		PaymentStatusPaid:              "paid",
		PaymentStatusFailed:            "failed",
		PaymentStatusRefunded:          "refunded",
		PaymentStatusPartiallyRefunded: "partially_refunded",
	}
}

// PaymentStatusFromString parses the wire representation of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a known payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if p == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", int(p)))
	}
	return nil
}

// String returns the wire name of the payment status, e.g. "partially_refunded".
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Refundable reports whether refund bookkeeping is consistent with this
// payment status. Refund fields may only be recorded once the payment has
// actually been (partially) returned.
func (p PaymentStatus) Refundable() bool {
	return p == PaymentStatusRefunded || p == PaymentStatusPartiallyRefunded
}
