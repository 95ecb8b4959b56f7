// Package queries contains read-only operations over the order store.
// Query handlers bypass the domain aggregates and read projection rows
// directly, returning flat response structures for the transport layer.
package queries

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items and full status timeline.
// The lookup key accepts either the storage UUID or the human-readable order
// code ("LAUNDRY-2025-00069"), whichever the caller has.
type GetOrderQuery struct {
	id   *kernel.UUID
	code *kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query from a raw lookup key.
// Returns an error when the key is neither a UUID nor an order code.
func NewGetOrderQuery(key string) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if id, err := kernel.UUIDFromString(key); err == nil {
		q.id = &id
		return q, nil
	}
	if code, err := kernel.OrderIDFromString(key); err == nil {
		q.code = &code
		return q, nil
	}

	return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("orderKey",
		fmt.Errorf("%q is neither an order UUID nor an order code", key))
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// ID returns the storage identifier key, or nil when the key was a code.
func (q GetOrderQuery) ID() *kernel.UUID { return q.id }

// Code returns the order code key, or nil when the key was a UUID.
func (q GetOrderQuery) Code() *kernel.OrderID { return q.code }

// OrderResponse is the full read model of one order.
type OrderResponse struct {
	ID        kernel.UUID
	OrderCode string

	CustomerID    kernel.UUID
	CustomerName  string
	CustomerPhone string

	PickupAddress   AddressResponse
	DeliveryAddress AddressResponse

	Items    []ItemResponse
	Timeline []TimelineEntryResponse

	Pricing PricingResponse

	PaymentMethod string
	PaymentStatus string
	PaymentID     string
	PaidAmount    float64

	PickupSlot   SlotResponse
	DeliverySlot *SlotResponse

	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time

	PickupRiderID   *kernel.UUID
	DeliveryRiderID *kernel.UUID

	Status string

	SpecialInstructions string
	TotalWeightKg       float64

	Cancellation *CancellationResponse

	Rating     int
	Review     string
	ReviewedAt *time.Time

	Version   int64
	CreatedAt time.Time
}

// AddressResponse is a pickup or delivery address.
type AddressResponse struct {
	FullAddress string
	Apartment   string
	Landmark    string
}

// ItemResponse is one order line.
type ItemResponse struct {
	ProductID   kernel.UUID
	ProductName string
	ServiceID   kernel.UUID
	ServiceName string

	Quantity  int
	UnitPrice float64

	DiscountKind      string
	DiscountValue     float64
	DiscountAppliedBy string

	Subtotal float64
}

// TimelineEntryResponse is one entry of the status history.
type TimelineEntryResponse struct {
	Status    string
	Timestamp time.Time
	RiderID   *kernel.UUID
	Note      string
}

// PricingResponse is the money breakdown.
type PricingResponse struct {
	Subtotal          float64
	ItemDiscountTotal float64
	CouponDiscount    float64
	CouponCode        string
	Tax               float64
	DeliveryCharge    float64
	SurgeCharge       float64
	Tip               float64
	TotalAmount       float64
}

// SlotResponse is a preferred pickup or delivery window.
type SlotResponse struct {
	Date string
	From string
	To   string
}

// CancellationResponse is the cancellation record of a cancelled order.
type CancellationResponse struct {
	CancelledBy  string
	Reason       string
	RefundAmount float64
	RefundID     string
	CancelledAt  time.Time
}
