package order

import (
	"fmt"
	"math"

	"laundry/internal/pkg/errs"
)

// totalTolerance absorbs floating point error when checking the pricing invariant.
const totalTolerance = 0.01

// Coupon is a promo code applied to the order, snapshotted at creation time.
type Coupon struct {
	code          string
	kind          DiscountKind
	value         float64
	maxDiscount   float64
	appliedAmount float64
}

// NewCoupon creates a validated coupon snapshot.
func NewCoupon(code string, kind DiscountKind, value, maxDiscount, appliedAmount float64) (Coupon, error) {
	if code == "" {
		return Coupon{}, errs.NewValueIsRequiredError("couponCode")
	}
	if err := kind.Validate(); err != nil {
		return Coupon{}, err
	}
	if value <= 0 {
		return Coupon{}, errs.NewValueIsInvalidErrorWithCause("couponValue",
			fmt.Errorf("%.2f is not greater than 0", value))
	}
	if appliedAmount < 0 {
		return Coupon{}, errs.NewValueIsInvalidErrorWithCause("appliedAmount",
			fmt.Errorf("%.2f is negative", appliedAmount))
	}

	return Coupon{
		code:          code,
		kind:          kind,
		value:         value,
		maxDiscount:   maxDiscount,
		appliedAmount: appliedAmount,
	}, nil
}

// Code returns the promo code.
func (c Coupon) Code() string { return c.code }

// Kind returns whether the coupon is percentage or flat.
func (c Coupon) Kind() DiscountKind { return c.kind }

// Value returns the coupon's percentage or flat amount.
func (c Coupon) Value() float64 { return c.value }

// MaxDiscount returns the cap for percentage coupons (0 = uncapped).
func (c Coupon) MaxDiscount() float64 { return c.maxDiscount }

// AppliedAmount returns the discount actually granted to this order.
func (c Coupon) AppliedAmount() float64 { return c.appliedAmount }

// Pricing is the money breakdown of an order, fixed at creation time.
// Upstream computed the numbers; this object only checks their consistency:
//
//	totalAmount == subtotal - itemDiscountTotal - couponDiscount
//	               + tax + deliveryCharge + surgeCharge + tip
//
// within totalTolerance.
type Pricing struct {
	subtotal          float64
	itemDiscountTotal float64
	couponDiscount    float64
	coupon            *Coupon
	tax               float64
	deliveryCharge    float64
	surgeCharge       float64
	tip               float64
	totalAmount       float64

	isConstructed bool
}

// PricingParams carries the raw pricing numbers into NewPricing.
type PricingParams struct {
	Subtotal          float64
	ItemDiscountTotal float64
	CouponDiscount    float64
	Coupon            *Coupon
	Tax               float64
	DeliveryCharge    float64
	SurgeCharge       float64
	Tip               float64
	TotalAmount       float64
}

// NewPricing creates a validated pricing breakdown.
// All components must be non-negative, totalAmount positive, and the total
// must match the calculated sum within totalTolerance.
func NewPricing(p PricingParams) (Pricing, error) {
	for name, v := range map[string]float64{
		"subtotal":          p.Subtotal,
		"itemDiscountTotal": p.ItemDiscountTotal,
		"couponDiscount":    p.CouponDiscount,
		"tax":               p.Tax,
		"deliveryCharge":    p.DeliveryCharge,
		"surgeCharge":       p.SurgeCharge,
		"tip":               p.Tip,
	} {
		if v < 0 {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%.2f is negative", v))
		}
	}
	if p.TotalAmount <= 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%.2f is not greater than 0", p.TotalAmount))
	}

	calculated := p.Subtotal - p.ItemDiscountTotal - p.CouponDiscount +
		p.Tax + p.DeliveryCharge + p.SurgeCharge + p.Tip
	if math.Abs(calculated-p.TotalAmount) >= totalTolerance {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("calculated total %.2f does not match %.2f", calculated, p.TotalAmount))
	}

	return Pricing{
		subtotal:          p.Subtotal,
		itemDiscountTotal: p.ItemDiscountTotal,
		couponDiscount:    p.CouponDiscount,
		coupon:            p.Coupon,
		tax:               p.Tax,
		deliveryCharge:    p.DeliveryCharge,
		surgeCharge:       p.SurgeCharge,
		tip:               p.Tip,
		totalAmount:       p.TotalAmount,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Pricing was created via NewPricing.
func (p Pricing) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("Pricing must be created via NewPricing")
	}
	return nil
}

// Subtotal returns the pre-discount item total.
func (p Pricing) Subtotal() float64 { return p.subtotal }

// ItemDiscountTotal returns the sum of per-item discounts.
func (p Pricing) ItemDiscountTotal() float64 { return p.itemDiscountTotal }

// CouponDiscount returns the promo-code discount.
func (p Pricing) CouponDiscount() float64 { return p.couponDiscount }

// Coupon returns the applied coupon snapshot, or nil.
func (p Pricing) Coupon() *Coupon { return p.coupon }

// Tax returns the tax amount.
func (p Pricing) Tax() float64 { return p.tax }

// DeliveryCharge returns the delivery fee.
func (p Pricing) DeliveryCharge() float64 { return p.deliveryCharge }

// SurgeCharge returns the peak-hours surcharge.
func (p Pricing) SurgeCharge() float64 { return p.surgeCharge }

// Tip returns the rider tip.
func (p Pricing) Tip() float64 { return p.tip }

// TotalAmount returns the final amount the customer pays.
func (p Pricing) TotalAmount() float64 { return p.totalAmount }
