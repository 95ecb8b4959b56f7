package order

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// DiscountKind distinguishes percentage discounts from flat amounts.
type DiscountKind int

const (
	// DiscountKindUnknown represents an invalid or undefined discount kind.
	DiscountKindUnknown DiscountKind = iota

	// DiscountPercent is a percentage of the discounted base.
	DiscountPercent

	// DiscountFlat is a fixed currency amount.
	DiscountFlat
)

func getDiscountKindStrings() map[DiscountKind]string {
	return map[DiscountKind]string{
		DiscountKindUnknown: "unknown",
		DiscountPercent:     "percent",
		DiscountFlat:        "flat",
	}
}

// DiscountKindFromString parses the wire representation of a discount kind.
func DiscountKindFromString(s string) (DiscountKind, error) {
	for kind, str := range getDiscountKindStrings() {
		if str == s && kind != DiscountKindUnknown {
			return kind, nil
		}
	}
	return DiscountKindUnknown, errs.NewValueIsInvalidErrorWithCause("discountKind",
		fmt.Errorf("%q is not a known discount kind", s))
}

// Validate checks if the DiscountKind value is valid.
func (k DiscountKind) Validate() error {
	if k == DiscountKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("discountKind",
			fmt.Errorf("%d is not a valid discount kind", int(k)))
	}
	if _, ok := getDiscountKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("discountKind",
			fmt.Errorf("%d is not a valid discount kind", int(k)))
	}
	return nil
}

// String returns the wire name of the kind, e.g. "percent".
func (k DiscountKind) String() string {
	if str, ok := getDiscountKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Discount is an optional per-item price reduction recorded at order time.
// AppliedBy names the origin (coupon, offer or manual adjustment).
type Discount struct {
	kind      DiscountKind
	value     float64
	appliedBy string
}

// NewDiscount creates a validated item discount.
func NewDiscount(kind DiscountKind, value float64, appliedBy string) (Discount, error) {
	if err := kind.Validate(); err != nil {
		return Discount{}, err
	}
	if value < 0 {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause("discountValue",
			fmt.Errorf("%.2f is negative", value))
	}

	return Discount{kind: kind, value: value, appliedBy: appliedBy}, nil
}

// Kind returns the discount kind.
func (d Discount) Kind() DiscountKind { return d.kind }

// Value returns the percentage or flat amount depending on Kind.
func (d Discount) Value() float64 { return d.value }

// AppliedBy returns the discount origin ("coupon", "offer", "manual").
func (d Discount) AppliedBy() string { return d.appliedBy }

// Item is one priced line of an order. Product and service names are
// snapshots copied from the catalog at creation time: later catalog edits
// never change historical orders.
//
// Item is a value object; once an order is created its items never change.
type Item struct {
	productID   kernel.UUID
	productName string
	serviceID   kernel.UUID
	serviceName string
	quantity    int
	unitPrice   float64
	discount    *Discount
	subtotal    float64

	isConstructed bool
}

// NewItem creates a validated order line.
//
// Validation rules:
//   - product and service references must be valid UUIDs
//   - product and service name snapshots are required
//   - quantity must be at least 1
//   - unit price and subtotal must not be negative
func NewItem(
	productID kernel.UUID,
	productName string,
	serviceID kernel.UUID,
	serviceName string,
	quantity int,
	unitPrice float64,
	discount *Discount,
	subtotal float64,
) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if productName == "" {
		return Item{}, errs.NewValueIsRequiredError("productName")
	}
	if err := serviceID.Validate(); err != nil {
		return Item{}, err
	}
	if serviceName == "" {
		return Item{}, errs.NewValueIsRequiredError("serviceName")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%.2f is negative", unitPrice))
	}
	if subtotal < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%.2f is negative", subtotal))
	}

	return Item{
		productID:     productID,
		productName:   productName,
		serviceID:     serviceID,
		serviceName:   serviceName,
		quantity:      quantity,
		unitPrice:     unitPrice,
		discount:      discount,
		subtotal:      subtotal,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("Item must be created via NewItem")
	}
	return nil
}

// ProductID returns the catalog product reference.
func (i Item) ProductID() kernel.UUID { return i.productID }

// ProductName returns the product name snapshot taken at order time.
func (i Item) ProductName() string { return i.productName }

// ServiceID returns the catalog service-variant reference.
func (i Item) ServiceID() kernel.UUID { return i.serviceID }

// ServiceName returns the service name snapshot taken at order time.
func (i Item) ServiceName() string { return i.serviceName }

// Quantity returns the ordered piece/kg count.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the price per piece/kg at order time.
func (i Item) UnitPrice() float64 { return i.unitPrice }

// Discount returns the per-item discount, or nil.
func (i Item) Discount() *Discount { return i.discount }

// Subtotal returns the line total recorded at order time.
func (i Item) Subtotal() float64 { return i.subtotal }
