package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// CustomerSnapshot is a denormalized copy of the ordering customer's contact
// details, embedded at creation time so admin search works without joining
// the user store and so historical orders survive account edits.
type CustomerSnapshot struct {
	name  string
	phone string
}

// NewCustomerSnapshot creates a validated customer snapshot.
// Name is required; phone is optional.
func NewCustomerSnapshot(name, phone string) (CustomerSnapshot, error) {
	if name == "" {
		return CustomerSnapshot{}, errs.NewValueIsRequiredError("customerName")
	}
	return CustomerSnapshot{name: name, phone: phone}, nil
}

// Validate ensures the snapshot was created via NewCustomerSnapshot.
func (s CustomerSnapshot) Validate() error {
	if s.name == "" {
		return errs.NewValueIsRequiredError("CustomerSnapshot must be created via NewCustomerSnapshot")
	}
	return nil
}

// Name returns the customer name at order time.
func (s CustomerSnapshot) Name() string { return s.name }

// Phone returns the customer phone at order time.
func (s CustomerSnapshot) Phone() string { return s.phone }

// Address is a pickup or delivery location captured at order time.
type Address struct {
	fullAddress string
	apartment   string
	landmark    string
}

// NewAddress creates a validated address. The full address must carry at
// least a handful of characters; apartment and landmark are optional.
func NewAddress(fullAddress, apartment, landmark string) (Address, error) {
	if len(fullAddress) < 5 {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("fullAddress",
			fmt.Errorf("%q is shorter than 5 characters", fullAddress))
	}
	return Address{fullAddress: fullAddress, apartment: apartment, landmark: landmark}, nil
}

// Validate ensures the address was created via NewAddress.
func (a Address) Validate() error {
	if a.fullAddress == "" {
		return errs.NewValueIsRequiredError("Address must be created via NewAddress")
	}
	return nil
}

// FullAddress returns the full street address.
func (a Address) FullAddress() string { return a.fullAddress }

// Apartment returns the apartment/unit, if any.
func (a Address) Apartment() string { return a.apartment }

// Landmark returns the free-form landmark hint, if any.
func (a Address) Landmark() string { return a.landmark }
