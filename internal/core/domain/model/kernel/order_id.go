package kernel

import (
	"fmt"
	"regexp"
	"strconv"

	"laundry/internal/pkg/errs"
)

// orderIDPrefix is the fixed prefix of every human-readable order code.
const orderIDPrefix = "LAUNDRY"

// ErrOrderIDIsNotConstructed indicates that an OrderID was not properly
// initialized through NewOrderID or OrderIDFromString.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString")

var orderIDPattern = regexp.MustCompile(`^LAUNDRY-(\d{4})-(\d{5,})$`)

// OrderID is the human-readable order code shown to customers and staff,
// formatted as LAUNDRY-<year>-<sequence> with the sequence zero-padded to at
// least five digits (e.g. LAUNDRY-2025-00069).
//
// OrderID is immutable once assigned. The sequence component is issued by the
// sequence allocator per (resource, year) bucket, so codes are unique across
// the whole system even under concurrent order creation.
type OrderID struct {
	year     int
	sequence int64
}

// NewOrderID builds an OrderID from a year and an allocated sequence number.
// The year must be a plausible calendar year and the sequence positive.
func NewOrderID(year int, sequence int64) (OrderID, error) {
	if year < 2000 || year > 9999 {
		return OrderID{}, errs.NewValueIsOutOfRangeError("year", year, 2000, 9999)
	}
	if sequence <= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}

	return OrderID{year: year, sequence: sequence}, nil
}

// OrderIDFromString parses a human-readable order code.
// Returns an error when the string does not match the LAUNDRY-<year>-<seq> format.
func OrderIDFromString(s string) (OrderID, error) {
	match := orderIDPattern.FindStringSubmatch(s)
	if match == nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not match %s-YYYY-NNNNN", s, orderIDPrefix))
	}

	year, err := strconv.Atoi(match[1])
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	sequence, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	return NewOrderID(year, sequence)
}

// String returns the canonical code, e.g. "LAUNDRY-2025-00069".
func (o OrderID) String() string {
	return fmt.Sprintf("%s-%04d-%05d", orderIDPrefix, o.year, o.sequence)
}

// Year returns the allocation year component of the code.
func (o OrderID) Year() int {
	return o.year
}

// Sequence returns the per-year sequence component of the code.
func (o OrderID) Sequence() int64 {
	return o.sequence
}

// IsEqual compares two order codes for equality.
func (o OrderID) IsEqual(other OrderID) bool {
	return o.year == other.year && o.sequence == other.sequence
}

// Validate checks if the OrderID is properly constructed.
// Returns ErrOrderIDIsNotConstructed for a zero value.
func (o OrderID) Validate() error {
	if o.year == 0 || o.sequence == 0 {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
