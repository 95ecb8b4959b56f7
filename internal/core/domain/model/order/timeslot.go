package order

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"
)

// TimeSlot is a preferred pickup or delivery window: a calendar date plus a
// from/to time-of-day range, as chosen by the customer.
type TimeSlot struct {
	date string
	from string
	to   string
}

// NewTimeSlot creates a validated time window.
// Date must be YYYY-MM-DD, times HH:MM, and from must precede to.
func NewTimeSlot(date, from, to string) (TimeSlot, error) {
	if _, err := time.Parse(slotDateLayout, date); err != nil {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause("slotDate", err)
	}

	fromTime, err := time.Parse(slotTimeLayout, from)
	if err != nil {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause("slotFrom", err)
	}

	toTime, err := time.Parse(slotTimeLayout, to)
	if err != nil {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause("slotTo", err)
	}

	if !fromTime.Before(toTime) {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause("slot",
			fmt.Errorf("window %s-%s is empty", from, to))
	}

	return TimeSlot{date: date, from: from, to: to}, nil
}

// Validate ensures the TimeSlot was created via NewTimeSlot.
func (s TimeSlot) Validate() error {
	if s.date == "" {
		return errs.NewValueIsRequiredError("TimeSlot must be created via NewTimeSlot")
	}
	return nil
}

// Date returns the slot date in YYYY-MM-DD form.
func (s TimeSlot) Date() string { return s.date }

// From returns the window start in HH:MM form.
func (s TimeSlot) From() string { return s.from }

// To returns the window end in HH:MM form.
func (s TimeSlot) To() string { return s.to }
