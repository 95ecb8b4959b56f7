package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// TimelineEntry is one appended record of the order's audit trail: which
// status was reported, when, by which rider (if any), and an optional note.
//
// The timeline is the system of record for status history. Entries are never
// mutated or reordered after append; the order's current status is a cached
// projection of the last entry.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	rider     *kernel.UUID
	note      string
}

// NewTimelineEntry creates a validated audit entry.
func NewTimelineEntry(status Status, timestamp time.Time, rider *kernel.UUID, note string) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if timestamp.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	if rider != nil {
		if err := rider.Validate(); err != nil {
			return TimelineEntry{}, err
		}
	}

	return TimelineEntry{
		status:    status,
		timestamp: timestamp,
		rider:     rider,
		note:      note,
	}, nil
}

// Status returns the status reported by this entry.
func (e TimelineEntry) Status() Status { return e.status }

// Timestamp returns when the status was reported.
func (e TimelineEntry) Timestamp() time.Time { return e.timestamp }

// Rider returns the acting rider reference, or nil.
func (e TimelineEntry) Rider() *kernel.UUID { return e.rider }

// Note returns the free-form note attached to the entry.
func (e TimelineEntry) Note() string { return e.note }
