// Package order provides domain entities and business logic for laundry order
// management. It implements the Order aggregate root with lifecycle management,
// an auditable status timeline, and cancellation/refund rules.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, pricing and lifecycle
//   - Status: A state machine with an explicit transition table for the fulfillment pipeline
//   - Item, Pricing, Coupon, TimeSlot: validated value objects snapshotted at creation time
//   - TimelineEntry: append-only audit entries; current status is a projection of the last entry
//
// Key business rules:
//   - Orders must have at least one item and a consistent pricing total
//   - Initial status is Confirmed for cash-on-delivery, Pending otherwise
//   - Cancellation requires a reason and is only allowed from pre-fulfillment states
//   - Refund transitions require an already refunded payment status
//   - Rating and review are set together, once, and only after delivery
//   - Cancelled, Refunded and Completed are terminal states
//
// The machine is deliberately permissive about forward-skipping between
// non-terminal operational states: physical-world status reports can arrive
// out of strict order, so the reported status is trusted and recorded.
package order
