package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are guarded by the aggregate's version token: Update fails with
// errs.ErrVersionIsInvalid when another writer saved the order first.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The stored version must match the aggregate's version; on success the
	// stored version is incremented.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its storage identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderID retrieves an order aggregate by its human-readable code,
	// e.g. "LAUNDRY-2025-00069".
	GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*order.Order, error)

	// GetStalePending retrieves orders still awaiting online payment that were
	// created before the cutoff. Used by the payment-timeout sweep.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
