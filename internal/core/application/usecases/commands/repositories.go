// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"laundry/internal/core/ports"
)

// ErrActorNotAllowed is returned when the requesting actor may not perform
// the operation on this order, e.g. a customer cancelling someone else's order.
var ErrActorNotAllowed = errors.New("actor is not allowed to perform this operation")

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SequenceFactory provides access to the sequence allocator within a
	// transaction, so allocated order numbers share the order's fate.
	SequenceFactory interface {
		SequenceAllocator() ports.SequenceAllocator
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		SequenceFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
