package commands

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrMarkStalePendingOrdersCommandIsNotConstructed = errors.New(
	"MarkStalePendingOrdersCommand must be created via NewMarkStalePendingOrdersCommand constructor",
)

// MarkStalePendingOrdersCommand requests a sweep over orders that are still
// awaiting online payment. Orders older than the TTL are moved to
// payment_failed so they stop blocking the operational views.
type MarkStalePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewMarkStalePendingOrdersCommand creates a sweep command.
// TTL is how long a pending order may wait for payment and must be positive.
func NewMarkStalePendingOrdersCommand(ttl time.Duration) (MarkStalePendingOrdersCommand, error) {
	if ttl <= 0 {
		return MarkStalePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl",
			fmt.Errorf("%s is not greater than 0", ttl))
	}

	return MarkStalePendingOrdersCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkStalePendingOrdersCommandIsNotConstructed if validation fails.
func (c MarkStalePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMarkStalePendingOrdersCommandIsNotConstructed)
}

// TTL returns how long a pending order may wait for payment.
func (c MarkStalePendingOrdersCommand) TTL() time.Duration { return c.ttl }
