package ports

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// OrderNotifier publishes order events to interested parties (customer
// notifications, shop dashboards). Notification is fire-and-forget: a
// publish failure is logged by the implementation and never fails the
// operation that triggered it.
type OrderNotifier interface {
	// NotifyCreated announces a freshly placed order.
	NotifyCreated(ctx context.Context, aggregate *order.Order)

	// NotifyStatusChanged announces a lifecycle change, including cancellation.
	NotifyStatusChanged(ctx context.Context, aggregate *order.Order)
}
