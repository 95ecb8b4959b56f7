package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ordersExchange = "laundry_orders_topic"

// orderEvent is the wire format published for every order notification.
type orderEvent struct {
	Event         string    `json:"event"`
	OrderID       string    `json:"orderId"`
	OrderCode     string    `json:"orderCode"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   float64   `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Notifier publishes order events to a topic exchange. Publish failures
// are logged and swallowed: notification must never fail the command
// that triggered it.
type Notifier struct {
	conn   Connection
	logger *slog.Logger
}

func NewNotifier(conn Connection, logger *slog.Logger) *Notifier {
	return &Notifier{
		conn:   conn,
		logger: logger.With("component", "order_notifier"),
	}
}

var _ ports.OrderNotifier = &Notifier{}

func (n *Notifier) NotifyCreated(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, "order.created", aggregate)
}

func (n *Notifier) NotifyStatusChanged(ctx context.Context, aggregate *order.Order) {
	event := "order.status_changed"
	if aggregate.Status() == order.Cancelled {
		event = "order.cancelled"
	}
	n.publish(ctx, event, aggregate)
}

func (n *Notifier) publish(ctx context.Context, event string, aggregate *order.Order) {
	msg := orderEvent{
		Event:         event,
		OrderID:       aggregate.ID().String(),
		OrderCode:     aggregate.OrderID().String(),
		CustomerID:    aggregate.CustomerID().String(),
		CustomerName:  aggregate.Customer().Name(),
		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		TotalAmount:   aggregate.Pricing().TotalAmount(),
		OccurredAt:    time.Now().UTC(),
	}

	routingKey := fmt.Sprintf("%s.%s", event, aggregate.Status().String())

	if err := n.send(routingKey, msg); err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish order event",
			"event", event,
			"orderCode", msg.OrderCode,
			"error", err)
	}
}

func (n *Notifier) send(routingKey string, msg orderEvent) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(ordersExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// NoopNotifier discards all events. Used when the application runs
// without a message broker.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

var _ ports.OrderNotifier = &NoopNotifier{}

func (n *NoopNotifier) NotifyCreated(context.Context, *order.Order)       {}
func (n *NoopNotifier) NotifyStatusChanged(context.Context, *order.Order) {}
