package http

import (
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// CreateOrderRequest is the request body for placing a new order.
type CreateOrderRequest struct {
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	PickupAddress   AddressPayload `json:"pickupAddress"`
	DeliveryAddress AddressPayload `json:"deliveryAddress"`

	Items   []ItemPayload  `json:"items"`
	Pricing PricingPayload `json:"pricing"`

	PaymentMethod string `json:"paymentMethod"`

	PickupSlot   SlotPayload  `json:"pickupSlot"`
	DeliverySlot *SlotPayload `json:"deliverySlot,omitempty"`

	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// AddressPayload is a pickup or delivery address in request and response bodies.
type AddressPayload struct {
	FullAddress string `json:"fullAddress"`
	Apartment   string `json:"apartment,omitempty"`
	Landmark    string `json:"landmark,omitempty"`
}

// ItemPayload is one order line in the create request.
type ItemPayload struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`

	Discount *DiscountPayload `json:"discount,omitempty"`

	Subtotal float64 `json:"subtotal"`
}

// DiscountPayload is a per-line discount.
type DiscountPayload struct {
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	AppliedBy string  `json:"appliedBy,omitempty"`
}

// PricingPayload is the client-calculated money breakdown. The server
// re-validates that the total matches the components.
type PricingPayload struct {
	Subtotal          float64        `json:"subtotal"`
	ItemDiscountTotal float64        `json:"itemDiscountTotal,omitempty"`
	CouponDiscount    float64        `json:"couponDiscount,omitempty"`
	Coupon            *CouponPayload `json:"coupon,omitempty"`
	Tax               float64        `json:"tax,omitempty"`
	DeliveryCharge    float64        `json:"deliveryCharge,omitempty"`
	SurgeCharge       float64        `json:"surgeCharge,omitempty"`
	Tip               float64        `json:"tip,omitempty"`
	TotalAmount       float64        `json:"totalAmount"`
}

// CouponPayload describes an applied coupon.
type CouponPayload struct {
	Code          string  `json:"code"`
	Kind          string  `json:"kind"`
	Value         float64 `json:"value"`
	MaxDiscount   float64 `json:"maxDiscount,omitempty"`
	AppliedAmount float64 `json:"appliedAmount"`
}

// SlotPayload is a preferred pickup or delivery window.
type SlotPayload struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// UpdateOrderRequest is the request body for advancing an order. All
// fields are optional but at least one change must be present.
type UpdateOrderRequest struct {
	Status  string `json:"status,omitempty"`
	Note    string `json:"note,omitempty"`
	RiderID string `json:"riderId,omitempty"`

	PaymentStatus string  `json:"paymentStatus,omitempty"`
	PaymentID     string  `json:"paymentId,omitempty"`
	PaidAmount    float64 `json:"paidAmount,omitempty"`

	WeightKg float64 `json:"weightKg,omitempty"`

	RefundAmount float64 `json:"refundAmount,omitempty"`
	RefundID     string  `json:"refundId,omitempty"`

	Rating int    `json:"rating,omitempty"`
	Review string `json:"review,omitempty"`
}

// CancelOrderRequest is the request body for cancelling an order.
type CancelOrderRequest struct {
	CancelledBy  string  `json:"cancelledBy"`
	ActorID      string  `json:"actorId"`
	Reason       string  `json:"reason"`
	RefundAmount float64 `json:"refundAmount,omitempty"`
	RefundID     string  `json:"refundId,omitempty"`
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	customerID, err := kernel.UUIDFromString(r.CustomerID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	customer, err := order.NewCustomerSnapshot(r.CustomerName, r.CustomerPhone)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	pickup, err := r.PickupAddress.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	delivery, err := r.DeliveryAddress.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(r.Items))
	for _, payload := range r.Items {
		item, itemErr := payload.toDomain()
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	pricing, err := r.Pricing.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	method, err := order.PaymentMethodFromString(r.PaymentMethod)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	pickupSlot, err := r.PickupSlot.toDomain()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var deliverySlot *order.TimeSlot
	if r.DeliverySlot != nil {
		slot, slotErr := r.DeliverySlot.toDomain()
		if slotErr != nil {
			return commands.CreateOrderCommand{}, slotErr
		}
		deliverySlot = &slot
	}

	return commands.NewCreateOrderCommand(commands.CreateOrderParams{
		CustomerID:      customerID,
		Customer:        customer,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Items:           items,
		Pricing:         pricing,
		PaymentMethod:   method,
		PickupSlot:      pickupSlot,
		DeliverySlot:    deliverySlot,

		SpecialInstructions: r.SpecialInstructions,
	})
}

func (p AddressPayload) toDomain() (order.Address, error) {
	return order.NewAddress(p.FullAddress, p.Apartment, p.Landmark)
}

func (p ItemPayload) toDomain() (order.Item, error) {
	productID, err := kernel.UUIDFromString(p.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	serviceID, err := kernel.UUIDFromString(p.ServiceID)
	if err != nil {
		return order.Item{}, err
	}

	var discount *order.Discount
	if p.Discount != nil {
		kind, kindErr := order.DiscountKindFromString(p.Discount.Kind)
		if kindErr != nil {
			return order.Item{}, kindErr
		}
		d, discountErr := order.NewDiscount(kind, p.Discount.Value, p.Discount.AppliedBy)
		if discountErr != nil {
			return order.Item{}, discountErr
		}
		discount = &d
	}

	return order.NewItem(productID, p.ProductName, serviceID, p.ServiceName,
		p.Quantity, p.UnitPrice, discount, p.Subtotal)
}

func (p PricingPayload) toDomain() (order.Pricing, error) {
	var coupon *order.Coupon
	if p.Coupon != nil {
		kind, err := order.DiscountKindFromString(p.Coupon.Kind)
		if err != nil {
			return order.Pricing{}, err
		}
		c, err := order.NewCoupon(p.Coupon.Code, kind, p.Coupon.Value,
			p.Coupon.MaxDiscount, p.Coupon.AppliedAmount)
		if err != nil {
			return order.Pricing{}, err
		}
		coupon = &c
	}

	return order.NewPricing(order.PricingParams{
		Subtotal:          p.Subtotal,
		ItemDiscountTotal: p.ItemDiscountTotal,
		CouponDiscount:    p.CouponDiscount,
		Coupon:            coupon,
		Tax:               p.Tax,
		DeliveryCharge:    p.DeliveryCharge,
		SurgeCharge:       p.SurgeCharge,
		Tip:               p.Tip,
		TotalAmount:       p.TotalAmount,
	})
}

func (p SlotPayload) toDomain() (order.TimeSlot, error) {
	return order.NewTimeSlot(p.Date, p.From, p.To)
}

func (r UpdateOrderRequest) toCommand(id kernel.UUID) (commands.UpdateOrderCommand, error) {
	params := commands.UpdateOrderParams{
		Note: r.Note,

		PaymentID:  r.PaymentID,
		PaidAmount: r.PaidAmount,

		WeightKg: r.WeightKg,

		RefundAmount: r.RefundAmount,
		RefundID:     r.RefundID,

		Rating: r.Rating,
		Review: r.Review,
	}

	if r.Status != "" {
		status, err := order.StatusFromString(r.Status)
		if err != nil {
			return commands.UpdateOrderCommand{}, err
		}
		params.Status = status
	}

	if r.PaymentStatus != "" {
		paymentStatus, err := order.PaymentStatusFromString(r.PaymentStatus)
		if err != nil {
			return commands.UpdateOrderCommand{}, err
		}
		params.PaymentStatus = paymentStatus
	}

	if r.RiderID != "" {
		rider, err := kernel.UUIDFromString(r.RiderID)
		if err != nil {
			return commands.UpdateOrderCommand{}, err
		}
		params.Rider = &rider
	}

	return commands.NewUpdateOrderCommand(id, params)
}

func (r CancelOrderRequest) toCommand(id kernel.UUID) (commands.CancelOrderCommand, error) {
	actor, err := order.CancelActorFromString(r.CancelledBy)
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	actorID, err := kernel.UUIDFromString(r.ActorID)
	if err != nil {
		return commands.CancelOrderCommand{}, err
	}

	return commands.NewCancelOrderCommand(id, actor, actorID, r.Reason,
		r.RefundAmount, r.RefundID)
}
