package http

import (
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderMutatedResponse is returned by the command endpoints. It carries
// just enough for the client to follow up with a read.
type OrderMutatedResponse struct {
	ID        string `json:"id"`
	OrderCode string `json:"orderCode"`
	Status    string `json:"status"`
	Version   int64  `json:"version"`
}

func orderMutated(aggregate *order.Order) OrderMutatedResponse {
	return OrderMutatedResponse{
		ID:        aggregate.ID().String(),
		OrderCode: aggregate.OrderID().String(),
		Status:    aggregate.Status().String(),
		Version:   aggregate.Version(),
	}
}

// OrderPayload is the full read model of one order.
type OrderPayload struct {
	ID        string `json:"id"`
	OrderCode string `json:"orderCode"`

	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	PickupAddress   AddressPayload `json:"pickupAddress"`
	DeliveryAddress AddressPayload `json:"deliveryAddress"`

	Items    []OrderItemPayload     `json:"items"`
	Timeline []TimelineEntryPayload `json:"timeline"`

	Pricing PricingViewPayload `json:"pricing"`

	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentID     string  `json:"paymentId,omitempty"`
	PaidAmount    float64 `json:"paidAmount"`

	PickupSlot   SlotPayload  `json:"pickupSlot"`
	DeliverySlot *SlotPayload `json:"deliverySlot,omitempty"`

	ActualPickupTime   *time.Time `json:"actualPickupTime,omitempty"`
	ActualDeliveryTime *time.Time `json:"actualDeliveryTime,omitempty"`

	PickupRiderID   string `json:"pickupRiderId,omitempty"`
	DeliveryRiderID string `json:"deliveryRiderId,omitempty"`

	Status string `json:"status"`

	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	TotalWeightKg       float64 `json:"totalWeightKg,omitempty"`

	Cancellation *CancellationPayload `json:"cancellation,omitempty"`

	Rating     int        `json:"rating,omitempty"`
	Review     string     `json:"review,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderItemPayload is one order line in the read model.
type OrderItemPayload struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`

	Discount *DiscountPayload `json:"discount,omitempty"`

	Subtotal float64 `json:"subtotal"`
}

// TimelineEntryPayload is one entry of the status history.
type TimelineEntryPayload struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RiderID   string    `json:"riderId,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// PricingViewPayload is the money breakdown in the read model.
type PricingViewPayload struct {
	Subtotal          float64 `json:"subtotal"`
	ItemDiscountTotal float64 `json:"itemDiscountTotal"`
	CouponDiscount    float64 `json:"couponDiscount"`
	CouponCode        string  `json:"couponCode,omitempty"`
	Tax               float64 `json:"tax"`
	DeliveryCharge    float64 `json:"deliveryCharge"`
	SurgeCharge       float64 `json:"surgeCharge"`
	Tip               float64 `json:"tip"`
	TotalAmount       float64 `json:"totalAmount"`
}

// CancellationPayload is the cancellation record of a cancelled order.
type CancellationPayload struct {
	CancelledBy  string    `json:"cancelledBy"`
	Reason       string    `json:"reason"`
	RefundAmount float64   `json:"refundAmount,omitempty"`
	RefundID     string    `json:"refundId,omitempty"`
	CancelledAt  time.Time `json:"cancelledAt"`
}

// OrderListPayload is the paginated listing response.
type OrderListPayload struct {
	Orders []OrderSummaryPayload `json:"orders"`
	Meta   PageMetaPayload       `json:"meta"`
}

// OrderSummaryPayload is the flat listing row of one order.
type OrderSummaryPayload struct {
	ID        string `json:"id"`
	OrderCode string `json:"orderCode"`

	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalAmount   float64 `json:"totalAmount"`

	ItemCount int `json:"itemCount"`

	CreatedAt time.Time `json:"createdAt"`
}

// PageMetaPayload describes the position of a page within the result set.
type PageMetaPayload struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
}

func orderPayloadFromResponse(r queries.OrderResponse) OrderPayload {
	items := make([]OrderItemPayload, len(r.Items))
	for i, item := range r.Items {
		items[i] = OrderItemPayload{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ServiceID:   item.ServiceID.String(),
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
		if item.DiscountKind != "" {
			items[i].Discount = &DiscountPayload{
				Kind:      item.DiscountKind,
				Value:     item.DiscountValue,
				AppliedBy: item.DiscountAppliedBy,
			}
		}
	}

	timeline := make([]TimelineEntryPayload, len(r.Timeline))
	for i, entry := range r.Timeline {
		timeline[i] = TimelineEntryPayload{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			RiderID:   uuidString(entry.RiderID),
			Note:      entry.Note,
		}
	}

	payload := OrderPayload{
		ID:        r.ID.String(),
		OrderCode: r.OrderCode,

		CustomerID:    r.CustomerID.String(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,

		PickupAddress:   addressPayload(r.PickupAddress),
		DeliveryAddress: addressPayload(r.DeliveryAddress),

		Items:    items,
		Timeline: timeline,

		Pricing: PricingViewPayload{
			Subtotal:          r.Pricing.Subtotal,
			ItemDiscountTotal: r.Pricing.ItemDiscountTotal,
			CouponDiscount:    r.Pricing.CouponDiscount,
			CouponCode:        r.Pricing.CouponCode,
			Tax:               r.Pricing.Tax,
			DeliveryCharge:    r.Pricing.DeliveryCharge,
			SurgeCharge:       r.Pricing.SurgeCharge,
			Tip:               r.Pricing.Tip,
			TotalAmount:       r.Pricing.TotalAmount,
		},

		PaymentMethod: r.PaymentMethod,
		PaymentStatus: r.PaymentStatus,
		PaymentID:     r.PaymentID,
		PaidAmount:    r.PaidAmount,

		PickupSlot: slotPayload(r.PickupSlot),

		ActualPickupTime:   r.ActualPickupTime,
		ActualDeliveryTime: r.ActualDeliveryTime,

		PickupRiderID:   uuidString(r.PickupRiderID),
		DeliveryRiderID: uuidString(r.DeliveryRiderID),

		Status: r.Status,

		SpecialInstructions: r.SpecialInstructions,
		TotalWeightKg:       r.TotalWeightKg,

		Rating:     r.Rating,
		Review:     r.Review,
		ReviewedAt: r.ReviewedAt,

		Version:   r.Version,
		CreatedAt: r.CreatedAt,
	}

	if r.DeliverySlot != nil {
		slot := slotPayload(*r.DeliverySlot)
		payload.DeliverySlot = &slot
	}

	if r.Cancellation != nil {
		payload.Cancellation = &CancellationPayload{
			CancelledBy:  r.Cancellation.CancelledBy,
			Reason:       r.Cancellation.Reason,
			RefundAmount: r.Cancellation.RefundAmount,
			RefundID:     r.Cancellation.RefundID,
			CancelledAt:  r.Cancellation.CancelledAt,
		}
	}

	return payload
}

func orderListPayloadFromResponse(r queries.ListOrdersResponse) OrderListPayload {
	orders := make([]OrderSummaryPayload, len(r.Orders))
	for i, summary := range r.Orders {
		orders[i] = OrderSummaryPayload{
			ID:            summary.ID.String(),
			OrderCode:     summary.OrderCode,
			CustomerID:    summary.CustomerID.String(),
			CustomerName:  summary.CustomerName,
			CustomerPhone: summary.CustomerPhone,
			Status:        summary.Status,
			PaymentMethod: summary.PaymentMethod,
			PaymentStatus: summary.PaymentStatus,
			TotalAmount:   summary.TotalAmount,
			ItemCount:     summary.ItemCount,
			CreatedAt:     summary.CreatedAt,
		}
	}

	return OrderListPayload{
		Orders: orders,
		Meta: PageMetaPayload{
			CurrentPage: r.Meta.CurrentPage,
			Limit:       r.Meta.Limit,
			Total:       r.Meta.Total,
			TotalPages:  r.Meta.TotalPages,
		},
	}
}

func addressPayload(a queries.AddressResponse) AddressPayload {
	return AddressPayload{
		FullAddress: a.FullAddress,
		Apartment:   a.Apartment,
		Landmark:    a.Landmark,
	}
}

func slotPayload(s queries.SlotResponse) SlotPayload {
	return SlotPayload{Date: s.Date, From: s.From, To: s.To}
}

func uuidString(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
