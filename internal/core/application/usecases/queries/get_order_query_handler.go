package queries

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderRow mirrors the orders table for read-side scanning.
type orderRow struct {
	ID        uuid.UUID
	OrderCode string

	CustomerID    uuid.UUID
	CustomerName  string
	CustomerPhone string

	PickupFullAddress string
	PickupApartment   string
	PickupLandmark    string

	DeliveryFullAddress string
	DeliveryApartment   string
	DeliveryLandmark    string

	Subtotal          float64
	ItemDiscountTotal float64
	CouponDiscount    float64
	CouponCode        string
	Tax               float64
	DeliveryCharge    float64
	SurgeCharge       float64
	Tip               float64
	TotalAmount       float64

	PaymentMethod int
	PaymentStatus int
	PaymentID     string
	PaidAmount    float64

	PickupSlotDate   string
	PickupSlotFrom   string
	PickupSlotTo     string
	DeliverySlotDate string
	DeliverySlotFrom string
	DeliverySlotTo   string

	ActualPickupTime   *time.Time
	ActualDeliveryTime *time.Time

	PickupRiderID   *uuid.UUID
	DeliveryRiderID *uuid.UUID

	Status int

	SpecialInstructions string
	TotalWeightKg       float64

	CancelledBy  int
	CancelReason string
	RefundAmount float64
	RefundID     string
	CancelledAt  *time.Time

	Rating     int
	Review     string
	ReviewedAt *time.Time

	Version   int64
	CreatedAt time.Time
}

// itemRow mirrors the order_items table for read-side scanning.
type itemRow struct {
	ProductID   uuid.UUID
	ProductName string
	ServiceID   uuid.UUID
	ServiceName string

	Quantity  int
	UnitPrice float64

	DiscountKind      int
	DiscountValue     float64
	DiscountAppliedBy string

	Subtotal float64
}

// timelineRow mirrors the order_timeline table for read-side scanning.
type timelineRow struct {
	Status    int
	Timestamp time.Time
	RiderID   *uuid.UUID
	Note      string
}

// Handle executes the lookup and assembles the full order view, including
// items and the complete timeline in recorded order.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	db := h.db.WithContext(ctx).Table("orders")
	var key string
	if id := query.ID(); id != nil {
		key = id.String()
		db = db.Where("id = ?", id.Bytes())
	} else {
		key = query.Code().String()
		db = db.Where("order_code = ?", key)
	}

	var row orderRow
	if err := db.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", key)
		}
		return OrderResponse{}, err
	}

	var items []itemRow
	err := h.db.WithContext(ctx).Table("order_items").
		Where("order_id = ?", row.ID).
		Order("position").
		Find(&items).Error
	if err != nil {
		return OrderResponse{}, err
	}

	var timeline []timelineRow
	err = h.db.WithContext(ctx).Table("order_timeline").
		Where("order_id = ?", row.ID).
		Order("position").
		Find(&timeline).Error
	if err != nil {
		return OrderResponse{}, err
	}

	return assembleOrderResponse(row, items, timeline)
}

func assembleOrderResponse(row orderRow, items []itemRow, timeline []timelineRow) (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	pickupRider, err := responseUUIDPtr(row.PickupRiderID)
	if err != nil {
		return OrderResponse{}, err
	}
	deliveryRider, err := responseUUIDPtr(row.DeliveryRiderID)
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:        id,
		OrderCode: row.OrderCode,

		CustomerID:    customerID,
		CustomerName:  row.CustomerName,
		CustomerPhone: row.CustomerPhone,

		PickupAddress: AddressResponse{
			FullAddress: row.PickupFullAddress,
			Apartment:   row.PickupApartment,
			Landmark:    row.PickupLandmark,
		},
		DeliveryAddress: AddressResponse{
			FullAddress: row.DeliveryFullAddress,
			Apartment:   row.DeliveryApartment,
			Landmark:    row.DeliveryLandmark,
		},

		Pricing: PricingResponse{
			Subtotal:          row.Subtotal,
			ItemDiscountTotal: row.ItemDiscountTotal,
			CouponDiscount:    row.CouponDiscount,
			CouponCode:        row.CouponCode,
			Tax:               row.Tax,
			DeliveryCharge:    row.DeliveryCharge,
			SurgeCharge:       row.SurgeCharge,
			Tip:               row.Tip,
			TotalAmount:       row.TotalAmount,
		},

		PaymentMethod: order.PaymentMethod(row.PaymentMethod).String(),
		PaymentStatus: order.PaymentStatus(row.PaymentStatus).String(),
		PaymentID:     row.PaymentID,
		PaidAmount:    row.PaidAmount,

		PickupSlot: SlotResponse{
			Date: row.PickupSlotDate,
			From: row.PickupSlotFrom,
			To:   row.PickupSlotTo,
		},

		ActualPickupTime:   row.ActualPickupTime,
		ActualDeliveryTime: row.ActualDeliveryTime,

		PickupRiderID:   pickupRider,
		DeliveryRiderID: deliveryRider,

		Status: order.Status(row.Status).String(),

		SpecialInstructions: row.SpecialInstructions,
		TotalWeightKg:       row.TotalWeightKg,

		Rating:     row.Rating,
		Review:     row.Review,
		ReviewedAt: row.ReviewedAt,

		Version:   row.Version,
		CreatedAt: row.CreatedAt,
	}

	if row.DeliverySlotDate != "" {
		resp.DeliverySlot = &SlotResponse{
			Date: row.DeliverySlotDate,
			From: row.DeliverySlotFrom,
			To:   row.DeliverySlotTo,
		}
	}

	if row.CancelledAt != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledBy:  order.CancelActor(row.CancelledBy).String(),
			Reason:       row.CancelReason,
			RefundAmount: row.RefundAmount,
			RefundID:     row.RefundID,
			CancelledAt:  *row.CancelledAt,
		}
	}

	for _, item := range items {
		productID, itemErr := kernel.UUIDFromBytes(item.ProductID[:])
		if itemErr != nil {
			return OrderResponse{}, itemErr
		}
		serviceID, itemErr := kernel.UUIDFromBytes(item.ServiceID[:])
		if itemErr != nil {
			return OrderResponse{}, itemErr
		}

		itemResp := ItemResponse{
			ProductID:   productID,
			ProductName: item.ProductName,
			ServiceID:   serviceID,
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
		if item.DiscountKind != int(order.DiscountKindUnknown) {
			itemResp.DiscountKind = order.DiscountKind(item.DiscountKind).String()
			itemResp.DiscountValue = item.DiscountValue
			itemResp.DiscountAppliedBy = item.DiscountAppliedBy
		}
		resp.Items = append(resp.Items, itemResp)
	}

	for _, entry := range timeline {
		rider, entryErr := responseUUIDPtr(entry.RiderID)
		if entryErr != nil {
			return OrderResponse{}, entryErr
		}

		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{
			Status:    order.Status(entry.Status).String(),
			Timestamp: entry.Timestamp,
			RiderID:   rider,
			Note:      entry.Note,
		})
	}

	return resp, nil
}

func responseUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
