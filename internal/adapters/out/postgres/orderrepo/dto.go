// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// The aggregate spans three tables: a wide orders row, order_items for the
// immutable lines and order_timeline for the append-only audit trail.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the hot lookups: by code, by customer, by status and by
// creation time for the payment-timeout sweep.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode string    `gorm:"size:32;uniqueIndex"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerPhone string

	PickupAddress   AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryAddress AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Pricing PricingDTO `gorm:"embedded"`

	PaymentMethod int `gorm:"type:smallint"`
	PaymentStatus int `gorm:"type:smallint;index"`
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

	PickupRiderID   *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryRiderID *uuid.UUID `gorm:"type:uuid;index"`

	Status int `gorm:"type:smallint;index"`

	SpecialInstructions string
	TotalWeightKg       float64

	CancelledBy  int `gorm:"type:smallint"`
	CancelReason string
	RefundAmount float64
	RefundID     string
	CancelledAt  *time.Time

	Rating     int `gorm:"type:smallint"`
	Review     string
	ReviewedAt *time.Time

	Version   int64
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Items    []ItemDTO          `gorm:"foreignKey:OrderID;references:ID"`
	Timeline []TimelineEntryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded pickup or delivery address within the order table.
type AddressDTO struct {
	FullAddress string
	Apartment   string
	Landmark    string
}

// PricingDTO represents the embedded money breakdown within the order table.
type PricingDTO struct {
	Subtotal          float64
	ItemDiscountTotal float64
	CouponDiscount    float64

	CouponCode          string
	CouponKind          int `gorm:"type:smallint"`
	CouponValue         float64
	CouponMaxDiscount   float64
	CouponAppliedAmount float64

	Tax            float64
	DeliveryCharge float64
	SurgeCharge    float64
	Tip            float64
	TotalAmount    float64
}

// ItemDTO represents one order line. Lines are immutable snapshots: they are
// written once with the order and never updated.
type ItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	Position int

	ProductID   uuid.UUID `gorm:"type:uuid"`
	ProductName string
	ServiceID   uuid.UUID `gorm:"type:uuid"`
	ServiceName string

	Quantity  int
	UnitPrice float64

	DiscountKind      int `gorm:"type:smallint"`
	DiscountValue     float64
	DiscountAppliedBy string

	Subtotal float64
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// TimelineEntryDTO represents one entry of the append-only status history.
// The (order_id, position) unique index makes appends idempotent: re-inserting
// an already stored prefix of the timeline is a no-op.
type TimelineEntryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_order_timeline_position"`
	Position int       `gorm:"uniqueIndex:idx_order_timeline_position"`

	Status    int `gorm:"type:smallint"`
	Timestamp time.Time
	RiderID   *uuid.UUID `gorm:"type:uuid"`
	Note      string
}

// TableName specifies the database table name for timeline entries.
func (TimelineEntryDTO) TableName() string {
	return "order_timeline"
}

// fromDomain converts an order domain aggregate to its database representation,
// including item and timeline child rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:        aggregate.ID().Bytes(),
		OrderCode: aggregate.OrderID().String(),

		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerName:  aggregate.Customer().Name(),
		CustomerPhone: aggregate.Customer().Phone(),

		PickupAddress:   addressFromDomain(aggregate.PickupAddress()),
		DeliveryAddress: addressFromDomain(aggregate.DeliveryAddress()),

		Pricing: pricingFromDomain(aggregate.Pricing()),

		PaymentMethod: int(aggregate.PaymentMethod()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		PaymentID:     aggregate.PaymentID(),
		PaidAmount:    aggregate.PaidAmount(),

		PickupSlotDate: aggregate.PickupSlot().Date(),
		PickupSlotFrom: aggregate.PickupSlot().From(),
		PickupSlotTo:   aggregate.PickupSlot().To(),

		ActualPickupTime:   aggregate.ActualPickupTime(),
		ActualDeliveryTime: aggregate.ActualDeliveryTime(),

		PickupRiderID:   uuidPtr(aggregate.PickupRider()),
		DeliveryRiderID: uuidPtr(aggregate.DeliveryRider()),

		Status: int(aggregate.Status()),

		SpecialInstructions: aggregate.SpecialInstructions(),
		TotalWeightKg:       aggregate.TotalWeightKg(),

		Rating:     aggregate.Rating(),
		Review:     aggregate.Review(),
		ReviewedAt: aggregate.ReviewedAt(),

		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
	}

	if slot := aggregate.DeliverySlot(); slot != nil {
		dto.DeliverySlotDate = slot.Date()
		dto.DeliverySlotFrom = slot.From()
		dto.DeliverySlotTo = slot.To()
	}

	if c := aggregate.Cancellation(); c != nil {
		cancelledAt := c.CancelledAt()
		dto.CancelledBy = int(c.CancelledBy())
		dto.CancelReason = c.Reason()
		dto.RefundAmount = c.RefundAmount()
		dto.RefundID = c.RefundID()
		dto.CancelledAt = &cancelledAt
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(dto.ID, i, item))
	}
	for i, entry := range aggregate.Timeline() {
		dto.Timeline = append(dto.Timeline, timelineEntryFromDomain(dto.ID, i, entry))
	}

	return dto
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
		FullAddress: a.FullAddress(),
		Apartment:   a.Apartment(),
		Landmark:    a.Landmark(),
	}
}

func pricingFromDomain(p order.Pricing) PricingDTO {
	dto := PricingDTO{
		Subtotal:          p.Subtotal(),
		ItemDiscountTotal: p.ItemDiscountTotal(),
		CouponDiscount:    p.CouponDiscount(),
		Tax:               p.Tax(),
		DeliveryCharge:    p.DeliveryCharge(),
		SurgeCharge:       p.SurgeCharge(),
		Tip:               p.Tip(),
		TotalAmount:       p.TotalAmount(),
	}

	if c := p.Coupon(); c != nil {
		dto.CouponCode = c.Code()
		dto.CouponKind = int(c.Kind())
		dto.CouponValue = c.Value()
		dto.CouponMaxDiscount = c.MaxDiscount()
		dto.CouponAppliedAmount = c.AppliedAmount()
	}

	return dto
}

func itemFromDomain(orderID uuid.UUID, position int, item order.Item) ItemDTO {
	dto := ItemDTO{
		ID:       uuid.New(),
		OrderID:  orderID,
		Position: position,

		ProductID:   item.ProductID().Bytes(),
		ProductName: item.ProductName(),
		ServiceID:   item.ServiceID().Bytes(),
		ServiceName: item.ServiceName(),

		Quantity:  item.Quantity(),
		UnitPrice: item.UnitPrice(),
		Subtotal:  item.Subtotal(),
	}

	if d := item.Discount(); d != nil {
		dto.DiscountKind = int(d.Kind())
		dto.DiscountValue = d.Value()
		dto.DiscountAppliedBy = d.AppliedBy()
	}

	return dto
}

func timelineEntryFromDomain(orderID uuid.UUID, position int, entry order.TimelineEntry) TimelineEntryDTO {
	return TimelineEntryDTO{
		ID:       uuid.New(),
		OrderID:  orderID,
		Position: position,

		Status:    int(entry.Status()),
		Timestamp: entry.Timestamp(),
		RiderID:   uuidPtr(entry.Rider()),
		Note:      entry.Note(),
	}
}

// toDomain converts a database DTO (with preloaded children) back into an
// order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.OrderIDFromString(dto.OrderCode)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomerSnapshot(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}
	pickupAddress, err := addressToDomain(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := addressToDomain(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	pricing, err := pricingToDomain(dto.Pricing)
	if err != nil {
		return nil, err
	}
	timeline, err := timelineToDomain(dto.Timeline)
	if err != nil {
		return nil, err
	}

	pickupSlot, err := order.NewTimeSlot(dto.PickupSlotDate, dto.PickupSlotFrom, dto.PickupSlotTo)
	if err != nil {
		return nil, err
	}
	var deliverySlot *order.TimeSlot
	if dto.DeliverySlotDate != "" {
		slot, slotErr := order.NewTimeSlot(dto.DeliverySlotDate, dto.DeliverySlotFrom, dto.DeliverySlotTo)
		if slotErr != nil {
			return nil, slotErr
		}
		deliverySlot = &slot
	}

	pickupRider, err := kernelUUIDPtr(dto.PickupRiderID)
	if err != nil {
		return nil, err
	}
	deliveryRider, err := kernelUUIDPtr(dto.DeliveryRiderID)
	if err != nil {
		return nil, err
	}

	var cancellation *order.Cancellation
	if dto.CancelledAt != nil {
		c, cancelErr := order.RestoreCancellation(
			order.CancelActor(dto.CancelledBy),
			dto.CancelReason,
			dto.RefundAmount,
			dto.RefundID,
			*dto.CancelledAt,
		)
		if cancelErr != nil {
			return nil, cancelErr
		}
		cancellation = &c
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		OrderID:         orderID,
		CustomerID:      customerID,
		Customer:        customer,
		PickupAddress:   pickupAddress,
		DeliveryAddress: deliveryAddress,
		Items:           items,
		Pricing:         pricing,

		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		PaymentID:     dto.PaymentID,
		PaidAmount:    dto.PaidAmount,

		PickupSlot:         pickupSlot,
		DeliverySlot:       deliverySlot,
		ActualPickupTime:   dto.ActualPickupTime,
		ActualDeliveryTime: dto.ActualDeliveryTime,

		PickupRider:   pickupRider,
		DeliveryRider: deliveryRider,

		Status:   order.Status(dto.Status),
		Timeline: timeline,

		SpecialInstructions: dto.SpecialInstructions,
		TotalWeightKg:       dto.TotalWeightKg,

		Cancellation: cancellation,

		Rating:     dto.Rating,
		Review:     dto.Review,
		ReviewedAt: dto.ReviewedAt,

		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
	})
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	return order.NewAddress(dto.FullAddress, dto.Apartment, dto.Landmark)
}

func pricingToDomain(dto PricingDTO) (order.Pricing, error) {
	var coupon *order.Coupon
	if dto.CouponCode != "" {
		c, err := order.NewCoupon(
			dto.CouponCode,
			order.DiscountKind(dto.CouponKind),
			dto.CouponValue,
			dto.CouponMaxDiscount,
			dto.CouponAppliedAmount,
		)
		if err != nil {
			return order.Pricing{}, err
		}
		coupon = &c
	}

	return order.NewPricing(order.PricingParams{
		Subtotal:          dto.Subtotal,
		ItemDiscountTotal: dto.ItemDiscountTotal,
		CouponDiscount:    dto.CouponDiscount,
		Coupon:            coupon,
		Tax:               dto.Tax,
		DeliveryCharge:    dto.DeliveryCharge,
		SurgeCharge:       dto.SurgeCharge,
		Tip:               dto.Tip,
		TotalAmount:       dto.TotalAmount,
	})
}

func itemsToDomain(dtos []ItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
		if err != nil {
			return nil, err
		}

		var discount *order.Discount
		if dto.DiscountKind != int(order.DiscountKindUnknown) {
			d, discountErr := order.NewDiscount(
				order.DiscountKind(dto.DiscountKind),
				dto.DiscountValue,
				dto.DiscountAppliedBy,
			)
			if discountErr != nil {
				return nil, discountErr
			}
			discount = &d
		}

		item, err := order.NewItem(
			productID, dto.ProductName,
			serviceID, dto.ServiceName,
			dto.Quantity, dto.UnitPrice, discount, dto.Subtotal,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func timelineToDomain(dtos []TimelineEntryDTO) ([]order.TimelineEntry, error) {
	timeline := make([]order.TimelineEntry, 0, len(dtos))
	for _, dto := range dtos {
		rider, err := kernelUUIDPtr(dto.RiderID)
		if err != nil {
			return nil, err
		}

		entry, err := order.NewTimelineEntry(order.Status(dto.Status), dto.Timestamp, rider, dto.Note)
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, entry)
	}

	return timeline, nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
