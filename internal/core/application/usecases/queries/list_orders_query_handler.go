package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves pages of order summaries from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// summaryRow is the scanned shape of one listing row.
type summaryRow struct {
	ID        uuid.UUID
	OrderCode string

	CustomerID    uuid.UUID
	CustomerName  string
	CustomerPhone string

	Status        int
	PaymentMethod int
	PaymentStatus int
	TotalAmount   float64

	ItemCount int

	CreatedAt time.Time
}

// Handle executes the listing. The same filtered set is counted and paged, so
// the metadata always matches the rows.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if s := query.Search(); s != "" {
			pattern := "%" + s + "%"
			tx = tx.Where(
				"order_code ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
				pattern, pattern, pattern,
			)
		}
		if query.Status() != order.Unknown {
			tx = tx.Where("status = ?", int(query.Status()))
		}
		if query.PaymentMethod() != order.PaymentMethodUnknown {
			tx = tx.Where("payment_method = ?", int(query.PaymentMethod()))
		}
		if id := query.CustomerID(); id != nil {
			tx = tx.Where("customer_id = ?", id.Bytes())
		}
		if from := query.CreatedFrom(); from != nil {
			tx = tx.Where("created_at >= ?", *from)
		}
		if to := query.CreatedTo(); to != nil {
			tx = tx.Where("created_at < ?", *to)
		}
		return tx
	}

	var total int64
	if err := filter(h.db.WithContext(ctx).Table("orders")).Count(&total).Error; err != nil {
		return ListOrdersResponse{}, err
	}

	direction := "ASC"
	if query.SortDesc() {
		direction = "DESC"
	}

	var rows []summaryRow
	err := filter(h.db.WithContext(ctx).Table("orders")).
		Select(`orders.*,
			(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count`).
		Order(query.SortBy() + " " + direction).
		Offset((query.Page() - 1) * query.Limit()).
		Limit(query.Limit()).
		Find(&rows).Error
	if err != nil {
		return ListOrdersResponse{}, err
	}

	orders := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		id, rowErr := kernel.UUIDFromBytes(row.ID[:])
		if rowErr != nil {
			return ListOrdersResponse{}, rowErr
		}
		customerID, rowErr := kernel.UUIDFromBytes(row.CustomerID[:])
		if rowErr != nil {
			return ListOrdersResponse{}, rowErr
		}

		orders = append(orders, OrderSummaryResponse{
			ID:        id,
			OrderCode: row.OrderCode,

			CustomerID:    customerID,
			CustomerName:  row.CustomerName,
			CustomerPhone: row.CustomerPhone,

			Status:        order.Status(row.Status).String(),
			PaymentMethod: order.PaymentMethod(row.PaymentMethod).String(),
			PaymentStatus: order.PaymentStatus(row.PaymentStatus).String(),
			TotalAmount:   row.TotalAmount,

			ItemCount: row.ItemCount,

			CreatedAt: row.CreatedAt,
		})
	}

	totalPages := int((total + int64(query.Limit()) - 1) / int64(query.Limit()))

	return ListOrdersResponse{
		Orders: orders,
		Meta: PageMeta{
			CurrentPage: query.Page(),
			Limit:       query.Limit(),
			Total:       total,
			TotalPages:  totalPages,
		},
	}, nil
}
