package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// sortableColumns whitelists what the listing may be ordered by.
// Anything else silently falls back to the default ordering.
var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_code":   true,
	"total_amount": true,
}

// ListOrdersQuery retrieves a filtered, sorted page of order summaries.
//
// Out-of-range paging inputs are clamped rather than rejected: a listing
// endpoint should tolerate sloppy clients. Filters compose with AND.
type ListOrdersQuery struct {
	page  int
	limit int

	sortBy   string
	sortDesc bool

	search        string
	status        order.Status
	paymentMethod order.PaymentMethod
	customerID    *kernel.UUID

	createdFrom *time.Time
	createdTo   *time.Time

	guard guard.ConstructorGuard
}

// ListOrdersParams carries the raw listing inputs; zero values mean "no filter".
type ListOrdersParams struct {
	Page  int
	Limit int

	SortBy   string
	SortDesc bool

	Search        string
	Status        order.Status
	PaymentMethod order.PaymentMethod
	CustomerID    *kernel.UUID

	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// NewListOrdersQuery creates a listing query with clamped paging and a
// whitelisted sort column. The default ordering is newest first.
func NewListOrdersQuery(p ListOrdersParams) ListOrdersQuery {
	q := ListOrdersQuery{
		page:  p.Page,
		limit: p.Limit,

		sortBy:   p.SortBy,
		sortDesc: p.SortDesc,

		search:        p.Search,
		status:        p.Status,
		paymentMethod: p.PaymentMethod,
		customerID:    p.CustomerID,

		createdFrom: p.CreatedFrom,
		createdTo:   p.CreatedTo,

		guard: guard.NewConstructorGuard(),
	}

	if q.page < 1 {
		q.page = 1
	}
	if q.limit < 1 {
		q.limit = defaultPageLimit
	}
	if q.limit > maxPageLimit {
		q.limit = maxPageLimit
	}
	if !sortableColumns[q.sortBy] {
		q.sortBy = "created_at"
		q.sortDesc = true
	}

	return q
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// SortBy returns the whitelisted sort column.
func (q ListOrdersQuery) SortBy() string { return q.sortBy }

// SortDesc reports whether the ordering is descending.
func (q ListOrdersQuery) SortDesc() bool { return q.sortDesc }

// Search returns the free-text search term, or "".
func (q ListOrdersQuery) Search() string { return q.search }

// Status returns the status filter, or order.Unknown for none.
func (q ListOrdersQuery) Status() order.Status { return q.status }

// PaymentMethod returns the payment method filter, or
// order.PaymentMethodUnknown for none.
func (q ListOrdersQuery) PaymentMethod() order.PaymentMethod { return q.paymentMethod }

// CustomerID returns the customer filter, or nil.
func (q ListOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// CreatedFrom returns the inclusive lower bound on creation time, or nil.
func (q ListOrdersQuery) CreatedFrom() *time.Time { return q.createdFrom }

// CreatedTo returns the exclusive upper bound on creation time, or nil.
func (q ListOrdersQuery) CreatedTo() *time.Time { return q.createdTo }

// ListOrdersResponse is one page of order summaries plus paging metadata.
type ListOrdersResponse struct {
	Orders []OrderSummaryResponse
	Meta   PageMeta
}

// OrderSummaryResponse is the flat listing row of one order.
type OrderSummaryResponse struct {
	ID        kernel.UUID
	OrderCode string

	CustomerID    kernel.UUID
	CustomerName  string
	CustomerPhone string

	Status        string
	PaymentMethod string
	PaymentStatus string
	TotalAmount   float64

	ItemCount int

	CreatedAt time.Time
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	CurrentPage int
	Limit       int
	Total       int64
	TotalPages  int
}
