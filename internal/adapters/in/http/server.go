// Package http exposes the order management use cases over a REST API.
// Handlers translate JSON payloads into commands and queries and map
// domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	updateOrderHandler commands.UpdateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
	}
}

// RegisterRoutes mounts all order endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:orderKey", s.GetOrder)
	v1.PATCH("/orders/:orderKey", s.UpdateOrder)
	v1.POST("/orders/:orderKey/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := request.toCommand()
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderMutated(created))
}

// GetOrder handles GET /api/v1/orders/:orderKey - retrieves one order.
// The key is either the storage UUID or the order code.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderKey"))
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderPayloadFromResponse(response))
}

// ListOrders handles GET /api/v1/orders - paginated, filtered listing.
func (s *Server) ListOrders(ctx echo.Context) error {
	params, err := listParamsFromContext(ctx)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	response, err := s.listOrdersHandler.Handle(ctx.Request().Context(),
		queries.NewListOrdersQuery(params))
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderListPayloadFromResponse(response))
}

// UpdateOrder handles PATCH /api/v1/orders/:orderKey - advances an order
// through its lifecycle (status, payment outcome, weight, refund, rating).
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderKey"))
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	var request UpdateOrderRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := request.toCommand(id)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderMutated(updated))
}

// CancelOrder handles POST /api/v1/orders/:orderKey/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderKey"))
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	var request CancelOrderRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := request.toCommand(id)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderMutated(cancelled))
}

func listParamsFromContext(ctx echo.Context) (queries.ListOrdersParams, error) {
	params := queries.ListOrdersParams{
		Search:   ctx.QueryParam("search"),
		SortBy:   ctx.QueryParam("sortBy"),
		SortDesc: ctx.QueryParam("sortOrder") != "asc",
	}

	if raw := ctx.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return queries.ListOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("page", err)
		}
		params.Page = page
	}

	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return queries.ListOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
		params.Limit = limit
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.Status = status
	}

	if raw := ctx.QueryParam("paymentMethod"); raw != "" {
		method, err := order.PaymentMethodFromString(raw)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.PaymentMethod = method
	}

	if raw := ctx.QueryParam("customerId"); raw != "" {
		customerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.CustomerID = &customerID
	}

	if raw := ctx.QueryParam("createdFrom"); raw != "" {
		from, err := parseTimeParam("createdFrom", raw)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.CreatedFrom = &from
	}

	if raw := ctx.QueryParam("createdTo"); raw != "" {
		to, err := parseTimeParam("createdTo", raw)
		if err != nil {
			return queries.ListOrdersParams{}, err
		}
		params.CreatedTo = &to
	}

	return params, nil
}

// parseTimeParam accepts either an RFC 3339 timestamp or a bare date.
func parseTimeParam(name, raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t, nil
}

// domainErrorResponse maps application and domain errors onto HTTP
// status codes.
func domainErrorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, commands.ErrActorNotAllowed):
		return errorResponse(ctx, http.StatusForbidden, err.Error())

	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidPaymentState),
		errors.Is(err, order.ErrIncompleteFeedback):
		return errorResponse(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())

	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
