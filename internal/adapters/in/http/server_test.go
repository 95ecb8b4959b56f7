package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSequenceAllocator struct {
	mock.Mock
}

func (m *MockSequenceAllocator) Next(ctx context.Context, bucket string) (int64, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct {
	mock.Mock
	repo      *MockOrderRepository
	allocator *MockSequenceAllocator
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.repo
}

func (m *MockOrderUoW) SequenceAllocator() ports.SequenceAllocator {
	return m.allocator
}

type MockOrderUoWFactory struct {
	uow *MockOrderUoW
}

func (f *MockOrderUoWFactory) Create() commands.OrderUoW {
	return f.uow
}

type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) NotifyCreated(ctx context.Context, aggregate *order.Order) {
	m.Called(ctx, aggregate)
}

func (m *MockOrderNotifier) NotifyStatusChanged(ctx context.Context, aggregate *order.Order) {
	m.Called(ctx, aggregate)
}

type serverFixture struct {
	server   *Server
	uow      *MockOrderUoW
	notifier *MockOrderNotifier
}

func newServerFixture() *serverFixture {
	uow := &MockOrderUoW{
		repo:      &MockOrderRepository{},
		allocator: &MockSequenceAllocator{},
	}
	notifier := &MockOrderNotifier{}
	factory := &MockOrderUoWFactory{uow: uow}

	// Query handlers are constructed without a database connection; tests
	// below only exercise paths that fail before the store is touched.
	server := NewServer(
		commands.NewCreateOrderCommandHandler(factory, notifier),
		commands.NewUpdateOrderCommandHandler(factory, notifier),
		commands.NewCancelOrderCommandHandler(factory, notifier),
		queries.NewGetOrderQueryHandler(nil),
		queries.NewListOrdersQueryHandler(nil),
	)

	return &serverFixture{server: server, uow: uow, notifier: notifier}
}

func performRequest(server *Server, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createOrderBody(t *testing.T, paymentMethod string) string {
	t.Helper()

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	request := CreateOrderRequest{
		CustomerID:    kernel.NewUUID().String(),
		CustomerName:  "Bhavna Sharma",
		CustomerPhone: "+919812345678",
		PickupAddress: AddressPayload{FullAddress: "12 MG Road, Bengaluru", Apartment: "Flat 4B"},
		DeliveryAddress: AddressPayload{
			FullAddress: "12 MG Road, Bengaluru", Apartment: "Flat 4B",
		},
		Items: []ItemPayload{
			{
				ProductID:   kernel.NewUUID().String(),
				ProductName: "Shirt",
				ServiceID:   kernel.NewUUID().String(),
				ServiceName: "Wash & Iron",
				Quantity:    2,
				UnitPrice:   50,
				Subtotal:    100,
			},
		},
		Pricing: PricingPayload{
			Subtotal:       100,
			Tax:            5,
			DeliveryCharge: 15,
			TotalAmount:    120,
		},
		PaymentMethod: paymentMethod,
		PickupSlot:    SlotPayload{Date: date, From: "09:00", To: "11:00"},
	}

	body, err := json.Marshal(request)
	require.NoError(t, err)
	return string(body)
}

func TestCreateOrder_Success(t *testing.T) {
	f := newServerFixture()

	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.allocator.On("Next", mock.Anything, mock.Anything).Return(int64(7), nil)
	f.uow.repo.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.notifier.On("NotifyCreated", mock.Anything, mock.Anything).Return()

	rec := performRequest(f.server, http.MethodPost, "/api/v1/orders", createOrderBody(t, "cod"))

	require.Equal(t, http.StatusCreated, rec.Code)

	var response OrderMutatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "confirmed", response.Status)
	assert.Contains(t, response.OrderCode, fmt.Sprintf("-%d-00007", time.Now().Year()))
	assert.NotEmpty(t, response.ID)

	f.uow.repo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCreateOrder_InvalidPaymentMethod(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodPost, "/api/v1/orders", createOrderBody(t, "barter"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.uow.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodPost, "/api/v1/orders", "{not json")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrder_InvalidTransitionConflicts(t *testing.T) {
	f := newServerFixture()

	stored := storedTestOrder(t)
	require.NoError(t, stored.TransitionTo(order.Delivered, "", nil))
	require.NoError(t, stored.TransitionTo(order.Completed, "", nil))

	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil)

	body := `{"status":"in_process"}`
	rec := performRequest(f.server, http.MethodPatch, "/api/v1/orders/"+stored.ID().String(), body)

	require.Equal(t, http.StatusConflict, rec.Code)
	f.uow.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrder_NoChangesRejected(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodPatch,
		"/api/v1/orders/"+kernel.NewUUID().String(), `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrder_UnknownStatusRejected(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodPatch,
		"/api/v1/orders/"+kernel.NewUUID().String(), `{"status":"teleported"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOrder_ForeignCustomerForbidden(t *testing.T) {
	f := newServerFixture()

	stored := storedTestOrder(t)

	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil)

	body := fmt.Sprintf(`{"cancelledBy":"customer","actorId":%q,"reason":"Changed my mind"}`,
		kernel.NewUUID().String())
	rec := performRequest(f.server, http.MethodPost,
		"/api/v1/orders/"+stored.ID().String()+"/cancel", body)

	require.Equal(t, http.StatusForbidden, rec.Code)
	f.uow.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrder_OwnerSucceeds(t *testing.T) {
	f := newServerFixture()

	stored := storedTestOrder(t)

	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil)
	f.uow.repo.On("Update", mock.Anything, stored).Return(nil)
	f.notifier.On("NotifyStatusChanged", mock.Anything, stored).Return()

	body := fmt.Sprintf(`{"cancelledBy":"customer","actorId":%q,"reason":"Changed my mind"}`,
		stored.CustomerID().String())
	rec := performRequest(f.server, http.MethodPost,
		"/api/v1/orders/"+stored.ID().String()+"/cancel", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var response OrderMutatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "cancelled", response.Status)
}

func TestCancelOrder_MissingReasonRejected(t *testing.T) {
	f := newServerFixture()

	body := fmt.Sprintf(`{"cancelledBy":"customer","actorId":%q}`, kernel.NewUUID().String())
	rec := performRequest(f.server, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/cancel", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_GarbageKeyRejected(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodGet, "/api/v1/orders/not-a-key", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrders_UnknownStatusRejected(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodGet, "/api/v1/orders?status=teleported", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrders_BadPageRejected(t *testing.T) {
	f := newServerFixture()

	rec := performRequest(f.server, http.MethodGet, "/api/v1/orders?page=abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func storedTestOrder(t *testing.T, opts ...func(*order.NewOrderParams)) *order.Order {
	t.Helper()

	customer, err := order.NewCustomerSnapshot("Bhavna Sharma", "+919812345678")
	require.NoError(t, err)

	address, err := order.NewAddress("12 MG Road, Bengaluru", "Flat 4B", "")
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), "Shirt", kernel.NewUUID(), "Wash & Iron",
		2, 50, nil, 100)
	require.NoError(t, err)

	pricing, err := order.NewPricing(order.PricingParams{
		Subtotal:       100,
		Tax:            5,
		DeliveryCharge: 15,
		TotalAmount:    120,
	})
	require.NoError(t, err)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	slot, err := order.NewTimeSlot(date, "09:00", "11:00")
	require.NoError(t, err)

	orderID, err := kernel.NewOrderID(time.Now().Year(), 42)
	require.NoError(t, err)

	params := order.NewOrderParams{
		ID:              kernel.NewUUID(),
		OrderID:         orderID,
		CustomerID:      kernel.NewUUID(),
		Customer:        customer,
		PickupAddress:   address,
		DeliveryAddress: address,
		Items:           []order.Item{item},
		Pricing:         pricing,
		PaymentMethod:   order.PaymentMethodCOD,
		PickupSlot:      slot,
	}
	for _, opt := range opts {
		opt(&params)
	}

	aggregate, err := order.NewOrder(params)
	require.NoError(t, err)
	return aggregate
}
