package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.TimelineEntryDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE order_items CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE order_timeline CASCADE").Error
	suite.Require().NoError(err)
}

var orderSeq int64

func (suite *GormOrderRepositoryTestSuite) newOrder(method order.PaymentMethod) *order.Order {
	orderSeq++
	orderID, err := kernel.NewOrderID(2025, orderSeq)
	suite.Require().NoError(err)

	snapshot, err := order.NewCustomerSnapshot("Asha Rao", "+91-900000001")
	suite.Require().NoError(err)
	pickup, err := order.NewAddress("12 MG Road, Bengaluru", "4B", "near metro")
	suite.Require().NoError(err)
	delivery, err := order.NewAddress("14 Brigade Road, Bengaluru", "", "")
	suite.Require().NoError(err)
	pickupSlot, err := order.NewTimeSlot("2025-04-15", "10:00", "12:00")
	suite.Require().NoError(err)
	deliverySlot, err := order.NewTimeSlot("2025-04-17", "18:00", "20:00")
	suite.Require().NoError(err)

	discount, err := order.NewDiscount(order.DiscountPercent, 10, "offer")
	suite.Require().NoError(err)
	item1, err := order.NewItem(kernel.NewUUID(), "Shirt", kernel.NewUUID(), "Wash & Iron", 2, 50, &discount, 100)
	suite.Require().NoError(err)
	item2, err := order.NewItem(kernel.NewUUID(), "Bedsheet", kernel.NewUUID(), "Dry Clean", 1, 80, nil, 80)
	suite.Require().NoError(err)

	coupon, err := order.NewCoupon("FIRST20", order.DiscountFlat, 20, 0, 20)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(order.PricingParams{
		Subtotal:          180,
		ItemDiscountTotal: 10,
		CouponDiscount:    20,
		Coupon:            &coupon,
		Tax:               9,
		DeliveryCharge:    25,
		Tip:               16,
		TotalAmount:       200,
	})
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:                  kernel.NewUUID(),
		OrderID:             orderID,
		CustomerID:          kernel.NewUUID(),
		Customer:            snapshot,
		PickupAddress:       pickup,
		DeliveryAddress:     delivery,
		Items:               []order.Item{item1, item2},
		Pricing:             pricing,
		PaymentMethod:       method,
		PickupSlot:          pickupSlot,
		DeliverySlot:        &deliverySlot,
		SpecialInstructions: "handle with care",
	})
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GormOrderRepositoryTestSuite) TestAddAndGet_RoundTripsTheAggregate() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.PaymentMethodCOD)

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(aggregate))
	suite.Equal(aggregate.OrderID().String(), loaded.OrderID().String())
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Equal(order.PaymentStatusPending, loaded.PaymentStatus())
	suite.Equal(int64(1), loaded.Version())
	suite.Equal("handle with care", loaded.SpecialInstructions())

	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("Shirt", loaded.Items()[0].ProductName())
	suite.Require().NotNil(loaded.Items()[0].Discount())
	suite.Equal(order.DiscountPercent, loaded.Items()[0].Discount().Kind())
	suite.Nil(loaded.Items()[1].Discount())

	suite.Require().NotNil(loaded.Pricing().Coupon())
	suite.Equal("FIRST20", loaded.Pricing().Coupon().Code())
	suite.InDelta(200, loaded.Pricing().TotalAmount(), 0.001)

	suite.Require().NotNil(loaded.DeliverySlot())
	suite.Equal("2025-04-17", loaded.DeliverySlot().Date())

	suite.Require().Len(loaded.Timeline(), 1)
	suite.Equal(order.Confirmed, loaded.Timeline()[0].Status())
}

func (suite *GormOrderRepositoryTestSuite) TestGetByOrderID_FindsByCode() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.PaymentMethodOnline)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	loaded, err := suite.repo.GetByOrderID(ctx, aggregate.OrderID())

	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))
	suite.Equal(order.Pending, loaded.Status())
}

func (suite *GormOrderRepositoryTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_PersistsTimelineAndBumpsVersion() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.PaymentMethodCOD)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	rider := kernel.NewUUID()
	suite.Require().NoError(aggregate.AssignPickupRider(rider, "Pickup rider assigned"))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.PickupAssigned, loaded.Status())
	suite.Equal(int64(2), loaded.Version())
	suite.Require().NotNil(loaded.PickupRider())
	suite.True(loaded.PickupRider().IsEqual(rider))
	suite.Require().Len(loaded.Timeline(), 2)
	suite.Equal("Pickup rider assigned", loaded.Timeline()[1].Note())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_StaleVersion_IsRejected() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.PaymentMethodCOD)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	// Two copies of the same order; the second write is stale.
	copy1, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	copy2, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(copy1.TransitionTo(order.PickedUp, "", nil))
	suite.Require().NoError(suite.repo.Update(ctx, copy1))

	suite.Require().NoError(copy2.TransitionTo(order.InProcess, "", nil))
	err = suite.repo.Update(ctx, copy2)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PickedUp, loaded.Status())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_PersistsCancellation() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.PaymentMethodCOD)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Cancel(order.CancelledByCustomer, "Changed my plans", 0, ""))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Cancelled, loaded.Status())
	suite.Require().NotNil(loaded.Cancellation())
	suite.Equal(order.CancelledByCustomer, loaded.Cancellation().CancelledBy())
	suite.Equal("Changed my plans", loaded.Cancellation().Reason())
}

func (suite *GormOrderRepositoryTestSuite) TestAdd_DuplicateOrderCode_IsRejected() {
	ctx := context.Background()
	first := suite.newOrder(order.PaymentMethodCOD)
	suite.Require().NoError(suite.repo.Add(ctx, first))

	second := suite.newOrder(order.PaymentMethodCOD)
	// Force the same code onto a different order.
	dupe, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		OrderID:         first.OrderID(),
		CustomerID:      second.CustomerID(),
		Customer:        second.Customer(),
		PickupAddress:   second.PickupAddress(),
		DeliveryAddress: second.DeliveryAddress(),
		Items:           second.Items(),
		Pricing:         second.Pricing(),
		PaymentMethod:   second.PaymentMethod(),
		PickupSlot:      second.PickupSlot(),
	})
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, dupe)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *GormOrderRepositoryTestSuite) TestGetStalePending_FiltersByStatusAndAge() {
	ctx := context.Background()

	stale := suite.newOrder(order.PaymentMethodOnline)
	suite.Require().NoError(suite.repo.Add(ctx, stale))
	// Age the order past the cutoff.
	err := suite.db.Exec("UPDATE orders SET created_at = ? WHERE id = ?",
		time.Now().Add(-2*time.Hour), stale.ID().Bytes()).Error
	suite.Require().NoError(err)

	fresh := suite.newOrder(order.PaymentMethodOnline)
	suite.Require().NoError(suite.repo.Add(ctx, fresh))

	confirmed := suite.newOrder(order.PaymentMethodCOD)
	suite.Require().NoError(suite.repo.Add(ctx, confirmed))

	result, err := suite.repo.GetStalePending(ctx, time.Now().Add(-time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].IsEqual(stale))
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}
