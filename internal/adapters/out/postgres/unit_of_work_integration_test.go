package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormUnitOfWorkTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *GormUnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.Run(ctx,
		"postgres:15-alpine",
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.TimelineEntryDTO{},
		&postgres.CounterDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *GormUnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormUnitOfWorkTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
	err = suite.db.Exec("TRUNCATE TABLE sequence_counters").Error
	suite.Require().NoError(err)
}

func (suite *GormUnitOfWorkTestSuite) newOrder(orderID kernel.OrderID) *order.Order {
	snapshot, err := order.NewCustomerSnapshot("Asha Rao", "+91-900000001")
	suite.Require().NoError(err)
	address, err := order.NewAddress("12 MG Road, Bengaluru", "", "")
	suite.Require().NoError(err)
	slot, err := order.NewTimeSlot("2025-04-15", "10:00", "12:00")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "Shirt", kernel.NewUUID(), "Wash & Iron", 1, 100, nil, 100)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(order.PricingParams{
		Subtotal:    100,
		TotalAmount: 100,
	})
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		OrderID:         orderID,
		CustomerID:      kernel.NewUUID(),
		Customer:        snapshot,
		PickupAddress:   address,
		DeliveryAddress: address,
		Items:           []order.Item{item},
		Pricing:         pricing,
		PaymentMethod:   order.PaymentMethodCOD,
		PickupSlot:      slot,
	})
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GormUnitOfWorkTestSuite) TestCommit_PersistsOrderAndSequence() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	seq, err := uow.SequenceAllocator().Next(ctx, "orderId_2025")
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	orderID, err := kernel.NewOrderID(2025, seq)
	suite.Require().NoError(err)
	aggregate := suite.newOrder(orderID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	loaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("LAUNDRY-2025-00001", loaded.OrderID().String())
}

func (suite *GormUnitOfWorkTestSuite) TestRollback_DiscardsOrderAndLeavesAGap() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	seq, err := uow.SequenceAllocator().Next(ctx, "orderId_2025")
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	orderID, err := kernel.NewOrderID(2025, seq)
	suite.Require().NoError(err)
	aggregate := suite.newOrder(orderID)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	_, err = repo.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// The rolled back number is gone; the next allocation restarts the bucket.
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow2.Begin(ctx))
	next, err := uow2.SequenceAllocator().Next(ctx, "orderId_2025")
	suite.Require().NoError(err)
	suite.Require().NoError(uow2.Commit(ctx))
	suite.Equal(int64(1), next)
}

func (suite *GormUnitOfWorkTestSuite) TestSequenceAllocator_SeparateBuckets() {
	ctx := context.Background()
	allocator := postgres.NewGormSequenceAllocator(suite.db)

	for i := int64(1); i <= 3; i++ {
		seq, err := allocator.Next(ctx, "orderId_2025")
		suite.Require().NoError(err)
		suite.Equal(i, seq)
	}

	seq, err := allocator.Next(ctx, "orderId_2026")
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)
}

func (suite *GormUnitOfWorkTestSuite) TestSequenceAllocator_ConcurrentAllocationsAreDistinct() {
	ctx := context.Background()
	allocator := postgres.NewGormSequenceAllocator(suite.db)

	const workers = 20
	results := make(chan int64, workers)
	errors := make(chan error, workers)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := allocator.Next(ctx, "orderId_2025")
			if err != nil {
				errors <- err
				return
			}
			results <- seq
		}()
	}
	wg.Wait()
	close(results)
	close(errors)

	for err := range errors {
		suite.Require().NoError(err)
	}

	seen := make(map[int64]bool)
	for seq := range results {
		suite.False(seen[seq], fmt.Sprintf("sequence %d allocated twice", seq))
		seen[seq] = true
	}
	suite.Len(seen, workers)
}

func (suite *GormUnitOfWorkTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *GormUnitOfWorkTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().Error(err)
}

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestGormUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(GormUnitOfWorkTestSuite))
}
