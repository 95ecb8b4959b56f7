package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
//
// Writes are optimistic: the orders row carries a version column that Update
// compares against and increments, so a stale aggregate can never silently
// overwrite a newer one. The timeline is append-only; entries are inserted
// with ON CONFLICT DO NOTHING so re-persisting the known prefix is harmless.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and seeded timeline to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("orderCode",
				fmt.Errorf("%s already exists: %w", dto.OrderCode, err))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// The write succeeds only when the stored version still matches the
// aggregate's; otherwise errs.ErrVersionIsInvalid is returned and the caller
// must re-read and retry. New timeline entries are appended alongside.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("order %s was not at version %d", dto.OrderCode, aggregate.Version()))
	}

	if len(dto.Timeline) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Timeline).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items and timeline by storage identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "id = ?", id.Bytes())
}

// GetByOrderID retrieves an order by its human-readable code.
func (r *GormOrderRepository) GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*order.Order, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "order_code = ?", orderID.String())
}

// GetStalePending retrieves pending orders created before the cutoff.
func (r *GormOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedByPosition).
		Preload("Timeline", orderedByPosition).
		Where("status = ? AND created_at < ?", order.Pending, cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) getOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedByPosition).
		Preload("Timeline", orderedByPosition).
		First(&dto, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", fmt.Sprintf("%v", arg))
		}
		return nil, err
	}

	return toDomain(dto)
}

func orderedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
