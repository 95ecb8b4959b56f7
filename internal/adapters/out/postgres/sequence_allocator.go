package postgres

import (
	"context"

	"gorm.io/gorm"
)

// CounterDTO represents one named sequence counter.
// Order numbering uses one row per calendar year, e.g. bucket "orderId_2025".
type CounterDTO struct {
	Bucket string `gorm:"primaryKey;size:64"`
	Seq    int64
}

// TableName specifies the database table name for sequence counters.
func (CounterDTO) TableName() string {
	return "sequence_counters"
}

// GormSequenceAllocator implements SequenceAllocator on a postgres upsert.
// The increment happens inside the database, so concurrent callers always
// receive distinct numbers. When the surrounding transaction rolls back the
// claimed number is lost, leaving a gap; gaps are acceptable, duplicates
// are not.
type GormSequenceAllocator struct {
	db *gorm.DB
}

// NewGormSequenceAllocator creates an allocator on the given connection,
// which may be a running transaction.
func NewGormSequenceAllocator(db *gorm.DB) *GormSequenceAllocator {
	return &GormSequenceAllocator{db: db}
}

// Next atomically increments and returns the counter for the bucket,
// creating it at 1 on first use.
func (a *GormSequenceAllocator) Next(ctx context.Context, bucket string) (int64, error) {
	var seq int64
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (bucket, seq)
		VALUES (?, 1)
		ON CONFLICT (bucket) DO UPDATE SET seq = sequence_counters.seq + 1
		RETURNING seq
	`, bucket).Scan(&seq).Error
	if err != nil {
		return 0, err
	}

	return seq, nil
}
