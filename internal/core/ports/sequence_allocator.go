package ports

import "context"

// SequenceAllocator hands out monotonically increasing numbers per bucket.
// Order codes use one bucket per calendar year ("orderId_2025") so numbering
// restarts each year. Allocation must be atomic across concurrent callers:
// two orders never receive the same number, though gaps may appear when a
// surrounding transaction rolls back.
type SequenceAllocator interface {
	// Next atomically increments and returns the counter for the bucket,
	// creating it at 1 on first use.
	Next(ctx context.Context, bucket string) (int64, error)
}
