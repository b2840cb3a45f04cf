package contract

import (
	"context"

	"contractvault-be/internal/entity"

	"github.com/google/uuid"
)

// UsageCounter names a ledger column that can be incremented atomically.
type UsageCounter string

const (
	CounterUploads  UsageCounter = "uploads_used"
	CounterRefines  UsageCounter = "refines_used"
	CounterAnalyses UsageCounter = "analyses_used"
)

type UsageRepository interface {
	// Find returns the ledger row for the user under the given plan,
	// or nil when the user has never consumed anything on that plan.
	Find(ctx context.Context, userId, planId uuid.UUID) (*entity.UsageRecord, error)
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.UsageRecord, error)

	// Increment bumps one counter by n in a single upsert statement. The
	// row is created on first use so callers never need a prior insert.
	Increment(ctx context.Context, userId, planId uuid.UUID, counter UsageCounter, n int) error
}
