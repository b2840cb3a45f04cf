package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord holds the consumed counters for one (user, plan) pair.
// Counters only grow; rows for previous plans are kept, not merged.
type UsageRecord struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	PlanId       uuid.UUID
	UploadsUsed  int
	RefinesUsed  int
	AnalysesUsed int
	UpdatedAt    time.Time
}

// QuotaDecision is the outcome of a limit check.
type QuotaDecision struct {
	Allowed   bool
	Remaining int
}

// CheckQuota decides whether one more unit may be consumed.
// Remaining is clamped at zero once the quota is reached or exceeded.
func CheckQuota(used, allowed int) QuotaDecision {
	remaining := allowed - used
	if remaining < 0 {
		remaining = 0
	}
	return QuotaDecision{
		Allowed:   used < allowed,
		Remaining: remaining,
	}
}

// CheckQuotaBatch decides whether `requested` units may be consumed at
// once. On acceptance Remaining reports what would be left after the
// grant; on rejection it reports what is left now.
func CheckQuotaBatch(used, allowed, requested int) QuotaDecision {
	remaining := allowed - used
	if remaining < 0 {
		remaining = 0
	}
	if requested > remaining {
		return QuotaDecision{Allowed: false, Remaining: remaining}
	}
	return QuotaDecision{Allowed: true, Remaining: remaining - requested}
}
