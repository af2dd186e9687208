package domain

import (
	"context"
	"time"
)

// ProviderPort resolves reward periods for other modules
type ProviderPort interface {
	// Period fetches one period by id
	Period(ctx context.Context, id string) (Period, error)

	// PeriodForDate resolves the owning period for an instant: the period
	// with the smallest end date on or after at. The boolean is false when
	// no period covers the instant
	PeriodForDate(ctx context.Context, at time.Time) (Period, bool, error)
}
