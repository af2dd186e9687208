// Package service resolves reward periods
package service

import (
	"context"
	"time"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/services/periods/domain"
	"laurel/internal/services/periods/repo"
)

// Service is the public provider port
type Service interface{ domain.ProviderPort }

// Svc implements the provider port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("periods.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("periods.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// Period fetches one period by id
func (s *Svc) Period(ctx context.Context, id string) (domain.Period, error) {
	if id == "" {
		return domain.Period{}, perr.InvalidArgf("period id required")
	}
	return s.Repo.Period(ctx, id)
}

// PeriodForDate resolves the owning period for an instant
func (s *Svc) PeriodForDate(ctx context.Context, at time.Time) (domain.Period, bool, error) {
	return s.Repo.FirstEndingOnOrAfter(ctx, at.UTC())
}
