// Package repo provides the reward period repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/services/periods/domain"
)

// Repo is the period persistence surface used by the service layer
type Repo interface {
	Period(ctx context.Context, id string) (domain.Period, error)
	FirstEndingOnOrAfter(ctx context.Context, at time.Time) (domain.Period, bool, error)
}

type (
	// PG is a Postgres implementation of the period repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const periodCols = `id, name, status, end_date, created_at, updated_at`

// Period fetches one period by id
func (r *queries) Period(ctx context.Context, id string) (domain.Period, error) {
	const sql = `SELECT ` + periodCols + ` FROM periods WHERE id = $1`

	var p domain.Period
	row := r.q.QueryRow(ctx, sql, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Status, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Period{}, perr.NotFoundf("period %s not found", id)
		}
		return domain.Period{}, err
	}
	return p, nil
}

// FirstEndingOnOrAfter returns the period with the smallest end date >= at
func (r *queries) FirstEndingOnOrAfter(ctx context.Context, at time.Time) (domain.Period, bool, error) {
	const sql = `
		SELECT ` + periodCols + `
		FROM periods
		WHERE end_date >= $1
		ORDER BY end_date ASC
		LIMIT 1
	`
	var p domain.Period
	row := r.q.QueryRow(ctx, sql, at)
	if err := row.Scan(&p.ID, &p.Name, &p.Status, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Period{}, false, nil
		}
		return domain.Period{}, false, err
	}
	return p, true, nil
}
