// Package repo provides the period settings repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"laurel/internal/modkit/repokit"
	"laurel/internal/services/settings/domain"
)

// Repo is the settings persistence surface used by the service layer
type Repo interface {
	Raw(ctx context.Context, periodID, key string) (domain.Setting, bool, error)
}

type (
	// PG is a Postgres implementation of the settings repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Raw fetches the stored row for (period, key) without interpreting the value
func (r *queries) Raw(ctx context.Context, periodID, key string) (domain.Setting, bool, error) {
	const sql = `
		SELECT period_id, key, kind, value, updated_at
		FROM period_settings
		WHERE period_id = $1 AND key = $2
	`
	var s domain.Setting
	row := r.q.QueryRow(ctx, sql, periodID, key)
	if err := row.Scan(&s.PeriodID, &s.Key, &s.Kind, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Setting{}, false, nil
		}
		return domain.Setting{}, false, err
	}
	return s, true, nil
}
