// Package repo provides the audit trail repository implementation
package repo

import (
	"context"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/services/audit/domain"
)

// Repo is the audit persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, ev domain.Event) error
	ListBySubject(ctx context.Context, subjectID string, limit int) ([]domain.Event, error)
}

type (
	// PG is a Postgres implementation of the audit repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert appends one audit event
func (r *queries) Insert(ctx context.Context, ev domain.Event) error {
	const sql = `
		INSERT INTO audit_events (id, kind, actor_id, subject_id, message, at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.Exec(ctx, sql, ev.ID, ev.Kind, ev.ActorID, ev.SubjectID, ev.Message, ev.At)
	return perr.FromPostgres(err, "insert audit event")
}

// ListBySubject returns the newest events for a subject
func (r *queries) ListBySubject(ctx context.Context, subjectID string, limit int) ([]domain.Event, error) {
	const sql = `
		SELECT id, kind, actor_id, subject_id, message, at
		FROM audit_events
		WHERE subject_id = $1
		ORDER BY at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, sql, subjectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.ActorID, &ev.SubjectID, &ev.Message, &ev.At); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
