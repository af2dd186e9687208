// Package service appends audit trail events
package service

import (
	"context"

	"github.com/google/uuid"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	ptime "laurel/internal/platform/time"
	"laurel/internal/services/audit/domain"
	"laurel/internal/services/audit/repo"
)

// Service is the public recorder port plus read access for operators
type Service interface {
	domain.RecorderPort
	BySubject(ctx context.Context, subjectID string, limit int) ([]domain.Event, error)
}

// Svc implements the recorder port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("audit.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("audit.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// Record appends one event, filling id and timestamp when absent
func (s *Svc) Record(ctx context.Context, ev domain.Event) error {
	if ev.Kind == "" || ev.Message == "" {
		return perr.InvalidArgf("audit event requires kind and message")
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = ptime.Now().UTC()
	}
	return s.Repo.Insert(ctx, ev)
}

// BySubject returns the newest events for a subject
func (s *Svc) BySubject(ctx context.Context, subjectID string, limit int) ([]domain.Event, error) {
	if subjectID == "" {
		return nil, perr.InvalidArgf("subject id required")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.Repo.ListBySubject(ctx, subjectID, limit)
}
