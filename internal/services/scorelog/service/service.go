// Package service records score history observations
package service

import (
	"context"

	"laurel/internal/platform/logger"
	"laurel/internal/services/scorelog/domain"
	"laurel/internal/services/scorelog/repo"
)

// Service is the public writer port
type Service interface{ domain.WriterPort }

// Svc implements the writer port. History writes are best effort: failures
// are logged and swallowed so the quantify workflow never rolls back over
// an analytics outage
type Svc struct {
	Repo repo.Repo
}

// New constructs the service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("scorelog.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// WriteBatch appends score events, logging instead of failing on error
func (s *Svc) WriteBatch(ctx context.Context, events []domain.ScoreEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := s.Repo.InsertBatch(ctx, events); err != nil {
		logger.C(ctx).Warn().Err(err).Int("events", len(events)).Msg("score history write failed")
	}
	return nil
}

// Nop is a writer that drops everything, used when clickhouse is disabled
type Nop struct{}

// WriteBatch drops the batch
func (Nop) WriteBatch(context.Context, []domain.ScoreEvent) error { return nil }
