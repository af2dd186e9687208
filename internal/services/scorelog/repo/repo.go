// Package repo provides the clickhouse score history sink
package repo

import (
	"context"

	"laurel/internal/platform/store"
	"laurel/internal/services/scorelog/domain"
)

// Repo is the score history persistence surface used by the service layer
type Repo interface {
	InsertBatch(ctx context.Context, events []domain.ScoreEvent) error
}

// CH is a clickhouse implementation of the score history repo
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs the clickhouse repo
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("scorelog.Repo requires a non nil clickhouse seam")
	}
	return &CH{ch: ch}
}

const insertTarget = `score_events (item_id, rating_id, rater_id, realized, aggregate, at)`

// InsertBatch appends score events via a prepared batch
func (r *CH) InsertBatch(ctx context.Context, events []domain.ScoreEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []any{ev.ItemID, ev.RatingID, ev.RaterID, ev.Realized, ev.Aggregate, ev.At})
	}
	return r.ch.Insert(ctx, insertTarget, rows)
}
