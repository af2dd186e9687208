// Package domain defines score history types
package domain

import (
	"context"
	"time"
)

// ScoreEvent is one realized-value observation for a rating, captured each
// time the aggregator recomputes an item. Aggregate carries the item's
// composite score at the same instant
type ScoreEvent struct {
	ItemID    string
	RatingID  string
	RaterID   string
	Realized  float64
	Aggregate float64
	At        time.Time
}

// WriterPort appends score history for other modules. Writes are best effort
// and must not participate in the caller's transaction
type WriterPort interface {
	WriteBatch(ctx context.Context, events []ScoreEvent) error
}
