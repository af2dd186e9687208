// Package domain defines the quantification engine surface
package domain

import (
	"context"

	praisedom "laurel/internal/services/praise/domain"
)

// Input carries one rater's quantification of one praise item.
// Intent precedence when several fields are set: duplicate, then dismissal,
// then score
type Input struct {
	RaterID     string
	ItemID      string
	Score       *float64
	Dismissed   bool
	DuplicateOf string
}

// BatchInput applies the same parameters to several items for one rater
type BatchInput struct {
	RaterID     string
	ItemIDs     []string
	Score       *float64
	Dismissed   bool
	DuplicateOf string
}

// ServicePort is the quantification engine surface exposed to transports
type ServicePort interface {
	// Quantify applies one rater's evaluation to one item and returns the
	// affected items with recomputed composite scores
	Quantify(ctx context.Context, in Input) ([]praisedom.Item, error)

	// QuantifyMany applies the same evaluation to several items in order
	QuantifyMany(ctx context.Context, in BatchInput) ([]praisedom.Item, error)

	// CompositeScore recomputes an item's composite score. With persist set
	// the realized value of every completed rating is written back
	CompositeScore(ctx context.Context, itemID string, persist bool) (float64, error)
}
