// Package domain defines the quantify transport DTOs
package domain

import (
	"time"

	praisedom "laurel/internal/services/praise/domain"
)

// QuantifyRequest is one rater's evaluation of the item in the path.
// Exactly one of score, dismissed or duplicateOf is expected; when several
// are set, duplicateOf wins over dismissed which wins over score
type QuantifyRequest struct {
	RaterID     string   `json:"raterId"               validate:"required"`
	Score       *float64 `json:"score,omitempty"`
	Dismissed   bool     `json:"dismissed,omitempty"`
	DuplicateOf string   `json:"duplicateOf,omitempty"`
}

// QuantifyBatchRequest applies the same evaluation to several items
type QuantifyBatchRequest struct {
	RaterID     string   `json:"raterId"               validate:"required"`
	ItemIDs     []string `json:"itemIds"               validate:"required,min=1,dive,required"`
	Score       *float64 `json:"score,omitempty"`
	Dismissed   bool     `json:"dismissed,omitempty"`
	DuplicateOf string   `json:"duplicateOf,omitempty"`
}

// ItemOut is the praise item projection returned by quantify endpoints
type ItemOut struct {
	ID          string    `json:"id"`
	ReceiverID  string    `json:"receiverId"`
	GiverID     string    `json:"giverId"`
	ForwarderID string    `json:"forwarderId,omitempty"`
	Reason      string    `json:"reason"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemsOut projects domain items for the wire
func ItemsOut(items []praisedom.Item) []ItemOut {
	out := make([]ItemOut, 0, len(items))
	for _, it := range items {
		out = append(out, ItemOut{
			ID:          it.ID,
			ReceiverID:  it.ReceiverID,
			GiverID:     it.GiverID,
			ForwarderID: it.ForwarderID,
			Reason:      it.Reason,
			Score:       it.Score,
			CreatedAt:   it.CreatedAt,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return out
}
