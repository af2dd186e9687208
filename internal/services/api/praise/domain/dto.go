// Package domain defines the praise transport DTOs
package domain

import (
	"time"

	praisedom "laurel/internal/services/praise/domain"
)

// CreatePraiseRequest records a new praise item
type CreatePraiseRequest struct {
	ReceiverID  string `json:"receiverId"  validate:"required"`
	GiverID     string `json:"giverId"     validate:"required"`
	ForwarderID string `json:"forwarderId,omitempty"`
	Reason      string `json:"reason"      validate:"required"`
}

// AssignRequest assigns a rater to a praise item
type AssignRequest struct {
	RaterID string `json:"raterId" validate:"required"`
}

// RecomputeRequest triggers a composite score recomputation
type RecomputeRequest struct {
	Persist bool `json:"persist,omitempty"`
}

// ScoreOut is the recomputed composite score
type ScoreOut struct {
	ItemID string  `json:"itemId"`
	Score  float64 `json:"score"`
}

// ItemOut is the praise item projection
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

// RatingOut is the rating projection
type RatingOut struct {
	ID            string  `json:"id"`
	ItemID        string  `json:"itemId"`
	RaterID       string  `json:"raterId"`
	Score         float64 `json:"score"`
	ScoreRealized float64 `json:"scoreRealized"`
	Dismissed     bool    `json:"dismissed"`
	DuplicateOf   *string `json:"duplicateOf,omitempty"`
}

// ItemOutFrom projects a domain item for the wire
func ItemOutFrom(it praisedom.Item) ItemOut {
	return ItemOut{
		ID:          it.ID,
		ReceiverID:  it.ReceiverID,
		GiverID:     it.GiverID,
		ForwarderID: it.ForwarderID,
		Reason:      it.Reason,
		Score:       it.Score,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// RatingsOut projects domain ratings for the wire
func RatingsOut(ratings []praisedom.Rating) []RatingOut {
	out := make([]RatingOut, 0, len(ratings))
	for _, rt := range ratings {
		out = append(out, RatingOut{
			ID:            rt.ID,
			ItemID:        rt.ItemID,
			RaterID:       rt.RaterID,
			Score:         rt.Score,
			ScoreRealized: rt.ScoreRealized,
			Dismissed:     rt.Dismissed,
			DuplicateOf:   rt.DuplicateOf,
		})
	}
	return out
}
